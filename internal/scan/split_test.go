package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTopLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"simple", "a, b, c", []string{"a", " b", " c"}},
		{"nested parens", "f(a, b), c", []string{"f(a, b)", " c"}},
		{"nested angles", "a: Map<string, int>, b: string", []string{"a: Map<string, int>", " b: string"}},
		{"string literal", `a: string = "x,y", b: int`, []string{`a: string = "x,y"`, " b: int"}},
		{"single quotes", "a = 'x,y', b", []string{"a = 'x,y'", " b"}},
		{"escaped quote", `a = "x\",y", b`, []string{`a = "x\",y"`, " b"}},
		{"empty", "", []string{""}},
		{"single", "a", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitTopLevel(tt.input))
		})
	}
}

// Splitting a parameter list with both generics and a comma inside a string
// must yield exactly two parameters.
func TestSplitTopLevel_MixedNesting(t *testing.T) {
	parts := SplitTopLevel(`a: Map<string, int>, b: string = "a,b"`)
	require.Len(t, parts, 2)

	name, _, _, ok := Param(parts[0])
	require.True(t, ok)
	assert.Equal(t, "a", name)

	name, _, def, ok := Param(parts[1])
	require.True(t, ok)
	assert.Equal(t, "b", name)
	assert.Equal(t, `"a,b"`, def)
}

func TestParamList(t *testing.T) {
	list, ok := ParamList("fn Foo(a: int, b: string) {")
	require.True(t, ok)
	assert.Equal(t, "a: int, b: string", list)

	list, ok = ParamList("fn Nested(f: Fn(int), g: int)")
	require.True(t, ok)
	assert.Equal(t, "f: Fn(int), g: int", list)

	// Unterminated list keeps what was written.
	list, ok = ParamList("fn Broken(a: int,")
	require.True(t, ok)
	assert.Equal(t, "a: int,", list)

	_, ok = ParamList("const X = 1")
	assert.False(t, ok)
}
