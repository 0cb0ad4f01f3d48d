package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFn(t *testing.T) {
	m, ok := Fn("fn Greet(name: string) {")
	require.True(t, ok)
	assert.Equal(t, "Greet", m.Name)
	assert.Equal(t, 3, m.Offset)

	m, ok = Fn("  fn  Indented(")
	require.True(t, ok)
	assert.Equal(t, "Indented", m.Name)
	assert.Equal(t, 6, m.Offset)

	_, ok = Fn("fn MissingParen")
	assert.False(t, ok)

	_, ok = Fn("// fn Commented(")
	assert.False(t, ok)
}

func TestMacro(t *testing.T) {
	m, ok := Macro("macro Repeat(times: int) {")
	require.True(t, ok)
	assert.Equal(t, "Repeat", m.Name)
	assert.Equal(t, 6, m.Offset)
}

func TestConst(t *testing.T) {
	m, ok := Const("const MAX_PLAYERS = 24")
	require.True(t, ok)
	assert.Equal(t, "MAX_PLAYERS", m.Name)
	assert.Equal(t, 6, m.Offset)

	_, ok = Const("constellation = 1")
	assert.False(t, ok)
}

func TestEnumAndStruct(t *testing.T) {
	m, ok := Enum("enum Color {")
	require.True(t, ok)
	assert.Equal(t, "Color", m.Name)

	m, ok = Struct("struct Point(x: int, y: int)")
	require.True(t, ok)
	assert.Equal(t, "Point", m.Name)
}

func TestStat(t *testing.T) {
	tests := []struct {
		line      string
		name      string
		namespace string
		ok        bool
	}{
		{"stat player kills", "kills", "player", true},
		{"  stat team score", "score", "team", true},
		{"stat global round", "round", "global", true},
		{"stat invalid thing", "", "", false},
		{"stat player", "", "", false},
	}
	for _, tt := range tests {
		m, ok := Stat(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		if tt.ok {
			assert.Equal(t, tt.name, m.Name, tt.line)
			assert.Equal(t, tt.namespace, m.Namespace, tt.line)
		}
	}
}

func TestEnumMember(t *testing.T) {
	m, ok := EnumMember("  Red,")
	require.True(t, ok)
	assert.Equal(t, "Red", m.Name)
	assert.Equal(t, 2, m.Offset)

	_, ok = EnumMember("// comment")
	assert.False(t, ok)
	_, ok = EnumMember("@deprecated")
	assert.False(t, ok)
	_, ok = EnumMember("}")
	assert.False(t, ok)
	_, ok = EnumMember("   ")
	assert.False(t, ok)
}

func TestParam(t *testing.T) {
	name, typ, def, ok := Param("a: int")
	require.True(t, ok)
	assert.Equal(t, "a", name)
	assert.Equal(t, "int", typ)
	assert.Empty(t, def)

	name, typ, def, ok = Param(` b : string = "x" `)
	require.True(t, ok)
	assert.Equal(t, "b", name)
	assert.Equal(t, "string", typ)
	assert.Equal(t, `"x"`, def)

	_, _, _, ok = Param("justaname")
	assert.False(t, ok)
	_, _, _, ok = Param("")
	assert.False(t, ok)
}

func TestCalls(t *testing.T) {
	sites := Calls(`SendMessage("hi") + Wait(5)`)
	require.Len(t, sites, 2)
	assert.Equal(t, "SendMessage", sites[0].Name)
	assert.Equal(t, 0, sites[0].NameOffset)
	assert.Equal(t, 12, sites[0].ArgsOffset)
	assert.Equal(t, "Wait", sites[1].Name)
}

func TestBalances(t *testing.T) {
	assert.Equal(t, 1, ParenBalance("fn Foo(a: int,"))
	assert.Equal(t, 0, ParenBalance("fn Foo(a: int) {"))
	assert.Equal(t, -1, ParenBalance(")"))
	assert.Equal(t, 1, BraceBalance("enum Color {"))
	assert.Equal(t, 0, BraceBalance("enum Color { Red }"))
}

func TestCommentText(t *testing.T) {
	assert.Equal(t, "hello", CommentText("// hello"))
	assert.Equal(t, "hello", CommentText("  //hello"))
	assert.Equal(t, " indented doc", CommentText("//  indented doc"))
	assert.Equal(t, "", CommentText("//"))
}

func TestLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Lines("a\nb\nc"))
	assert.Equal(t, []string{"a", "b", ""}, Lines("a\r\nb\r\n"))
}
