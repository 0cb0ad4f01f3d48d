package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeIndex_Scan(t *testing.T) {
	ti := NewTypeIndex()
	ti.Scan(map[string]string{
		"types.hsl": `enum Color { Red, Green }

struct Point(x: int, y: int)`,
	})

	require.NotNil(t, ti.Type("Color"))
	assert.Equal(t, KindEnum, ti.Type("Color").Kind)
	require.NotNil(t, ti.Type("Point"))
	assert.Equal(t, KindStruct, ti.Type("Point").Kind)
	assert.Nil(t, ti.Type("Missing"))

	assert.NotNil(t, ti.Enum("Color"))
	assert.Nil(t, ti.Enum("Point"))
}

func TestTypeIndex_Members(t *testing.T) {
	ti := NewTypeIndex()
	ti.ScanFile("c.hsl", "enum Color { Red, Green }")

	members := ti.Members("Color")
	require.Len(t, members, 2)
	assert.Equal(t, "Red", members[0].Name)
	assert.Equal(t, "Green", members[1].Name)

	require.NotNil(t, ti.Member("Color", "Red"))
	assert.Nil(t, ti.Member("Color", "Blue"))
	assert.Nil(t, ti.Member("Unknown", "Red"))
	assert.Nil(t, ti.Members("Unknown"))
}

func TestTypeIndex_ScanReplacesEverything(t *testing.T) {
	ti := NewTypeIndex()
	ti.ScanFile("old.hsl", "enum Stale { A }")
	ti.Scan(map[string]string{"new.hsl": "enum Fresh { B }"})

	assert.Nil(t, ti.Type("Stale"))
	assert.NotNil(t, ti.Type("Fresh"))
}

func TestTypeIndex_StructOverwritesEnum(t *testing.T) {
	ti := NewTypeIndex()
	ti.ScanFile("a.hsl", "enum Shape { Circle }")
	ti.ScanFile("b.hsl", "struct Shape(sides: int)")

	require.NotNil(t, ti.Type("Shape"))
	assert.Equal(t, KindStruct, ti.Type("Shape").Kind)
	assert.Nil(t, ti.Enum("Shape"))
	assert.Nil(t, ti.Members("Shape"))
}
