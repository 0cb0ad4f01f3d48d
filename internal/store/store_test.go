package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housing-studio/hsl-index/internal/symbol"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "snapshot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.Migrate())
	return s
}

func TestStore_MigrateIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Migrate())
}

func TestStore_InsertAndQuery(t *testing.T) {
	s := newTestStore(t)

	fileID, err := s.InsertFile("game.hsl", time.Now())
	require.NoError(t, err)

	symID, err := s.InsertSymbol(&Symbol{
		FileID:        fileID,
		Name:          "Greet",
		Kind:          "function",
		Line:          2,
		Col:           3,
		Signature:     "fn Greet(name: string) {",
		Documentation: "Greets.",
	})
	require.NoError(t, err)
	require.NoError(t, s.InsertParam(symID, 0, "name", "string", ""))

	byName, err := s.SymbolsByName("Greet")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "function", byName[0].Kind)
	assert.Equal(t, 2, byName[0].Line)

	byFile, err := s.SymbolsByFile("game.hsl")
	require.NoError(t, err)
	require.Len(t, byFile, 1)
	assert.Equal(t, "Greet", byFile[0].Name)

	missing, err := s.SymbolsByName("Nope")
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestWriteSnapshot(t *testing.T) {
	s := newTestStore(t)

	byFile := map[string][]*symbol.Declaration{
		"a.hsl": {
			{
				Name:      "Foo",
				Kind:      symbol.KindFunction,
				File:      "a.hsl",
				Line:      1,
				Signature: "fn Foo(n: int) {",
				Params:    []symbol.Param{{Name: "n", Type: "int"}},
			},
			{
				Name: "Color",
				Kind: symbol.KindEnum,
				File: "a.hsl",
				Members: []*symbol.Declaration{
					{Name: "Red", Kind: symbol.KindEnumMember, File: "a.hsl", ParentEnum: "Color"},
				},
			},
		},
		"b.hsl": {
			{Name: "kills", Kind: symbol.KindStat, File: "b.hsl", Namespace: "player", ScopeKey: "Game:0"},
		},
	}
	require.NoError(t, s.WriteSnapshot(byFile))

	syms, err := s.SymbolsByFile("a.hsl")
	require.NoError(t, err)
	require.Len(t, syms, 3)

	red, err := s.SymbolsByName("Red")
	require.NoError(t, err)
	require.Len(t, red, 1)
	assert.Equal(t, "Color", red[0].ParentEnum)

	kills, err := s.SymbolsByName("kills")
	require.NoError(t, err)
	require.Len(t, kills, 1)
	assert.Equal(t, "player", kills[0].Namespace)
	assert.Equal(t, "Game:0", kills[0].ScopeKey)
}

func TestWriteSnapshot_ReplacesPrevious(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteSnapshot(map[string][]*symbol.Declaration{
		"old.hsl": {{Name: "Old", Kind: symbol.KindFunction, File: "old.hsl"}},
	}))
	require.NoError(t, s.WriteSnapshot(map[string][]*symbol.Declaration{
		"new.hsl": {{Name: "New", Kind: symbol.KindFunction, File: "new.hsl"}},
	}))

	old, err := s.SymbolsByName("Old")
	require.NoError(t, err)
	assert.Empty(t, old)

	fresh, err := s.SymbolsByName("New")
	require.NoError(t, err)
	assert.Len(t, fresh, 1)
}
