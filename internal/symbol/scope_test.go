package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/housing-studio/hsl-index/internal/scan"
)

func TestScanBlocks(t *testing.T) {
	src := `const TOP = 1

fn First() {
    if (x) {
        y()
    }
}

macro Second(n: int) {
    z()
}`
	blocks := ScanBlocks(scan.Lines(src))
	require.Len(t, blocks, 2)

	assert.Equal(t, Block{Name: "First", Start: 2, End: 6}, blocks[0])
	assert.Equal(t, "First:2", blocks[0].Key())
	assert.Equal(t, Block{Name: "Second", Start: 8, End: 10}, blocks[1])
}

func TestScanBlocks_UnbalancedRunsToEOF(t *testing.T) {
	src := `fn Broken() {
    a()
    b()`
	blocks := ScanBlocks(scan.Lines(src))
	require.Len(t, blocks, 1)
	assert.Equal(t, 2, blocks[0].End)
}

func TestScanBlocks_MultiLineHeader(t *testing.T) {
	src := `fn Long(
    a: int,
) {
    body()
}`
	blocks := ScanBlocks(scan.Lines(src))
	require.Len(t, blocks, 1)
	assert.Equal(t, 0, blocks[0].Start)
	assert.Equal(t, 4, blocks[0].End)
}

func TestScopeKeyAt(t *testing.T) {
	blocks := []Block{
		{Name: "A", Start: 2, End: 5},
		{Name: "B", Start: 8, End: 12},
	}
	assert.Empty(t, ScopeKeyAt(blocks, 0))
	assert.Equal(t, "A:2", ScopeKeyAt(blocks, 2))
	assert.Equal(t, "A:2", ScopeKeyAt(blocks, 5))
	assert.Empty(t, ScopeKeyAt(blocks, 6))
	assert.Equal(t, "B:8", ScopeKeyAt(blocks, 10))
	assert.Empty(t, ScopeKeyAt(blocks, 99))
}

func TestDisambiguate(t *testing.T) {
	scoped := &Declaration{Name: "kills", File: "a.hsl", ScopeKey: "Game:2"}
	fileLevel := &Declaration{Name: "kills", File: "a.hsl"}
	other := &Declaration{Name: "kills", File: "b.hsl", ScopeKey: "Other:0"}
	candidates := []*Declaration{other, fileLevel, scoped}

	blocks := []Block{{Name: "Game", Start: 2, End: 9}}

	// Inside the block, the scoped declaration wins.
	assert.Same(t, scoped, Disambiguate(candidates, "a.hsl", blocks, 4))
	// Outside any block, the file-level declaration wins.
	assert.Same(t, fileLevel, Disambiguate(candidates, "a.hsl", blocks, 0))
	// A different file falls back to same-file, then first candidate.
	assert.Same(t, other, Disambiguate(candidates, "b.hsl", nil, 0))
	assert.Same(t, other, Disambiguate(candidates, "c.hsl", nil, 0))

	assert.Nil(t, Disambiguate(nil, "a.hsl", blocks, 0))
}
