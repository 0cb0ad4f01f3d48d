package symbol

import (
	"fmt"

	"github.com/housing-studio/hsl-index/internal/scan"
)

// Block is one fn/macro body span: the header line through the line that
// balances the body's braces. HSL does not nest callable bodies, so a flat
// list of non-overlapping spans is enough.
type Block struct {
	Name  string
	Start int // header line, zero-based
	End   int // line where brace depth returns to zero
}

// Key returns the opaque scope key for declarations inside this block.
func (b Block) Key() string {
	return fmt.Sprintf("%s:%d", b.Name, b.Start)
}

// ScanBlocks finds every fn/macro header and its balanced-brace body range.
// A body whose braces never balance extends to end of file.
func ScanBlocks(lines []string) []Block {
	var blocks []Block
	for i := 0; i < len(lines); i++ {
		m, ok := scan.Fn(lines[i])
		if !ok {
			m, ok = scan.Macro(lines[i])
		}
		if !ok {
			continue
		}

		// Walk forward from the header until the body's braces balance.
		// Depth only becomes meaningful once the first '{' is seen.
		depth := 0
		opened := false
		end := len(lines) - 1
		for j := i; j < len(lines); j++ {
			depth += scan.BraceBalance(lines[j])
			if depth > 0 {
				opened = true
			}
			if opened && depth <= 0 {
				end = j
				break
			}
		}
		blocks = append(blocks, Block{Name: m.Name, Start: i, End: end})
	}
	return blocks
}

// ScopeKeyAt returns the scope key of the first block containing line, or
// empty when the line is at file level.
func ScopeKeyAt(blocks []Block, line int) string {
	for _, b := range blocks {
		if line >= b.Start && line <= b.End {
			return b.Key()
		}
	}
	return ""
}

// Disambiguate picks the best stat declaration for a query at (file, line)
// among same-name candidates. Preference order: same file with matching
// scope key, same file at file level, same file, then the first candidate.
func Disambiguate(candidates []*Declaration, file string, blocks []Block, line int) *Declaration {
	if len(candidates) == 0 {
		return nil
	}
	key := ScopeKeyAt(blocks, line)

	for _, d := range candidates {
		if d.File == file && d.ScopeKey == key {
			return d
		}
	}
	for _, d := range candidates {
		if d.File == file && d.ScopeKey == "" {
			return d
		}
	}
	for _, d := range candidates {
		if d.File == file {
			return d
		}
	}
	return candidates[0]
}
