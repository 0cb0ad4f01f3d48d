package hslindex

import (
	"regexp"
	"strings"

	"github.com/housing-studio/hsl-index/internal/scan"
)

// InlayHint is a parameter-name hint anchored immediately before a
// positional argument at a call site.
type InlayHint struct {
	Label  string
	Line   int
	Column int
}

// namedArgRe matches a name=value argument; the trailing class keeps == from
// counting as a named argument.
var namedArgRe = regexp.MustCompile(`^\s*` + scan.Identifier + `\s*=(?:[^=]|$)`)

// InlayHints returns parameter-name hints for call sites within the line
// range [startLine, endLine]. Only calls to catalog built-ins carry hints;
// arguments already written as name=value are skipped, and hints stop at
// the declared parameter count.
func (e *Engine) InlayHints(path string, startLine, endLine int) []InlayHint {
	e.mu.RLock()
	defer e.mu.RUnlock()

	lines, ok := e.sources[path]
	if !ok {
		return nil
	}
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	var hints []InlayHint
	for ln := startLine; ln <= endLine; ln++ {
		text := lines[ln]
		for _, site := range scan.Calls(text) {
			d := e.catalog.Callable(site.Name)
			if d == nil || len(d.Params) == 0 {
				continue
			}

			args, argOffsets := splitArgs(text, site.ArgsOffset)
			for i, arg := range args {
				if i >= len(d.Params) {
					break
				}
				trimmed := strings.TrimSpace(arg)
				if trimmed == "" || namedArgRe.MatchString(arg) {
					continue
				}
				lead := len(arg) - len(strings.TrimLeft(arg, " \t"))
				hints = append(hints, InlayHint{
					Label:  d.Params[i].Name + ":",
					Line:   ln,
					Column: scan.UTF16Col(text, argOffsets[i]+lead),
				})
			}
		}
	}
	return hints
}

// splitArgs splits the argument text starting at the byte offset just past
// a call's '(' into top-level comma pieces, stopping at the matching ')'
// or end of line. Returns the pieces and the byte offset of each.
func splitArgs(text string, start int) ([]string, []int) {
	end := len(text)
	depth := 1
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				end = i
				i = len(text)
			}
		}
	}

	pieces := scan.SplitTopLevel(text[start:end])
	offsets := make([]int, len(pieces))
	off := start
	for i, p := range pieces {
		offsets[i] = off
		off += len(p) + 1
	}
	return pieces, offsets
}
