package hslindex

import (
	"github.com/housing-studio/hsl-index/internal/scan"
	"github.com/housing-studio/hsl-index/internal/symbol"
)

// HoverResult is the rendered answer to a hover query. At least one of the
// two fields is non-empty.
type HoverResult struct {
	Documentation string
	Signature     string
}

// Location is a zero-based source position.
type Location struct {
	File   string
	Line   int
	Column int
}

// Hover answers a hover query at a position. Returns nil when nothing under
// the cursor resolves, or when the resolved declaration has neither
// documentation nor signature.
func (e *Engine) Hover(path string, line, col int) *HoverResult {
	e.mu.RLock()
	defer e.mu.RUnlock()

	d := e.lookupLocked(path, line, col)
	if d == nil || (d.Documentation == "" && d.Signature == "") {
		return nil
	}
	return &HoverResult{Documentation: d.Documentation, Signature: d.Signature}
}

// Definition answers a go-to-definition query at a position. Returns nil
// when nothing resolves.
func (e *Engine) Definition(path string, line, col int) *Location {
	e.mu.RLock()
	defer e.mu.RUnlock()

	d := e.lookupLocked(path, line, col)
	if d == nil {
		return nil
	}
	return &Location{File: d.File, Line: d.Line, Column: d.Column}
}

// lookupLocked resolves the token at a position to a declaration, applying
// the query precedence order. Built-in action/condition callables come
// first because user code cannot redefine them; workspace symbols fill the
// remaining kinds. First match wins. Callers hold e.mu.
func (e *Engine) lookupLocked(path string, line, col int) *symbol.Declaration {
	text, ok := e.line(path, line)
	if !ok {
		return nil
	}
	tok := scan.ResolveToken(text, col)
	if tok.Text == "" {
		return nil
	}

	if d := e.catalog.Callable(tok.Text); d != nil {
		return d
	}
	if tok.Kind == scan.TokenRHS {
		if d := e.types.Member(tok.LHS, tok.RHS); d != nil {
			return d
		}
	}
	if tok.Kind == scan.TokenLHS {
		if d := e.types.Type(tok.LHS); d != nil {
			return d
		}
	}
	if d := e.types.Type(tok.Text); d != nil {
		return d
	}
	if d := e.catalog.Constants[tok.Text]; d != nil {
		return d
	}
	if d := e.index.Constant(tok.Text); d != nil {
		return d
	}
	if d := e.index.Function(tok.Text); d != nil {
		return d
	}
	if d := e.index.Macro(tok.Text); d != nil {
		return d
	}
	if candidates := e.index.Stats(tok.Text); len(candidates) > 0 {
		blocks := symbol.ScanBlocks(e.sources[path])
		return symbol.Disambiguate(candidates, path, blocks, line)
	}
	return nil
}
