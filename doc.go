// Package hslindex provides the in-memory symbol index and cross-reference
// engine behind HSL editor intelligence: hover, go-to-definition,
// completion, and inlay parameter hints.
//
// HSL is parsed with line-oriented lexical scanning rather than a grammar:
// regex recognizers pick out fn, macro, const, enum, struct, and stat
// declarations, and a declaration parser attaches positions, multi-line
// signatures, parameter lists, and leading documentation blocks. The
// resulting declarations feed a mutable workspace index with an atomic
// retract-then-insert contract per file.
//
// # Usage
//
// Create an Engine, feed it files, and query by position:
//
//	e := hslindex.New()
//	e.IndexFile("game.hsl", source)
//
//	h := e.Hover("game.hsl", 10, 5)
//	loc := e.Definition("game.hsl", 10, 5)
//	items := e.Completions("game.hsl", 10, 5)
//	hints := e.InlayHints("game.hsl", 0, 50)
//
// All line and column values are zero-based; columns are UTF-16 code unit
// offsets, matching editor-protocol convention.
//
// # Standard library
//
// The built-in action and condition catalogs are loaded from the well-known
// catalog files of a standard-library directory via
// [Engine.LoadStandardLibrary], which also scans the directory tree for enum
// and struct declarations. The catalogs are read-only and rebuilt wholesale
// on change; queries consult them ahead of workspace callables because user
// code cannot redefine built-ins.
//
// # Mutation API
//
// [Engine.IndexFile], [Engine.RemoveFile] and [Engine.ReindexWorkspace] are
// the only entry points that mutate the index. File-watch notifications
// funnel through [Engine.ApplyEvent], which dispatches to those three. All
// mutations are serialized behind an internal mutex, so the Engine is safe
// for concurrent use from an editor host.
package hslindex
