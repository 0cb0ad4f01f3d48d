package symbol

import (
	"github.com/housing-studio/hsl-index/internal/scan"
)

// Index is the mutable workspace-wide symbol table: four global lookup maps
// plus a reverse map from file path to the FileSet it contributed. The
// invariant maintained by every mutation is that the global maps always
// equal the union of the recorded FileSets: a removed or re-indexed file
// never leaves stale entries behind.
type Index struct {
	constants map[string]*Declaration
	functions map[string]*Declaration
	macros    map[string]*Declaration

	// stats is multi-valued: the same name may legitimately be declared in
	// several functions and files.
	stats map[string][]*Declaration

	files map[string]*FileSet
}

// NewIndex returns an empty workspace index.
func NewIndex() *Index {
	return &Index{
		constants: make(map[string]*Declaration),
		functions: make(map[string]*Declaration),
		macros:    make(map[string]*Declaration),
		stats:     make(map[string][]*Declaration),
		files:     make(map[string]*FileSet),
	}
}

// IndexFile parses text and replaces everything path previously contributed.
// Only constant, function, macro and stat kinds are indexed here; enum and
// struct types go through the TypeIndex.
func (x *Index) IndexFile(path, text string) {
	x.RemoveFile(path)

	lines := scan.Lines(text)
	decls := ParseDeclarations(path, lines,
		KindConstant, KindFunction, KindMacro, KindStat)

	fs := &FileSet{Path: path}
	for _, d := range decls {
		switch d.Kind {
		case KindConstant:
			fs.Constants = append(fs.Constants, d)
			x.constants[d.Name] = d
		case KindFunction:
			fs.Functions = append(fs.Functions, d)
			x.functions[d.Name] = d
		case KindMacro:
			fs.Macros = append(fs.Macros, d)
			x.macros[d.Name] = d
		case KindStat:
			fs.Stats = append(fs.Stats, d)
			x.stats[d.Name] = append(x.stats[d.Name], d)
		}
	}
	x.files[path] = fs
}

// RemoveFile retracts every entry path contributed. No-op for paths that
// were never indexed. Single-valued maps are restored from the remaining
// FileSets when another file declares the same name.
func (x *Index) RemoveFile(path string) {
	fs, ok := x.files[path]
	if !ok {
		return
	}
	delete(x.files, path)

	for _, d := range fs.Constants {
		retractSingle(x.constants, d, path)
	}
	for _, d := range fs.Functions {
		retractSingle(x.functions, d, path)
	}
	for _, d := range fs.Macros {
		retractSingle(x.macros, d, path)
	}
	for _, d := range fs.Stats {
		x.stats[d.Name] = dropByFile(x.stats[d.Name], path)
		if len(x.stats[d.Name]) == 0 {
			delete(x.stats, d.Name)
		}
	}

	// Re-adopt shadowed declarations of the retracted names.
	for _, other := range x.files {
		for _, d := range other.Constants {
			if _, ok := x.constants[d.Name]; !ok && wasDeclared(fs.Constants, d.Name) {
				x.constants[d.Name] = d
			}
		}
		for _, d := range other.Functions {
			if _, ok := x.functions[d.Name]; !ok && wasDeclared(fs.Functions, d.Name) {
				x.functions[d.Name] = d
			}
		}
		for _, d := range other.Macros {
			if _, ok := x.macros[d.Name]; !ok && wasDeclared(fs.Macros, d.Name) {
				x.macros[d.Name] = d
			}
		}
	}
}

// Reindex clears everything and indexes the given files from scratch.
func (x *Index) Reindex(files map[string]string) {
	x.constants = make(map[string]*Declaration)
	x.functions = make(map[string]*Declaration)
	x.macros = make(map[string]*Declaration)
	x.stats = make(map[string][]*Declaration)
	x.files = make(map[string]*FileSet)
	for path, text := range files {
		x.IndexFile(path, text)
	}
}

// Constant looks up a workspace constant by name.
func (x *Index) Constant(name string) *Declaration { return x.constants[name] }

// Function looks up a workspace function by name.
func (x *Index) Function(name string) *Declaration { return x.functions[name] }

// Macro looks up a workspace macro by name.
func (x *Index) Macro(name string) *Declaration { return x.macros[name] }

// Stats returns every stat declaration sharing a name.
func (x *Index) Stats(name string) []*Declaration { return x.stats[name] }

// File returns the FileSet path contributed, or nil.
func (x *Index) File(path string) *FileSet { return x.files[path] }

// Files returns the indexed paths in map order.
func (x *Index) Files() []string {
	paths := make([]string, 0, len(x.files))
	for p := range x.files {
		paths = append(paths, p)
	}
	return paths
}

// Constants returns the global constant map. Callers must not mutate it.
func (x *Index) Constants() map[string]*Declaration { return x.constants }

// Functions returns the global function map. Callers must not mutate it.
func (x *Index) Functions() map[string]*Declaration { return x.functions }

// Macros returns the global macro map. Callers must not mutate it.
func (x *Index) Macros() map[string]*Declaration { return x.macros }

// AllStats returns the global stat map. Callers must not mutate it.
func (x *Index) AllStats() map[string][]*Declaration { return x.stats }

func retractSingle(m map[string]*Declaration, d *Declaration, path string) {
	if cur, ok := m[d.Name]; ok && cur.File == path {
		delete(m, d.Name)
	}
}

func dropByFile(decls []*Declaration, path string) []*Declaration {
	kept := decls[:0]
	for _, d := range decls {
		if d.File != path {
			kept = append(kept, d)
		}
	}
	return kept
}

func wasDeclared(decls []*Declaration, name string) bool {
	for _, d := range decls {
		if d.Name == name {
			return true
		}
	}
	return false
}
