package symbol

import "github.com/housing-studio/hsl-index/internal/scan"

// TypeIndex holds enum and struct declarations plus enum membership, global
// across the standard library and the workspace. It is rebuilt from a full
// file list on every scan; the per-file delta merge the original tooling
// attempted was a performance optimization, and a from-scratch recompute is
// the documented correct substitute.
type TypeIndex struct {
	types map[string]*Declaration
	enums map[string]*Declaration // subset of types, kind enum, with Members
}

// NewTypeIndex returns an empty type index.
func NewTypeIndex() *TypeIndex {
	return &TypeIndex{
		types: make(map[string]*Declaration),
		enums: make(map[string]*Declaration),
	}
}

// Scan rebuilds the index from the given file contents.
func (t *TypeIndex) Scan(files map[string]string) {
	t.types = make(map[string]*Declaration)
	t.enums = make(map[string]*Declaration)
	for path, text := range files {
		t.ScanFile(path, text)
	}
}

// ScanFile merges one file's enum/struct declarations into the index,
// overwriting same-name entries.
func (t *TypeIndex) ScanFile(path, text string) {
	lines := scan.Lines(text)
	for _, d := range ParseDeclarations(path, lines, KindEnum, KindStruct) {
		t.types[d.Name] = d
		if d.Kind == KindEnum {
			t.enums[d.Name] = d
		} else {
			delete(t.enums, d.Name)
		}
	}
}

// Type looks up an enum or struct declaration by name.
func (t *TypeIndex) Type(name string) *Declaration { return t.types[name] }

// Enum looks up an enum declaration by name.
func (t *TypeIndex) Enum(name string) *Declaration { return t.enums[name] }

// Member looks up one member of an enum.
func (t *TypeIndex) Member(enum, member string) *Declaration {
	e, ok := t.enums[enum]
	if !ok {
		return nil
	}
	for _, m := range e.Members {
		if m.Name == member {
			return m
		}
	}
	return nil
}

// Members returns an enum's members in declaration order, or nil for an
// unknown enum.
func (t *TypeIndex) Members(enum string) []*Declaration {
	e, ok := t.enums[enum]
	if !ok {
		return nil
	}
	return e.Members
}

// Types returns the global type map. Callers must not mutate it.
func (t *TypeIndex) Types() map[string]*Declaration { return t.types }

// Enums returns the global enum map. Callers must not mutate it.
func (t *TypeIndex) Enums() map[string]*Declaration { return t.enums }
