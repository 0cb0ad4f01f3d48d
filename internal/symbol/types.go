// Package symbol holds the HSL declaration model and the mutable workspace
// index built from it. Declarations are produced by the line-scanning parser
// in this package and are immutable once created: a file edit replaces every
// declaration the file contributed as one unit.
package symbol

// Kind partitions declarations by what they declare.
type Kind string

const (
	KindFunction   Kind = "function"
	KindMacro      Kind = "macro"
	KindConstant   Kind = "constant"
	KindStruct     Kind = "struct"
	KindEnum       Kind = "enum"
	KindEnumMember Kind = "enum-member"
	KindStat       Kind = "stat"
)

// Param is one declared parameter of a callable.
type Param struct {
	Name    string
	Type    string
	Default string // verbatim default expression, empty when absent
}

// Declaration is one named entity found in source text.
type Declaration struct {
	Name string
	Kind Kind

	// File, Line and Column locate the name token. Line is zero-based;
	// Column is a zero-based UTF-16 offset.
	File   string
	Line   int
	Column int

	// Signature is the verbatim multi-line source slice of the declaration,
	// with any leading @annotation lines prepended.
	Signature string

	// Documentation is the joined comment block immediately above the
	// declaration, top-down, blank lines preserved as paragraph breaks.
	Documentation string

	// Params is empty for non-callable kinds.
	Params []Param

	// ScopeKey identifies the enclosing fn/macro body for stat declarations;
	// empty means file level.
	ScopeKey string

	// ParentEnum is set for enum-member declarations.
	ParentEnum string

	// Namespace is the stat namespace (player, team, global).
	Namespace string

	// Members holds the ordered member declarations of an enum.
	Members []*Declaration
}

// FileSet is everything one file contributed to the index, recorded so a
// re-index or removal can retract exactly those entries without a table
// scan.
type FileSet struct {
	Path      string
	Constants []*Declaration
	Functions []*Declaration
	Macros    []*Declaration
	Stats     []*Declaration
}

// All returns every declaration in the set, in kind order.
func (fs *FileSet) All() []*Declaration {
	out := make([]*Declaration, 0,
		len(fs.Constants)+len(fs.Functions)+len(fs.Macros)+len(fs.Stats))
	out = append(out, fs.Constants...)
	out = append(out, fs.Functions...)
	out = append(out, fs.Macros...)
	out = append(out, fs.Stats...)
	return out
}
