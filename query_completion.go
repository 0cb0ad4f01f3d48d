package hslindex

import (
	"sort"
	"strings"

	"github.com/housing-studio/hsl-index/internal/scan"
	"github.com/housing-studio/hsl-index/internal/symbol"
)

// CompletionItem is one completion candidate.
type CompletionItem struct {
	Label      string
	Kind       string
	InsertText string
	Detail     string
}

// Completion item kinds.
const (
	CompletionKeyword    = "keyword"
	CompletionAction     = "action"
	CompletionCondition  = "condition"
	CompletionConstant   = "constant"
	CompletionFunction   = "function"
	CompletionMacro      = "macro"
	CompletionStat       = "stat"
	CompletionType       = "type"
	CompletionEnumMember = "enum-member"
	CompletionNamedArg   = "named-arg"
)

// keywordItems are the language keyword and block snippets offered in every
// general completion list.
var keywordItems = []CompletionItem{
	{Label: "fn", Kind: CompletionKeyword, InsertText: "fn name() {\n\t\n}", Detail: "function declaration"},
	{Label: "macro", Kind: CompletionKeyword, InsertText: "macro name() {\n\t\n}", Detail: "macro declaration"},
	{Label: "const", Kind: CompletionKeyword, InsertText: "const NAME = ", Detail: "constant declaration"},
	{Label: "enum", Kind: CompletionKeyword, InsertText: "enum Name {\n\t\n}", Detail: "enum declaration"},
	{Label: "struct", Kind: CompletionKeyword, InsertText: "struct Name()", Detail: "struct declaration"},
	{Label: "stat player", Kind: CompletionKeyword, InsertText: "stat player ", Detail: "player-scoped variable"},
	{Label: "stat team", Kind: CompletionKeyword, InsertText: "stat team ", Detail: "team-scoped variable"},
	{Label: "stat global", Kind: CompletionKeyword, InsertText: "stat global ", Detail: "global variable"},
	{Label: "if", Kind: CompletionKeyword, InsertText: "if () {\n\t\n}", Detail: "conditional block"},
	{Label: "else", Kind: CompletionKeyword, InsertText: "else {\n\t\n}", Detail: "else block"},
	{Label: "loop", Kind: CompletionKeyword, InsertText: "loop {\n\t\n}", Detail: "loop block"},
}

// Completions answers a completion request at a position. After an
// `EnumName::` qualifier the list is restricted to that enum's members;
// inside a known callable's argument list, named-argument snippets are
// offered alongside the general list.
func (e *Engine) Completions(path string, line, col int) []CompletionItem {
	e.mu.RLock()
	defer e.mu.RUnlock()

	text, ok := e.line(path, line)
	if !ok {
		return nil
	}
	tok := scan.ResolveToken(text, col)

	// Enum member context: offer the members and nothing else.
	if tok.LHS != "" {
		if members := e.types.Members(tok.LHS); members != nil {
			items := make([]CompletionItem, 0, len(members))
			for _, m := range members {
				items = append(items, CompletionItem{
					Label:      m.Name,
					Kind:       CompletionEnumMember,
					InsertText: m.Name,
					Detail:     tok.LHS + "::" + m.Name,
				})
			}
			return items
		}
		if tok.Kind == scan.TokenPendingRHS {
			// Qualifier names no known enum; nothing sensible to offer.
			return nil
		}
	}

	var items []CompletionItem

	// Named-argument snippets when the cursor sits inside the argument list
	// of a recognized callable.
	if callee := e.enclosingCalleeLocked(text, col); callee != nil {
		for _, p := range callee.Params {
			items = append(items, CompletionItem{
				Label:      p.Name + "=",
				Kind:       CompletionNamedArg,
				InsertText: p.Name + "=" + e.defaultLiteralLocked(p),
				Detail:     p.Type,
			})
		}
	}

	items = append(items, keywordItems...)
	items = append(items, catalogItems(e.catalog.Actions, CompletionAction)...)
	items = append(items, catalogItems(e.catalog.Conditions, CompletionCondition)...)
	items = append(items, catalogItems(e.catalog.Constants, CompletionConstant)...)
	items = append(items, catalogItems(e.index.Constants(), CompletionConstant)...)
	items = append(items, catalogItems(e.index.Functions(), CompletionFunction)...)
	items = append(items, catalogItems(e.index.Macros(), CompletionMacro)...)

	statNames := make([]string, 0, len(e.index.AllStats()))
	for name := range e.index.AllStats() {
		statNames = append(statNames, name)
	}
	sort.Strings(statNames)
	for _, name := range statNames {
		d := e.index.Stats(name)[0]
		items = append(items, CompletionItem{
			Label:      name,
			Kind:       CompletionStat,
			InsertText: name,
			Detail:     d.Namespace + " stat",
		})
	}

	// Declared types. Enum insertion pre-fills the qualifier so the editor
	// re-triggers completion for the members.
	typeNames := make([]string, 0, len(e.types.Types()))
	for name := range e.types.Types() {
		typeNames = append(typeNames, name)
	}
	sort.Strings(typeNames)
	for _, name := range typeNames {
		d := e.types.Type(name)
		insert := name
		if d.Kind == symbol.KindEnum {
			insert = name + "::"
		}
		items = append(items, CompletionItem{
			Label:      name,
			Kind:       CompletionType,
			InsertText: insert,
			Detail:     string(d.Kind),
		})
	}

	// Fully qualified labels for every enum member in the workspace.
	enumNames := make([]string, 0, len(e.types.Enums()))
	for name := range e.types.Enums() {
		enumNames = append(enumNames, name)
	}
	sort.Strings(enumNames)
	for _, name := range enumNames {
		for _, m := range e.types.Members(name) {
			label := name + "::" + m.Name
			items = append(items, CompletionItem{
				Label:      label,
				Kind:       CompletionEnumMember,
				InsertText: label,
				Detail:     string(symbol.KindEnumMember),
			})
		}
	}

	return items
}

// enclosingCalleeLocked finds the callable whose argument list contains the
// cursor: the identifier immediately before the nearest unclosed '(' to the
// left. Returns nil when the cursor is not inside a recognized call.
func (e *Engine) enclosingCalleeLocked(text string, col int) *symbol.Declaration {
	off := scan.ByteOffset(text, col)
	if off > len(text) {
		off = len(text)
	}
	depth := 0
	for i := off - 1; i >= 0; i-- {
		switch text[i] {
		case ')':
			depth++
		case '(':
			if depth > 0 {
				depth--
				continue
			}
			name := identBefore(text, i)
			if name == "" {
				return nil
			}
			if d := e.catalog.Callable(name); d != nil {
				return d
			}
			if d := e.index.Function(name); d != nil {
				return d
			}
			if d := e.index.Macro(name); d != nil {
				return d
			}
			return nil
		}
	}
	return nil
}

// identBefore returns the identifier ending immediately before byte offset
// i, skipping trailing spaces.
func identBefore(text string, i int) string {
	j := i
	for j > 0 && (text[j-1] == ' ' || text[j-1] == '\t') {
		j--
	}
	k := j
	for k > 0 && isIdentByte(text[k-1]) {
		k--
	}
	if k == j {
		return ""
	}
	return text[k:j]
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// defaultLiteralLocked synthesizes a placeholder value for a named-argument
// snippet from the parameter's declared type.
func (e *Engine) defaultLiteralLocked(p symbol.Param) string {
	switch strings.ToLower(p.Type) {
	case "string", "str", "text":
		return `""`
	case "int", "long", "float", "double", "number":
		return "0"
	case "bool", "boolean":
		return "false"
	}
	if members := e.types.Members(p.Type); len(members) > 0 {
		return p.Type + "::" + members[0].Name
	}
	return p.Type
}

// catalogItems converts a name-keyed declaration map to sorted completion
// items.
func catalogItems(m map[string]*symbol.Declaration, kind string) []CompletionItem {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	items := make([]CompletionItem, 0, len(names))
	for _, name := range names {
		d := m[name]
		detail := firstLine(d.Signature)
		items = append(items, CompletionItem{
			Label:      name,
			Kind:       kind,
			InsertText: name,
			Detail:     detail,
		})
	}
	return items
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
