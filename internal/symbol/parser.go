package symbol

import (
	"strings"

	"github.com/housing-studio/hsl-index/internal/scan"
)

// ParseDeclarations extracts declarations of the requested kinds from a
// file's lines. With no kinds given, every kind is extracted. Malformed
// input degrades to partial declarations; nothing here returns an error.
func ParseDeclarations(path string, lines []string, kinds ...Kind) []*Declaration {
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}
	all := len(kinds) == 0

	var blocks []Block
	if all || want[KindStat] {
		blocks = ScanBlocks(lines)
	}

	var decls []*Declaration
	for i := 0; i < len(lines); i++ {
		line := lines[i]

		if m, ok := scan.Fn(line); ok {
			if all || want[KindFunction] {
				d, end := parseCallable(path, lines, i, m, KindFunction)
				decls = append(decls, d)
				i = end
			}
			continue
		}
		if m, ok := scan.Macro(line); ok {
			if all || want[KindMacro] {
				d, end := parseCallable(path, lines, i, m, KindMacro)
				decls = append(decls, d)
				i = end
			}
			continue
		}
		if m, ok := scan.Const(line); ok {
			if all || want[KindConstant] {
				decls = append(decls, simpleDecl(path, lines, i, m, KindConstant))
			}
			continue
		}
		if m, ok := scan.Enum(line); ok {
			if all || want[KindEnum] {
				d, end := parseEnum(path, lines, i, m)
				decls = append(decls, d)
				i = end
			}
			continue
		}
		if m, ok := scan.Struct(line); ok {
			if all || want[KindStruct] {
				d, end := parseCallable(path, lines, i, m, KindStruct)
				decls = append(decls, d)
				i = end
			}
			continue
		}
		if m, ok := scan.Stat(line); ok {
			if all || want[KindStat] {
				d := simpleDecl(path, lines, i, m, KindStat)
				d.Namespace = m.Namespace
				d.ScopeKey = ScopeKeyAt(blocks, i)
				decls = append(decls, d)
			}
			continue
		}
	}
	return decls
}

// parseCallable handles fn, macro and constructor-style struct declarations:
// paren-balanced signature plus a parameter list.
func parseCallable(path string, lines []string, i int, m scan.Match, kind Kind) (*Declaration, int) {
	sig, end := accumulateParens(lines, i)
	d := newDecl(path, lines, i, m, kind, sig)

	if list, ok := scan.ParamList(sig); ok {
		for _, token := range scan.SplitTopLevel(list) {
			name, typ, def, ok := scan.Param(token)
			if !ok {
				continue // unmatched parameter tokens are skipped silently
			}
			d.Params = append(d.Params, Param{Name: name, Type: typ, Default: def})
		}
	}
	return d, end
}

// parseEnum handles a brace-balanced enum body and its members. Members may
// sit one per line or comma-separated, including on the header line itself.
func parseEnum(path string, lines []string, i int, m scan.Match) (*Declaration, int) {
	sig, end := accumulateBraces(lines, i)
	d := newDecl(path, lines, i, m, KindEnum, sig)

	for j := i; j <= end && j < len(lines); j++ {
		body := lines[j]
		lo := 0
		if j == i {
			brace := strings.IndexByte(body, '{')
			if brace < 0 {
				continue
			}
			lo = brace + 1
		}
		hi := len(body)
		if j == end {
			if close := strings.LastIndexByte(body, '}'); close >= lo {
				hi = close
			}
		}
		if lo >= hi {
			continue
		}

		offset := lo
		for _, piece := range scan.SplitTopLevel(body[lo:hi]) {
			if mm, ok := scan.EnumMember(piece); ok {
				member := &Declaration{
					Name:       mm.Name,
					Kind:       KindEnumMember,
					File:       path,
					Line:       j,
					Column:     scan.UTF16Col(body, offset+mm.Offset),
					Signature:  strings.TrimSpace(piece),
					ParentEnum: m.Name,
				}
				// Leading comments only attach to members that start a line.
				if j > i && strings.TrimSpace(body[:offset+mm.Offset]) == "" {
					doc, ann := docAbove(lines, j, i)
					member.Documentation = doc
					if len(ann) > 0 {
						member.Signature = strings.Join(ann, "\n") + "\n" + member.Signature
					}
				}
				d.Members = append(d.Members, member)
			}
			offset += len(piece) + 1
		}
	}
	return d, end
}

// simpleDecl builds a single-line declaration (const, stat).
func simpleDecl(path string, lines []string, i int, m scan.Match, kind Kind) *Declaration {
	return newDecl(path, lines, i, m, kind, lines[i])
}

// newDecl fills the fields shared by every kind: position, documentation,
// and the annotation-prefixed signature.
func newDecl(path string, lines []string, i int, m scan.Match, kind Kind, sig string) *Declaration {
	doc, ann := docAbove(lines, i, -1)
	if len(ann) > 0 {
		sig = strings.Join(ann, "\n") + "\n" + sig
	}
	return &Declaration{
		Name:          m.Name,
		Kind:          kind,
		File:          path,
		Line:          i,
		Column:        scan.UTF16Col(lines[i], m.Offset),
		Signature:     sig,
		Documentation: doc,
	}
}

// docAbove collects the comment block and annotation lines immediately above
// line i, stopping at the first line that is none of comment, annotation or
// blank, and never scanning above the floor line. Doc lines come back in
// top-down order with the block trimmed of surrounding blanks; annotations
// keep source order.
func docAbove(lines []string, i, floor int) (string, []string) {
	var doc, ann []string
	for j := i - 1; j > floor; j-- {
		line := lines[j]
		switch {
		case scan.IsComment(line):
			doc = append(doc, scan.CommentText(line))
		case scan.IsAnnotation(line):
			ann = append(ann, strings.TrimSpace(line))
		case scan.IsBlank(line):
			doc = append(doc, "")
		default:
			j = floor // stop
		}
	}

	// Collected bottom-up; restore source order.
	reverse(doc)
	reverse(ann)

	// Trim surrounding blank lines from the doc block.
	for len(doc) > 0 && doc[0] == "" {
		doc = doc[1:]
	}
	for len(doc) > 0 && doc[len(doc)-1] == "" {
		doc = doc[:len(doc)-1]
	}
	return strings.Join(doc, "\n"), ann
}

func reverse(ss []string) {
	for a, b := 0, len(ss)-1; a < b; a, b = a+1, b-1 {
		ss[a], ss[b] = ss[b], ss[a]
	}
}

// accumulateParens gathers the signature starting at line i: lines keep
// accumulating while the running '(' minus ')' count stays positive. A
// signature that never balances is truncated at end of file.
func accumulateParens(lines []string, i int) (string, int) {
	var sb strings.Builder
	sb.WriteString(lines[i])
	depth := scan.ParenBalance(lines[i])
	end := i
	for j := i + 1; j < len(lines) && depth > 0; j++ {
		sb.WriteByte('\n')
		sb.WriteString(lines[j])
		depth += scan.ParenBalance(lines[j])
		end = j
	}
	return sb.String(), end
}

// accumulateBraces is the '{'/'}' counterpart used by enum bodies.
func accumulateBraces(lines []string, i int) (string, int) {
	var sb strings.Builder
	sb.WriteString(lines[i])
	depth := scan.BraceBalance(lines[i])
	end := i
	for j := i + 1; j < len(lines) && depth > 0; j++ {
		sb.WriteByte('\n')
		sb.WriteString(lines[j])
		depth += scan.BraceBalance(lines[j])
		end = j
	}
	return sb.String(), end
}
