// Package scan provides the line-oriented lexical scanner for HSL source
// text. HSL has no grammar parser; declarations and call expressions are
// recognized with regular expressions over individual lines, which is enough
// for the symbol index and keeps the scanner trivially resilient to broken
// input.
package scan

import (
	"regexp"
	"strings"
)

// Identifier is the HSL identifier syntax shared by every declaration kind.
const Identifier = `[A-Za-z_][A-Za-z0-9_]*`

// StatNamespaces are the fixed namespaces a stat declaration may use.
var StatNamespaces = []string{"player", "team", "global"}

var (
	fnRe     = regexp.MustCompile(`^\s*fn\s+(` + Identifier + `)\s*\(`)
	macroRe  = regexp.MustCompile(`^\s*macro\s+(` + Identifier + `)\s*\(`)
	constRe  = regexp.MustCompile(`^\s*const\s+(` + Identifier + `)`)
	enumRe   = regexp.MustCompile(`^\s*enum\s+(` + Identifier + `)`)
	structRe = regexp.MustCompile(`^\s*struct\s+(` + Identifier + `)`)
	statRe   = regexp.MustCompile(`^\s*stat\s+(player|team|global)\s+(` + Identifier + `)`)
	memberRe = regexp.MustCompile(`^\s*(` + Identifier + `)`)
	paramRe  = regexp.MustCompile(`^(` + Identifier + `)\s*:\s*([^=]+?)(?:\s*=\s*(.+))?$`)
	callRe   = regexp.MustCompile(`(` + Identifier + `)\s*\(`)
	wordRe   = regexp.MustCompile(Identifier)
)

// Match holds a recognized declaration header: the declared name and its
// byte offset within the raw (non-trimmed) line.
type Match struct {
	Name      string
	Offset    int
	Namespace string // stat declarations only
}

func match1(re *regexp.Regexp, line string) (Match, bool) {
	idx := re.FindStringSubmatchIndex(line)
	if idx == nil {
		return Match{}, false
	}
	return Match{Name: line[idx[2]:idx[3]], Offset: idx[2]}, true
}

// Fn recognizes a `fn Name(` declaration header.
func Fn(line string) (Match, bool) { return match1(fnRe, line) }

// Macro recognizes a `macro Name(` declaration header.
func Macro(line string) (Match, bool) { return match1(macroRe, line) }

// Const recognizes a `const Name` declaration header.
func Const(line string) (Match, bool) { return match1(constRe, line) }

// Enum recognizes an `enum Name` declaration header.
func Enum(line string) (Match, bool) { return match1(enumRe, line) }

// Struct recognizes a `struct Name` declaration header.
func Struct(line string) (Match, bool) { return match1(structRe, line) }

// Stat recognizes a `stat <namespace> <name>` declaration.
func Stat(line string) (Match, bool) {
	idx := statRe.FindStringSubmatchIndex(line)
	if idx == nil {
		return Match{}, false
	}
	return Match{
		Name:      line[idx[4]:idx[5]],
		Offset:    idx[4],
		Namespace: line[idx[2]:idx[3]],
	}, true
}

// EnumMember recognizes a member line inside an enum body: any line whose
// trimmed text begins with an identifier.
func EnumMember(line string) (Match, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "@") || strings.HasPrefix(trimmed, "}") ||
		strings.HasPrefix(trimmed, "{") {
		return Match{}, false
	}
	return match1(memberRe, line)
}

// Param matches one parameter token against `name : type (= default)?`.
// Type and default are trimmed; ok is false for tokens that do not match.
func Param(token string) (name, typ, def string, ok bool) {
	m := paramRe.FindStringSubmatch(strings.TrimSpace(token))
	if m == nil {
		return "", "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), strings.TrimSpace(m[3]), true
}

// Calls returns every `identifier(` span on the line as (name, nameOffset,
// argsOffset) triples, where argsOffset is the byte offset just past the `(`.
func Calls(line string) []CallSite {
	var sites []CallSite
	for _, idx := range callRe.FindAllStringSubmatchIndex(line, -1) {
		sites = append(sites, CallSite{
			Name:       line[idx[2]:idx[3]],
			NameOffset: idx[2],
			ArgsOffset: idx[1],
		})
	}
	return sites
}

// CallSite is one `identifier(` occurrence on a line.
type CallSite struct {
	Name       string
	NameOffset int
	ArgsOffset int
}

// ParenBalance returns the count of '(' minus ')' in s.
func ParenBalance(s string) int {
	return strings.Count(s, "(") - strings.Count(s, ")")
}

// BraceBalance returns the count of '{' minus '}' in s.
func BraceBalance(s string) int {
	return strings.Count(s, "{") - strings.Count(s, "}")
}

// IsBlank reports whether the line contains only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// IsComment reports whether the trimmed line starts a `//` comment.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "//")
}

// IsAnnotation reports whether the trimmed line starts with `@`.
func IsAnnotation(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "@")
}

// CommentText strips the comment marker and at most one following space.
func CommentText(line string) string {
	t := strings.TrimSpace(line)
	t = strings.TrimPrefix(t, "//")
	t = strings.TrimPrefix(t, " ")
	return t
}

// Lines splits a source buffer into lines, accepting both \n and \r\n.
func Lines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
