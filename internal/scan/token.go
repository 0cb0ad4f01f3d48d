package scan

import (
	"regexp"
	"unicode/utf8"
)

// utf16RuneLen mirrors utf16.RuneLen, which is unavailable before Go 1.23.
func utf16RuneLen(r rune) int {
	switch {
	case 0 <= r && r < 0xd800, 0xe000 <= r && r < 0x10000:
		return 1
	case 0x10000 <= r && r <= 0x10ffff:
		return 2
	default:
		return -1
	}
}

// TokenKind classifies what sits under the cursor.
type TokenKind int

const (
	// TokenBare is a plain identifier with no `::` qualifier.
	TokenBare TokenKind = iota
	// TokenLHS is the namespace side of a `Namespace::Member` pair.
	TokenLHS
	// TokenRHS is the member side of a `Namespace::Member` pair.
	TokenRHS
	// TokenPendingRHS is a trailing `Namespace::` with no member typed yet.
	TokenPendingRHS
)

// Token is the result of resolving the cursor position on a line.
type Token struct {
	Kind TokenKind
	// Text is the token directly under the cursor: the bare identifier, or
	// the member for RHS, or the namespace for LHS/PendingRHS. Empty when
	// the cursor is not on an identifier at all.
	Text string
	LHS  string
	RHS  string
}

var (
	qualRe    = regexp.MustCompile(`(` + Identifier + `)\s*::\s*(` + Identifier + `)`)
	pendingRe = regexp.MustCompile(`(` + Identifier + `)\s*::\s*$`)
)

// ResolveToken classifies the token around the UTF-16 cursor column on a
// line. Qualified pairs win over bare identifiers; a cursor anywhere from
// the end of the namespace through the member (including on the `::`
// separator itself) resolves to the member side.
func ResolveToken(line string, col int) Token {
	off := ByteOffset(line, col)

	for _, idx := range qualRe.FindAllStringSubmatchIndex(line, -1) {
		lhs := line[idx[2]:idx[3]]
		rhs := line[idx[4]:idx[5]]
		switch {
		case off >= idx[2] && off <= idx[3]:
			return Token{Kind: TokenLHS, Text: lhs, LHS: lhs, RHS: rhs}
		case off > idx[3] && off <= idx[5]:
			return Token{Kind: TokenRHS, Text: rhs, LHS: lhs, RHS: rhs}
		}
	}

	if m := pendingRe.FindStringSubmatch(line[:off]); m != nil {
		return Token{Kind: TokenPendingRHS, Text: m[1], LHS: m[1]}
	}

	word := WordAt(line, off)
	return Token{Kind: TokenBare, Text: word}
}

// WordAt returns the identifier whose span contains the byte offset, or an
// empty string when the offset is not inside an identifier. An offset just
// past the last character of a word still counts, matching editor hover
// behavior.
func WordAt(line string, off int) string {
	for _, idx := range wordRe.FindAllStringIndex(line, -1) {
		if off >= idx[0] && off <= idx[1] {
			return line[idx[0]:idx[1]]
		}
	}
	return ""
}

// ByteOffset converts a zero-based UTF-16 column to a byte offset in line.
// Columns past the end of the line clamp to len(line).
func ByteOffset(line string, col int) int {
	if col <= 0 {
		return 0
	}
	units := 0
	for i, r := range line {
		if units >= col {
			return i
		}
		n := utf16RuneLen(r)
		if n < 1 {
			n = 1
		}
		units += n
	}
	return len(line)
}

// UTF16Col converts a byte offset in line to a zero-based UTF-16 column.
func UTF16Col(line string, off int) int {
	if off > len(line) {
		off = len(line)
	}
	units := 0
	for i := 0; i < off; {
		r, size := utf8.DecodeRuneInString(line[i:])
		n := utf16RuneLen(r)
		if n < 1 {
			n = 1
		}
		units += n
		i += size
	}
	return units
}
