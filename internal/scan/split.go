package scan

// SplitTopLevel splits s on commas that sit at the top nesting level.
// Commas inside nested ()/<> groups and inside single- or double-quoted
// strings are not split points; a backslash escapes the following quote
// character inside a string.
func SplitTopLevel(s string) []string {
	var (
		parts []string
		depth int
		quote byte // 0 when outside a string
		start int
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			switch c {
			case '\\':
				i++ // skip escaped character
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '(', '<':
			depth++
		case ')', '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// ParamList extracts the text between the first '(' and the matching last
// ')' of a signature. When the closing paren is missing the remainder of the
// signature is returned, so a truncated declaration still yields whatever
// parameters were written.
func ParamList(signature string) (string, bool) {
	open := -1
	for i := 0; i < len(signature); i++ {
		if signature[i] == '(' {
			open = i
			break
		}
	}
	if open < 0 {
		return "", false
	}
	depth := 0
	for i := open; i < len(signature); i++ {
		switch signature[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return signature[open+1 : i], true
			}
		}
	}
	return signature[open+1:], true
}
