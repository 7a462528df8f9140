package symeq

import "strings"

// latexWrappers are text commands whose argument is kept verbatim.
var latexWrappers = []string{`\mathrm`, `\textrm`, `\textnormal`, `\mathit`, `\text`}

// SanitizeLatex removes all whitespace, turns ~ into a space and unwraps
// \mathrm{...}-style wrappers. An unclosed wrapper keeps the rest of the
// string as its content.
func SanitizeLatex(s string) string {
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, "~", " ")
	for _, w := range latexWrappers {
		s = unwrap(s, w+"{")
	}
	return s
}

func unwrap(s, opener string) string {
	var sb strings.Builder
	index := 0
	for index < len(s) {
		start := strings.Index(s[index:], opener)
		if start < 0 {
			sb.WriteString(s[index:])
			break
		}
		start += index
		sb.WriteString(s[index:start])
		open := start + len(opener) - 1
		end := FindMatching(s, open, '{', '}')
		if end < 0 {
			sb.WriteString(s[open+1:])
			break
		}
		sb.WriteString(s[open+1 : end])
		index = end + 1
	}
	return sb.String()
}

// FindMatching returns the index of the delimiter that closes the first
// opener found at or after from, or -1 when it is never closed.
func FindMatching(s string, from int, open, close byte) int {
	depth := 0
	for k := from; k < len(s); k++ {
		switch s[k] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return k
			}
		}
	}
	return -1
}
