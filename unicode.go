package symeq

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// superscripts are spelled out before NFKC, which would otherwise fold x²
// into the identifier x2.
var superscripts = strings.NewReplacer("²", "**2", "³", "**3", "⁴", "**4")

var operatorRunes = map[rune]rune{
	'−': '-', // minus sign
	'–': '-', // en dash
	'×': '*',
	'·': '*',
	'⋅': '*',
	'∗': '*',
	'÷': '/',
}

// NormalizeUnicode folds compatibility characters (NFKC) and maps typographic
// operators to their ASCII spelling. ASCII input is returned unchanged.
func NormalizeUnicode(s string) string {
	if isASCII(s) {
		return s
	}
	s = superscripts.Replace(s)
	t := transform.Chain(norm.NFKC, runes.Map(func(r rune) rune {
		if m, ok := operatorRunes[r]; ok {
			return m
		}
		return r
	}))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
