package symeq

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/njchilds90/symeq/cas"
)

var (
	plusMinusWord  = regexp.MustCompile(`\bplus_minus\b`)
	minusPlusWord  = regexp.MustCompile(`\bminus_plus\b`)
	errEmptyAnswer = errors.New("empty expression")
)

// ParseSet parses a response that may denote several expressions: a braced
// set {a, b} or a ± form. The feedback slice carries notation notes that did
// not stop parsing.
func (g *Grader) ParseSet(response string, p Params) ([]cas.Expr, []string, error) {
	var feedback []string
	candidates := splitExpressionSet(response)
	if len(candidates) == 0 {
		return nil, nil, &ExpressionParseError{Side: SideResponse, Input: response, Err: errEmptyAnswer}
	}

	cfg := p.parseConfig(g.defaults, cas.ConvertEquals)
	exprs := make([]cas.Expr, 0, len(candidates))
	for _, c := range candidates {
		c = substituteAliases(c, p.Symbols)
		normalized, changed, err := NormalizeAbsolute(c, SideResponse)
		switch {
		case err != nil:
			feedback = append(feedback, err.Error())
		case changed:
			feedback = append(feedback, absRewriteFeedback)
			c = normalized
		}
		e, err := g.parse(c, cfg)
		if err != nil {
			feedback = lo.Uniq(feedback)
			return nil, feedback, &ExpressionParseError{Side: SideResponse, Input: c, Feedback: feedback, Err: err}
		}
		exprs = append(exprs, e)
	}
	return exprs, lo.Uniq(feedback), nil
}

// splitExpressionSet breaks s into the expressions it denotes. Empty
// members are dropped and duplicates removed, first occurrence kept.
func splitExpressionSet(s string) []string {
	s = strings.TrimSpace(s)
	parts := []string{s}
	if strings.HasPrefix(s, "{") && FindMatching(s, 0, '{', '}') == len(s)-1 {
		parts = splitTopLevel(s[1:len(s)-1], ',')
	}
	var out []string
	for _, part := range parts {
		out = append(out, expandPlusMinus(strings.TrimSpace(part))...)
	}
	out = lo.Filter(out, func(v string, _ int) bool { return v != "" })
	return lo.Uniq(out)
}

func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// expandPlusMinus yields the + and - readings of s. Every ± (plus_minus)
// takes the same sign and every ∓ (minus_plus) the opposite one.
func expandPlusMinus(s string) []string {
	if !strings.ContainsAny(s, "±∓") && !plusMinusWord.MatchString(s) && !minusPlusWord.MatchString(s) {
		return []string{s}
	}
	reading := func(pm, mp string) string {
		r := strings.NewReplacer("±", pm, "∓", mp).Replace(s)
		r = plusMinusWord.ReplaceAllLiteralString(r, pm)
		return minusPlusWord.ReplaceAllLiteralString(r, mp)
	}
	return lo.Uniq([]string{reading("+", "-"), reading("-", "+")})
}
