package symeq

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/njchilds90/symeq/cas"
)

// PreviewBody is the rendered form of a response.
type PreviewBody struct {
	Latex    string   `json:"latex"`
	Sympy    string   `json:"sympy"`
	Feedback []string `json:"feedback,omitempty"`
}

type PreviewResult struct {
	Preview PreviewBody `json:"preview"`
}

// Preview renders response as LaTeX and as plain text so a student can check
// how it was read. Decimals are never rationalized here. Latex lists each
// distinct member of a set once, while Sympy echoes the response as typed, so
// "{2, 1, 2}" renders two members.
func (g *Grader) Preview(response string, p Params) (out *PreviewResult, err error) {
	if response == "" {
		return &PreviewResult{}, nil
	}
	defer g.recoverInto(&err, "preview")

	text := NormalizeUnicode(response)
	if p.IsLatex {
		expr, err := g.ParseLatex(text, p.Symbols)
		if err != nil {
			return nil, errors.Wrap(err, "Failed to parse LaTeX expression")
		}
		text = expr.String()
	}

	p.Rationalise = lo.ToPtr(false)
	exprs, feedback, err := g.ParseSet(text, p)
	if err != nil {
		return nil, errors.Wrap(err, "Failed to parse Sympy expression")
	}

	names := p.Symbols.LaTeXNames()
	rendered := lo.Map(exprs, func(e cas.Expr, _ int) string { return g.engine.LaTeX(e, names) })
	body := PreviewBody{Latex: rendered[0], Sympy: response, Feedback: feedback}
	if len(rendered) > 1 {
		body.Latex = `\left\{` + strings.Join(rendered, ",~") + `\right\}`
	}
	if p.IsLatex {
		plain := lo.Map(exprs, func(e cas.Expr, _ int) string { return e.String() })
		body.Sympy = plain[0]
		if len(plain) > 1 {
			body.Sympy = "[" + strings.Join(plain, ", ") + "]"
		}
	}
	return &PreviewResult{Preview: body}, nil
}
