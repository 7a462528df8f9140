package symeq

import (
	"github.com/njchilds90/symeq/cas"
	"github.com/njchilds90/symeq/latex"
)

// ParseLatex converts a LaTeX response into an expression. Each declared
// symbol's LaTeX spelling is parsed on its own and then stands for the symbol
// name, both as an atomic substitution in the source and as a replacement on
// the parsed result.
func (g *Grader) ParseLatex(src string, symbols SymbolDict) (cas.Expr, error) {
	src = SanitizeLatex(src)

	subs := make([]latex.Substitution, 0, len(symbols))
	replace := make(map[string]cas.Expr, len(symbols))
	for _, name := range symbols.Names() {
		spelling := SanitizeLatex(ExtractLatex(symbols[name].LaTeX))
		if spelling == "" {
			continue
		}
		atom, err := g.parseLatexAtom(spelling, nil)
		if err != nil {
			return nil, &SymbolParseError{Symbol: name, LaTeX: spelling, Message: err.Error()}
		}
		target := cas.S(name)
		subs = append(subs, latex.Substitution{LaTeX: spelling, Symbol: target})
		replace[atom.String()] = target
	}

	expr, err := g.parseLatexAtom(src, subs)
	if err != nil {
		return nil, &LatexParseError{Input: src, Message: err.Error()}
	}
	if len(replace) > 0 {
		expr = g.engine.Xreplace(expr, replace)
	}
	g.logger.Debug("parsed latex", "input", src, "expr", expr.String())
	return expr, nil
}
