package symeq

import (
	"github.com/njchilds90/symeq/cas"
	"github.com/njchilds90/symeq/latex"
)

// Engine is the symbolic backend the grader drives. The default is backed by
// package cas; tests swap in spies.
type Engine interface {
	Parse(text string, cfg cas.ParseConfig) (cas.Expr, error)
	Expand(e cas.Expr) cas.Expr
	Simplify(e cas.Expr) cas.Expr
	TrigSimplify(e cas.Expr) cas.Expr
	Rewrite(e cas.Expr, target string) cas.Expr
	Nsimplify(e cas.Expr, tol cas.Tolerance) cas.Expr
	Has(e cas.Expr, funcs ...string) bool
	Xreplace(e cas.Expr, subs map[string]cas.Expr) cas.Expr
	LaTeX(e cas.Expr, names map[string]string) string
}

// Bridge turns LaTeX into candidate expressions, last candidate preferred.
type Bridge interface {
	Parse(src string, subs []latex.Substitution) ([]cas.Expr, error)
}

// DefaultEngine returns the engine backed by package cas.
func DefaultEngine() Engine { return casEngine{} }

type casEngine struct{}

func (casEngine) Parse(text string, cfg cas.ParseConfig) (cas.Expr, error) {
	return cas.Parse(text, cfg)
}
func (casEngine) Expand(e cas.Expr) cas.Expr       { return cas.Expand(e) }
func (casEngine) Simplify(e cas.Expr) cas.Expr     { return cas.Simplify(e) }
func (casEngine) TrigSimplify(e cas.Expr) cas.Expr { return cas.TrigSimplify(e) }
func (casEngine) Rewrite(e cas.Expr, target string) cas.Expr {
	return cas.Rewrite(e, target)
}
func (casEngine) Nsimplify(e cas.Expr, tol cas.Tolerance) cas.Expr {
	return cas.Nsimplify(e, tol)
}
func (casEngine) Has(e cas.Expr, funcs ...string) bool { return cas.Has(e, funcs...) }
func (casEngine) Xreplace(e cas.Expr, subs map[string]cas.Expr) cas.Expr {
	return cas.Xreplace(e, subs)
}
func (casEngine) LaTeX(e cas.Expr, names map[string]string) string {
	return cas.LaTeXWith(e, names)
}

type latexBridge struct{}

func (latexBridge) Parse(src string, subs []latex.Substitution) ([]cas.Expr, error) {
	return latex.Parse(src, subs...)
}
