package cas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/symeq/cas"
)

func TestLaTeX(t *testing.T) {
	tests := []struct {
		name string
		e    cas.Expr
		want string
	}{
		{"fraction", cas.Div(x, cas.N(2)), `\frac{x}{2}`},
		{"power", cas.PowOf(x, cas.N(2)), `x^{2}`},
		{"trig power", cas.PowOf(cas.SinOf(x), cas.N(2)), `\sin^{2}\left(x\right)`},
		{"sqrt", cas.SqrtOf(x), `\sqrt{x}`},
		{"cube root", cas.PowOf(x, cas.F(1, 3)), `\sqrt[3]{x}`},
		{"abs", cas.AbsOf(x), `\left|x\right|`},
		{"greek subscript", cas.S("alpha_1"), `\alpha_{1}`},
		{"pi", cas.Pi, `\pi`},
		{"coefficient", cas.MulOf(cas.N(2), x), `2 x`},
		{"difference", cas.Sub(x, cas.N(1)), `x - 1`},
		{"negative rational", cas.F(-1, 2), `-\frac{1}{2}`},
		{"equation", cas.Eq(x, cas.N(1)), `x = 1`},
		{"set", cas.SetOf(cas.N(1), cas.N(2)), `\left\{1, 2\right\}`},
		{"reciprocal", cas.PowOf(cas.AddOf(x, cas.N(1)), cas.N(-1)), `\frac{1}{x + 1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.e.LaTeX())
		})
	}
}

func TestLaTeXWith_RenamesSymbols(t *testing.T) {
	e := cas.AddOf(cas.S("a1"), cas.N(1))
	assert.Equal(t, `a_1 + 1`, cas.LaTeXWith(e, map[string]string{"a1": "a_1"}))
	assert.Equal(t, `a1 + 1`, e.LaTeX())
}
