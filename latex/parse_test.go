package latex_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symeq/cas"
	"github.com/njchilds90/symeq/latex"
)

func last(t *testing.T, src string, subs ...latex.Substitution) cas.Expr {
	t.Helper()
	out, err := latex.Parse(src, subs...)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	return out[len(out)-1]
}

func TestParse(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`\frac{1}{2}x`, "x/2"},
		{`\frac12`, "1/2"},
		{`x^{2}+1`, "x**2 + 1"},
		{`\sin^{2}x+\cos^{2}x`, "sin(x)**2 + cos(x)**2"},
		{`\sinx`, "sin(x)"},
		{`\sin^{-1}x`, "asin(x)"},
		{`\sin x\cos x`, "sin(x)*cos(x)"},
		{`\sqrt{x}`, "sqrt(x)"},
		{`\sqrt[3]{8}`, "2"},
		{`|x|`, "Abs(x)"},
		{`\left|x-1\right|`, "Abs(x - 1)"},
		{`2\cdot3`, "6"},
		{`\left(x+1\right)^{2}`, "(x + 1)**2"},
		{`e^{x}`, "exp(x)"},
		{`\pi r^2`, "pi*r**2"},
		{`x=1`, "Eq(x, 1)"},
		{`\{1,2\}`, "{1, 2}"},
		{`0.5x`, "0.5*x"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := last(t, tt.src)
			assert.True(t, got.String() == tt.want || got.Equal(cas.MustParse(tt.want)),
				"want %s, got %s", tt.want, got)
		})
	}
}

func TestParse_Subscripts(t *testing.T) {
	got := last(t, `\alpha_{1}+\beta`)
	assert.True(t, got.Equal(cas.AddOf(cas.S("alpha_1"), cas.S("beta"))), got.String())
	assert.True(t, last(t, `x_2`).Equal(cas.S("x_2")))
}

func TestParse_LetterRunCandidates(t *testing.T) {
	out, err := latex.Parse(`xy`)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].Equal(cas.S("xy")))
	assert.True(t, out[1].Equal(cas.MulOf(cas.S("x"), cas.S("y"))))
}

func TestParse_Substitution(t *testing.T) {
	sub := latex.Substitution{LaTeX: `a_{1}`, Symbol: cas.S("a1")}
	got := last(t, `a_{1}+1`, sub)
	assert.True(t, got.Equal(cas.AddOf(cas.S("a1"), cas.N(1))), got.String())
}

func TestParse_SubstitutionLongestFirst(t *testing.T) {
	subs := []latex.Substitution{
		{LaTeX: `v`, Symbol: cas.S("v")},
		{LaTeX: `v_{0}`, Symbol: cas.S("v0")},
	}
	got := last(t, `v_{0}+v`, subs...)
	assert.True(t, got.Equal(cas.AddOf(cas.S("v0"), cas.S("v"))), got.String())
}

func TestParse_Errors(t *testing.T) {
	for _, src := range []string{`\frac{1}{`, `\unknowncmd`, `x+`, `\left(x`, `$`} {
		t.Run(src, func(t *testing.T) {
			_, err := latex.Parse(src)
			require.Error(t, err)
			var se *latex.SyntaxError
			assert.True(t, errors.As(err, &se), "%v", err)
		})
	}
}
