package symeq_test

import (
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symeq"
	"github.com/njchilds90/symeq/cas"
)

func TestPreview(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		params    symeq.Params
		wantLatex string
		wantSympy string
	}{
		{"plain", "x**2 + 1", symeq.Params{}, `x^{2} + 1`, "x**2 + 1"},
		{"set", "{1, 2}", symeq.Params{}, `\left\{1,~2\right\}`, "{1, 2}"},
		{"plus minus", "x ± 1", symeq.Params{}, `\left\{x + 1,~x - 1\right\}`, "x ± 1"},
		{"plus_minus word", "x plus_minus 1", symeq.Params{}, `\left\{x + 1,~x - 1\right\}`, "x plus_minus 1"},
		{"equation", "x = 1", symeq.Params{}, `x = 1`, "x = 1"},
		{"decimal kept", "0.5", symeq.Params{Rationalise: lo.ToPtr(true)}, `0.5`, "0.5"},
		{"latex", `\frac{1}{2}x`, symeq.Params{IsLatex: true}, `\frac{x}{2}`, "x/2"},
		{"latex set", `\{1,2\}`, symeq.Params{IsLatex: true}, `\left\{1,~2\right\}`, "[1, 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := symeq.Preview(tt.response, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLatex, out.Preview.Latex)
			assert.Equal(t, tt.wantSympy, out.Preview.Sympy)
		})
	}
}

func TestPreview_EmptyResponseSkipsEngine(t *testing.T) {
	spy := &spyEngine{Engine: symeq.DefaultEngine()}
	g := symeq.NewGrader(symeq.WithEngine(spy))
	out, err := g.Preview("", symeq.Params{})
	require.NoError(t, err)
	assert.Equal(t, symeq.PreviewBody{}, out.Preview)
	assert.Zero(t, spy.parses)
}

func TestPreview_PipeFeedback(t *testing.T) {
	out, err := symeq.Preview("|x|", symeq.Params{})
	require.NoError(t, err)
	assert.Equal(t, `\left|x\right|`, out.Preview.Latex)
	assert.Equal(t, []string{"absolute value notation |...| was interpreted as Abs(...)"}, out.Preview.Feedback)

	out, err = symeq.Preview("{|x|, |y|}", symeq.Params{})
	require.NoError(t, err)
	assert.Equal(t, []string{symeq.AbsRewriteFeedback}, out.Preview.Feedback, "repeated notes are reported once")
}

func TestPreview_DuplicateSetMembers(t *testing.T) {
	out, err := symeq.Preview("{2, 1, 2}", symeq.Params{})
	require.NoError(t, err)
	assert.Equal(t, `\left\{2,~1\right\}`, out.Preview.Latex)
	assert.Equal(t, "{2, 1, 2}", out.Preview.Sympy)
}

func TestPreview_Errors(t *testing.T) {
	_, err := symeq.Preview("x +", symeq.Params{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to parse Sympy expression")
	var pe *symeq.ExpressionParseError
	assert.True(t, errors.As(err, &pe))

	_, err = symeq.Preview(`\frac{1}{`, symeq.Params{IsLatex: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to parse LaTeX expression")
	var le *symeq.LatexParseError
	assert.True(t, errors.As(err, &le))
}

func TestPreview_SymbolNames(t *testing.T) {
	params := symeq.Params{Symbols: symeq.SymbolDict{"v0": {LaTeX: `\(v_{0}\)`}}}
	out, err := symeq.Preview("v0 + 1", params)
	require.NoError(t, err)
	assert.Equal(t, `v_{0} + 1`, out.Preview.Latex)

	params.IsLatex = true
	out, err = symeq.Preview(`v_{0}+1`, params)
	require.NoError(t, err)
	assert.Equal(t, "v0 + 1", out.Preview.Sympy)
}

func TestParseLatex_BadSymbol(t *testing.T) {
	g := symeq.NewGrader()
	_, err := g.ParseLatex(`x`, symeq.SymbolDict{"bad": {LaTeX: `\frac{`}})
	var se *symeq.SymbolParseError
	require.True(t, errors.As(err, &se), "%v", err)
	assert.Equal(t, "bad", se.Symbol)
	assert.Contains(t, se.Error(), "Couldn't parse latex symbol")
}

func TestParseLatex_ReplacesParsedSymbol(t *testing.T) {
	g := symeq.NewGrader()
	e, err := g.ParseLatex(`\alpha_{1}\cdot2`, symeq.SymbolDict{"a": {LaTeX: `$\alpha_{1}$`}})
	require.NoError(t, err)
	assert.True(t, e.Equal(cas.MulOf(cas.N(2), cas.S("a"))), e.String())
}
