package cas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symeq/cas"
)

var (
	x = cas.S("x")
	y = cas.S("y")
)

func TestNum_Arithmetic(t *testing.T) {
	assert.Equal(t, "5/6", cas.AddOf(cas.F(1, 2), cas.F(1, 3)).String())
	assert.Equal(t, "6", cas.MulOf(cas.N(2), cas.N(3)).String())
	assert.Equal(t, "1/8", cas.PowOf(cas.N(2), cas.N(-3)).String())
}

func TestAdd_CollectsLikeTerms(t *testing.T) {
	assert.Equal(t, "2*x", cas.AddOf(x, x).String())
	assert.Equal(t, "x + 3", cas.AddOf(x, cas.N(1), cas.N(2)).String())
	assert.Equal(t, "0", cas.Sub(x, x).String())
	assert.Equal(t, "0", cas.Sub(cas.MulOf(x, y), cas.MulOf(y, x)).String())
}

func TestAdd_OrdersByDegree(t *testing.T) {
	e := cas.AddOf(cas.N(1), x, cas.PowOf(x, cas.N(2)))
	assert.Equal(t, "x**2 + x + 1", e.String())
	assert.Equal(t, "-x + 1", cas.AddOf(cas.N(1), cas.MulOf(cas.N(-1), x)).String())
}

func TestMul_MergesPowers(t *testing.T) {
	assert.Equal(t, "x**2", cas.MulOf(x, x).String())
	assert.Equal(t, "1", cas.MulOf(x, cas.PowOf(x, cas.N(-1))).String())
	assert.Equal(t, "2*x/y", cas.MulOf(cas.N(2), x, cas.PowOf(y, cas.N(-1))).String())
	assert.Equal(t, "x/2", cas.Div(x, cas.N(2)).String())
}

func TestMul_ZeroAbsorbs(t *testing.T) {
	assert.Equal(t, "0", cas.MulOf(cas.N(0), x, y).String())
}

func TestPow_Radicals(t *testing.T) {
	assert.Equal(t, "2", cas.SqrtOf(cas.N(4)).String())
	assert.Equal(t, "2*sqrt(2)", cas.SqrtOf(cas.N(8)).String())
	assert.Equal(t, "sqrt(x)", cas.SqrtOf(x).String())
	assert.True(t, cas.PowOf(cas.SqrtOf(cas.N(2)), cas.N(2)).Equal(cas.N(2)))
}

func TestPow_Distributes(t *testing.T) {
	e := cas.PowOf(cas.MulOf(cas.N(2), x), cas.N(2))
	assert.Equal(t, "4*x**2", e.String())
	assert.Equal(t, "x**6", cas.PowOf(cas.PowOf(x, cas.N(2)), cas.N(3)).String())
}

func TestPow_EulerBase(t *testing.T) {
	assert.True(t, cas.PowOf(cas.EulerE, x).Equal(cas.ExpOf(x)))
}

func TestFloat_StaysDistinct(t *testing.T) {
	half, err := cas.NewFloat("0.5")
	require.NoError(t, err)
	assert.False(t, cas.MulOf(half, x).Equal(cas.Div(x, cas.N(2))))
	assert.Equal(t, "0.5*x", cas.MulOf(half, x).String())
}

func TestFunc_Parity(t *testing.T) {
	negX := cas.MulOf(cas.N(-1), x)
	assert.Equal(t, "-sin(x)", cas.SinOf(negX).String())
	assert.Equal(t, "cos(x)", cas.CosOf(negX).String())
	assert.Equal(t, "Abs(x)", cas.AbsOf(negX).String())
}

func TestFunc_SpecialValues(t *testing.T) {
	assert.Equal(t, "0", cas.SinOf(cas.N(0)).String())
	assert.Equal(t, "-1", cas.CosOf(cas.Pi).String())
	assert.Equal(t, "1", cas.SinOf(cas.Div(cas.Pi, cas.N(2))).String())
	assert.Equal(t, "3", cas.AbsOf(cas.N(-3)).String())
	assert.True(t, cas.ExpOf(cas.LnOf(x)).Equal(x))
}

func TestXreplace(t *testing.T) {
	e := cas.AddOf(cas.S("alpha"), cas.N(1))
	out := cas.Xreplace(e, map[string]cas.Expr{"alpha": cas.S("a")})
	assert.Equal(t, "a + 1", out.String())
}

func TestHas(t *testing.T) {
	assert.True(t, cas.Has(cas.AddOf(cas.SecOf(x), cas.N(1)), "sec", "csc"))
	assert.False(t, cas.Has(cas.SinOf(x), "sec", "csc", "cot"))
}

func TestFreeSymbols(t *testing.T) {
	e := cas.AddOf(cas.MulOf(cas.Pi, y), x)
	assert.Equal(t, []string{"x", "y"}, cas.FreeSymbols(e))
}

func TestToJSON(t *testing.T) {
	out, err := cas.ToJSON(cas.AddOf(x, cas.N(1)))
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "add"`)
	assert.Contains(t, out, `"name": "x"`)
}
