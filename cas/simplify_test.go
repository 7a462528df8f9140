package cas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/symeq/cas"
)

func TestExpand_Square(t *testing.T) {
	e := cas.PowOf(cas.AddOf(x, cas.N(1)), cas.N(2))
	assert.Equal(t, "x**2 + 2*x + 1", cas.Expand(e).String())
}

func TestExpand_Product(t *testing.T) {
	e := cas.MulOf(cas.AddOf(x, y), cas.Sub(x, y))
	assert.Equal(t, "x**2 - y**2", cas.Expand(e).String())
}

func TestExpand_DoesNotMutate(t *testing.T) {
	e := cas.PowOf(cas.AddOf(x, cas.N(1)), cas.N(2))
	before := e.String()
	_ = cas.Expand(e)
	assert.Equal(t, before, e.String())
}

func TestSimplify_CancelsCommonFactor(t *testing.T) {
	e := cas.MustParse("(x**2 - 1)/(x - 1)")
	assert.True(t, cas.Simplify(e).Equal(cas.MustParse("x + 1")))
	assert.False(t, cas.Expand(e).Equal(cas.Expand(cas.MustParse("x + 1"))))
}

func TestSimplify_CommonDenominator(t *testing.T) {
	e := cas.MustParse("1/x + 1/x")
	assert.Equal(t, "2/x", cas.Simplify(e).String())
	assert.True(t, cas.Simplify(cas.MustParse("x/2 + x/2")).Equal(x))
}

func TestSimplify_ConstantMultiple(t *testing.T) {
	e := cas.MustParse("(2*x + 2*y)/(x + y)")
	assert.Equal(t, "2", cas.Simplify(e).String())
}

func TestSimplify_NoTrigIdentities(t *testing.T) {
	e := cas.MustParse("sin(x)**2 + cos(x)**2")
	assert.False(t, cas.Simplify(e).Equal(cas.N(1)))
	assert.True(t, cas.TrigSimplify(e).Equal(cas.N(1)))
}

func TestTrigSimplify_Reciprocal(t *testing.T) {
	e := cas.Rewrite(cas.MustParse("sec(x)**2 - tan(x)**2"), "sin")
	assert.False(t, cas.Expand(e).Equal(cas.N(1)))
	assert.False(t, cas.Simplify(e).Equal(cas.N(1)))
	assert.True(t, cas.TrigSimplify(e).Equal(cas.N(1)))
}

func TestTrigSimplify_DoubleAngle(t *testing.T) {
	lhs := cas.TrigSimplify(cas.MustParse("sin(2*x)"))
	rhs := cas.TrigSimplify(cas.MustParse("2*sin(x)*cos(x)"))
	assert.True(t, lhs.Equal(rhs), "%s vs %s", lhs, rhs)
}

func TestTrigSimplify_SumWithSymbol(t *testing.T) {
	lhs := cas.TrigSimplify(cas.Rewrite(cas.MustParse("1 + tan(x)**2 + y"), "sin"))
	rhs := cas.TrigSimplify(cas.Rewrite(cas.MustParse("sec(x)**2 + y"), "sin"))
	assert.True(t, lhs.Equal(rhs), "%s vs %s", lhs, rhs)
}

func TestRewrite_Sin(t *testing.T) {
	assert.Equal(t, "sin(x)/cos(x)", cas.Rewrite(cas.TanOf(x), "sin").String())
	assert.Equal(t, "1/sin(x)", cas.Rewrite(cas.CscOf(x), "sin").String())
	assert.Equal(t, "tan(x)", cas.Rewrite(cas.TanOf(x), "exp").String())
}

func TestNsimplify_Exact(t *testing.T) {
	e := cas.MustParse("0.5*x")
	out := cas.Nsimplify(e, cas.Tolerance{})
	assert.True(t, out.Equal(cas.Div(x, cas.N(2))))
	assert.False(t, cas.HasFloat(out))
}

func TestNsimplify_Tolerance(t *testing.T) {
	e := cas.MustParse("0.333333")
	assert.Equal(t, "333333/1000000", cas.Nsimplify(e, cas.Tolerance{}).String())
	assert.Equal(t, "1/3", cas.Nsimplify(e, cas.Tolerance{Atol: 1e-5}).String())
	assert.Equal(t, "1/3", cas.Nsimplify(e, cas.Tolerance{Rtol: 1e-4}).String())
}
