package symeq_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symeq"
	"github.com/njchilds90/symeq/cas"
)

func TestSplitExpressionSet(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"x + 1", []string{"x + 1"}},
		{"{1, 2, 3}", []string{"1", "2", "3"}},
		{"{f(1, 2), 3}", []string{"f(1, 2)", "3"}},
		{"{1, 1, }", []string{"1"}},
		{"±2", []string{"+2", "-2"}},
		{"1 ± x ∓ y", []string{"1 + x - y", "1 - x + y"}},
		{"{plus_minus 1, 3}", []string{"+ 1", "- 1", "3"}},
		{"{1}+{2}", []string{"{1}+{2}"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, symeq.SplitExpressionSet(tt.in))
		})
	}
}

func TestParseSet(t *testing.T) {
	g := symeq.NewGrader()
	exprs, feedback, err := g.ParseSet("{x ± 1, |y|}", symeq.Params{})
	require.NoError(t, err)
	require.Len(t, exprs, 3)
	assert.True(t, exprs[0].Equal(cas.MustParse("x + 1")))
	assert.True(t, exprs[1].Equal(cas.MustParse("x - 1")))
	assert.True(t, exprs[2].Equal(cas.AbsOf(cas.S("y"))))
	assert.Equal(t, []string{symeq.AbsRewriteFeedback}, feedback)
}

func TestParseSet_AbortsOnFailingMember(t *testing.T) {
	g := symeq.NewGrader()
	exprs, _, err := g.ParseSet("{1, x+, 3}", symeq.Params{})
	assert.Nil(t, exprs)

	var pe *symeq.ExpressionParseError
	require.True(t, errors.As(err, &pe), "%v", err)
	assert.Equal(t, "x+", pe.Input)
	assert.Equal(t, symeq.SideResponse, pe.Side)
}

func TestParseSet_AmbiguousPipesContinue(t *testing.T) {
	g := symeq.NewGrader()
	_, feedback, err := g.ParseSet("|a|*|b|", symeq.Params{})
	require.Error(t, err)
	assert.Equal(t, []string{"Notation in response might be ambiguous, use Abs(.) instead of |.|"}, feedback)
	assert.NotContains(t, feedback, symeq.AbsRewriteFeedback)

	var pe *symeq.ExpressionParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "|a|*|b|", pe.Input)
	assert.Equal(t, feedback, pe.Feedback)
}

func TestParseSet_Empty(t *testing.T) {
	_, _, err := symeq.NewGrader().ParseSet("{ , }", symeq.Params{})
	var pe *symeq.ExpressionParseError
	assert.True(t, errors.As(err, &pe))
}
