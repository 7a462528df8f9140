package symeq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/symeq"
)

func TestSanitizeLatex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`x + 1`, `x+1`},
		{`\mathrm{d}x`, `dx`},
		{`\text{m}\cdot\mathit{s}`, `m\cdots`},
		{`\mathrm{a{b}c}`, `a{b}c`},
		{`\textrm{open`, `open`},
		{`1~2`, `1 2`},
		{"\\frac{1}\n{2}", `\frac{1}{2}`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, symeq.SanitizeLatex(tt.in))
		})
	}
}

func TestSanitizeLatex_Idempotent(t *testing.T) {
	for _, in := range []string{`\mathrm{x} + \text{y}`, `\frac{a}{b}`, `\textnormal{\mathrm{z}}`} {
		once := symeq.SanitizeLatex(in)
		assert.Equal(t, once, symeq.SanitizeLatex(once), in)
	}
}

func TestFindMatching(t *testing.T) {
	assert.Equal(t, 4, symeq.FindMatching("{a{}}", 0, '{', '}'))
	assert.Equal(t, 3, symeq.FindMatching("{a{}}", 2, '{', '}'))
	assert.Equal(t, -1, symeq.FindMatching("{a{}", 0, '{', '}'))
	assert.Equal(t, 6, symeq.FindMatching("f(x(y))", 1, '(', ')'))
}
