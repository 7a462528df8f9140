package symeq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/njchilds90/symeq"
)

func TestNormalizeUnicode(t *testing.T) {
	tests := map[string]string{
		"x**2 - 1": "x**2 - 1",
		"x²":       "x**2",
		"y³ − 1":   "y**3 - 1",
		"2×3":      "2*3",
		"a·b":      "a*b",
		"6÷2":      "6/2",
		"ｘ＋１":      "x+1",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, symeq.NormalizeUnicode(in))
		})
	}
}
