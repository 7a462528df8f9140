package symeq_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symeq"
)

func TestExtractLatex(t *testing.T) {
	tests := map[string]string{
		`$x_1$`:      `x_1`,
		`$$\alpha$$`: `\alpha`,
		`\(v_{0}\)`:  `v_{0}`,
		`\[ y \]`:    `y`,
		`  z  `:      `z`,
		`$`:          `$`,
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, symeq.ExtractLatex(in))
		})
	}
}

func TestSymbolDict_Names(t *testing.T) {
	d := symeq.SymbolDict{"b": {LaTeX: "$b$"}, "a": {LaTeX: ""}, "c": {LaTeX: `\(\gamma\)`}}
	assert.Equal(t, []string{"a", "b", "c"}, d.Names())
	assert.Equal(t, map[string]string{"b": "b", "c": `\gamma`}, d.LaTeXNames())
}

func TestLoadSymbols(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
a1:
  latex: "$a_{1}$"
  aliases: [a_1, A1]
v:
  latex: "\\(v\\)"
`), 0o600))

	d, err := symeq.LoadSymbols(path)
	require.NoError(t, err)
	require.Len(t, d, 2)
	assert.Equal(t, []string{"a_1", "A1"}, d["a1"].Aliases)
	assert.Equal(t, `\(v\)`, d["v"].LaTeX)

	_, err = symeq.LoadSymbols(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSubstituteAliases(t *testing.T) {
	d := symeq.SymbolDict{
		"a1":    {Aliases: []string{"a_1", "a"}},
		"theta": {Aliases: []string{"th"}},
	}
	assert.Equal(t, "a1 + abs(theta)", symeq.SubstituteAliases("a_1 + abs(th)", d))
	assert.Equal(t, "2*a1 + a1", symeq.SubstituteAliases("2*a + a_1", d))
	assert.Equal(t, "math", symeq.SubstituteAliases("math", d))
}
