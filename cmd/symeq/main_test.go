package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGrade(t *testing.T) {
	out, err := run(t, "grade", "--response", "(x+1)**2", "--answer", "x**2 + 2*x + 1")
	require.NoError(t, err)
	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, true, result["is_correct"])
	assert.Equal(t, "1", result["level"])
}

func TestGrade_SymbolsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.yaml")
	require.NoError(t, os.WriteFile(path, []byte("a1:\n  latex: \"$a_{1}$\"\n  aliases: [a_1]\n"), 0o600))

	out, err := run(t, "grade", "--response", "a_{1}+1", "--answer", "a1 + 1", "--latex", "--symbols", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"is_correct": true`)
}

func TestGrade_ParseError(t *testing.T) {
	_, err := run(t, "grade", "--response", "2x", "--answer", "2*x")
	require.Error(t, err)

	out, err := run(t, "grade", "--response", "2x", "--answer", "2*x", "--implicit")
	require.NoError(t, err)
	assert.Contains(t, out, `"is_correct": true`)
}

func TestPreview(t *testing.T) {
	out, err := run(t, "preview", "--response", `\frac{1}{2}x`, "--latex")
	require.NoError(t, err)
	assert.Contains(t, out, `"sympy": "x/2"`)
}

func TestParse(t *testing.T) {
	out, err := run(t, "parse", "(x + 1)**2")
	require.NoError(t, err)
	assert.Contains(t, out, "string: (x + 1)**2")

	out, err = run(t, "parse", "--json", "x + 1")
	require.NoError(t, err)
	assert.Contains(t, out, `"type": "add"`)
}

func TestRoot_BadLogLevel(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "parse", "x")
	assert.Error(t, err)
}
