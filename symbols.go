package symeq

import (
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Symbol describes how a named symbol is written. LaTeX may be wrapped in
// math delimiters ($x_1$, \(x_1\)); Aliases are plain-text spellings that
// are rewritten to the symbol name before parsing.
type Symbol struct {
	LaTeX   string   `json:"latex" yaml:"latex"`
	Aliases []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
}

// SymbolDict maps canonical symbol names to their spellings.
type SymbolDict map[string]Symbol

// Names returns the symbol names in sorted order.
func (d SymbolDict) Names() []string {
	names := lo.Keys(d)
	sort.Strings(names)
	return names
}

// LaTeXNames maps each symbol to the LaTeX used when rendering it.
func (d SymbolDict) LaTeXNames() map[string]string {
	out := make(map[string]string, len(d))
	for name, sym := range d {
		if l := ExtractLatex(sym.LaTeX); l != "" {
			out[name] = l
		}
	}
	return out
}

// LoadSymbols reads a YAML symbol file:
//
//	a1:
//	  latex: "$a_1$"
//	  aliases: [a_1, "a 1"]
func LoadSymbols(path string) (SymbolDict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read symbols")
	}
	var d SymbolDict
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrapf(err, "decode symbols %s", path)
	}
	return d, nil
}

var latexDelimiters = [][2]string{{"$$", "$$"}, {`\[`, `\]`}, {`\(`, `\)`}, {"$", "$"}}

// ExtractLatex strips surrounding math delimiters: $..$, $$..$$, \(..\) and
// \[..\]. Text without delimiters is returned trimmed.
func ExtractLatex(s string) string {
	s = strings.TrimSpace(s)
	for _, d := range latexDelimiters {
		if len(s) >= len(d[0])+len(d[1]) && strings.HasPrefix(s, d[0]) && strings.HasSuffix(s, d[1]) {
			return strings.TrimSpace(s[len(d[0]) : len(s)-len(d[1])])
		}
	}
	return s
}

// substituteAliases rewrites every alias of every symbol to the symbol name.
// Longer aliases are replaced first and matches must sit on identifier
// boundaries, so the alias "a" does not touch "abs".
func substituteAliases(s string, symbols SymbolDict) string {
	type alias struct{ from, to string }
	var all []alias
	for _, name := range symbols.Names() {
		for _, a := range symbols[name].Aliases {
			if a = strings.TrimSpace(a); a != "" && a != name {
				all = append(all, alias{from: a, to: name})
			}
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return len(all[i].from) > len(all[j].from) })
	for _, a := range all {
		s = replaceToken(s, a.from, a.to)
	}
	return s
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func replaceToken(s, from, to string) string {
	var sb strings.Builder
	i := 0
	for {
		j := strings.Index(s[i:], from)
		if j < 0 {
			sb.WriteString(s[i:])
			return sb.String()
		}
		j += i
		end := j + len(from)
		leftOK := j == 0 || !isIdentByte(s[j-1]) || !isIdentByte(from[0])
		rightOK := end == len(s) || !isIdentByte(s[end]) || !isIdentByte(from[len(from)-1])
		if leftOK && rightOK {
			sb.WriteString(s[i:j])
			sb.WriteString(to)
		} else {
			sb.WriteString(s[i:end])
		}
		i = end
	}
}
