package latex

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/njchilds90/symeq/cas"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokCommand
	tokLetter
	tokNumber
	tokSymbol
	tokAtom
)

type token struct {
	kind tokenKind
	text string
	pos  int
	end  int
	atom cas.Expr
}

// SyntaxError reports where LaTeX parsing failed. Pos is a byte offset.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("latex: %s at offset %d in %q", e.Msg, e.Pos, e.Input)
}

var functionCommands = map[string]string{
	"sin": "sin", "cos": "cos", "tan": "tan", "sec": "sec", "csc": "csc", "cot": "cot",
	"arcsin": "asin", "arccos": "acos", "arctan": "atan",
	"sinh": "sinh", "cosh": "cosh", "tanh": "tanh",
	"exp": "exp", "ln": "ln", "log": "ln",
}

var inverseTrig = map[string]string{"sin": "asin", "cos": "acos", "tan": "atan"}

var greekCommands = map[string]bool{
	"alpha": true, "beta": true, "gamma": true, "delta": true, "epsilon": true,
	"varepsilon": true, "zeta": true, "eta": true, "theta": true, "vartheta": true,
	"iota": true, "kappa": true, "lambda": true, "mu": true, "nu": true, "xi": true,
	"pi": true, "rho": true, "sigma": true, "tau": true, "upsilon": true, "phi": true,
	"varphi": true, "chi": true, "psi": true, "omega": true,
	"Gamma": true, "Delta": true, "Theta": true, "Lambda": true, "Xi": true, "Pi": true,
	"Sigma": true, "Phi": true, "Psi": true, "Omega": true,
}

var structuralCommands = map[string]bool{
	"frac": true, "dfrac": true, "tfrac": true, "sqrt": true, "cdot": true, "times": true,
	"div": true, "left": true, "right": true, "operatorname": true, "lvert": true,
	"rvert": true, "vert": true, "lbrace": true, "rbrace": true,
}

var spacingCommands = map[string]bool{
	"quad": true, "qquad": true, "bigl": true, "bigr": true, "Bigl": true, "Bigr": true,
	"big": true, "Big": true, "displaystyle": true,
}

func knownCommand(name string) bool {
	_, fn := functionCommands[name]
	return fn || greekCommands[name] || structuralCommands[name] || spacingCommands[name]
}

// longestKnownPrefix finds the longest known command name that prefixes name,
// so that \sinx reads as \sin x.
func longestKnownPrefix(name string) string {
	for n := len(name) - 1; n > 0; n-- {
		if knownCommand(name[:n]) {
			return name[:n]
		}
	}
	return ""
}

func isASCIILetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isDigit(b byte) bool       { return b >= '0' && b <= '9' }

func sortedSubstitutions(subs []Substitution) []Substitution {
	out := make([]Substitution, 0, len(subs))
	for _, s := range subs {
		if s.LaTeX != "" {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return len(out[i].LaTeX) > len(out[j].LaTeX) })
	return out
}

func matchSubstitution(src string, i int, subs []Substitution) (Substitution, bool) {
	for _, s := range subs {
		if !strings.HasPrefix(src[i:], s.LaTeX) {
			continue
		}
		end := i + len(s.LaTeX)
		last := s.LaTeX[len(s.LaTeX)-1]
		// a command spelling must not swallow the head of a longer command
		if s.LaTeX[0] == '\\' && isASCIILetter(last) && end < len(src) && isASCIILetter(src[end]) {
			continue
		}
		return s, true
	}
	return Substitution{}, false
}

func lex(src string, subs []Substitution) ([]token, error) {
	subs = sortedSubstitutions(subs)
	var toks []token
	i := 0
	for i < len(src) {
		if s, ok := matchSubstitution(src, i, subs); ok {
			end := i + len(s.LaTeX)
			toks = append(toks, token{kind: tokAtom, text: s.LaTeX, pos: i, end: end, atom: s.Symbol})
			i = end
			continue
		}
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '~':
			i++
		case c == '\\':
			j := i + 1
			for j < len(src) && isASCIILetter(src[j]) {
				j++
			}
			if j == i+1 {
				if j >= len(src) {
					return nil, &SyntaxError{Input: src, Pos: i, Msg: "trailing backslash"}
				}
				// one-character commands: \{ \} \| and spacing \, \; \! \: \
				ch := src[j]
				i = j + 1
				if strings.IndexByte(",;!: ", ch) >= 0 {
					continue
				}
				toks = append(toks, token{kind: tokCommand, text: string(ch), pos: j - 1, end: i})
				continue
			}
			name := src[i+1 : j]
			if !knownCommand(name) {
				if prefix := longestKnownPrefix(name); prefix != "" {
					name = prefix
					j = i + 1 + len(prefix)
				}
			}
			if !spacingCommands[name] {
				toks = append(toks, token{kind: tokCommand, text: name, pos: i, end: j})
			}
			i = j
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			if i+1 < len(src) && src[i] == '.' && isDigit(src[i+1]) {
				i++
				for i < len(src) && isDigit(src[i]) {
					i++
				}
			}
			toks = append(toks, token{kind: tokNumber, text: src[start:i], pos: start, end: i})
		case strings.IndexByte("+-*/^_()[]{}|=,!'<>", c) >= 0:
			toks = append(toks, token{kind: tokSymbol, text: string(c), pos: i, end: i + 1})
			i++
		default:
			r, size := utf8.DecodeRuneInString(src[i:])
			if !unicode.IsLetter(r) {
				return nil, &SyntaxError{Input: src, Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
			}
			toks = append(toks, token{kind: tokLetter, text: string(r), pos: i, end: i + size})
			i += size
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src), end: len(src)})
	return toks, nil
}

// hasLetterRun reports whether two letters sit next to each other, the case
// where "xy" could mean one identifier or a product.
func hasLetterRun(toks []token) bool {
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].kind == tokLetter && toks[i+1].kind == tokLetter && toks[i].end == toks[i+1].pos {
			return true
		}
	}
	return false
}
