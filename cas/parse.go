package cas

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// ============================================================
// Parse configuration
// ============================================================

// Transformation toggles a parser behavior.
type Transformation uint

const (
	// AutoSymbol turns unknown identifiers into symbols.
	AutoSymbol Transformation = 1 << iota
	// ConvertXor reads ^ as exponentiation.
	ConvertXor
	// ImplicitMultiplication reads juxtaposition (2x, x(y+1)) as a product.
	ImplicitMultiplication
	// ConvertEquals reads a single top-level = as an equation.
	ConvertEquals
)

// StandardTransformations is the set applied in strict mode.
const StandardTransformations = AutoSymbol | ConvertXor

// ParseConfig controls Parse.
type ParseConfig struct {
	Transformations Transformation
	// Symbols are names that always parse as plain symbols, even when they
	// collide with a function or constant name.
	Symbols     []string
	Rationalise bool
	Simplify    bool
	Tolerance   Tolerance
}

// DefaultParseConfig returns strict-syntax settings.
func DefaultParseConfig() ParseConfig {
	return ParseConfig{Transformations: StandardTransformations}
}

func (c ParseConfig) has(t Transformation) bool { return c.Transformations&t != 0 }

// SyntaxError reports where text parsing failed.
type SyntaxError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at position %d in %q: %s", e.Pos, e.Input, e.Msg)
}

// ============================================================
// Lexer
// ============================================================

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func tokenize(input string) ([]token, error) {
	var toks []token
	rs := []rune(input)
	i := 0
	for i < len(rs) {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r) || (r == '.' && i+1 < len(rs) && unicode.IsDigit(rs[i+1])):
			start := i
			for i < len(rs) && unicode.IsDigit(rs[i]) {
				i++
			}
			if i < len(rs) && rs[i] == '.' {
				i++
				for i < len(rs) && unicode.IsDigit(rs[i]) {
					i++
				}
			}
			if i < len(rs) && (rs[i] == 'e' || rs[i] == 'E') {
				j := i + 1
				if j < len(rs) && (rs[j] == '+' || rs[j] == '-') {
					j++
				}
				if j < len(rs) && unicode.IsDigit(rs[j]) {
					i = j
					for i < len(rs) && unicode.IsDigit(rs[i]) {
						i++
					}
				}
			}
			toks = append(toks, token{kind: tokNumber, text: string(rs[start:i]), pos: start})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(rs) && (unicode.IsLetter(rs[i]) || unicode.IsDigit(rs[i]) || rs[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(rs[start:i]), pos: start})
		case r == '*' && i+1 < len(rs) && rs[i+1] == '*':
			toks = append(toks, token{kind: tokOp, text: "**", pos: i})
			i += 2
		case strings.ContainsRune("+-*/^=!", r):
			toks = append(toks, token{kind: tokOp, text: string(r), pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case r == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++
		default:
			return nil, &SyntaxError{Input: input, Pos: i, Msg: fmt.Sprintf("unexpected character %q", r)}
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(rs)})
	return toks, nil
}

// ============================================================
// Parser
// ============================================================

// Parse reads a plain-text expression such as "2*x**2 + sin(x)".
func Parse(input string, cfg ParseConfig) (Expr, error) {
	if strings.TrimSpace(input) == "" {
		return nil, &SyntaxError{Input: input, Msg: "empty expression"}
	}
	toks, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, input: input, cfg: cfg, symbols: map[string]bool{}}
	for _, s := range cfg.Symbols {
		p.symbols[s] = true
	}
	e, err := p.parseRelation()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.errorf(t, "unexpected %q", t.text)
	}
	if cfg.Rationalise {
		e = Nsimplify(e, cfg.Tolerance)
	}
	if cfg.Simplify {
		e = Simplify(e)
	}
	return e, nil
}

// MustParse is Parse with the default configuration; it panics on error.
func MustParse(input string) Expr {
	e, err := Parse(input, DefaultParseConfig())
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	toks    []token
	pos     int
	input   string
	cfg     ParseConfig
	symbols map[string]bool
}

func (p *parser) peek() token { return p.toks[p.pos] }
func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(text string) bool {
	t := p.peek()
	return t.kind == tokOp && t.text == text
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	return &SyntaxError{Input: p.input, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseRelation() (Expr, error) {
	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.isOp("=") {
		return lhs, nil
	}
	t := p.next()
	if !p.cfg.has(ConvertEquals) {
		return nil, p.errorf(t, "'=' is not allowed here")
	}
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.isOp("=") {
		return nil, p.errorf(p.peek(), "chained '=' is not supported")
	}
	return Eq(lhs, rhs), nil
}

func (p *parser) parseExpr() (Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isOp("+") || p.isOp("-") {
		op := p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op.text == "+" {
			left = AddOf(left, right)
		} else {
			left = Sub(left, right)
		}
	}
	return left, nil
}

func (p *parser) startsPrimary() bool {
	switch p.peek().kind {
	case tokNumber, tokIdent, tokLParen:
		return true
	}
	return false
}

func (p *parser) parseTerm() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isOp("*"), p.isOp("/"):
			op := p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if op.text == "*" {
				left = MulOf(left, right)
			} else {
				left = Div(left, right)
			}
		case p.startsPrimary():
			if !p.cfg.has(ImplicitMultiplication) {
				return nil, p.errorf(p.peek(), "missing operator before %q", p.peek().text)
			}
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = MulOf(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (Expr, error) {
	switch {
	case p.isOp("-"):
		p.next()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return MulOf(N(-1), e), nil
	case p.isOp("+"):
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (Expr, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	if p.isOp("**") || p.isOp("^") {
		op := p.next()
		if op.text == "^" && !p.cfg.has(ConvertXor) {
			return nil, p.errorf(op, "'^' is not supported, use '**'")
		}
		exp, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return PowOf(base, exp), nil
	}
	return base, nil
}

func (p *parser) parsePostfix() (Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.isOp("!") {
		p.next()
		e = FuncOf("factorial", e)
	}
	return e, nil
}

func (p *parser) parsePrimary() (Expr, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		return parseNumber(t.text, p)
	case tokLParen:
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != tokRParen {
			return nil, p.errorf(p.peek(), "expected ')'")
		}
		p.next()
		return e, nil
	case tokIdent:
		return p.parseIdent(t)
	case tokEOF:
		return nil, p.errorf(t, "unexpected end of input")
	}
	return nil, p.errorf(t, "unexpected %q", t.text)
}

func parseNumber(text string, p *parser) (Expr, error) {
	if strings.ContainsAny(text, ".eE") {
		f, err := NewFloat(text)
		if err != nil {
			return nil, &SyntaxError{Input: p.input, Msg: "invalid number " + text}
		}
		return f, nil
	}
	n, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return nil, &SyntaxError{Input: p.input, Msg: "invalid number " + text}
	}
	return &Num{val: new(big.Rat).SetInt(n)}, nil
}

// funcAliases maps accepted spellings to canonical function names.
var funcAliases = map[string]string{
	"sin": "sin", "cos": "cos", "tan": "tan", "sec": "sec", "csc": "csc", "cot": "cot",
	"asin": "asin", "acos": "acos", "atan": "atan",
	"arcsin": "asin", "arccos": "acos", "arctan": "atan",
	"sinh": "sinh", "cosh": "cosh", "tanh": "tanh",
	"exp": "exp", "ln": "ln", "log": "ln",
	"Abs": "abs", "abs": "abs", "sign": "sign",
	"floor": "floor", "ceiling": "ceil", "ceil": "ceil",
	"factorial": "factorial",
}

func (p *parser) parseIdent(t token) (Expr, error) {
	name := t.text
	if p.symbols[name] {
		return S(name), nil
	}
	if p.peek().kind == tokLParen {
		_, known := funcAliases[name]
		known = known || name == "sqrt" || name == "Eq" || name == "log"
		if known || !p.cfg.has(ImplicitMultiplication) {
			return p.parseCall(t)
		}
	}
	switch name {
	case "pi":
		return Pi, nil
	case "E":
		return EulerE, nil
	}
	if _, isFunc := funcAliases[name]; isFunc || name == "sqrt" || name == "Eq" {
		return nil, p.errorf(t, "function %s needs an argument list", name)
	}
	if !p.cfg.has(AutoSymbol) {
		return nil, p.errorf(t, "undefined name %q", name)
	}
	return S(name), nil
}

func (p *parser) parseCall(t token) (Expr, error) {
	p.next() // (
	var args []Expr
	if p.peek().kind != tokRParen {
		for {
			var a Expr
			var err error
			if t.text == "Eq" {
				a, err = p.parseExpr()
			} else {
				a, err = p.parseRelation()
			}
			if err != nil {
				return nil, err
			}
			args = append(args, a)
			if p.peek().kind != tokComma {
				break
			}
			p.next()
		}
	}
	if p.peek().kind != tokRParen {
		return nil, p.errorf(p.peek(), "expected ')'")
	}
	p.next()

	name := t.text
	switch {
	case name == "Eq":
		if len(args) != 2 {
			return nil, p.errorf(t, "Eq takes 2 arguments, got %d", len(args))
		}
		return Eq(args[0], args[1]), nil
	case name == "sqrt":
		if len(args) != 1 {
			return nil, p.errorf(t, "sqrt takes 1 argument, got %d", len(args))
		}
		return SqrtOf(args[0]), nil
	case name == "log" && len(args) == 2:
		return Div(LnOf(args[0]), LnOf(args[1])), nil
	}
	if len(args) != 1 {
		return nil, p.errorf(t, "%s takes 1 argument, got %d", name, len(args))
	}
	if canonical, ok := funcAliases[name]; ok {
		return FuncOf(canonical, args[0]), nil
	}
	if !p.cfg.has(AutoSymbol) {
		return nil, p.errorf(t, "undefined function %q", name)
	}
	return FuncOf(name, args[0]), nil
}
