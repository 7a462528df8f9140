// Package latex reads LaTeX math into cas expressions.
package latex

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/njchilds90/symeq/cas"
)

// Substitution makes the parser read a literal LaTeX spelling as a single
// atom. Longer spellings win over shorter ones.
type Substitution struct {
	LaTeX  string
	Symbol cas.Expr
}

// Parse reads src and returns its candidate readings. When adjacent letters
// make the input ambiguous ("xy") the identifier reading comes first and the
// product reading last; callers pick the last candidate.
func Parse(src string, subs ...Substitution) ([]cas.Expr, error) {
	toks, err := lex(src, subs)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if !hasLetterRun(toks) {
		e, err := parseTokens(src, toks, false)
		if err != nil {
			return nil, err
		}
		return []cas.Expr{e}, nil
	}

	joined, errJoined := parseTokens(src, toks, true)
	split, errSplit := parseTokens(src, toks, false)
	switch {
	case errSplit != nil && errJoined != nil:
		return nil, errSplit
	case errSplit != nil:
		return []cas.Expr{joined}, nil
	case errJoined != nil || joined.Equal(split):
		return []cas.Expr{split}, nil
	}
	return []cas.Expr{joined, split}, nil
}

func parseTokens(src string, toks []token, joinRuns bool) (e cas.Expr, err error) {
	p := &parser{toks: append([]token(nil), toks...), src: src, joinRuns: joinRuns}
	e, err = p.parseList()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, errors.WithStack(p.errorf(t, "unexpected %q", t.text))
	}
	return e, nil
}

type parser struct {
	toks     []token
	pos      int
	src      string
	joinRuns bool
	absDepth int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) is(kind tokenKind, text string) bool {
	t := p.peek()
	return t.kind == kind && t.text == text
}

func (p *parser) isSymbol(text string) bool  { return p.is(tokSymbol, text) }
func (p *parser) isCommand(text string) bool { return p.is(tokCommand, text) }

func (p *parser) expectSymbol(text string) error {
	if !p.isSymbol(text) {
		return p.errorf(p.peek(), "expected %q", text)
	}
	p.next()
	return nil
}

func (p *parser) errorf(t token, format string, args ...interface{}) error {
	return &SyntaxError{Input: p.src, Pos: t.pos, Msg: fmt.Sprintf(format, args...)}
}

// parseList reads comma separated relations; more than one becomes a set.
func (p *parser) parseList() (cas.Expr, error) {
	first, err := p.parseRelation()
	if err != nil {
		return nil, err
	}
	if !p.isSymbol(",") {
		return first, nil
	}
	elems := []cas.Expr{first}
	for p.isSymbol(",") {
		p.next()
		e, err := p.parseRelation()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	return cas.SetOf(elems...), nil
}

func (p *parser) parseRelation() (cas.Expr, error) {
	lhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.isSymbol("=") {
		return lhs, nil
	}
	p.next()
	rhs, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if p.isSymbol("=") {
		return nil, p.errorf(p.peek(), "chained '=' is not supported")
	}
	return cas.Eq(lhs, rhs), nil
}

func (p *parser) parseExpr() (cas.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for p.isSymbol("+") || p.isSymbol("-") {
		op := p.next()
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if op.text == "+" {
			left = cas.AddOf(left, right)
		} else {
			left = cas.Sub(left, right)
		}
	}
	return left, nil
}

func (p *parser) isMulOp() bool {
	return p.isSymbol("*") || p.isCommand("cdot") || p.isCommand("times")
}

func (p *parser) isDivOp() bool { return p.isSymbol("/") || p.isCommand("div") }

// startsFactor reports whether the next token can begin an implicit factor.
func (p *parser) startsFactor() bool {
	t := p.peek()
	switch t.kind {
	case tokNumber, tokLetter, tokAtom:
		return true
	case tokSymbol:
		switch t.text {
		case "(", "[", "{":
			return true
		case "|":
			return p.absDepth == 0
		}
	case tokCommand:
		switch t.text {
		case "cdot", "times", "div", "right", "rvert", "}", "rbrace":
			return false
		case "vert", "|":
			return p.absDepth == 0
		}
		return true
	}
	return false
}

func (p *parser) parseTerm() (cas.Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isMulOp(), p.isDivOp():
			div := p.isDivOp()
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			if div {
				left = cas.Div(left, right)
			} else {
				left = cas.MulOf(left, right)
			}
		case p.startsFactor():
			right, err := p.parsePower()
			if err != nil {
				return nil, err
			}
			left = cas.MulOf(left, right)
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (cas.Expr, error) {
	switch {
	case p.isSymbol("-"):
		p.next()
		e, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return cas.MulOf(cas.N(-1), e), nil
	case p.isSymbol("+"):
		p.next()
		return p.parseUnary()
	}
	return p.parsePower()
}

func (p *parser) parsePower() (cas.Expr, error) {
	base, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.isSymbol("^") {
		p.next()
		exp, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		base = cas.PowOf(base, exp)
	}
	return base, nil
}

func (p *parser) parsePostfix() (cas.Expr, error) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for p.isSymbol("!") {
		p.next()
		e = cas.FuncOf("factorial", e)
	}
	return e, nil
}

// parseArg reads the argument of ^, \frac or \sqrt: a braced group or a
// single token. A multi-digit number only contributes its first digit.
func (p *parser) parseArg() (cas.Expr, error) {
	t := p.peek()
	switch {
	case p.isSymbol("{"):
		return p.parseGroup("{", "}")
	case p.isSymbol("-"):
		p.next()
		e, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		return cas.MulOf(cas.N(-1), e), nil
	case t.kind == tokNumber && len(t.text) > 1 && isDigit(t.text[0]):
		p.toks[p.pos].text = t.text[1:]
		p.toks[p.pos].pos = t.pos + 1
		return cas.N(int64(t.text[0] - '0')), nil
	case t.kind == tokLetter:
		p.next()
		return p.letter(t.text), nil
	}
	return p.parsePrimary()
}

func (p *parser) parseGroup(open, close string) (cas.Expr, error) {
	if err := p.expectSymbol(open); err != nil {
		return nil, err
	}
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectSymbol(close); err != nil {
		return nil, err
	}
	return e, nil
}

func (p *parser) letter(name string) cas.Expr {
	if name == "e" {
		return cas.EulerE
	}
	return cas.S(name)
}

func (p *parser) parsePrimary() (cas.Expr, error) {
	t := p.peek()
	switch t.kind {
	case tokNumber:
		p.next()
		return parseNumber(t.text)
	case tokAtom:
		p.next()
		return t.atom, nil
	case tokLetter:
		return p.parseIdentifier()
	case tokSymbol:
		switch t.text {
		case "(":
			return p.parseGroup("(", ")")
		case "[":
			return p.parseGroup("[", "]")
		case "{":
			return p.parseGroup("{", "}")
		case "|":
			return p.parseAbs(func() bool { return p.isSymbol("|") })
		}
	case tokCommand:
		return p.parseCommand()
	case tokEOF:
		return nil, p.errorf(t, "unexpected end of input")
	}
	return nil, p.errorf(t, "unexpected %q", t.text)
}

func parseNumber(text string) (cas.Expr, error) {
	if strings.Contains(text, ".") {
		f, err := cas.NewFloat(text)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid number %q", text)
		}
		return f, nil
	}
	e, err := cas.Parse(text, cas.DefaultParseConfig())
	if err != nil {
		return nil, errors.Wrapf(err, "invalid number %q", text)
	}
	return e, nil
}

func (p *parser) parseIdentifier() (cas.Expr, error) {
	t := p.next()
	name := t.text
	if p.joinRuns {
		last := t
		for p.peek().kind == tokLetter && p.peek().pos == last.end {
			last = p.next()
			name += last.text
		}
	}
	if p.isSymbol("_") {
		sub, err := p.parseSubscript()
		if err != nil {
			return nil, err
		}
		return cas.S(name + "_" + sub), nil
	}
	return p.letter(name), nil
}

// parseSubscript returns the raw text of a subscript, without braces or
// backslashes: x_1 -> "1", x_{ab} -> "ab", x_\alpha -> "alpha".
func (p *parser) parseSubscript() (string, error) {
	p.next() // _
	t := p.peek()
	switch {
	case p.isSymbol("{"):
		return p.rawBraced()
	case t.kind == tokNumber:
		if len(t.text) > 1 {
			p.toks[p.pos].text = t.text[1:]
			p.toks[p.pos].pos = t.pos + 1
			return t.text[:1], nil
		}
		p.next()
		return t.text, nil
	case t.kind == tokLetter, t.kind == tokCommand:
		p.next()
		return t.text, nil
	}
	return "", p.errorf(t, "bad subscript")
}

// rawBraced reads a {...} group as plain text.
func (p *parser) rawBraced() (string, error) {
	p.next() // {
	depth := 1
	var sb strings.Builder
	for {
		t := p.next()
		switch {
		case t.kind == tokEOF:
			return "", p.errorf(t, "unclosed group")
		case t.kind == tokSymbol && t.text == "{":
			depth++
		case t.kind == tokSymbol && t.text == "}":
			depth--
			if depth == 0 {
				if sb.Len() == 0 {
					return "", p.errorf(t, "empty group")
				}
				return sb.String(), nil
			}
			continue
		}
		sb.WriteString(strings.TrimPrefix(t.text, `\`))
	}
}

func (p *parser) parseAbs(closing func() bool) (cas.Expr, error) {
	open := p.next()
	p.absDepth++
	inner, err := p.parseExpr()
	p.absDepth--
	if err != nil {
		return nil, err
	}
	if !closing() {
		return nil, p.errorf(open, "unclosed absolute value")
	}
	p.next()
	return cas.AbsOf(inner), nil
}

func (p *parser) parseCommand() (cas.Expr, error) {
	t := p.next()
	name := t.text
	switch {
	case greekCommands[name]:
		if name == "pi" {
			return cas.Pi, nil
		}
		if p.isSymbol("_") {
			sub, err := p.parseSubscript()
			if err != nil {
				return nil, err
			}
			return cas.S(name + "_" + sub), nil
		}
		return cas.S(name), nil
	case name == "frac" || name == "dfrac" || name == "tfrac":
		num, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		den, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		return cas.Div(num, den), nil
	case name == "sqrt":
		index := cas.Expr(cas.N(2))
		if p.isSymbol("[") {
			var err error
			if index, err = p.parseGroup("[", "]"); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseArg()
		if err != nil {
			return nil, err
		}
		return cas.PowOf(arg, cas.PowOf(index, cas.N(-1))), nil
	case name == "left":
		return p.parseLeft(t)
	case name == "{" || name == "lbrace":
		return p.parseSet(func() bool { return p.isCommand("}") || p.isCommand("rbrace") })
	case name == "|" || name == "lvert" || name == "vert":
		p.pos--
		return p.parseAbs(func() bool { return p.isCommand("|") || p.isCommand("rvert") || p.isCommand("vert") })
	case name == "operatorname":
		fname, err := p.parseOperatorName()
		if err != nil {
			return nil, err
		}
		return p.parseFunction(t, fname)
	}
	if fn, ok := functionCommands[name]; ok {
		return p.parseFunction(t, fn)
	}
	return nil, p.errorf(t, `unknown command \%s`, name)
}

func (p *parser) parseOperatorName() (string, error) {
	if !p.isSymbol("{") {
		return "", p.errorf(p.peek(), `expected "{" after \operatorname`)
	}
	name, err := p.rawBraced()
	if err != nil {
		return "", err
	}
	if canonical, ok := functionCommands[name]; ok {
		return canonical, nil
	}
	return name, nil
}

func (p *parser) parseLeft(left token) (cas.Expr, error) {
	d := p.next()
	switch {
	case d.kind == tokSymbol && d.text == "(":
		return p.closeLeft(left, ")")
	case d.kind == tokSymbol && d.text == "[":
		return p.closeLeft(left, "]")
	case d.kind == tokSymbol && d.text == "|":
		p.absDepth++
		inner, err := p.parseExpr()
		p.absDepth--
		if err != nil {
			return nil, err
		}
		if err := p.expectRight("|"); err != nil {
			return nil, err
		}
		return cas.AbsOf(inner), nil
	case d.kind == tokCommand && (d.text == "{" || d.text == "lbrace"):
		set, err := p.parseSetBody()
		if err != nil {
			return nil, err
		}
		if err := p.expectRight(`\}`); err != nil {
			return nil, err
		}
		return set, nil
	}
	return nil, p.errorf(d, `unsupported delimiter after \left`)
}

func (p *parser) closeLeft(left token, close string) (cas.Expr, error) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if err := p.expectRight(close); err != nil {
		return nil, err
	}
	return e, nil
}

// expectRight consumes \right followed by the closing delimiter.
func (p *parser) expectRight(close string) error {
	if !p.isCommand("right") {
		return p.errorf(p.peek(), `expected \right%s`, close)
	}
	p.next()
	d := p.next()
	text := d.text
	if d.kind == tokCommand {
		text = `\` + text
	}
	if text != close && !(close == `\}` && text == `\rbrace`) {
		return p.errorf(d, `expected \right%s`, close)
	}
	return nil
}

func (p *parser) parseSet(closing func() bool) (cas.Expr, error) {
	set, err := p.parseSetBody()
	if err != nil {
		return nil, err
	}
	if !closing() {
		return nil, p.errorf(p.peek(), `expected \}`)
	}
	p.next()
	return set, nil
}

func (p *parser) parseSetBody() (cas.Expr, error) {
	var elems []cas.Expr
	for {
		e, err := p.parseRelation()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if !p.isSymbol(",") {
			break
		}
		p.next()
	}
	return cas.SetOf(elems...), nil
}

// parseFunction reads an optional power (\sin^2 x), an optional base for
// \log_b, and the argument. Without parentheses the argument runs over the
// following implicit product and stops at the next function.
func (p *parser) parseFunction(t token, name string) (cas.Expr, error) {
	var power cas.Expr
	if p.isSymbol("^") {
		p.next()
		var err error
		if power, err = p.parseArg(); err != nil {
			return nil, err
		}
		if inv, ok := inverseTrig[name]; ok && power.Equal(cas.N(-1)) {
			name, power = inv, nil
		}
	}
	var base cas.Expr
	if p.isSymbol("_") && name == "ln" {
		p.next()
		var err error
		if base, err = p.parseArg(); err != nil {
			return nil, err
		}
	}

	arg, err := p.parseFunctionArg(t)
	if err != nil {
		return nil, err
	}
	var out cas.Expr
	if base != nil {
		out = cas.Div(cas.LnOf(arg), cas.LnOf(base))
	} else {
		out = cas.FuncOf(name, arg)
	}
	if power != nil {
		out = cas.PowOf(out, power)
	}
	return out, nil
}

func (p *parser) parseFunctionArg(fn token) (cas.Expr, error) {
	switch {
	case p.isSymbol("("):
		return p.parseGroup("(", ")")
	case p.isCommand("left"):
		return p.parsePrimary()
	case p.isSymbol("{"):
		return p.parseGroup("{", "}")
	}
	if !p.startsFactor() {
		return nil, p.errorf(fn, `\%s needs an argument`, fn.text)
	}
	arg, err := p.parsePower()
	if err != nil {
		return nil, err
	}
	for p.startsFactor() && !p.atFunction() {
		next, err := p.parsePower()
		if err != nil {
			return nil, err
		}
		arg = cas.MulOf(arg, next)
	}
	return arg, nil
}

func (p *parser) atFunction() bool {
	t := p.peek()
	if t.kind != tokCommand {
		return false
	}
	_, ok := functionCommands[t.text]
	return ok || t.text == "operatorname"
}
