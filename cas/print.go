package cas

import (
	"math/big"
	"strings"
)

// ============================================================
// Printing
// ============================================================

const (
	precAdd = iota + 1
	precMul
	precPow
	precAtom
)

func precedence(e Expr) int {
	switch v := e.(type) {
	case *Add:
		return precAdd
	case *Mul:
		if isNegativeTerm(v) {
			return precAdd
		}
		return precMul
	case *Num:
		if v.IsNegative() {
			return precAdd
		}
		if !v.IsInteger() {
			return precMul
		}
	case *Float:
		if v.val.Sign() < 0 {
			return precAdd
		}
	case *Pow:
		if isNegativeNum(v.exp) {
			return precMul
		}
		return precPow
	case *Relation:
		return 0
	}
	return precAtom
}

func isNegativeNum(e Expr) bool {
	v, _, ok := ratOf(e)
	return ok && v.Sign() < 0
}

func isNegativeTerm(e Expr) bool {
	if isNegativeNum(e) {
		return true
	}
	if m, ok := e.(*Mul); ok {
		return isNegativeNum(m.factors[0])
	}
	return false
}

func negate(e Expr) Expr { return MulOf(N(-1), e) }

// fraction splits a product into sign, numerator and denominator factors.
// Numeric coefficients are returned separately as num/den integers.
type fraction struct {
	negative bool
	coeff    Expr // numeric numerator coefficient, nil when 1
	denCoeff Expr // integer denominator of a rational coefficient, nil when 1
	num      []Expr
	den      []Expr
}

func splitFraction(e Expr) fraction {
	var fr fraction
	factors := []Expr{e}
	if m, ok := e.(*Mul); ok {
		factors = m.factors
	}
	for _, f := range factors {
		if v, isFloat, ok := ratOf(f); ok {
			if v.Sign() < 0 {
				fr.negative = true
				v = new(big.Rat).Neg(v)
			}
			if isFloat {
				fr.coeff = floatFromRat(v)
				continue
			}
			if v.Num().Cmp(big.NewInt(1)) != 0 {
				fr.coeff = &Num{val: new(big.Rat).SetInt(v.Num())}
			}
			if !v.IsInt() {
				fr.denCoeff = &Num{val: new(big.Rat).SetInt(v.Denom())}
			}
			continue
		}
		if p, ok := f.(*Pow); ok && isNegativeNum(p.exp) {
			fr.den = append(fr.den, PowOf(p.base, negate(p.exp)))
			continue
		}
		fr.num = append(fr.num, f)
	}
	return fr
}

func stringOf(e Expr) string { return (&textPrinter{}).print(e) }

type textPrinter struct{}

var textFuncNames = map[string]string{"abs": "Abs", "ln": "log", "ceil": "ceiling"}

func (p *textPrinter) print(e Expr) string {
	switch v := e.(type) {
	case *Num:
		return v.val.RatString()
	case *Float:
		return v.text
	case *Sym:
		return v.name
	case *Add:
		var sb strings.Builder
		for i, t := range v.terms {
			switch {
			case i == 0:
				sb.WriteString(p.print(t))
			case isNegativeTerm(t):
				sb.WriteString(" - ")
				sb.WriteString(p.wrap(negate(t), precAdd+1))
			default:
				sb.WriteString(" + ")
				sb.WriteString(p.print(t))
			}
		}
		return sb.String()
	case *Mul:
		return p.fraction(v)
	case *Pow:
		if isNegativeNum(v.exp) {
			return p.fraction(v)
		}
		if isNumEqual(v.exp, 1) {
			return p.print(v.base)
		}
		if n, ok := v.exp.(*Num); ok && n.val.Cmp(big.NewRat(1, 2)) == 0 {
			return "sqrt(" + p.print(v.base) + ")"
		}
		return p.wrap(v.base, precAtom) + "**" + p.wrap(v.exp, precAtom)
	case *Func:
		name := v.name
		if alias, ok := textFuncNames[name]; ok {
			name = alias
		}
		return name + "(" + p.print(v.arg) + ")"
	case *Relation:
		return "Eq(" + p.print(v.lhs) + ", " + p.print(v.rhs) + ")"
	case *Set:
		parts := make([]string, len(v.elems))
		for i, el := range v.elems {
			parts[i] = p.print(el)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "?"
}

func (p *textPrinter) wrap(e Expr, min int) string {
	s := p.print(e)
	if precedence(e) < min {
		return "(" + s + ")"
	}
	return s
}

func (p *textPrinter) fraction(e Expr) string {
	fr := splitFraction(e)
	num := make([]string, 0, len(fr.num)+1)
	if fr.coeff != nil {
		num = append(num, p.print(fr.coeff))
	}
	for _, f := range fr.num {
		num = append(num, p.wrap(f, precMul))
	}
	den := make([]string, 0, len(fr.den)+1)
	if fr.denCoeff != nil {
		den = append(den, p.print(fr.denCoeff))
	}
	for _, f := range fr.den {
		den = append(den, p.wrap(f, precMul))
	}

	s := strings.Join(num, "*")
	if s == "" {
		s = "1"
	}
	switch {
	case len(den) == 1 && (len(fr.den) == 0 || precedence(fr.den[0]) > precMul):
		s += "/" + den[0]
	case len(den) > 0:
		s += "/(" + strings.Join(den, "*") + ")"
	}
	if fr.negative {
		return "-" + s
	}
	return s
}

// ============================================================
// LaTeX
// ============================================================

var greekLetters = map[string]string{
	"alpha": `\alpha`, "beta": `\beta`, "gamma": `\gamma`, "delta": `\delta`,
	"epsilon": `\epsilon`, "varepsilon": `\varepsilon`, "zeta": `\zeta`, "eta": `\eta`,
	"theta": `\theta`, "vartheta": `\vartheta`, "iota": `\iota`, "kappa": `\kappa`,
	"lambda": `\lambda`, "mu": `\mu`, "nu": `\nu`, "xi": `\xi`, "pi": `\pi`,
	"rho": `\rho`, "sigma": `\sigma`, "tau": `\tau`, "upsilon": `\upsilon`,
	"phi": `\phi`, "varphi": `\varphi`, "chi": `\chi`, "psi": `\psi`, "omega": `\omega`,
	"Gamma": `\Gamma`, "Delta": `\Delta`, "Theta": `\Theta`, "Lambda": `\Lambda`,
	"Xi": `\Xi`, "Pi": `\Pi`, "Sigma": `\Sigma`, "Phi": `\Phi`, "Psi": `\Psi`,
	"Omega": `\Omega`,
}

var latexFuncNames = map[string]string{
	"sin": `\sin`, "cos": `\cos`, "tan": `\tan`, "sec": `\sec`, "csc": `\csc`, "cot": `\cot`,
	"asin": `\arcsin`, "acos": `\arccos`, "atan": `\arctan`,
	"sinh": `\sinh`, "cosh": `\cosh`, "tanh": `\tanh`,
	"exp": `\exp`, "ln": `\ln`, "sign": `\operatorname{sign}`,
}

// LaTeXWith renders e as LaTeX. names maps symbol names to replacement LaTeX
// spellings; symbols not in the map use the default rendering.
func LaTeXWith(e Expr, names map[string]string) string {
	return latexOf(e, names)
}

func latexOf(e Expr, names map[string]string) string {
	return (&latexPrinter{names: names}).print(e)
}

type latexPrinter struct {
	names map[string]string
}

func (p *latexPrinter) print(e Expr) string {
	switch v := e.(type) {
	case *Num:
		if v.IsInteger() {
			return v.val.RatString()
		}
		sign := ""
		if v.IsNegative() {
			sign = "-"
		}
		abs := new(big.Rat).Abs(v.val)
		return sign + `\frac{` + abs.Num().String() + `}{` + abs.Denom().String() + `}`
	case *Float:
		return v.text
	case *Sym:
		return p.symbol(v.name)
	case *Add:
		var sb strings.Builder
		for i, t := range v.terms {
			switch {
			case i == 0:
				sb.WriteString(p.print(t))
			case isNegativeTerm(t):
				sb.WriteString(" - ")
				sb.WriteString(p.wrap(negate(t), precAdd+1))
			default:
				sb.WriteString(" + ")
				sb.WriteString(p.print(t))
			}
		}
		return sb.String()
	case *Mul:
		return p.fraction(v)
	case *Pow:
		return p.pow(v)
	case *Func:
		return p.function(v, "")
	case *Relation:
		return p.print(v.lhs) + " = " + p.print(v.rhs)
	case *Set:
		parts := make([]string, len(v.elems))
		for i, el := range v.elems {
			parts[i] = p.print(el)
		}
		return `\left\{` + strings.Join(parts, ", ") + `\right\}`
	}
	return "?"
}

func (p *latexPrinter) symbol(name string) string {
	if s, ok := p.names[name]; ok {
		return s
	}
	if name == EulerE.name {
		return "e"
	}
	if g, ok := greekLetters[name]; ok {
		return g
	}
	if i := strings.Index(name, "_"); i > 0 && i < len(name)-1 {
		sub := strings.TrimSuffix(strings.TrimPrefix(name[i+1:], "{"), "}")
		return p.symbol(name[:i]) + "_{" + sub + "}"
	}
	return name
}

func (p *latexPrinter) wrap(e Expr, min int) string {
	s := p.print(e)
	if precedence(e) < min {
		return `\left(` + s + `\right)`
	}
	return s
}

// product joins factors with spaces. Inside \frac a lone factor needs no
// parentheses, so bare skips them.
func (p *latexPrinter) product(factors []Expr, bare bool) string {
	if bare && len(factors) == 1 {
		return p.print(factors[0])
	}
	var sb strings.Builder
	prevDigit := false
	for i, f := range factors {
		s := p.wrap(f, precMul)
		startsDigit := s != "" && s[0] >= '0' && s[0] <= '9'
		if i > 0 {
			if prevDigit && startsDigit {
				sb.WriteString(` \cdot `)
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString(s)
		last := s[len(s)-1]
		prevDigit = last >= '0' && last <= '9'
	}
	return sb.String()
}

func (p *latexPrinter) fraction(e Expr) string {
	fr := splitFraction(e)
	num := make([]Expr, 0, len(fr.num)+1)
	if fr.coeff != nil {
		num = append(num, fr.coeff)
	}
	num = append(num, fr.num...)
	den := make([]Expr, 0, len(fr.den)+1)
	if fr.denCoeff != nil {
		den = append(den, fr.denCoeff)
	}
	den = append(den, fr.den...)

	sign := ""
	if fr.negative {
		sign = "-"
	}
	if len(den) == 0 {
		if len(num) == 0 {
			return sign + "1"
		}
		return sign + p.product(num, false)
	}
	numStr := "1"
	if len(num) > 0 {
		numStr = p.product(num, true)
	}
	return sign + `\frac{` + numStr + `}{` + p.product(den, true) + `}`
}

func (p *latexPrinter) pow(v *Pow) string {
	if isNegativeNum(v.exp) {
		return p.fraction(v)
	}
	if n, ok := v.exp.(*Num); ok && !n.IsInteger() && n.val.Num().Cmp(big.NewInt(1)) == 0 {
		if n.val.Denom().Cmp(big.NewInt(2)) == 0 {
			return `\sqrt{` + p.print(v.base) + `}`
		}
		return `\sqrt[` + n.val.Denom().String() + `]{` + p.print(v.base) + `}`
	}
	exp := p.print(v.exp)
	if f, ok := v.base.(*Func); ok {
		if _, trig := latexFuncNames[f.name]; trig && f.name != "exp" {
			return p.function(f, exp)
		}
	}
	return p.wrap(v.base, precAtom) + "^{" + exp + "}"
}

// function renders a function application, optionally raised to a power
// written on the function name (\sin^{2}\left(x\right)).
func (p *latexPrinter) function(f *Func, power string) string {
	arg := p.print(f.arg)
	var s string
	switch f.name {
	case "abs":
		s = `\left|` + arg + `\right|`
	case "floor":
		s = `\left\lfloor ` + arg + ` \right\rfloor`
	case "ceil":
		s = `\left\lceil ` + arg + ` \right\rceil`
	case "factorial":
		s = p.wrap(f.arg, precAtom) + "!"
	default:
		name, ok := latexFuncNames[f.name]
		if !ok {
			name = `\operatorname{` + f.name + `}`
		}
		if power != "" {
			return name + "^{" + power + `}\left(` + arg + `\right)`
		}
		return name + `\left(` + arg + `\right)`
	}
	if power != "" {
		return `\left(` + s + `\right)^{` + power + "}"
	}
	return s
}
