package cas

import "math/big"

// ============================================================
// Trigonometric rewriting
// ============================================================

// Rewrite re-expresses e in terms of the target function family. The "sin"
// and "cos" targets replace tan, sec, csc and cot by quotients of sin and
// cos. Other targets return e unchanged.
func Rewrite(e Expr, target string) Expr {
	switch target {
	case "sin", "cos":
		return rewriteSinCos(e)
	}
	return e
}

func rewriteSinCos(e Expr) Expr {
	e = mapArgs(e, rewriteSinCos)
	f, ok := e.(*Func)
	if !ok {
		return e
	}
	a := f.arg
	switch f.name {
	case "tan":
		return Div(SinOf(a), CosOf(a))
	case "cot":
		return Div(CosOf(a), SinOf(a))
	case "sec":
		return PowOf(CosOf(a), N(-1))
	case "csc":
		return PowOf(SinOf(a), N(-1))
	}
	return e
}

// TrigSimplify simplifies e using the Pythagorean identity and sum/multiple
// angle expansion on top of Simplify.
func TrigSimplify(e Expr) Expr {
	switch v := e.(type) {
	case *Relation:
		return Eq(TrigSimplify(v.lhs), TrigSimplify(v.rhs))
	case *Set:
		return mapArgs(v, TrigSimplify)
	}
	e = rewriteSinCos(e)
	e = expandTrig(simplifyFuncArgs(e))
	num, den := together(e)
	num = pythagorean(Expand(num))
	den = pythagorean(Expand(den))
	return cancel(num, den)
}

const maxAngleMultiple = 8

// expandTrig rewrites sin and cos of sums and of small integer multiples
// into products of sin and cos of the parts.
func expandTrig(e Expr) Expr {
	e = mapArgs(e, expandTrig)
	f, ok := e.(*Func)
	if !ok || (f.name != "sin" && f.name != "cos") {
		return e
	}
	if a, ok := f.arg.(*Add); ok {
		head := a.terms[0]
		tail := AddOf(a.terms[1:]...)
		return angleSum(f.name, head, tail)
	}
	if m, ok := f.arg.(*Mul); ok {
		c, isFloat, _ := splitCoeff(m)
		if !isFloat && c.IsInt() {
			n := c.Num().Int64()
			if n >= 2 && n <= maxAngleMultiple {
				u := MulOf(numFromRat(new(big.Rat).Inv(c)), m)
				return angleSum(f.name, u, MulOf(N(n-1), u))
			}
		}
	}
	return e
}

func angleSum(name string, a, b Expr) Expr {
	sa, ca := expandTrig(SinOf(a)), expandTrig(CosOf(a))
	sb, cb := expandTrig(SinOf(b)), expandTrig(CosOf(b))
	if name == "sin" {
		return AddOf(MulOf(sa, cb), MulOf(ca, sb))
	}
	return Sub(MulOf(ca, cb), MulOf(sa, sb))
}

// pythagorean replaces sin(u)^k (k >= 2) using sin^2 = 1 - cos^2 and expands.
func pythagorean(e Expr) Expr {
	out := replaceAll(e, func(x Expr) (Expr, bool) {
		p, ok := x.(*Pow)
		if !ok {
			return nil, false
		}
		f, ok := p.base.(*Func)
		k, isNum := p.exp.(*Num)
		if !ok || f.name != "sin" || !isNum || !k.IsInteger() || k.val.Num().Int64() < 2 {
			return nil, false
		}
		n := k.val.Num().Int64()
		oneMinusCos2 := Sub(N(1), PowOf(CosOf(f.arg), N(2)))
		return MulOf(PowOf(f, N(n%2)), PowOf(oneMinusCos2, N(n/2))), true
	})
	return Expand(out)
}
