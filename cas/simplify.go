package cas

import "math/big"

// ============================================================
// Simplify
// ============================================================

// Simplify brings e over a common denominator, expands numerator and
// denominator and cancels common factors. It applies no trigonometric
// identities.
func Simplify(e Expr) Expr {
	switch v := e.(type) {
	case *Relation:
		return Eq(Simplify(v.lhs), Simplify(v.rhs))
	case *Set:
		return mapArgs(v, Simplify)
	}
	e = simplifyFuncArgs(e)
	num, den := together(e)
	return cancel(num, den)
}

func simplifyFuncArgs(e Expr) Expr {
	return replaceAll(e, func(x Expr) (Expr, bool) {
		if f, ok := x.(*Func); ok {
			return FuncOf(f.name, Simplify(f.arg)), true
		}
		return nil, false
	})
}

// together writes e as num/den with den free of negative powers.
func together(e Expr) (num, den Expr) {
	switch v := e.(type) {
	case *Add:
		nums := make([]Expr, len(v.terms))
		dens := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			nums[i], dens[i] = together(t)
		}
		common := lcmOf(dens)
		terms := make([]Expr, len(nums))
		for i := range nums {
			terms[i] = MulOf(nums[i], common, PowOf(dens[i], N(-1)))
		}
		return AddOf(terms...), common
	case *Mul:
		nums := make([]Expr, len(v.factors))
		dens := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			nums[i], dens[i] = together(f)
		}
		return MulOf(nums...), MulOf(dens...)
	case *Pow:
		k, ok := v.exp.(*Num)
		if !ok {
			return e, N(1)
		}
		n, d := together(v.base)
		if k.IsNegative() {
			pk := numFromRat(new(big.Rat).Neg(k.val))
			return PowOf(d, pk), PowOf(n, pk)
		}
		return PowOf(n, k), PowOf(d, k)
	}
	return e, N(1)
}

// lcmOf returns the least common multiple of monomial-style denominators,
// taking the largest exponent seen for every base.
func lcmOf(dens []Expr) Expr {
	type part struct {
		base Expr
		exp  *big.Rat
	}
	parts := map[string]*part{}
	var order []string
	intLcm := big.NewInt(1)
	ratProd := new(big.Rat).SetInt64(1)

	for _, d := range dens {
		factors := []Expr{d}
		if m, ok := d.(*Mul); ok {
			factors = m.factors
		}
		for _, f := range factors {
			if v, _, ok := ratOf(f); ok {
				if v.IsInt() {
					intLcm = lcmInt(intLcm, new(big.Int).Abs(v.Num()))
				} else {
					ratProd.Mul(ratProd, v)
				}
				continue
			}
			base, exp := asPow(f)
			ev, _, ok := ratOf(exp)
			if !ok || ev.Sign() < 0 {
				base, ev = f, ratOne
			}
			key := base.String()
			if p, seen := parts[key]; seen {
				if ev.Cmp(p.exp) > 0 {
					p.exp = ev
				}
				continue
			}
			parts[key] = &part{base: base, exp: ev}
			order = append(order, key)
		}
	}

	factors := []Expr{&Num{val: new(big.Rat).SetInt(intLcm)}, numFromRat(ratProd)}
	for _, key := range order {
		p := parts[key]
		factors = append(factors, PowOf(p.base, numFromRat(p.exp)))
	}
	return MulOf(factors...)
}

func lcmInt(a, b *big.Int) *big.Int {
	if a.Sign() == 0 || b.Sign() == 0 {
		return new(big.Int).Set(a)
	}
	g := new(big.Int).GCD(nil, nil, a, b)
	out := new(big.Int).Mul(a, b)
	return out.Quo(out, g)
}

// cancel divides num by den and returns a canonical quotient.
func cancel(num, den Expr) Expr {
	num = Expand(num)
	den = Expand(den)

	if v, _, ok := ratOf(den); ok {
		if v.Sign() == 0 {
			return MulOf(num, PowOf(den, N(-1)))
		}
		return Expand(MulOf(num, PowOf(den, N(-1))))
	}
	if _, isSum := den.(*Add); !isSum {
		return Expand(MulOf(num, PowOf(den, N(-1))))
	}
	if isNumEqual(num, 0) {
		return N(0)
	}
	if c, ok := numericRatio(num, den); ok {
		return c
	}

	num, den = cancelUnivariate(num, den)
	if _, _, ok := ratOf(den); ok {
		return Expand(MulOf(num, PowOf(den, N(-1))))
	}
	if _, isSum := den.(*Add); !isSum {
		return Expand(MulOf(num, PowOf(den, N(-1))))
	}

	// normalize so the leading term of the denominator has coefficient 1
	lead, _, _ := splitCoeff(den.(*Add).terms[0])
	if lead.Cmp(ratOne) != 0 {
		inv := numFromRat(new(big.Rat).Inv(lead))
		num = Expand(MulOf(inv, num))
		den = Expand(MulOf(inv, den))
	}
	return MulOf(num, PowOf(den, N(-1)))
}

// numericRatio detects num == c*den for a constant c.
func numericRatio(num, den Expr) (Expr, bool) {
	n, ok1 := num.(*Add)
	d, ok2 := den.(*Add)
	if !ok1 || !ok2 || len(n.terms) != len(d.terms) {
		return nil, false
	}
	cn, fn, rn := splitCoeff(n.terms[0])
	cd, fd, rd := splitCoeff(d.terms[0])
	if fn || fd || !rn.Equal(rd) || cd.Sign() == 0 {
		return nil, false
	}
	c := numFromRat(new(big.Rat).Quo(cn, cd))
	if isNumEqual(Expand(Sub(num, MulOf(c, den))), 0) {
		return c, true
	}
	return nil, false
}

func cancelUnivariate(num, den Expr) (Expr, Expr) {
	seen := map[string]struct{}{}
	collectSymbols(num, seen)
	collectSymbols(den, seen)
	if len(seen) != 1 {
		return num, den
	}
	var x string
	for name := range seen {
		x = name
	}
	pn, ok1 := polyFrom(num, x)
	pd, ok2 := polyFrom(den, x)
	if !ok1 || !ok2 {
		return num, den
	}
	g := polyGCD(pn, pd)
	if g.degree() < 1 {
		return num, den
	}
	qn, _ := polyDivMod(pn, g)
	qd, _ := polyDivMod(pd, g)
	return qn.expr(x), qd.expr(x)
}
