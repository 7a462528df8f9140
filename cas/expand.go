package cas

// ============================================================
// Expand
// ============================================================

const maxExpandPower = 12

// Expand distributes products over sums and multiplies out integer powers of
// sums. Repeats until the printed form is stable.
func Expand(e Expr) Expr {
	cur := e
	prev := cur.String()
	for i := 0; i < 5; i++ {
		cur = expand(cur)
		s := cur.String()
		if s == prev {
			break
		}
		prev = s
	}
	return cur
}

func expand(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = expand(t)
		}
		return AddOf(terms...)
	case *Mul:
		acc := []Expr{N(1)}
		for _, f := range v.factors {
			acc = distribute(acc, expand(f))
		}
		return AddOf(acc...)
	case *Pow:
		base := expand(v.base)
		exp := expand(v.exp)
		n, ok := exp.(*Num)
		add, isAdd := base.(*Add)
		if !ok || !isAdd || !n.IsInteger() {
			return PowOf(base, exp)
		}
		k := n.val.Num().Int64()
		switch {
		case k > 0 && k <= maxExpandPower:
			acc := []Expr{N(1)}
			for i := int64(0); i < k; i++ {
				acc = distribute(acc, add)
			}
			return AddOf(acc...)
		case k < 0 && -k <= maxExpandPower:
			return PowOf(expand(PowOf(add, N(-k))), N(-1))
		}
		return PowOf(base, exp)
	}
	return mapArgs(e, expand)
}

// distribute multiplies every accumulated term by f, splitting f when it is a sum.
func distribute(acc []Expr, f Expr) []Expr {
	terms := []Expr{f}
	if add, ok := f.(*Add); ok {
		terms = add.terms
	}
	out := make([]Expr, 0, len(acc)*len(terms))
	for _, a := range acc {
		for _, t := range terms {
			out = append(out, MulOf(a, t))
		}
	}
	return out
}
