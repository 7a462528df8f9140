package cas

import "math/big"

// poly is a dense univariate polynomial with rational coefficients; index i
// holds the coefficient of x^i.
type poly []*big.Rat

func (p poly) degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].Sign() != 0 {
			return i
		}
	}
	return -1
}

func (p poly) trim() poly { return p[:p.degree()+1] }

func (p poly) lead() *big.Rat { return p[p.degree()] }

// polyFrom reads e as a polynomial in x. It fails on anything that is not a
// sum of rational multiples of non-negative integer powers of x.
func polyFrom(e Expr, x string) (poly, bool) {
	terms := []Expr{e}
	if a, ok := e.(*Add); ok {
		terms = a.terms
	}
	var p poly
	for _, t := range terms {
		coeff, isFloat, rest := splitCoeff(t)
		if isFloat {
			return nil, false
		}
		var deg int64
		switch r := rest.(type) {
		case *Num:
			coeff = new(big.Rat).Mul(coeff, r.val)
			deg = 0
		case *Sym:
			if r.name != x {
				return nil, false
			}
			deg = 1
		case *Pow:
			s, ok := r.base.(*Sym)
			n, isNum := r.exp.(*Num)
			if !ok || s.name != x || !isNum || !n.IsInteger() || n.IsNegative() || n.val.Num().Int64() > 64 {
				return nil, false
			}
			deg = n.val.Num().Int64()
		default:
			return nil, false
		}
		for int64(len(p)) <= deg {
			p = append(p, new(big.Rat))
		}
		p[deg].Add(p[deg], coeff)
	}
	return p.trim(), true
}

func (p poly) expr(x string) Expr {
	terms := make([]Expr, 0, len(p))
	for i, c := range p {
		if c.Sign() == 0 {
			continue
		}
		terms = append(terms, MulOf(numFromRat(c), PowOf(S(x), N(int64(i)))))
	}
	return AddOf(terms...)
}

// polyDivMod performs long division a = q*b + r.
func polyDivMod(a, b poly) (q, r poly) {
	r = make(poly, len(a))
	for i, c := range a {
		r[i] = new(big.Rat).Set(c)
	}
	db := b.degree()
	if a.degree() < db {
		return poly{}, r.trim()
	}
	q = make(poly, a.degree()-db+1)
	for i := range q {
		q[i] = new(big.Rat)
	}
	lb := b.lead()
	for r.degree() >= db {
		dr := r.degree()
		c := new(big.Rat).Quo(r[dr], lb)
		q[dr-db] = c
		for i := 0; i <= db; i++ {
			t := new(big.Rat).Mul(c, b[i])
			r[i+dr-db].Sub(r[i+dr-db], t)
		}
		r = r.trim()
		if len(r) == 0 {
			break
		}
	}
	return q.trim(), r
}

// polyGCD returns the monic greatest common divisor.
func polyGCD(a, b poly) poly {
	a, b = a.trim(), b.trim()
	for b.degree() >= 0 {
		_, r := polyDivMod(a, b)
		a, b = b, r
	}
	if a.degree() < 0 {
		return a
	}
	l := new(big.Rat).Set(a.lead())
	out := make(poly, len(a))
	for i, c := range a {
		out[i] = new(big.Rat).Quo(c, l)
	}
	return out
}
