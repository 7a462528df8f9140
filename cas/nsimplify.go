package cas

import (
	"math"
	"math/big"
)

// Tolerance bounds how far a rationalized decimal may move. The allowed error
// is max(Atol, Rtol*|value|); a zero Tolerance keeps the exact decimal value.
type Tolerance struct {
	Atol float64
	Rtol float64
}

// Nsimplify replaces every decimal number in e by a rational.
func Nsimplify(e Expr, tol Tolerance) Expr {
	return replaceAll(e, func(x Expr) (Expr, bool) {
		f, ok := x.(*Float)
		if !ok {
			return nil, false
		}
		return numFromRat(rationalize(f.val, tol)), true
	})
}

// HasFloat reports whether e contains a decimal number.
func HasFloat(e Expr) bool {
	if _, ok := e.(*Float); ok {
		return true
	}
	for _, a := range e.Args() {
		if HasFloat(a) {
			return true
		}
	}
	return false
}

// rationalize walks the continued fraction of v and stops at the first
// convergent within tolerance.
func rationalize(v *big.Rat, tol Tolerance) *big.Rat {
	if tol.Atol <= 0 && tol.Rtol <= 0 {
		return new(big.Rat).Set(v)
	}
	f, _ := v.Float64()
	allowed := math.Max(tol.Atol, tol.Rtol*math.Abs(f))

	h0, h1 := big.NewInt(0), big.NewInt(1)
	k0, k1 := big.NewInt(1), big.NewInt(0)
	x := new(big.Rat).Set(v)
	for i := 0; i < 64; i++ {
		a := floorRat(x)
		h0, h1 = h1, new(big.Int).Add(new(big.Int).Mul(a, h1), h0)
		k0, k1 = k1, new(big.Int).Add(new(big.Int).Mul(a, k1), k0)
		approx := new(big.Rat).SetFrac(h1, k1)
		diff, _ := new(big.Rat).Sub(v, approx).Float64()
		if math.Abs(diff) <= allowed {
			return approx
		}
		frac := new(big.Rat).Sub(x, new(big.Rat).SetInt(a))
		if frac.Sign() == 0 {
			return approx
		}
		x = frac.Inv(frac)
	}
	return new(big.Rat).Set(v)
}

func floorRat(r *big.Rat) *big.Int {
	// Euclidean division floors for a positive divisor
	return new(big.Int).Div(r.Num(), r.Denom())
}
