// Package cas provides a deterministic symbolic math kernel.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat), decimal literals kept apart
//   - Canonicalizing constructors, so Equal is a structural comparison
//   - Expand, Simplify and TrigSimplify passes that never mutate their input
//   - Re-parseable String output, LaTeX output with symbol renaming, JSON trees
package cas

import (
	"math"
	"math/big"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

// Expr is an immutable expression node. Values returned by the constructors
// (N, S, AddOf, MulOf, PowOf, ...) are canonical.
type Expr interface {
	Canonical() Expr
	String() string
	LaTeX() string
	Equal(other Expr) bool
	Args() []Expr
	withArgs(args []Expr) Expr
	exprType() string
	toJSON() map[string]interface{}
}

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("cas: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}
func numFromRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Canonical() Expr       { return n }
func (n *Num) String() string        { return stringOf(n) }
func (n *Num) LaTeX() string         { return latexOf(n, nil) }
func (n *Num) Args() []Expr          { return nil }
func (n *Num) withArgs([]Expr) Expr  { return n }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) exprType() string      { return "num" }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(ratOne) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(ratNegOne) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) Float64() float64      { f, _ := n.val.Float64(); return f }
func (n *Num) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "num", "value": n.val.RatString()}
}

var (
	ratZero   = new(big.Rat)
	ratOne    = big.NewRat(1, 1)
	ratNegOne = big.NewRat(-1, 1)
)

// ============================================================
// Float: decimal literal
// ============================================================

// Float is a decimal number. Its value is stored exactly as written so that
// Nsimplify can turn 0.5 into 1/2 without binary rounding noise. Arithmetic
// involving a Float yields a Float.
type Float struct {
	val  *big.Rat
	text string
}

// NewFloat parses a decimal literal such as "0.25" or "1e-3".
func NewFloat(text string) (*Float, error) {
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		return nil, &SyntaxError{Input: text, Msg: "invalid number"}
	}
	return floatFromRat(r), nil
}

func floatFromRat(r *big.Rat) *Float {
	return &Float{val: new(big.Rat).Set(r), text: decimalText(r)}
}

func floatFromFloat64(f float64) *Float {
	text := strconv.FormatFloat(f, 'g', 15, 64)
	r, ok := new(big.Rat).SetString(text)
	if !ok {
		r = new(big.Rat)
	}
	return floatFromRat(r)
}

func decimalText(r *big.Rat) string {
	s := r.FloatString(15)
	s = strings.TrimRight(s, "0")
	if strings.HasSuffix(s, ".") {
		s += "0"
	}
	if s == "-0.0" {
		s = "0.0"
	}
	return s
}

func (f *Float) Canonical() Expr       { return f }
func (f *Float) String() string        { return f.text }
func (f *Float) LaTeX() string         { return f.text }
func (f *Float) Args() []Expr          { return nil }
func (f *Float) withArgs([]Expr) Expr  { return f }
func (f *Float) Equal(other Expr) bool { o, ok := other.(*Float); return ok && f.val.Cmp(o.val) == 0 }
func (f *Float) exprType() string      { return "float" }
func (f *Float) Rat() *big.Rat         { return new(big.Rat).Set(f.val) }
func (f *Float) Float64() float64      { v, _ := f.val.Float64(); return v }
func (f *Float) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "float", "value": f.text}
}

// ratOf reports the value of a numeric node.
func ratOf(e Expr) (val *big.Rat, isFloat bool, ok bool) {
	switch v := e.(type) {
	case *Num:
		return v.val, false, true
	case *Float:
		return v.val, true, true
	}
	return nil, false, false
}

func isNumeric(e Expr) bool { _, _, ok := ratOf(e); return ok }

func makeNumber(r *big.Rat, isFloat bool) Expr {
	if isFloat {
		return floatFromRat(r)
	}
	return numFromRat(r)
}

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.val.Cmp(new(big.Rat).SetInt64(v)) == 0
}

// ============================================================
// Sym: symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym { return &Sym{name: name} }

// Named constants. They are plain symbols with reserved names.
var (
	Pi     = S("pi")
	EulerE = S("E")
)

func (s *Sym) Canonical() Expr       { return s }
func (s *Sym) String() string        { return s.name }
func (s *Sym) LaTeX() string         { return latexOf(s, nil) }
func (s *Sym) Args() []Expr          { return nil }
func (s *Sym) withArgs([]Expr) Expr  { return s }
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) exprType() string      { return "sym" }
func (s *Sym) Name() string          { return s.name }
func (s *Sym) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "sym", "name": s.name}
}

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Canonical() }

// Sub returns a - b.
func Sub(a, b Expr) Expr { return AddOf(a, MulOf(N(-1), b)) }

func (a *Add) Canonical() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Canonical()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}

	constant := new(big.Rat)
	constFloat := false
	type group struct {
		coeff   *big.Rat
		isFloat bool
		rest    Expr
	}
	groups := map[string]*group{}
	order := []string{}
	for _, t := range flat {
		if v, isFloat, ok := ratOf(t); ok {
			constant.Add(constant, v)
			constFloat = constFloat || isFloat
			continue
		}
		coeff, isFloat, rest := splitCoeff(t)
		key := rest.String()
		g, seen := groups[key]
		if !seen {
			g = &group{coeff: new(big.Rat), rest: rest}
			groups[key] = g
			order = append(order, key)
		}
		g.coeff.Add(g.coeff, coeff)
		g.isFloat = g.isFloat || isFloat
	}

	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		g := groups[key]
		if g.coeff.Sign() == 0 {
			continue
		}
		result = append(result, withCoeff(g.coeff, g.isFloat, g.rest))
	}
	sortTerms(result)
	if constant.Sign() != 0 {
		result = append(result, makeNumber(constant, constFloat))
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

func (a *Add) String() string { return stringOf(a) }
func (a *Add) LaTeX() string  { return latexOf(a, nil) }
func (a *Add) Args() []Expr   { return append([]Expr(nil), a.terms...) }
func (a *Add) withArgs(args []Expr) Expr {
	return AddOf(args...)
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) exprType() string { return "add" }
func (a *Add) toJSON() map[string]interface{} {
	ts := make([]map[string]interface{}, len(a.terms))
	for i, t := range a.terms {
		ts[i] = t.toJSON()
	}
	return map[string]interface{}{"type": "add", "terms": ts}
}
func (a *Add) Terms() []Expr { return append([]Expr(nil), a.terms...) }

// splitCoeff separates a canonical term into numeric coefficient and the rest.
func splitCoeff(t Expr) (*big.Rat, bool, Expr) {
	if m, ok := t.(*Mul); ok && len(m.factors) >= 2 {
		if v, isFloat, ok := ratOf(m.factors[0]); ok {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return v, isFloat, rest[0]
			}
			return v, isFloat, &Mul{factors: append([]Expr(nil), rest...)}
		}
	}
	return ratOne, false, t
}

func withCoeff(c *big.Rat, isFloat bool, rest Expr) Expr {
	if c.Cmp(ratOne) == 0 && !isFloat {
		return rest
	}
	return MulOf(makeNumber(c, isFloat), rest)
}

// sortTerms orders sum terms by descending degree, then by printed form.
func sortTerms(terms []Expr) {
	type keyed struct {
		e      Expr
		degree float64
		key    string
	}
	ks := make([]keyed, len(terms))
	for i, t := range terms {
		_, _, rest := splitCoeff(t)
		ks[i] = keyed{e: t, degree: degreeOf(rest), key: rest.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].degree != ks[j].degree {
			return ks[i].degree > ks[j].degree
		}
		return ks[i].key < ks[j].key
	})
	for i := range ks {
		terms[i] = ks[i].e
	}
}

func degreeOf(e Expr) float64 {
	switch v := e.(type) {
	case *Mul:
		d := 0.0
		for _, f := range v.factors {
			d += degreeOf(f)
		}
		return d
	case *Pow:
		if r, _, ok := ratOf(v.exp); ok {
			f, _ := r.Float64()
			return f * degreeOf(v.base)
		}
		return 1
	case *Num, *Float:
		return 0
	}
	return 1
}

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Canonical() }

// Div returns a / b.
func Div(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

func (m *Mul) Canonical() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Canonical()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}

	coeff := new(big.Rat).SetInt64(1)
	coeffFloat := false
	type power struct {
		base Expr
		exp  Expr
	}
	powers := map[string]*power{}
	order := []string{}
	for _, f := range flat {
		if v, isFloat, ok := ratOf(f); ok {
			coeff.Mul(coeff, v)
			coeffFloat = coeffFloat || isFloat
			continue
		}
		base, exp := asPow(f)
		key := base.String()
		if p, seen := powers[key]; seen {
			p.exp = AddOf(p.exp, exp)
			continue
		}
		powers[key] = &power{base: base, exp: exp}
		order = append(order, key)
	}
	if coeff.Sign() == 0 {
		return N(0)
	}

	others := make([]Expr, 0, len(order))
	for _, key := range order {
		p := powers[key]
		combined := PowOf(p.base, p.exp)
		pieces := []Expr{combined}
		if inner, ok := combined.(*Mul); ok {
			pieces = inner.factors
		}
		for _, piece := range pieces {
			if v, isFloat, ok := ratOf(piece); ok {
				coeff.Mul(coeff, v)
				coeffFloat = coeffFloat || isFloat
				continue
			}
			others = append(others, piece)
		}
	}
	if coeff.Sign() == 0 {
		return N(0)
	}
	if len(others) == 0 {
		return makeNumber(coeff, coeffFloat)
	}

	// Precompute sort keys to avoid repeated String() calls in comparator.
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sorted := make([]Expr, len(ks))
	for i := range ks {
		sorted[i] = ks[i].e
	}

	if coeff.Cmp(ratOne) == 0 && !coeffFloat {
		if len(sorted) == 1 {
			return sorted[0]
		}
		return &Mul{factors: sorted}
	}
	return &Mul{factors: append([]Expr{makeNumber(coeff, coeffFloat)}, sorted...)}
}

// asPow views any factor as base^exp.
func asPow(e Expr) (Expr, Expr) {
	if p, ok := e.(*Pow); ok {
		return p.base, p.exp
	}
	return e, N(1)
}

func (m *Mul) String() string { return stringOf(m) }
func (m *Mul) LaTeX() string  { return latexOf(m, nil) }
func (m *Mul) Args() []Expr   { return append([]Expr(nil), m.factors...) }
func (m *Mul) withArgs(args []Expr) Expr {
	return MulOf(args...)
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) exprType() string { return "mul" }
func (m *Mul) toJSON() map[string]interface{} {
	fs := make([]map[string]interface{}, len(m.factors))
	for i, f := range m.factors {
		fs[i] = f.toJSON()
	}
	return map[string]interface{}{"type": "mul", "factors": fs}
}
func (m *Mul) Factors() []Expr { return append([]Expr(nil), m.factors...) }

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Canonical() }
func SqrtOf(arg Expr) Expr     { return PowOf(arg, F(1, 2)) }

func (p *Pow) Canonical() Expr {
	base := p.base.Canonical()
	exp := p.exp.Canonical()

	if ev, _, ok := ratOf(exp); ok && ev.Sign() == 0 {
		return N(1)
	}
	if isNumEqual(exp, 1) {
		return base
	}
	if isNumEqual(base, 1) {
		return N(1)
	}
	if s, ok := base.(*Sym); ok && s.name == EulerE.name {
		return ExpOf(exp)
	}

	if bv, bFloat, ok := ratOf(base); ok {
		if r, done := numericPow(bv, bFloat, exp); done {
			return r
		}
	}

	en, expIsInt := exp.(*Num)
	expIsInt = expIsInt && en.IsInteger()
	if expIsInt {
		switch b := base.(type) {
		case *Pow:
			return PowOf(b.base, MulOf(b.exp, exp))
		case *Mul:
			factors := make([]Expr, len(b.factors))
			for i, f := range b.factors {
				factors[i] = PowOf(f, exp)
			}
			return MulOf(factors...)
		}
	}
	return &Pow{base: base, exp: exp}
}

// numericPow folds number^number where the result is exact (or a Float when
// either side is a Float).
func numericPow(b *big.Rat, bFloat bool, exp Expr) (Expr, bool) {
	ev, eFloat, ok := ratOf(exp)
	if !ok {
		return nil, false
	}
	if b.Sign() == 0 {
		if ev.Sign() < 0 {
			return nil, false
		}
		return makeNumber(new(big.Rat), bFloat || eFloat), true
	}
	if ev.IsInt() && !eFloat {
		k := ev.Num()
		if k.IsInt64() && absInt64(k.Int64()) <= 1000 {
			return makeNumber(ratPowInt(b, k.Int64()), bFloat), true
		}
		return nil, false
	}
	if bFloat || eFloat {
		bf, _ := b.Float64()
		ef, _ := ev.Float64()
		if bf < 0 {
			return nil, false
		}
		return floatFromFloat64(math.Pow(bf, ef)), true
	}
	if b.Sign() < 0 {
		return nil, false
	}
	return rationalRootPow(b, ev)
}

func ratPowInt(b *big.Rat, k int64) *big.Rat {
	neg := k < 0
	if neg {
		k = -k
	}
	e := big.NewInt(k)
	num := new(big.Int).Exp(b.Num(), e, nil)
	den := new(big.Int).Exp(b.Denom(), e, nil)
	r := new(big.Rat).SetFrac(num, den)
	if neg {
		r.Inv(r)
	}
	return r
}

// rationalRootPow evaluates b^(p/q) for positive rational b, pulling perfect
// q-th powers out of the radical: 8^(1/2) = 2*2^(1/2).
func rationalRootPow(b, ev *big.Rat) (Expr, bool) {
	p := ev.Num()
	q := ev.Denom()
	if !p.IsInt64() || !q.IsInt64() || q.Int64() > 64 {
		return nil, false
	}
	pi, qi := p.Int64(), q.Int64()

	outNum, inNum, ok1 := extractRoot(b.Num(), qi)
	outDen, inDen, ok2 := extractRoot(b.Denom(), qi)
	if !ok1 || !ok2 {
		return nil, false
	}
	if outNum.Cmp(big.NewInt(1)) == 0 && outDen.Cmp(big.NewInt(1)) == 0 {
		// Nothing to pull out; split p/q = k + r/q when |p| > q.
		k := floorDiv(pi, qi)
		if k == 0 {
			return nil, false
		}
		r := pi - k*qi
		whole := ratPowInt(b, k)
		if r == 0 {
			return numFromRat(whole), true
		}
		return &Mul{factors: []Expr{numFromRat(whole), &Pow{base: numFromRat(b), exp: F(r, qi)}}}, true
	}
	outside := ratPowInt(new(big.Rat).SetFrac(outNum, outDen), pi)
	inside := new(big.Rat).SetFrac(inNum, inDen)
	if inside.Cmp(ratOne) == 0 {
		return numFromRat(outside), true
	}
	return MulOf(numFromRat(outside), PowOf(numFromRat(inside), F(pi, qi))), true
}

// extractRoot writes n = out^q * in with in free of q-th powers, using trial
// division for small n.
func extractRoot(n *big.Int, q int64) (out, in *big.Int, ok bool) {
	if !n.IsInt64() || n.Int64() > 1_000_000_000 {
		return nil, nil, false
	}
	rest := n.Int64()
	outV, inV := int64(1), int64(1)
	for d := int64(2); d*d <= rest; d++ {
		count := int64(0)
		for rest%d == 0 {
			rest /= d
			count++
		}
		for i := int64(0); i < count/q; i++ {
			outV *= d
		}
		for i := int64(0); i < count%q; i++ {
			inV *= d
		}
	}
	// whatever is left is a single prime
	inV *= rest
	return big.NewInt(outV), big.NewInt(inV), true
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func absInt64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func (p *Pow) String() string { return stringOf(p) }
func (p *Pow) LaTeX() string  { return latexOf(p, nil) }
func (p *Pow) Args() []Expr   { return []Expr{p.base, p.exp} }
func (p *Pow) withArgs(args []Expr) Expr {
	return PowOf(args[0], args[1])
}
func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}
func (p *Pow) exprType() string { return "pow" }
func (p *Pow) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "pow", "base": p.base.toJSON(), "exp": p.exp.toJSON()}
}
func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }

// ============================================================
// Relation: equation lhs = rhs
// ============================================================

type Relation struct{ lhs, rhs Expr }

func Eq(lhs, rhs Expr) Expr { return (&Relation{lhs: lhs, rhs: rhs}).Canonical() }

func (r *Relation) Canonical() Expr {
	return &Relation{lhs: r.lhs.Canonical(), rhs: r.rhs.Canonical()}
}
func (r *Relation) String() string { return stringOf(r) }
func (r *Relation) LaTeX() string  { return latexOf(r, nil) }
func (r *Relation) Args() []Expr   { return []Expr{r.lhs, r.rhs} }
func (r *Relation) withArgs(args []Expr) Expr {
	return Eq(args[0], args[1])
}
func (r *Relation) Equal(other Expr) bool {
	o, ok := other.(*Relation)
	return ok && r.lhs.Equal(o.lhs) && r.rhs.Equal(o.rhs)
}
func (r *Relation) exprType() string { return "eq" }
func (r *Relation) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "eq", "lhs": r.lhs.toJSON(), "rhs": r.rhs.toJSON()}
}
func (r *Relation) LHS() Expr { return r.lhs }
func (r *Relation) RHS() Expr { return r.rhs }

// ============================================================
// Set: ordered collection of alternatives
// ============================================================

type Set struct{ elems []Expr }

func SetOf(elems ...Expr) Expr { return (&Set{elems: elems}).Canonical() }

func (s *Set) Canonical() Expr {
	out := make([]Expr, len(s.elems))
	for i, e := range s.elems {
		out[i] = e.Canonical()
	}
	return &Set{elems: out}
}
func (s *Set) String() string { return stringOf(s) }
func (s *Set) LaTeX() string  { return latexOf(s, nil) }
func (s *Set) Args() []Expr   { return append([]Expr(nil), s.elems...) }
func (s *Set) withArgs(args []Expr) Expr {
	return SetOf(args...)
}
func (s *Set) Equal(other Expr) bool {
	o, ok := other.(*Set)
	if !ok || len(s.elems) != len(o.elems) {
		return false
	}
	for i := range s.elems {
		if !s.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}
func (s *Set) exprType() string { return "set" }
func (s *Set) toJSON() map[string]interface{} {
	es := make([]map[string]interface{}, len(s.elems))
	for i, e := range s.elems {
		es[i] = e.toJSON()
	}
	return map[string]interface{}{"type": "set", "elems": es}
}
func (s *Set) Elems() []Expr { return append([]Expr(nil), s.elems...) }
