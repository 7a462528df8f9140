package cas

import (
	"math"
	"math/big"
)

// ============================================================
// Func: named unary function
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func FuncOf(name string, arg Expr) Expr { return (&Func{name: name, arg: arg}).Canonical() }

func SinOf(arg Expr) Expr  { return FuncOf("sin", arg) }
func CosOf(arg Expr) Expr  { return FuncOf("cos", arg) }
func TanOf(arg Expr) Expr  { return FuncOf("tan", arg) }
func SecOf(arg Expr) Expr  { return FuncOf("sec", arg) }
func CscOf(arg Expr) Expr  { return FuncOf("csc", arg) }
func CotOf(arg Expr) Expr  { return FuncOf("cot", arg) }
func ExpOf(arg Expr) Expr  { return FuncOf("exp", arg) }
func LnOf(arg Expr) Expr   { return FuncOf("ln", arg) }
func AbsOf(arg Expr) Expr  { return FuncOf("abs", arg) }
func SignOf(arg Expr) Expr { return FuncOf("sign", arg) }

var (
	oddFuncs  = map[string]bool{"sin": true, "tan": true, "cot": true, "csc": true, "asin": true, "atan": true, "sinh": true, "tanh": true, "sign": true}
	evenFuncs = map[string]bool{"cos": true, "sec": true, "cosh": true, "abs": true}
)

var halfPi = &Mul{factors: []Expr{F(1, 2), Pi}}

// specialValues holds exact values keyed by the printed argument.
var specialValues = map[string]map[string]Expr{
	"sin":  {"0": N(0), "pi": N(0), "pi/2": N(1), "2*pi": N(0), "pi/6": F(1, 2)},
	"cos":  {"0": N(1), "pi": N(-1), "pi/2": N(0), "2*pi": N(1), "pi/3": F(1, 2)},
	"tan":  {"0": N(0), "pi": N(0), "pi/4": N(1)},
	"sec":  {"0": N(1), "pi": N(-1)},
	"cot":  {"pi/2": N(0), "pi/4": N(1)},
	"csc":  {"pi/2": N(1)},
	"asin": {"0": N(0), "1": halfPi},
	"acos": {"1": N(0), "0": halfPi},
	"atan": {"0": N(0), "1": &Mul{factors: []Expr{F(1, 4), Pi}}},
	"sinh": {"0": N(0)},
	"cosh": {"0": N(1)},
	"tanh": {"0": N(0)},
	"exp":  {"0": N(1), "1": EulerE},
	"ln":   {"1": N(0), "E": N(1)},
}

var floatFuncs = map[string]func(float64) float64{
	"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
	"sec":  func(x float64) float64 { return 1 / math.Cos(x) },
	"csc":  func(x float64) float64 { return 1 / math.Sin(x) },
	"cot":  func(x float64) float64 { return 1 / math.Tan(x) },
	"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
	"sinh": math.Sinh, "cosh": math.Cosh, "tanh": math.Tanh,
	"exp": math.Exp, "ln": math.Log, "abs": math.Abs,
	"floor": math.Floor, "ceil": math.Ceil,
}

func (f *Func) Canonical() Expr {
	arg := f.arg.Canonical()

	if negArg, ok := extractMinus(arg); ok {
		if oddFuncs[f.name] {
			return MulOf(N(-1), FuncOf(f.name, negArg))
		}
		if evenFuncs[f.name] {
			return FuncOf(f.name, negArg)
		}
	}

	if vals, ok := specialValues[f.name]; ok {
		if v, ok := vals[arg.String()]; ok {
			return v
		}
	}

	switch f.name {
	case "exp":
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}
	case "ln":
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "abs":
		if inner, ok := arg.(*Func); ok && inner.name == "abs" {
			return inner
		}
		if n, ok := arg.(*Num); ok {
			return numFromRat(new(big.Rat).Abs(n.val))
		}
	case "sign":
		if n, ok := arg.(*Num); ok {
			return N(int64(n.val.Sign()))
		}
	case "floor", "ceil":
		if n, ok := arg.(*Num); ok {
			return N(roundRat(n.val, f.name == "ceil"))
		}
	case "factorial":
		if n, ok := arg.(*Num); ok && n.IsInteger() && n.val.Sign() >= 0 && n.val.Num().Int64() <= 170 {
			return &Num{val: new(big.Rat).SetInt(new(big.Int).MulRange(1, n.val.Num().Int64()))}
		}
	}

	if fl, ok := arg.(*Float); ok {
		if fn, ok := floatFuncs[f.name]; ok {
			v := fn(fl.Float64())
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				return floatFromFloat64(v)
			}
		}
	}
	return &Func{name: f.name, arg: arg}
}

// extractMinus returns -arg when arg carries an explicit negative sign.
func extractMinus(arg Expr) (Expr, bool) {
	switch v := arg.(type) {
	case *Num:
		if v.IsNegative() {
			return numFromRat(new(big.Rat).Neg(v.val)), true
		}
	case *Float:
		if v.val.Sign() < 0 {
			return floatFromRat(new(big.Rat).Neg(v.val)), true
		}
	case *Mul:
		if c, _, ok := ratOf(v.factors[0]); ok && c.Sign() < 0 {
			return MulOf(N(-1), v), true
		}
	}
	return nil, false
}

func roundRat(r *big.Rat, up bool) int64 {
	q, m := new(big.Int).QuoRem(r.Num(), r.Denom(), new(big.Int))
	if m.Sign() != 0 {
		if up && r.Sign() > 0 {
			q.Add(q, big.NewInt(1))
		}
		if !up && r.Sign() < 0 {
			q.Sub(q, big.NewInt(1))
		}
	}
	return q.Int64()
}

func (f *Func) String() string { return stringOf(f) }
func (f *Func) LaTeX() string  { return latexOf(f, nil) }
func (f *Func) Args() []Expr   { return []Expr{f.arg} }
func (f *Func) withArgs(args []Expr) Expr {
	return FuncOf(f.name, args[0])
}
func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}
func (f *Func) exprType() string { return "func" }
func (f *Func) toJSON() map[string]interface{} {
	return map[string]interface{}{"type": "func", "name": f.name, "arg": f.arg.toJSON()}
}
func (f *Func) Name() string { return f.name }
func (f *Func) Arg() Expr    { return f.arg }
