package symeq

import (
	"github.com/samber/lo"

	"github.com/njchilds90/symeq/cas"
)

// Params are the per-request options. Pointer fields are optional and fall
// back to the grader's ParseDefaults.
type Params struct {
	IsLatex      bool       `json:"is_latex,omitempty"`
	Symbols      SymbolDict `json:"symbols,omitempty"`
	Atol         *float64   `json:"atol,omitempty"`
	Rtol         *float64   `json:"rtol,omitempty"`
	StrictSyntax *bool      `json:"strict_syntax,omitempty"`
	Rationalise  *bool      `json:"rationalise,omitempty"`
	Simplify     *bool      `json:"simplify,omitempty"`
}

// ParseDefaults apply when a request leaves a parsing option unset.
type ParseDefaults struct {
	StrictSyntax bool
	Rationalise  bool
	Simplify     bool
}

// DefaultParseDefaults is strict syntax with no rationalization or
// simplification at parse time.
var DefaultParseDefaults = ParseDefaults{StrictSyntax: true}

func (p Params) parseConfig(d ParseDefaults, extra cas.Transformation) cas.ParseConfig {
	cfg := cas.DefaultParseConfig()
	if !lo.FromPtrOr(p.StrictSyntax, d.StrictSyntax) {
		cfg.Transformations |= cas.ImplicitMultiplication
	}
	cfg.Transformations |= extra
	cfg.Symbols = p.Symbols.Names()
	cfg.Rationalise = lo.FromPtrOr(p.Rationalise, d.Rationalise)
	cfg.Simplify = lo.FromPtrOr(p.Simplify, d.Simplify)
	cfg.Tolerance = cas.Tolerance{Atol: lo.FromPtr(p.Atol), Rtol: lo.FromPtr(p.Rtol)}
	return cfg
}
