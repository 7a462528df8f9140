package symeq

import (
	"strconv"

	"github.com/njchilds90/symeq/cas"
)

// Level is the comparison tier at which two expressions became equal.
type Level int

const (
	LevelExpand Level = iota + 1
	LevelSimplify
	LevelTrigSimplify
)

// String returns the numeric tier, which is what results report.
func (l Level) String() string { return strconv.Itoa(int(l)) }

// Name returns the tier's symbolic name.
func (l Level) Name() string {
	switch l {
	case LevelExpand:
		return "EXPAND"
	case LevelSimplify:
		return "SIMPLIFY"
	case LevelTrigSimplify:
		return "TRIGSIMP"
	}
	return "UNKNOWN"
}

// ComparisonTier transforms both sides before a structural comparison.
type ComparisonTier struct {
	Level     Level
	Transform func(Engine, cas.Expr) cas.Expr
}

// RewriteStage runs once on both sides before any tier is tried.
type RewriteStage struct {
	Name  string
	Apply func(eng Engine, res, ans cas.Expr, cfg cas.ParseConfig) (cas.Expr, cas.Expr)
}

// DefaultTiers are tried in order; the first match wins.
func DefaultTiers() []ComparisonTier {
	return []ComparisonTier{
		{Level: LevelExpand, Transform: Engine.Expand},
		{Level: LevelSimplify, Transform: Engine.Simplify},
		{Level: LevelTrigSimplify, Transform: Engine.TrigSimplify},
	}
}

var reciprocalTrig = []string{"sec", "csc", "cot"}

// DefaultStages rewrite reciprocal trig functions into sin and cos when
// either side uses them, then rationalize decimals on both sides.
func DefaultStages() []RewriteStage {
	return []RewriteStage{
		{Name: "reciprocal_trig", Apply: rewriteReciprocalTrig},
		{Name: "decimals", Apply: rationalizeDecimals},
	}
}

func rewriteReciprocalTrig(eng Engine, res, ans cas.Expr, _ cas.ParseConfig) (cas.Expr, cas.Expr) {
	if !eng.Has(res, reciprocalTrig...) && !eng.Has(ans, reciprocalTrig...) {
		return res, ans
	}
	return eng.Rewrite(res, "sin"), eng.Rewrite(ans, "sin")
}

func rationalizeDecimals(eng Engine, res, ans cas.Expr, cfg cas.ParseConfig) (cas.Expr, cas.Expr) {
	return eng.Nsimplify(res, cfg.Tolerance), eng.Nsimplify(ans, cfg.Tolerance)
}

// Result is the outcome of grading one response.
type Result struct {
	IsCorrect     bool     `json:"is_correct"`
	Level         string   `json:"level,omitempty"`
	ResponseLatex string   `json:"response_latex"`
	Feedback      []string `json:"feedback,omitempty"`
}

// Evaluate grades response against answer. Parse failures come back as
// errors; an incorrect but well-formed response is a Result with IsCorrect
// false.
func (g *Grader) Evaluate(response, answer string, p Params) (out *Result, err error) {
	defer g.recoverInto(&err, "evaluate")

	response = NormalizeUnicode(response)
	answer = NormalizeUnicode(answer)
	if p.IsLatex {
		expr, err := g.ParseLatex(response, p.Symbols)
		if err != nil {
			return nil, err
		}
		response = expr.String()
	}
	response = substituteAliases(response, p.Symbols)
	answer = substituteAliases(answer, p.Symbols)

	var feedback []string
	normalized, answer, err := NormalizeAbsolutePair(response, answer)
	if err != nil {
		return nil, err
	}
	if normalized != response {
		feedback = append(feedback, absRewriteFeedback)
		response = normalized
	}

	cfg := p.parseConfig(g.defaults, 0)
	res, err := g.parse(response, cfg)
	if err != nil {
		return nil, &ExpressionParseError{Side: SideResponse, Input: response, Err: err}
	}
	ans, err := g.parse(answer, cfg)
	if err != nil {
		return nil, &ExpressionParseError{Side: SideAnswer, Input: answer, Err: err}
	}

	out = &Result{ResponseLatex: g.engine.LaTeX(res, p.Symbols.LaTeXNames()), Feedback: feedback}
	if level, ok := g.compare(res, ans, cfg); ok {
		out.IsCorrect = true
		out.Level = level.String()
	}
	g.logger.Debug("evaluated response",
		"response", response, "answer", answer, "is_correct", out.IsCorrect, "level", out.Level)
	return out, nil
}

// Compare reports whether two parsed expressions are equivalent and at which
// tier. The grader's rewrite stages run first.
func (g *Grader) Compare(res, ans cas.Expr, p Params) (level Level, ok bool, err error) {
	defer g.recoverInto(&err, "compare")
	level, ok = g.compare(res, ans, p.parseConfig(g.defaults, 0))
	return level, ok, nil
}

func (g *Grader) compare(res, ans cas.Expr, cfg cas.ParseConfig) (Level, bool) {
	for _, stage := range g.stages {
		res, ans = stage.Apply(g.engine, res, ans, cfg)
		g.logger.Debug("rewrite stage", "stage", stage.Name, "response", res.String(), "answer", ans.String())
	}
	for _, tier := range g.tiers {
		if tier.Transform(g.engine, res).Equal(tier.Transform(g.engine, ans)) {
			return tier.Level, true
		}
	}
	return 0, false
}
