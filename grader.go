// Package symeq grades mathematical answers: it normalizes notation, parses
// plain-text or LaTeX input and decides whether a response is equivalent to
// the expected answer under progressively stronger simplification.
package symeq

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/njchilds90/symeq/cas"
	"github.com/njchilds90/symeq/latex"
)

// Grader evaluates and previews responses. It is safe for concurrent use.
type Grader struct {
	engine   Engine
	bridge   Bridge
	logger   *slog.Logger
	defaults ParseDefaults
	stages   []RewriteStage
	tiers    []ComparisonTier
}

type Option func(*Grader)

func WithEngine(e Engine) Option           { return func(g *Grader) { g.engine = e } }
func WithBridge(b Bridge) Option           { return func(g *Grader) { g.bridge = b } }
func WithLogger(l *slog.Logger) Option     { return func(g *Grader) { g.logger = l } }
func WithDefaults(d ParseDefaults) Option  { return func(g *Grader) { g.defaults = d } }
func WithTiers(t ...ComparisonTier) Option { return func(g *Grader) { g.tiers = t } }
func WithStages(s ...RewriteStage) Option  { return func(g *Grader) { g.stages = s } }

func NewGrader(opts ...Option) *Grader {
	g := &Grader{
		engine:   casEngine{},
		bridge:   latexBridge{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		defaults: DefaultParseDefaults,
		stages:   DefaultStages(),
		tiers:    DefaultTiers(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGrader = NewGrader()

// Evaluate grades response against answer with the default grader.
func Evaluate(response, answer string, p Params) (*Result, error) {
	return defaultGrader.Evaluate(response, answer, p)
}

// Preview renders response with the default grader.
func Preview(response string, p Params) (*PreviewResult, error) {
	return defaultGrader.Preview(response, p)
}

// recoverInto turns an engine panic into an error on the calling operation.
func (g *Grader) recoverInto(err *error, op string) {
	if r := recover(); r != nil {
		g.logger.Warn("recovered engine panic", "op", op, "panic", r, "stack", string(debug.Stack()))
		*err = fmt.Errorf("%s: internal engine failure: %v", op, r)
	}
}

func (g *Grader) parse(text string, cfg cas.ParseConfig) (e cas.Expr, err error) {
	defer g.recoverInto(&err, "parse")
	return g.engine.Parse(text, cfg)
}

// parseLatexAtom returns the preferred (last) reading of src.
func (g *Grader) parseLatexAtom(src string, subs []latex.Substitution) (e cas.Expr, err error) {
	defer g.recoverInto(&err, "latex")
	candidates, err := g.bridge.Parse(src, subs)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("no reading of %q", src)
	}
	return candidates[len(candidates)-1], nil
}
