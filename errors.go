package symeq

import "fmt"

// Side names which input an error concerns.
type Side string

const (
	SideResponse Side = "response"
	SideAnswer   Side = "answer"
)

// AmbiguousNotationError is returned when an input holds more than one pair of
// absolute-value pipes, which cannot be paired reliably.
type AmbiguousNotationError struct {
	Side  Side
	Pipes int
}

func (e *AmbiguousNotationError) Error() string {
	if e.Side == SideAnswer {
		return "Notation in answer might be ambiguous, use Abs(.) instead of |.|"
	}
	return "Notation in response might be ambiguous, use Abs(.) instead of |.|"
}

// Code returns the machine-readable tag of the error.
func (e *AmbiguousNotationError) Code() string {
	if e.Side == SideAnswer {
		return "tooMany|InAnswer"
	}
	return "tooMany|InResponse"
}

// ExpressionParseError is returned when the symbolic engine cannot parse an
// input. Input is the exact text that failed; Feedback carries the notes
// gathered before the failure.
type ExpressionParseError struct {
	Side     Side
	Input    string
	Feedback []string
	Err      error
}

func (e *ExpressionParseError) Error() string {
	return fmt.Sprintf("`%s` could not be parsed as a mathematical expression. "+
		"Ensure that correct notation is used, that the expression is unambiguous "+
		"and that all parentheses are closed.", e.Input)
}

func (e *ExpressionParseError) Unwrap() error { return e.Err }

// SymbolParseError is returned when the LaTeX spelling of a declared symbol
// cannot be parsed. It keeps the message only.
type SymbolParseError struct {
	Symbol  string
	LaTeX   string
	Message string
}

func (e *SymbolParseError) Error() string {
	return fmt.Sprintf("Couldn't parse latex symbol %s to sympy symbol %s: %s", e.LaTeX, e.Symbol, e.Message)
}

// LatexParseError is returned when a LaTeX input cannot be parsed. It keeps
// the message only.
type LatexParseError struct {
	Input   string
	Message string
}

func (e *LatexParseError) Error() string { return e.Message }
