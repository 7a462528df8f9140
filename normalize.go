package symeq

import "strings"

const absRewriteFeedback = "absolute value notation |...| was interpreted as Abs(...)"

// NormalizeAbsolute rewrites |...| into Abs(...). At most one pair is
// accepted; more pipes than that is an AmbiguousNotationError for side. A
// lone pipe has no partner and is left for the parser to reject. The second
// result reports whether anything was rewritten.
func NormalizeAbsolute(s string, side Side) (string, bool, error) {
	pipes := strings.Count(s, "|")
	if pipes == 0 {
		return s, false, nil
	}
	if pipes > 2 {
		return s, false, &AmbiguousNotationError{Side: side, Pipes: pipes}
	}

	// pair pipes left to right: inside flips on every pipe, and the pending
	// open position is only committed once its partner is seen
	type pair struct{ open, close int }
	var pairs []pair
	inside := false
	pending := -1
	for i := 0; i < len(s); i++ {
		if s[i] != '|' {
			continue
		}
		if !inside {
			pending = i
			inside = true
			continue
		}
		pairs = append(pairs, pair{open: pending, close: i})
		inside = false
		pending = -1
	}
	if len(pairs) == 0 {
		return s, false, nil
	}

	var sb strings.Builder
	last := 0
	for _, p := range pairs {
		sb.WriteString(s[last:p.open])
		sb.WriteString("Abs(")
		sb.WriteString(s[p.open+1 : p.close])
		sb.WriteString(")")
		last = p.close + 1
	}
	sb.WriteString(s[last:])
	return sb.String(), true, nil
}

// NormalizeAbsolutePair normalizes response and answer. The first side that
// is ambiguous aborts the pair, answer first.
func NormalizeAbsolutePair(response, answer string) (string, string, error) {
	ans, _, err := NormalizeAbsolute(answer, SideAnswer)
	if err != nil {
		return response, answer, err
	}
	res, _, err := NormalizeAbsolute(response, SideResponse)
	if err != nil {
		return response, answer, err
	}
	return res, ans, nil
}
