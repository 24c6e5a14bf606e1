package plugin

import (
	"strconv"
	"strings"
)

// ParseInt parses an integer answer. Surrounding whitespace is ignored.
func ParseInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CheckInt judges an integer answer against want. Unparseable input is
// OutcomeInvalidInput. reveal is returned in every case.
func CheckInt(raw string, want int, reveal string) Result {
	n, ok := ParseInt(raw)
	switch {
	case !ok:
		return Result{Outcome: OutcomeInvalidInput, Reveal: reveal}
	case n == want:
		return Result{Outcome: OutcomeCorrect, Reveal: reveal}
	default:
		return Result{Outcome: OutcomeWrong, Reveal: reveal}
	}
}

// NormalizeText lowercases s and collapses runs of whitespace.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// StripSpace removes all whitespace from s.
func StripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
