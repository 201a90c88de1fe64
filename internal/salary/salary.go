// Package salary normalizes free-text salary figures into absolute amounts.
//
// Inputs arrive in many Indian conventions: "5 lakh", "5lpa", "2.5 Cr",
// "5,00,000", or a bare number. Parse returns 0 for anything unparseable;
// zero is a signal, not an error.
package salary

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	lakh  = 100_000
	crore = 10_000_000
)

// Unit-suffixed forms must be tried before bare-numeric parsing, otherwise
// "5l" would parse as 5.
var (
	lakhPatterns = []*regexp.Regexp{
		regexp.MustCompile(`([\d.]+)\s*l(?:akh|akhs)?(?:\s*p\.?a\.?)?\b`),
		regexp.MustCompile(`([\d.]+)\s*lpa\b`),
		regexp.MustCompile(`([\d.]+)\s*l\b`),
	}
	crorePatterns = []*regexp.Regexp{
		regexp.MustCompile(`([\d.]+)\s*cr(?:ore|ores)?\b`),
		regexp.MustCompile(`([\d.]+)\s*c\b`),
	}
)

// Parse converts a free-text salary figure into an absolute amount.
// Priority order: lakh-unit forms, crore-unit forms, then a plain number with
// thousands separators stripped. Bare numbers below 1000 are treated as lakh
// figures; that heuristic matches how people quote salaries informally.
func Parse(raw string) float64 {
	if raw == "" {
		return 0
	}
	s := strings.ToLower(strings.TrimSpace(raw))
	for _, marker := range []string{"₹", "rs", "inr"} {
		s = strings.ReplaceAll(s, marker, "")
	}
	s = strings.TrimSpace(s)

	for _, re := range lakhPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return v * lakh
			}
		}
	}
	for _, re := range crorePatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				return v * crore
			}
		}
	}

	numeric := strings.ReplaceAll(strings.ReplaceAll(s, ",", ""), " ", "")
	v, err := strconv.ParseFloat(numeric, 64)
	if err != nil {
		return 0
	}
	switch {
	case v >= 1000:
		return v
	case v > 0:
		return v * lakh
	default:
		return 0
	}
}
