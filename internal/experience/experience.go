// Package experience derives years of experience for a specific role from
// narrative date ranges in resume text.
package experience

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/dhruvimehta17/pay-parity/internal/domain"
)

const (
	// window is how many characters around a date range are inspected for
	// job-title keywords.
	window = 120
	// maxYears caps any estimate; beyond this the input is noise.
	maxYears = 60.0
)

var months = map[string]int{
	"jan": 1, "january": 1, "feb": 2, "february": 2, "mar": 3, "march": 3,
	"apr": 4, "april": 4, "may": 5, "jun": 6, "june": 6, "jul": 7, "july": 7,
	"aug": 8, "august": 8, "sep": 9, "september": 9, "oct": 10, "october": 10,
	"nov": 11, "november": 11, "dec": 12, "december": 12,
}

var (
	rangeRe     = regexp.MustCompile(`([A-Za-z]{3,9}\s+\d{4}|\d{4})\s*[-–—]\s*([A-Za-z]{3,9}\s+\d{4}|\d{4}|Present|present)`)
	monthYearRe = regexp.MustCompile(`([A-Za-z]+)\s*,?\s*(\d{4})`)
	yearRe      = regexp.MustCompile(`\d{4}`)
	tokenRe     = regexp.MustCompile(`[A-Za-z0-9\-\+\.]+`)
)

// genericRoleKeywords trigger the coarse whole-career fallback when no range
// matched the title directly.
var genericRoleKeywords = []string{"developer", "engineer", "analyst", "intern", "manager"}

// now is stubbed in tests.
var now = time.Now

func parseYear(s string) int {
	y, err := strconv.Atoi(s)
	if err != nil || y < 1900 || y > 2100 {
		return 0
	}
	return y
}

// parseEndpoint reads "<Month> <Year>" or a bare year from one side of a
// range. Month 0 means unknown.
func parseEndpoint(part string) (year, month int) {
	part = strings.TrimSpace(part)
	if m := monthYearRe.FindStringSubmatch(part); m != nil {
		return parseYear(m[2]), months[strings.ToLower(m[1])]
	}
	if m := yearRe.FindString(part); m != "" {
		return parseYear(m), 0
	}
	return 0, 0
}

// FindDateRanges scans text for "<Month Year | Year> - <Month Year | Year |
// Present>" spans. Each result carries a textual window for role matching.
func FindDateRanges(text string) []domain.DateRange {
	var ranges []domain.DateRange
	for _, idx := range rangeRe.FindAllStringSubmatchIndex(text, -1) {
		left := text[idx[2]:idx[3]]
		right := text[idx[4]:idx[5]]

		sy, sm := parseEndpoint(left)
		var ey, em int
		if strings.EqualFold(right, "present") {
			t := now()
			ey, em = t.Year(), int(t.Month())
		} else {
			ey, em = parseEndpoint(right)
		}
		if sy == 0 || ey == 0 {
			continue
		}
		lo := idx[0] - window
		if lo < 0 {
			lo = 0
		}
		hi := idx[1] + window
		if hi > len(text) {
			hi = len(text)
		}
		ranges = append(ranges, domain.DateRange{
			StartYear:  sy,
			StartMonth: sm,
			EndYear:    ey,
			EndMonth:   em,
			Span:       text[lo:hi],
			StartIndex: idx[0],
			EndIndex:   idx[1],
		})
	}
	return ranges
}

// Estimate computes years of experience for the given job title.
//
// Each discovered date range counts when any title keyword appears in its
// surrounding window. Matched ranges are summed without de-overlap:
// concurrent roles both count. When nothing matched but the title names a
// generic employment role, the whole-career span across all ranges is used
// as a coarse estimate. The result is clamped to [0, 60] and rounded to two
// decimals.
func Estimate(text, jobTitle string) float64 {
	if text == "" {
		return 0
	}
	ranges := FindDateRanges(text)
	keywords := titleKeywords(jobTitle)

	var matched []float64
	for _, r := range ranges {
		span := strings.ToLower(r.Span)
		for _, kw := range keywords {
			if strings.Contains(span, kw) {
				matched = append(matched, round2(float64(spanMonths(r))/12.0))
				break
			}
		}
	}

	if len(matched) == 0 {
		if hasGenericRole(jobTitle) && len(ranges) > 0 {
			minStart, maxEnd := ranges[0].StartYear, ranges[0].EndYear
			for _, r := range ranges[1:] {
				if r.StartYear < minStart {
					minStart = r.StartYear
				}
				if r.EndYear > maxEnd {
					maxEnd = r.EndYear
				}
			}
			return clamp(round2(float64(maxEnd - minStart)))
		}
		return 0
	}

	var total float64
	for _, y := range matched {
		total += y
	}
	return clamp(round2(total))
}

// spanMonths counts months in a range. When both endpoints carry a known
// month the count is inclusive, so Jan 2018 - Dec 2020 is 36 months; bare
// year endpoints fall back to plain year arithmetic.
func spanMonths(r domain.DateRange) int {
	m := (r.EndYear-r.StartYear)*12 + (r.EndMonth - r.StartMonth)
	if r.StartMonth > 0 && r.EndMonth > 0 {
		m++
	}
	return m
}

func titleKeywords(title string) []string {
	var out []string
	for _, tok := range tokenRe.FindAllString(title, -1) {
		out = append(out, strings.ToLower(tok))
	}
	return out
}

func hasGenericRole(title string) bool {
	t := strings.ToLower(title)
	for _, kw := range genericRoleKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > maxYears {
		return maxYears
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
