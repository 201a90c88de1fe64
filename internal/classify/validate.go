package classify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dhruvimehta17/pay-parity/internal/domain"
)

// placeholderTitles are throwaway strings users type instead of a real role.
var placeholderTitles = map[string]struct{}{
	"hi": {}, "bye": {}, "hello": {}, "test": {}, "aaa": {}, "asdf": {},
	"qwerty": {}, "sample": {}, "random": {}, "none": {}, "na": {},
	"idk": {}, "job": {}, "title": {}, "work": {}, "employee": {},
	"abcd": {}, "xyz": {}, "xyz123": {},
}

var (
	hasLetterRe      = regexp.MustCompile(`[a-z]`)
	shortGibberishRe = regexp.MustCompile(`^[a-z]{2,4}$`)
	alphaThenDigitRe = regexp.MustCompile(`^[a-z]+\d+$`)
)

// ValidateTitle rejects titles that cannot name a real professional role:
// empty or very short strings, strings without letters, known placeholders,
// 2-4 letter gibberish, and alphabetic-then-numeric tokens such as "abc123".
// The returned error wraps domain.ErrInvalidTitle.
func ValidateTitle(jobTitle string) error {
	t := strings.ToLower(strings.TrimSpace(jobTitle))
	invalid := t == "" ||
		len(t) < 3 ||
		!hasLetterRe.MatchString(t) ||
		hasPlaceholder(t) ||
		shortGibberishRe.MatchString(t) ||
		alphaThenDigitRe.MatchString(t)
	if invalid {
		return fmt.Errorf("%w: %q", domain.ErrInvalidTitle, jobTitle)
	}
	return nil
}

func hasPlaceholder(t string) bool {
	_, ok := placeholderTitles[t]
	return ok
}
