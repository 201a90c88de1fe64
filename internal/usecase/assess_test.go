package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvimehta17/pay-parity/internal/classify"
	"github.com/dhruvimehta17/pay-parity/internal/domain"
)

type fakeAcquirer struct {
	doc   domain.ExtractedDocument
	calls int
}

func (f *fakeAcquirer) Extract(_ context.Context, _ []byte, _ string) domain.ExtractedDocument {
	f.calls++
	return f.doc
}

type fakeFields struct {
	fields domain.ExtractedFields
	err    error
	calls  int
}

func (f *fakeFields) ExtractFields(_ context.Context, _ string) (domain.ExtractedFields, error) {
	f.calls++
	return f.fields, f.err
}

type fakeLookup struct {
	snippet string
	err     error
	calls   int
}

func (f *fakeLookup) Snippet(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.snippet, f.err
}

type fakePredictor struct {
	logSalary float64
	err       error
	calls     int
	last      domain.CandidateProfile
}

func (f *fakePredictor) PredictLogSalary(_ context.Context, p domain.CandidateProfile) (float64, error) {
	f.calls++
	f.last = p
	return f.logSalary, f.err
}

type fakePeers struct {
	peers []domain.PeerRecord
	calls int
}

func (f *fakePeers) FindPeers(_ string, _ float64) []domain.PeerRecord {
	f.calls++
	return f.peers
}

// logForAdjusted returns the model output that makes the adjusted estimate
// come out to want after scaling and experience compounding.
func logForAdjusted(want, scale, expYears float64) float64 {
	return math.Log1p(want / scale / math.Pow(1.12, expYears))
}

func newService(acq *fakeAcquirer, fld *fakeFields, lk *fakeLookup, pr *fakePredictor, pe *fakePeers) *AssessService {
	rules, err := classify.NewRuleset()
	if err != nil {
		panic(err)
	}
	return NewAssessService(acq, fld, lk, pr, pe, rules)
}

func resumeText() string {
	return strings.Repeat("Software Engineer at Acme. ", 5) + "Jan 2018 - Dec 2020. Built services in Go."
}

func TestAssessProfileVerdicts(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name          string
		currentSalary string
		wantStatus    string
	}{
		{name: "underpaid below lower bound", currentSalary: "899999", wantStatus: domain.VerdictUnderpaid},
		{name: "fair at lower bound", currentSalary: "900000", wantStatus: domain.VerdictFair},
		{name: "fair at prediction", currentSalary: "1000000", wantStatus: domain.VerdictFair},
		{name: "fair at upper bound", currentSalary: "1100000", wantStatus: domain.VerdictFair},
		{name: "overpaid above upper bound", currentSalary: "1100001", wantStatus: domain.VerdictOverpaid},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			fld := &fakeFields{fields: domain.ExtractedFields{
				JobTitle:             "Software Engineer",
				Skills:               "python, go, sql",
				TotalExperienceYears: 5,
			}}
			pr := &fakePredictor{logSalary: logForAdjusted(1_000_000, 1.0, 5)}
			svc := newService(nil, fld, &fakeLookup{snippet: strings.Repeat("engineer ", 10)}, pr, &fakePeers{})

			out, err := svc.AssessProfile(context.Background(), AssessProfileInput{
				ProfileID:     "someone",
				CurrentSalary: tc.currentSalary,
			})
			require.NoError(t, err)
			require.NotNil(t, out.Comparison)
			assert.Equal(t, tc.wantStatus, out.Comparison.Status)
			assert.InDelta(t, 1_000_000, out.PredictedSalary, 1)
		})
	}
}

func TestAssessProfileFresher(t *testing.T) {
	t.Parallel()
	fld := &fakeFields{fields: domain.ExtractedFields{
		JobTitle: "Data Analyst",
		Skills:   "sql, excel",
	}}
	pr := &fakePredictor{logSalary: logForAdjusted(400_000, 1.0, 0)}
	svc := newService(nil, fld, &fakeLookup{snippet: strings.Repeat("analyst ", 10)}, pr, &fakePeers{})

	out, err := svc.AssessProfile(context.Background(), AssessProfileInput{ProfileID: "someone"})
	require.NoError(t, err)
	require.NotNil(t, out.Comparison)
	assert.Equal(t, domain.VerdictFresh, out.Comparison.Status)
	assert.Contains(t, out.Comparison.Message, "starting salary")
}

func TestAssessProfileNoSalaryNoComparison(t *testing.T) {
	t.Parallel()
	fld := &fakeFields{fields: domain.ExtractedFields{
		JobTitle:             "Software Engineer",
		Skills:               "go",
		TotalExperienceYears: 4,
	}}
	pr := &fakePredictor{logSalary: logForAdjusted(1_000_000, 1.0, 4)}
	svc := newService(nil, fld, &fakeLookup{snippet: strings.Repeat("engineer ", 10)}, pr, &fakePeers{})

	out, err := svc.AssessProfile(context.Background(), AssessProfileInput{ProfileID: "someone"})
	require.NoError(t, err)
	assert.Nil(t, out.Comparison)
}

func TestAssessResumeFullPipeline(t *testing.T) {
	t.Parallel()
	acq := &fakeAcquirer{doc: domain.ExtractedDocument{Text: resumeText(), Format: "pdf"}}
	fld := &fakeFields{fields: domain.ExtractedFields{
		JobTitle:       "Software Engineer",
		Skills:         "go, python",
		EducationLevel: "Masters",
		Location:       "Bangalore",
	}}
	pr := &fakePredictor{logSalary: math.Log1p(800_000)}
	pe := &fakePeers{peers: []domain.PeerRecord{{JobTitle: "Software Engineer", Salary: 950000}}}
	svc := newService(acq, fld, &fakeLookup{}, pr, pe)

	out, err := svc.AssessResume(context.Background(), AssessResumeInput{
		FileData: []byte("%PDF"),
		Filename: "resume.pdf",
	})
	require.NoError(t, err)

	// Jan 2018 - Dec 2020 next to the title is three years of experience.
	assert.InDelta(t, 3.0, out.ParsedInfo.ExperienceYears, 0.001)
	assert.Equal(t, "Software Engineer", out.ParsedInfo.JobTitle)
	assert.Equal(t, "Tech", out.ParsedInfo.Category)
	assert.Equal(t, "Masters", out.ParsedInfo.EducationLevel)

	wantAdjusted := 800_000 * math.Pow(1.12, 3)
	assert.InDelta(t, wantAdjusted, out.PredictedSalary, 1)
	assert.Len(t, out.Peers, 1)
	assert.Equal(t, 1, pr.calls)
	assert.Equal(t, domain.SourceResumeUpload, pr.last.DataSource)
}

func TestAssessResumeUserTitleWins(t *testing.T) {
	t.Parallel()
	acq := &fakeAcquirer{doc: domain.ExtractedDocument{Text: resumeText()}}
	fld := &fakeFields{fields: domain.ExtractedFields{JobTitle: "Intern", Skills: "go"}}
	pr := &fakePredictor{logSalary: math.Log1p(500_000)}
	svc := newService(acq, fld, &fakeLookup{}, pr, &fakePeers{})

	out, err := svc.AssessResume(context.Background(), AssessResumeInput{
		FileData: []byte("x"),
		Filename: "resume.txt",
		JobTitle: "Software Engineer",
	})
	require.NoError(t, err)
	assert.Equal(t, "Software Engineer", out.ParsedInfo.JobTitle)
}

func TestAssessResumeInvalidTitleBeforeAnyUpstreamCall(t *testing.T) {
	t.Parallel()
	acq := &fakeAcquirer{doc: domain.ExtractedDocument{Text: resumeText()}}
	fld := &fakeFields{}
	pr := &fakePredictor{}
	svc := newService(acq, fld, &fakeLookup{}, pr, &fakePeers{})

	_, err := svc.AssessResume(context.Background(), AssessResumeInput{
		FileData: []byte("x"),
		Filename: "resume.txt",
		JobTitle: "xyz123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)
	assert.Zero(t, acq.calls)
	assert.Zero(t, fld.calls)
	assert.Zero(t, pr.calls)
}

func TestAssessResumeVagueDerivedTitleRejected(t *testing.T) {
	t.Parallel()
	acq := &fakeAcquirer{doc: domain.ExtractedDocument{Text: resumeText()}}
	// The extracted title classifies into no known domain.
	fld := &fakeFields{fields: domain.ExtractedFields{JobTitle: "Wanderer", Skills: "hiking"}}
	pr := &fakePredictor{}
	svc := newService(acq, fld, &fakeLookup{}, pr, &fakePeers{})

	_, err := svc.AssessResume(context.Background(), AssessResumeInput{
		FileData: []byte("x"),
		Filename: "resume.txt",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTitle)
	assert.Zero(t, pr.calls)
}

func TestAssessResumeExtractionTooShort(t *testing.T) {
	t.Parallel()
	acq := &fakeAcquirer{doc: domain.ExtractedDocument{Text: "too short", CharCount: 9}}
	svc := newService(acq, &fakeFields{}, &fakeLookup{}, &fakePredictor{}, &fakePeers{})

	_, err := svc.AssessResume(context.Background(), AssessResumeInput{
		FileData: []byte("x"),
		Filename: "blank.pdf",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestAssessMismatchedTitleAndSkills(t *testing.T) {
	t.Parallel()
	fld := &fakeFields{fields: domain.ExtractedFields{
		JobTitle:             "Doctor",
		Skills:               "python, react, sql",
		TotalExperienceYears: 5,
	}}
	pr := &fakePredictor{}
	svc := newService(nil, fld, &fakeLookup{snippet: strings.Repeat("doctor ", 10)}, pr, &fakePeers{})

	out, err := svc.AssessProfile(context.Background(), AssessProfileInput{ProfileID: "someone"})
	require.NoError(t, err)
	assert.Equal(t, "0 - 4 LPA", out.PredictedSalaryBand)
	require.NotNil(t, out.Comparison)
	assert.Equal(t, domain.VerdictMismatch, out.Comparison.Status)
	assert.Contains(t, out.Comparison.Reason, "healthcare")
	assert.Contains(t, out.Comparison.Reason, "tech")
	assert.Empty(t, out.Peers)
	assert.Zero(t, pr.calls)
}

func TestAssessPredictorFailureDegrades(t *testing.T) {
	t.Parallel()
	fld := &fakeFields{fields: domain.ExtractedFields{
		JobTitle:             "Software Engineer",
		Skills:               "go",
		TotalExperienceYears: 3,
	}}
	pr := &fakePredictor{err: fmt.Errorf("%w: model down", domain.ErrUpstreamTimeout)}
	pe := &fakePeers{peers: []domain.PeerRecord{{JobTitle: "Software Engineer", Salary: 800000}}}
	svc := newService(nil, fld, &fakeLookup{snippet: strings.Repeat("engineer ", 10)}, pr, pe)

	out, err := svc.AssessProfile(context.Background(), AssessProfileInput{ProfileID: "someone"})
	require.NoError(t, err)
	assert.Zero(t, out.PredictedSalary)
	assert.Nil(t, out.Comparison)
	assert.Len(t, out.Peers, 1)
}

func TestAssessProfileLookupFailureDegrades(t *testing.T) {
	t.Parallel()
	fld := &fakeFields{}
	pr := &fakePredictor{logSalary: math.Log1p(600_000)}
	svc := newService(nil, fld, &fakeLookup{err: fmt.Errorf("search down")}, pr, &fakePeers{})

	out, err := svc.AssessProfile(context.Background(), AssessProfileInput{
		ProfileID: "someone",
		JobTitle:  "Software Engineer",
	})
	require.NoError(t, err)
	assert.Zero(t, fld.calls)
	assert.Equal(t, "Software Engineer", out.ParsedInfo.JobTitle)
	assert.Equal(t, "Bachelors", out.ParsedInfo.EducationLevel)
}

func TestAssessSalaryCeiling(t *testing.T) {
	t.Parallel()
	fld := &fakeFields{fields: domain.ExtractedFields{
		JobTitle:             "Software Engineer",
		Skills:               "go",
		TotalExperienceYears: 30,
	}}
	pr := &fakePredictor{logSalary: math.Log1p(5_000_000)}
	svc := newService(nil, fld, &fakeLookup{snippet: strings.Repeat("engineer ", 10)}, pr, &fakePeers{})

	out, err := svc.AssessProfile(context.Background(), AssessProfileInput{ProfileID: "someone"})
	require.NoError(t, err)
	assert.InDelta(t, 6_000_000, out.PredictedSalary, 0.001)
}

func TestAssessCategoryScaleApplied(t *testing.T) {
	t.Parallel()
	fld := &fakeFields{fields: domain.ExtractedFields{
		JobTitle:             "School Teacher",
		Skills:               "education, school",
		TotalExperienceYears: 2,
	}}
	pr := &fakePredictor{logSalary: math.Log1p(1_000_000)}
	svc := newService(nil, fld, &fakeLookup{snippet: strings.Repeat("teacher ", 10)}, pr, &fakePeers{})

	out, err := svc.AssessProfile(context.Background(), AssessProfileInput{ProfileID: "someone"})
	require.NoError(t, err)
	want := 1_000_000 * 0.7 * math.Pow(1.12, 2)
	assert.InDelta(t, want, out.PredictedSalary, 1)
}

func TestFormatAmount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "1,762,342", formatAmount(1762341.68))
	assert.Equal(t, "900", formatAmount(900))
	assert.Equal(t, "0", formatAmount(0))
}
