// Package usecase contains the application services: the assessment engine
// orchestrating the extraction pipeline, and the negotiation-coach chat
// proxy.
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/dhruvimehta17/pay-parity/internal/adapter/observability"
	"github.com/dhruvimehta17/pay-parity/internal/classify"
	"github.com/dhruvimehta17/pay-parity/internal/domain"
	"github.com/dhruvimehta17/pay-parity/internal/experience"
	"github.com/dhruvimehta17/pay-parity/internal/salary"
)

const (
	// minTextChars is the minimum extracted text length for a resume to be
	// assessable at all.
	minTextChars = 50
	// salaryCeiling bounds the adjusted estimate.
	salaryCeiling = 6_000_000
	// experienceCompound compounds the base prediction per year of
	// experience for the role.
	experienceCompound = 1.12
	// fairBand is the tolerance around the adjusted estimate treated as
	// market-aligned.
	fairBand = 0.1
	// mismatchBand is the nominal band returned on a title/skills domain
	// mismatch instead of a numeric estimate.
	mismatchBand = "0 - 4 LPA"

	defaultTitle     = "Other"
	defaultEducation = "Bachelors"
	defaultLocation  = "Other"
)

// AssessResumeInput carries one uploaded-resume assessment request.
type AssessResumeInput struct {
	FileData      []byte
	Filename      string
	JobTitle      string
	CurrentSalary string
}

// AssessProfileInput carries one profile-lookup assessment request.
type AssessProfileInput struct {
	ProfileID     string
	JobTitle      string
	CurrentSalary string
}

// AssessService orchestrates acquisition, field extraction, validation,
// prediction, scaling, comparison and peer retrieval.
type AssessService struct {
	Acquirer  domain.TextAcquirer
	Fields    domain.FieldExtractor
	Lookup    domain.ProfileLookup
	Predictor domain.SalaryPredictor
	Peers     domain.PeerFinder
	Rules     *classify.Ruleset
}

// NewAssessService wires the assessment engine.
func NewAssessService(acquirer domain.TextAcquirer, fields domain.FieldExtractor, lookup domain.ProfileLookup, predictor domain.SalaryPredictor, peers domain.PeerFinder, rules *classify.Ruleset) *AssessService {
	return &AssessService{Acquirer: acquirer, Fields: fields, Lookup: lookup, Predictor: predictor, Peers: peers, Rules: rules}
}

// AssessResume runs the full pipeline for an uploaded document.
func (s *AssessService) AssessResume(ctx context.Context, in AssessResumeInput) (domain.Assessment, error) {
	// A user-supplied title is validated before any external call; garbage
	// input should not cost an extraction or an AI round trip.
	if t := strings.TrimSpace(in.JobTitle); t != "" {
		if err := s.validateTitle(t); err != nil {
			return domain.Assessment{}, err
		}
	}

	currentSalary := salary.Parse(in.CurrentSalary)

	doc := s.Acquirer.Extract(ctx, in.FileData, in.Filename)
	if len(strings.TrimSpace(doc.Text)) < minTextChars {
		return domain.Assessment{}, fmt.Errorf(
			"%w: unable to extract text from resume (only %d characters extracted); supported formats: PDF, DOCX, TXT, PNG, JPG, JPEG",
			domain.ErrExtractionFailed, doc.CharCount)
	}

	fields := s.extractFields(ctx, doc.Text)
	title := resolveTitle(in.JobTitle, fields.JobTitle)
	expYears := experience.Estimate(doc.Text, title)

	return s.finish(ctx, assessment{
		title:         title,
		skills:        fields.Skills,
		education:     withDefault(fields.EducationLevel, defaultEducation),
		location:      withDefault(fields.Location, defaultLocation),
		expYears:      expYears,
		currentSalary: currentSalary,
		source:        domain.SourceResumeUpload,
	})
}

// AssessProfile runs the pipeline for an external profile lookup. The
// lookup snippet replaces document text, and experience comes from the
// extracted fields rather than date-range analysis.
func (s *AssessService) AssessProfile(ctx context.Context, in AssessProfileInput) (domain.Assessment, error) {
	if t := strings.TrimSpace(in.JobTitle); t != "" {
		if err := s.validateTitle(t); err != nil {
			return domain.Assessment{}, err
		}
	}

	currentSalary := salary.Parse(in.CurrentSalary)

	var fields domain.ExtractedFields
	snippet, err := s.Lookup.Snippet(ctx, in.ProfileID)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("profile lookup failed, proceeding with defaults",
			slog.Any("error", err))
	} else if snippet != "" {
		fields = s.extractFields(ctx, snippet)
	}

	return s.finish(ctx, assessment{
		title:         resolveTitle(in.JobTitle, fields.JobTitle),
		skills:        fields.Skills,
		education:     withDefault(fields.EducationLevel, defaultEducation),
		location:      withDefault(fields.Location, defaultLocation),
		expYears:      clampYears(fields.TotalExperienceYears),
		currentSalary: currentSalary,
		source:        domain.SourceProfileLookup,
	})
}

type assessment struct {
	title         string
	skills        string
	education     string
	location      string
	expYears      float64
	currentSalary float64
	source        string
}

// finish validates the derived title, checks domain consistency, predicts,
// scales, compares and retrieves peers.
func (s *AssessService) finish(ctx context.Context, a assessment) (domain.Assessment, error) {
	lg := observability.LoggerFromContext(ctx)

	if err := s.validateTitle(a.title); err != nil {
		observability.AssessmentsTotal.WithLabelValues("invalid_title", a.source).Inc()
		return domain.Assessment{}, err
	}

	if mismatch, titleDomain, skillsDomain := s.Rules.Mismatch(a.title, a.skills); mismatch {
		lg.Info("domain mismatch detected",
			slog.String("title_domain", titleDomain),
			slog.String("skills_domain", skillsDomain))
		observability.AssessmentsTotal.WithLabelValues(domain.VerdictMismatch, a.source).Inc()
		return domain.Assessment{
			PredictedSalaryBand: mismatchBand,
			ParsedInfo:          a.parsedInfo(titleDomain),
			Comparison: &domain.Comparison{
				Status:  domain.VerdictMismatch,
				Message: "Sorry, your salary cannot be determined as your job title does not match your resume skills or experience.",
				Reason:  fmt.Sprintf("Job title domain (%s) does not match skills domain (%s).", titleDomain, skillsDomain),
			},
			Peers: []domain.PeerRecord{},
		}, nil
	}

	category := s.Rules.Categorize(a.title)
	profile := domain.CandidateProfile{
		JobTitle:        a.title,
		ExperienceYears: a.expYears,
		Skills:          a.skills,
		EducationLevel:  a.education,
		Location:        a.location,
		DataSource:      a.source,
	}

	// The predictor emits log-scale salaries; the inverse transform is part
	// of this engine's contract. A failed prediction degrades to zero and
	// the comparison block is skipped; the request still completes.
	var base float64
	logSalary, err := s.Predictor.PredictLogSalary(ctx, profile)
	if err != nil {
		lg.Error("salary prediction failed, degrading to empty estimate", slog.Any("error", err))
	} else {
		base = math.Expm1(logSalary)
	}

	adjusted := base * s.Rules.ScaleFor(category) * math.Pow(experienceCompound, math.Max(0, a.expYears))
	if adjusted > salaryCeiling {
		adjusted = salaryCeiling
	}

	var comparison *domain.Comparison
	if adjusted > 0 {
		comparison = buildComparison(adjusted, a.currentSalary, a.expYears)
	}

	verdict := "none"
	if comparison != nil {
		verdict = comparison.Status
	}
	observability.AssessmentsTotal.WithLabelValues(verdict, a.source).Inc()

	var peers []domain.PeerRecord
	if s.Peers != nil {
		peers = s.Peers.FindPeers(a.title, adjusted)
	}
	if peers == nil {
		peers = []domain.PeerRecord{}
	}

	info := a.parsedInfo(category)
	return domain.Assessment{
		PredictedSalary: round2(adjusted),
		ParsedInfo:      info,
		Comparison:      comparison,
		Peers:           peers,
	}, nil
}

func (a assessment) parsedInfo(category string) domain.ParsedInfo {
	return domain.ParsedInfo{
		JobTitle:        a.title,
		ExperienceYears: a.expYears,
		Skills:          a.skills,
		EducationLevel:  a.education,
		Location:        a.location,
		Category:        category,
	}
}

// validateTitle applies structural validation first, then rejects titles
// whose coarse domain is unrecognized; a title no rule table knows is too
// vague to price.
func (s *AssessService) validateTitle(title string) error {
	if err := classify.ValidateTitle(title); err != nil {
		return fmt.Errorf("%w; please enter a valid professional job title (e.g. 'Software Engineer', 'Data Analyst', 'Graphic Designer')", err)
	}
	if s.Rules.Domain(title) == classify.OtherDomain {
		return fmt.Errorf("%w: %q is not recognized as a valid professional role", domain.ErrInvalidTitle, title)
	}
	return nil
}

// buildComparison derives the verdict from the adjusted estimate, the
// user's current salary, and their experience.
func buildComparison(adjusted, currentSalary, expYears float64) *domain.Comparison {
	if expYears == 0 {
		return &domain.Comparison{
			Status:  domain.VerdictFresh,
			Message: fmt.Sprintf("Expected starting salary: ₹%s.", formatAmount(adjusted)),
			Reason:  "This estimate is based on your education level and skills for an entry-level position.",
		}
	}
	if currentSalary <= 0 {
		// Nothing to compare against.
		return nil
	}
	fairLow := adjusted * (1 - fairBand)
	fairHigh := adjusted * (1 + fairBand)
	switch {
	case currentSalary < fairLow:
		return &domain.Comparison{
			Status:          domain.VerdictUnderpaid,
			Message:         fmt.Sprintf("You are underpaid by ₹%s.", formatAmount(adjusted-currentSalary)),
			Reason:          "Based on your skills, experience, and role, your compensation appears below market value.",
			SuggestedSalary: round2(adjusted),
		}
	case currentSalary <= fairHigh:
		return &domain.Comparison{
			Status:  domain.VerdictFair,
			Message: "You are being paid fairly for your profile!",
			Reason:  "Your salary aligns well with market averages for similar experience and job roles.",
		}
	default:
		return &domain.Comparison{
			Status:  domain.VerdictOverpaid,
			Message: "You are earning above the expected range!",
			Reason:  "Your compensation is higher than most professionals with similar profiles.",
		}
	}
}

func (s *AssessService) extractFields(ctx context.Context, text string) domain.ExtractedFields {
	fields, err := s.Fields.ExtractFields(ctx, text)
	if err != nil {
		// Partial-information policy: a failed extraction degrades to
		// defaults instead of aborting the request.
		observability.LoggerFromContext(ctx).Warn("field extraction failed, using defaults",
			slog.Any("error", err))
		return domain.ExtractedFields{}
	}
	return fields
}

func resolveTitle(userTitle, extractedTitle string) string {
	if t := strings.TrimSpace(userTitle); t != "" {
		return t
	}
	if t := strings.TrimSpace(extractedTitle); t != "" {
		return t
	}
	return defaultTitle
}

func withDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func clampYears(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 60 {
		return 60
	}
	return round2(v)
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

// formatAmount renders a rounded amount with thousands separators for
// user-facing messages.
func formatAmount(v float64) string {
	n := int64(math.Round(v))
	neg := n < 0
	if neg {
		n = -n
	}
	s := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
