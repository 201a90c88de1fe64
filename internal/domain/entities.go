// Package domain holds the core entities and ports of the pay-parity service.
package domain

import (
	"context"
	"errors"
)

// Error taxonomy (sentinels)
var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrNotFound         = errors.New("not found")
	ErrExtractionFailed = errors.New("extraction failed")
	ErrInvalidTitle     = errors.New("invalid job title")
	ErrUpstreamTimeout  = errors.New("upstream timeout")
	ErrInternal         = errors.New("internal error")
)

// Data source tags recorded on a CandidateProfile.
const (
	SourceResumeUpload  = "ResumeUpload"
	SourceProfileLookup = "ProfileLookup"
)

// Extraction methods recorded on an ExtractedDocument.
const (
	MethodNative = "native"
	MethodOCR    = "ocr"
)

// ExtractedDocument is the request-scoped result of text acquisition.
// It is created once per request and never mutated afterwards.
type ExtractedDocument struct {
	Text      string
	Format    string
	Method    string
	CharCount int
}

// DateRange is a calendar span found in resume text. Month 0 means unknown.
// Span carries a window of surrounding text used for role association.
type DateRange struct {
	StartYear  int
	StartMonth int
	EndYear    int
	EndMonth   int
	Span       string
	StartIndex int
	EndIndex   int
}

// CandidateProfile is the canonical structured record handed to the salary
// predictor. Invariant: every field is populated with a defined default
// before prediction; none may be empty.
type CandidateProfile struct {
	JobTitle        string  `json:"Job_Title"`
	ExperienceYears float64 `json:"Experience_Years"`
	Skills          string  `json:"Skills_Required"`
	EducationLevel  string  `json:"Education_Level"`
	Location        string  `json:"Location"`
	DataSource      string  `json:"Data_Source"`
}

// Comparison verdicts.
const (
	VerdictUnderpaid = "underpaid"
	VerdictFair      = "fair"
	VerdictOverpaid  = "overpaid"
	VerdictFresh     = "fresh"
	VerdictMismatch  = "mismatch"
)

// Comparison is the user-facing verdict block of an assessment.
type Comparison struct {
	Status          string  `json:"status"`
	Message         string  `json:"message"`
	Reason          string  `json:"reason,omitempty"`
	SuggestedSalary float64 `json:"suggested_salary,omitempty"`
}

// ParsedInfo echoes the structured fields derived for the request.
type ParsedInfo struct {
	JobTitle        string  `json:"Job_Title"`
	ExperienceYears float64 `json:"Experience_Years"`
	Skills          string  `json:"Skills_Required"`
	EducationLevel  string  `json:"Education_Level"`
	Location        string  `json:"Location"`
	Category        string  `json:"Category"`
}

// PeerRecord is a single anonymized row from the reference dataset.
type PeerRecord struct {
	JobTitle        string  `json:"job_title"`
	ExperienceYears int     `json:"experience_years"`
	Education       string  `json:"education"`
	Location        string  `json:"location"`
	Salary          float64 `json:"salary"`
	Skills          string  `json:"skills"`
}

// Assessment is the full outcome of one assessment request.
// PredictedSalaryBand is set instead of PredictedSalary when the request
// terminates in a domain mismatch.
type Assessment struct {
	PredictedSalary     float64
	PredictedSalaryBand string
	ParsedInfo          ParsedInfo
	Comparison          *Comparison
	Peers               []PeerRecord
}

// ExtractedFields is the partial, possibly-empty output of the AI field
// extractor. Callers must merge it with explicit defaults and never assume
// any field is present.
type ExtractedFields struct {
	JobTitle             string
	EducationLevel       string
	Location             string
	Skills               string
	TotalExperienceYears float64
}

// ChatMessage is one turn of the negotiation-coach conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Ports (collaborator contracts)

// DocumentDecoder extracts native text from a document file.
// Implementations call external decoding services and must not panic;
// decode failures are ordinary errors the adapter degrades on.
type DocumentDecoder interface {
	DecodeText(ctx context.Context, path, format string) (string, error)
}

// PageRenderer renders each page of a PDF into an image file under dir and
// returns the written paths. The caller owns cleanup of dir.
type PageRenderer interface {
	RenderPages(ctx context.Context, pdfPath, dir string) ([]string, error)
}

// OCREngine recognizes text in an image file. Best effort; empty string on
// failure is acceptable.
type OCREngine interface {
	Recognize(ctx context.Context, imagePath string) (string, error)
}

// TextAcquirer turns raw uploaded bytes into an ExtractedDocument. It never
// returns an error; insufficient text is signalled by a short Text.
type TextAcquirer interface {
	Extract(ctx context.Context, data []byte, filename string) ExtractedDocument
}

// FieldExtractor produces structured fields from free text via an external
// AI service. The result is partial by contract.
type FieldExtractor interface {
	ExtractFields(ctx context.Context, text string) (ExtractedFields, error)
}

// ProfileLookup resolves a public profile identifier into a free-text
// snippet suitable for field extraction.
type ProfileLookup interface {
	Snippet(ctx context.Context, identifier string) (string, error)
}

// SalaryPredictor returns a log-scale base salary for a structured profile.
// The inverse-log transform (expm1) is applied by the assessment engine,
// not the predictor.
type SalaryPredictor interface {
	PredictLogSalary(ctx context.Context, p CandidateProfile) (float64, error)
}

// ChatCompleter forwards a message history to an external chat-completion
// service and returns the assistant reply.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (string, error)
}

// PeerFinder retrieves up to five reference records closest to the
// predicted salary for a similar title. Read-only and safe for concurrent use.
type PeerFinder interface {
	FindPeers(title string, predictedSalary float64) []PeerRecord
}
