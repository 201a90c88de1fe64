package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/dhruvimehta17/pay-parity/internal/config"
	"github.com/dhruvimehta17/pay-parity/internal/domain"
	"github.com/dhruvimehta17/pay-parity/internal/usecase"
)

// Server aggregates handler dependencies.
type Server struct {
	Cfg            config.Config
	Assess         *usecase.AssessService
	Chat           *usecase.ChatService
	PredictorCheck func(ctx context.Context) error
	DecoderCheck   func(ctx context.Context) error
	DatasetSize    func() int
}

// NewServer constructs an HTTP server with all handlers and checks wired.
func NewServer(cfg config.Config, assess *usecase.AssessService, chat *usecase.ChatService, predictorCheck, decoderCheck func(context.Context) error, datasetSize func() int) *Server {
	return &Server{Cfg: cfg, Assess: assess, Chat: chat, PredictorCheck: predictorCheck, DecoderCheck: decoderCheck, DatasetSize: datasetSize}
}

// allowedExt enforces an allowlist for uploads.
func allowedExt(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf", ".docx", ".doc", ".txt", ".png", ".jpg", ".jpeg":
		return true
	default:
		return false
	}
}

func allowedMIMEFor(m, filename string) bool {
	m = strings.ToLower(m)
	// Text detectors misclassify rich text, so any text/* passes for .txt.
	if strings.HasSuffix(strings.ToLower(filename), ".txt") && strings.HasPrefix(m, "text/") {
		return true
	}
	if strings.HasPrefix(m, "text/plain") {
		return true
	}
	switch {
	case m == "application/pdf",
		m == "application/msword",
		m == "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		strings.HasPrefix(m, "image/png"),
		strings.HasPrefix(m, "image/jpeg"):
		return true
	}
	return false
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// AssessHandler handles the multipart assessment request. Exactly one of
// the resume file or the profile identifier must be present; a profile
// identifier wins when both are sent.
func (s *Server) AssessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
			writeError(w, r, fmt.Errorf("%w: content-type must be multipart/form-data", domain.ErrInvalidArgument), nil)
			return
		}
		maxBytes := s.Cfg.MaxUploadMB * 1024 * 1024
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "too large") {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorEnvelope{Error: apiError{
					Code:    "INVALID_ARGUMENT",
					Message: "payload too large",
					Details: map[string]any{"max_mb": s.Cfg.MaxUploadMB},
				}})
				return
			}
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		jobTitle := strings.TrimSpace(r.FormValue("job_title"))
		currentSalary := strings.TrimSpace(r.FormValue("current_salary"))

		if profileURL := strings.TrimSpace(r.FormValue("profile_url")); profileURL != "" {
			assessment, err := s.Assess.AssessProfile(r.Context(), usecase.AssessProfileInput{
				ProfileID:     profileURL,
				JobTitle:      jobTitle,
				CurrentSalary: currentSalary,
			})
			if err != nil {
				writeError(w, r, err, nil)
				return
			}
			writeJSON(w, http.StatusOK, newAssessEnvelope(assessment))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: resume file or profile_url required", domain.ErrInvalidArgument), map[string]string{"field": "file"})
			return
		}
		defer func() { _ = file.Close() }()

		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, r, fmt.Errorf("%w: file read: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		if !allowedExt(header.Filename) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
				Code:    "INVALID_ARGUMENT",
				Message: "unsupported media type (extension)",
				Details: map[string]any{"filename": header.Filename},
			}})
			return
		}
		mime := mimetype.Detect(data)
		if !allowedMIMEFor(mime.String(), header.Filename) {
			writeJSON(w, http.StatusUnsupportedMediaType, errorEnvelope{Error: apiError{
				Code:    "INVALID_ARGUMENT",
				Message: "unsupported media type (content)",
				Details: map[string]any{"mime": mime.String(), "filename": header.Filename},
			}})
			return
		}

		assessment, err := s.Assess.AssessResume(r.Context(), usecase.AssessResumeInput{
			FileData:      data,
			Filename:      header.Filename,
			JobTitle:      jobTitle,
			CurrentSalary: currentSalary,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, newAssessEnvelope(assessment))
	}
}

type chatRequest struct {
	Messages []chatMessage  `json:"messages" validate:"required,min=1,dive"`
	Mode     string         `json:"mode" validate:"omitempty,oneof=coach mock_interviewer adaptive"`
	Profile  map[string]any `json:"profile"`
}

type chatMessage struct {
	Role    string `json:"role" validate:"required,oneof=system user assistant"`
	Content string `json:"content" validate:"required"`
}

type chatResponse struct {
	Message string `json:"message"`
}

// ChatHandler forwards a negotiation-coach conversation turn.
func (s *Server) ChatHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, r, fmt.Errorf("%w: invalid json: %v", domain.ErrInvalidArgument, err), nil)
			return
		}
		if err := getValidator().Struct(req); err != nil {
			writeError(w, r, fmt.Errorf("%w: %v", domain.ErrInvalidArgument, err), nil)
			return
		}

		messages := make([]domain.ChatMessage, len(req.Messages))
		for i, m := range req.Messages {
			messages[i] = domain.ChatMessage{Role: m.Role, Content: m.Content}
		}
		reply, err := s.Chat.Reply(r.Context(), usecase.ChatInput{
			Messages: messages,
			Mode:     req.Mode,
			Profile:  req.Profile,
		})
		if err != nil {
			writeError(w, r, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, chatResponse{Message: reply})
	}
}
