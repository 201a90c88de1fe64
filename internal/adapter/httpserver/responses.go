// Package httpserver contains HTTP handlers and middleware.
//
// It exposes the assessment and negotiation-coach endpoints and keeps HTTP
// concerns (multipart parsing, content sniffing, error mapping) separate
// from the assessment engine.
package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dhruvimehta17/pay-parity/internal/domain"
)

type errorEnvelope struct {
	Error apiError `json:"error"`
}

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details"`
}

// assessEnvelope is the wire shape of a completed assessment. The predicted
// salary is either a number or a band string, so it stays untyped here.
type assessEnvelope struct {
	Status          string              `json:"status"`
	PredictedSalary interface{}         `json:"predicted_salary"`
	ParsedInfo      domain.ParsedInfo   `json:"parsed_info"`
	Comparison      interface{}         `json:"comparison"`
	Peers           []domain.PeerRecord `json:"peer_comparisons"`
}

func newAssessEnvelope(a domain.Assessment) assessEnvelope {
	env := assessEnvelope{
		Status:     "success",
		ParsedInfo: a.ParsedInfo,
		Peers:      a.Peers,
	}
	if a.PredictedSalaryBand != "" {
		env.PredictedSalary = a.PredictedSalaryBand
	} else {
		env.PredictedSalary = a.PredictedSalary
	}
	if a.Comparison != nil {
		env.Comparison = a.Comparison
	} else {
		env.Comparison = map[string]any{}
	}
	return env
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, _ *http.Request, err error, details interface{}) {
	code := http.StatusInternalServerError
	codeStr := "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInvalidTitle):
		code = http.StatusBadRequest
		codeStr = "INVALID_TITLE"
	case errors.Is(err, domain.ErrExtractionFailed):
		code = http.StatusBadRequest
		codeStr = "EXTRACTION_FAILED"
	case errors.Is(err, domain.ErrInvalidArgument):
		code = http.StatusBadRequest
		codeStr = "INVALID_ARGUMENT"
	case errors.Is(err, domain.ErrNotFound):
		code = http.StatusNotFound
		codeStr = "NOT_FOUND"
	case errors.Is(err, domain.ErrUpstreamTimeout):
		code = http.StatusServiceUnavailable
		codeStr = "UPSTREAM_TIMEOUT"
	}
	writeJSON(w, code, errorEnvelope{Error: apiError{Code: codeStr, Message: err.Error(), Details: details}})
}
