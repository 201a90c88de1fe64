package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ReadyzHandler reports readiness of the model server and the reference
// dataset. Liveness is served separately by the router.
func (s *Server) ReadyzHandler() http.HandlerFunc {
	type check struct {
		Name    string `json:"name"`
		OK      bool   `json:"ok"`
		Details string `json:"details,omitempty"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		checks := make([]check, 0, 3)
		if s.PredictorCheck != nil {
			if err := s.PredictorCheck(ctx); err != nil {
				checks = append(checks, check{Name: "predictor", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "predictor", OK: true})
			}
		}
		if s.DecoderCheck != nil {
			if err := s.DecoderCheck(ctx); err != nil {
				checks = append(checks, check{Name: "decoder", OK: false, Details: err.Error()})
			} else {
				checks = append(checks, check{Name: "decoder", OK: true})
			}
		}
		if s.DatasetSize != nil {
			if n := s.DatasetSize(); n == 0 {
				checks = append(checks, check{Name: "dataset", OK: false, Details: "no records loaded"})
			} else {
				checks = append(checks, check{Name: "dataset", OK: true, Details: fmt.Sprintf("%d records", n)})
			}
		}
		ok := true
		for _, c := range checks {
			if !c.OK {
				ok = false
				break
			}
		}
		st := http.StatusOK
		if !ok {
			st = http.StatusServiceUnavailable
		}
		writeJSON(w, st, map[string]any{"checks": checks})
	}
}
