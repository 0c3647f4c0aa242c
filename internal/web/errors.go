package web

// errors.go provides unified error response handling for the web layer.
//
// Errors are logged with full technical details server-side and returned to
// clients as JSON with a sanitized message. The chi request ID is included
// in log entries for correlation.

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/kmandrus/sheetframe/internal/store"
)

// ErrorResponse represents the JSON structure for API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError logs the technical error and writes a JSON error response
// with a status derived from the error value.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error, fallbackStatus int) {
	status := fallbackStatus
	message := err.Error()

	if errors.Is(err, store.ErrNotFound) {
		status = http.StatusNotFound
		message = "import not found"
	}

	slog.Error("request error",
		"path", r.URL.Path,
		"method", r.Method,
		"status", status,
		"error", err.Error(),
		"request_id", middleware.GetReqID(r.Context()),
	)

	writeErrorJSON(w, status, message)
}

// writeError writes a JSON error response with the given status and message.
func writeError(w http.ResponseWriter, status int, message string) {
	slog.Warn("request rejected", "status", status, "error", message)
	writeErrorJSON(w, status, message)
}

func writeErrorJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// writeJSON encodes v as JSON with the given status code.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
