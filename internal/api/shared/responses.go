package shared

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mentorhub/mentorhub-api/internal/redact"
)

// Envelope is the response body shape shared by every endpoint. Data carries
// the payload on success; Errors carries client-safe messages on failure.
// Optional fields are omitted rather than serialized as null.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
}

// Pagination is the page metadata attached to list payloads.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewPagination computes the page metadata for a list response.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}
}

// RespondWithJSON writes a JSON body with the given status code.
func RespondWithJSON(w http.ResponseWriter, _ *http.Request, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
	}
}

// RespondWithData writes a success envelope.
func RespondWithData(w http.ResponseWriter, r *http.Request, status int, data interface{}, message string) {
	RespondWithJSON(w, r, status, Envelope{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// RespondWithError writes a failure envelope with the given client-safe
// message and the request's trace ID.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, Envelope{
		Success: false,
		Errors:  []string{message},
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog writes a failure envelope carrying only the safe
// message, and logs the underlying error redacted. Server errors log at
// ERROR; client errors at DEBUG.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	logAttrs := []slog.Attr{
		slog.String("trace_id", GetTraceID(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("method", r.Method),
		slog.Int("status_code", status),
		slog.String("user_message", userMessage),
	}
	if err != nil {
		logAttrs = append(logAttrs,
			slog.String("error", redact.Error(err)),
			slog.String("error_type", fmt.Sprintf("%T", err)))
	}

	logLevel := slog.LevelDebug
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	slog.LogAttrs(r.Context(), logLevel, "request failed", logAttrs...)

	RespondWithError(w, r, status, userMessage)
}
