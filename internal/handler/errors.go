package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/travel-log/internal/domain"
)

// User-facing messages for failures the user cannot fix by editing the form.
// The underlying cause is logged, never shown.
const (
	msgLoadFailed   = "An error occurred while loading the travel."
	msgListFailed   = "An error occurred while loading your travels. Please try again."
	msgSaveFailed   = "An error occurred while saving the travel. Please try again."
	msgDeleteFailed = "An error occurred while deleting the travel. Please try again."
	msgBadForm      = "The submitted form could not be read."
	msgFormTooLarge = "The submitted form is too large."
	msgNotFound     = "Travel not found."
)

// errorResponse is the JSON body of every non-2xx API response.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorBody(code, message string) errorResponse {
	return errorResponse{Error: errorDetail{Code: code, Message: message}}
}

// notFoundBody returns an errorResponse for a missing resource.
// The caller supplies the message because it knows what was being looked up.
func notFoundBody(message string) errorResponse {
	return errorBody("not_found", message)
}

// requestBody returns an errorResponse for a request rejected before it
// reaches the service layer.
func requestBody(message string) errorResponse {
	return errorBody("validation_error", message)
}

// internalBody is the only thing an API client sees of a storage failure.
func internalBody() errorResponse {
	return errorBody("internal_error", "Database error occurred")
}

func upstreamBody() errorResponse {
	return errorBody("upstream_error", "The geocoding service is unavailable. Please try again later.")
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	// The status line is already sent; an encode failure has nowhere to go.
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) apiNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, notFoundBody("no such endpoint"))
}

func (s *Server) apiMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "Method not allowed"))
}

// isNotFound reports whether err means the travel does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
