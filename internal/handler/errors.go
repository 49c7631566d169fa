package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/train-reservation/internal/domain"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code and a human-readable message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorMapping ties a domain sentinel to its HTTP status and error code.
// Order matters only for errors that wrap more than one sentinel.
var errorMapping = []struct {
	sentinel error
	status   int
	code     string
}{
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrValidation, http.StatusUnprocessableEntity, "validation_error"},
	{domain.ErrInvalidInterval, http.StatusUnprocessableEntity, "invalid_interval"},
	{domain.ErrInvalidDelay, http.StatusUnprocessableEntity, "invalid_delay"},
	{domain.ErrTripConflict, http.StatusConflict, "trip_conflict"},
	{domain.ErrReservation, http.StatusConflict, "reservation_error"},
	{domain.ErrInvalidState, http.StatusConflict, "invalid_state"},
	{domain.ErrDuplicate, http.StatusConflict, "duplicate"},
}

// writeError maps err onto the matching HTTP status and writes an
// ErrorResponse. Errors that match no domain sentinel are logged and reported
// as 500 without leaking their text.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	for _, m := range errorMapping {
		if errors.Is(err, m.sentinel) {
			writeJSON(w, m.status, ErrorResponse{Error: ErrorDetail{Code: m.code, Message: unwrapMessage(err, m.sentinel)}})
			return
		}
	}
	slog.ErrorContext(r.Context(), "unhandled error", "error", err, "path", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
}

// notFound writes a 404 for a resource the handler looked up itself.
// The caller supplies the message (e.g. "trip not found") because the handler
// is the layer that knows what was being looked up.
func notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}})
}

// badRequest writes a 422 for input rejected before reaching the service
// layer (e.g. missing or malformed body, unparsable parameter).
func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: message}})
}

// unwrapMessage extracts the human-readable part that follows the sentinel.
// e.g. "service.Registry.CreateTrip: invalid interval: arrival ... must be after ..."
// → "arrival ... must be after ...". Falls back to the sentinel text.
func unwrapMessage(err, sentinel error) string {
	msg := err.Error()
	marker := sentinel.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return sentinel.Error()
}
