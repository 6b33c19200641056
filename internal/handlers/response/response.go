package response

import (
	"encoding/json"
	"net/http"

	"gitlab.com/amsys-2025.net/internal/global/logger"
	"gitlab.com/amsys-2025.net/internal/static/errs"
)

// Envelope is the uniform response shape for every endpoint, success or
// failure.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data"`
}

func WriteSuccess(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	write(w, statusCode, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WriteList is WriteSuccess with a count field for collection endpoints.
func WriteList(w http.ResponseWriter, message string, data interface{}, count int) {
	write(w, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Count:   &count,
		Data:    data,
	})
}

// WriteError maps a domain error kind to its HTTP status. Unclassified
// errors become an opaque 500; the detail goes to the log only.
func WriteError(w http.ResponseWriter, err error) {
	kind := errs.KindOf(err)
	message := err.Error()
	if kind == errs.KindInternal {
		logger.Error("Unhandled error", "error", err)
		message = errs.InternalError.Message
	}
	write(w, statusOf(kind), Envelope{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindUnauthenticated:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func write(w http.ResponseWriter, statusCode int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(envelope)
}
