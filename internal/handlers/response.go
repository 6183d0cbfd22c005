package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakuratei/order-system/internal/apperr"
)

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes an error response in JSON format
func WriteError(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error("failed to encode error response", "error", err)
	}
}

// WriteDomainError maps a core error to its HTTP status. 4xx responses
// carry the error text so the user sees what to fix; everything unexpected
// is a plain 500.
func WriteDomainError(w http.ResponseWriter, err error, logger *slog.Logger) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logger.Error("internal error", "error", err)
		WriteError(w, status, "Internal server error", logger)
		return
	}
	WriteError(w, status, err.Error(), logger)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, apperr.ErrEmptyCart),
		errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrInvalidIdentifier),
		errors.Is(err, apperr.ErrDecodeFailed):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrInvalidTransition):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperr.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
