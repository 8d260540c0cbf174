package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/premialabs/premia/internal/application/usecase"
	"github.com/premialabs/premia/internal/domain/valueobject"
	"github.com/premialabs/premia/internal/ml"
	"github.com/premialabs/premia/internal/ml/feature"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// respondError maps a use case error to an HTTP status. Internal errors
// are not echoed to the client.
func respondError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	writeError(w, status, message)
}

func statusForError(err error) int {
	var validationErr *valueobject.ValidationError
	var encodingErr *feature.EncodingError
	var unavailableErr *ml.ModelUnavailableError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &encodingErr):
		return http.StatusBadRequest
	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrUsernameTaken),
		errors.Is(err, usecase.ErrEmailTaken),
		errors.Is(err, usecase.ErrLastAdmin),
		errors.Is(err, usecase.ErrSelfDeletion):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
