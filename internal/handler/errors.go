package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"quillhub/internal/common"
	"quillhub/internal/requestctx"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// WriteError writes a JSON error body with the given status.
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeSuccess(w, ErrorResponse{Error: message}, statusCode)
}

func writeSuccess(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps service errors to HTTP statuses. Unknown errors are
// logged and reported as 500 without detail.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		WriteError(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, common.ErrValidation):
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, common.ErrUnauthenticated):
		WriteError(w, "Authentication required", http.StatusUnauthorized)
	case errors.Is(err, common.ErrInvalidCredentials):
		WriteError(w, common.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
	case errors.Is(err, common.ErrForbidden):
		WriteError(w, "Access denied", http.StatusForbidden)
	case errors.Is(err, common.ErrNotFound):
		WriteError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, common.ErrConflict):
		WriteError(w, "Conflict, please retry", http.StatusConflict)
	case errors.Is(err, common.ErrInvalidTransition):
		WriteError(w, common.ErrInvalidTransition.Error(), http.StatusConflict)
	case errors.Is(err, common.ErrDeadlinePassed):
		WriteError(w, common.ErrDeadlinePassed.Error(), http.StatusUnprocessableEntity)
	default:
		h.Log.Error(r.Context(), "request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", requestctx.RequestIDFromContext(r.Context()),
		)
		WriteError(w, "Internal server error", http.StatusInternalServerError)
	}
}

// validationMessage turns validator output into a single "field: rule" line.
func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return "Invalid request"
	}

	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := lowerFirst(fe.Field()) + ": " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
