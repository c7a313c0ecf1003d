package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"wonderfinance/internal/auth"
	"wonderfinance/internal/core"
	"wonderfinance/internal/services"
	"wonderfinance/internal/storage"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// respondError maps domain sentinels onto HTTP statuses. Anything
// unrecognized is a 500 with a generic body; the real error goes to the log.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, storage.ErrDuplicateUser),
		errors.Is(err, storage.ErrDuplicateBudget):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method, "url", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrMissingAmount,
		core.ErrMissingCategory,
		core.ErrMissingType,
		core.ErrMissingUser,
		core.ErrAmountNotPositive,
		core.ErrInvalidType,
		core.ErrEmptyCategory,
		core.ErrInvalidPeriod,
		core.ErrInvalidRisk,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
