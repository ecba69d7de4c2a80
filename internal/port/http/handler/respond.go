package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MohammadBTelfah/Damanah-sub000/internal/domain"
	"go.uber.org/zap"
)

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps domain sentinels to HTTP statuses and a stable machine code.
// Unknown errors are logged and hidden behind a generic 500.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var status int
	var code string

	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code = http.StatusBadRequest, "VALIDATION_ERROR"
	case errors.Is(err, domain.ErrInvalidOrExpiredToken):
		status, code = http.StatusBadRequest, "INVALID_OR_EXPIRED_TOKEN"
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, "UNAUTHENTICATED"
	case errors.Is(err, domain.ErrEmailNotVerified):
		status, code = http.StatusForbidden, "EMAIL_NOT_VERIFIED"
	case errors.Is(err, domain.ErrPendingReview):
		status, code = http.StatusForbidden, "PENDING_REVIEW"
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		status, code = http.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUpstream):
		status, code = http.StatusBadGateway, "UPSTREAM_ERROR"
	default:
		logger.Error("Unhandled error in HTTP handler", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error", Code: "INTERNAL"})
		return
	}

	writeJSON(w, status, errorBody{Error: err.Error(), Code: code})
}
