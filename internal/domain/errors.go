package domain

import "errors"

// Sentinel errors for the whole service. Usecases wrap these with %w and the
// HTTP layer translates them to status codes and machine-readable codes.
var (
	ErrValidation            = errors.New("invalid input")
	ErrConflict              = errors.New("email or phone already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEmailNotVerified      = errors.New("email address is not verified")
	ErrPendingReview         = errors.New("account is pending review")
	ErrNotFound              = errors.New("record not found")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrUpstream              = errors.New("upstream service failure")
)
