package handler

import (
	"net/http"

	"github.com/dadportal/dinojump-go/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest    = apierr.CodeInvalidRequest
	CodeUnauthorized      = apierr.CodeUnauthorized
	CodeDailyLimitReached = apierr.CodeDailyLimitReached
	CodeProfileNotFound   = apierr.CodeProfileNotFound
	CodeInvalidDifficulty = apierr.CodeInvalidDifficulty
	CodeInvalidDailyLimit = apierr.CodeInvalidDailyLimit
	CodeInvalidPIN        = apierr.CodeInvalidPIN
	CodePINsDontMatch     = apierr.CodePINsDontMatch
	CodePINMismatch       = apierr.CodePINMismatch
	CodeLockedOut         = apierr.CodeLockedOut
	CodeInternalError     = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
