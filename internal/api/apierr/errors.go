package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/services/guardian"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeDailyLimitReached = "DAILY_LIMIT_REACHED"
	CodeProfileNotFound   = "PROFILE_NOT_FOUND"
	CodeInvalidDifficulty = "INVALID_DIFFICULTY"
	CodeInvalidDailyLimit = "INVALID_DAILY_LIMIT"
	CodePINMismatch       = "PIN_MISMATCH"
	CodeLockedOut         = "LOCKED_OUT"
	CodeInvalidPIN        = "INVALID_PIN"
	CodePINsDontMatch     = "PINS_DONT_MATCH"
	CodeInternalError     = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrDailyLimitReached):
		return &httpError{http.StatusConflict, APIError{CodeDailyLimitReached, "No plays left today"}}
	case errors.Is(err, model.ErrProfileNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProfileNotFound, "Profile not found"}}
	case errors.Is(err, model.ErrInvalidDifficulty):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDifficulty, "Difficulty must be easy, medium or hard"}}
	case errors.Is(err, model.ErrInvalidDailyLimit):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDailyLimit, "Daily limit must be non-negative"}}
	case errors.Is(err, model.ErrPINMismatch):
		return &httpError{http.StatusUnauthorized, APIError{CodePINMismatch, "Wrong PIN"}}
	case errors.Is(err, model.ErrLockedOut):
		return &httpError{http.StatusLocked, APIError{CodeLockedOut, "Too many wrong PINs, try again later"}}
	case errors.Is(err, model.ErrInvalidPIN):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPIN, "PIN must be exactly four digits"}}

	// Map guardian errors
	case errors.Is(err, guardian.ErrPINsDontMatch):
		return &httpError{http.StatusBadRequest, APIError{CodePINsDontMatch, "New PIN and confirmation do not match"}}
	case errors.Is(err, guardian.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired guardian session"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Guardian verification required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
