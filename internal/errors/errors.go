// Package errors defines the categorized error taxonomy shared by the
// stores, the HTTP layer, and the client workspace.
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	// CategoryUserInput represents malformed caller input (4xx)
	CategoryUserInput ErrorCategory = "user_input"
	// CategoryStorage represents backing-file or database failures (5xx)
	CategoryStorage ErrorCategory = "storage"
	// CategoryCredits represents client-side credit balance failures
	CategoryCredits ErrorCategory = "credits"
	// CategoryRateLimit represents rate limit errors
	CategoryRateLimit ErrorCategory = "rate_limit"
	// CategorySystem represents everything else (5xx)
	CategorySystem ErrorCategory = "system"
)

// CategorizedError represents an error with category and HTTP status code
type CategorizedError struct {
	Category   ErrorCategory
	StatusCode int
	Code       string
	Message    string
	Cause      error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *CategorizedError) Unwrap() error {
	return e.Cause
}

// NewReadError reports a failure to read a backing store. Retryable only by
// user action; the stores never retry on their own.
func NewReadError(target string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryStorage,
		StatusCode: http.StatusInternalServerError,
		Code:       "READ_ERROR",
		Message:    fmt.Sprintf("failed to read %s", target),
		Cause:      cause,
	}
}

// NewWriteError reports a failure to write a backing store.
func NewWriteError(target string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryStorage,
		StatusCode: http.StatusInternalServerError,
		Code:       "WRITE_ERROR",
		Message:    fmt.Sprintf("failed to write %s", target),
		Cause:      cause,
	}
}

// NewInvalidPayloadError reports a request body of the wrong shape. Never
// retried; the caller must fix the input.
func NewInvalidPayloadError(message string) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryUserInput,
		StatusCode: http.StatusBadRequest,
		Code:       "INVALID_PAYLOAD",
		Message:    message,
	}
}

// NewInsufficientCreditsError reports a credit-gated action attempted with
// too low a balance.
func NewInsufficientCreditsError(action string, needed, have int) *CategorizedError {
	return &CategorizedError{
		Category:   CategoryCredits,
		StatusCode: http.StatusPaymentRequired,
		Code:       "INSUFFICIENT_CREDITS",
		Message:    fmt.Sprintf("not enough credits to %s (need %d, have %d)", action, needed, have),
	}
}

// NewRateLimitError reports a request rejected by the API rate limiter.
func NewRateLimitError() *CategorizedError {
	return &CategorizedError{
		Category:   CategoryRateLimit,
		StatusCode: http.StatusTooManyRequests,
		Code:       "RATE_LIMIT_EXCEEDED",
		Message:    "rate limit exceeded",
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category:   CategorySystem,
		StatusCode: http.StatusInternalServerError,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		Cause:      cause,
	}
}

// Categorize categorizes an existing error
func Categorize(err error) *CategorizedError {
	if err == nil {
		return nil
	}

	if catErr, ok := err.(*CategorizedError); ok {
		return catErr
	}

	return NewInternalError("unexpected error", err)
}

// GetHTTPStatusCode returns the HTTP status code for an error
func GetHTTPStatusCode(err error) int {
	if catErr := Categorize(err); catErr != nil {
		return catErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsUserError determines if an error is a user error (4xx)
func IsUserError(err error) bool {
	catErr := Categorize(err)
	if catErr == nil {
		return false
	}
	return catErr.StatusCode >= 400 && catErr.StatusCode < 500
}

// IsStorageError determines if an error came from a backing store
func IsStorageError(err error) bool {
	catErr := Categorize(err)
	if catErr == nil {
		return false
	}
	return catErr.Category == CategoryStorage
}
