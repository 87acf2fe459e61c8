package errors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// =============================================================================
// ERROR CODES
// =============================================================================

// Error code constants for structured errors
const (
	CodeConfigError           = "CONFIG_ERROR"
	CodeValidationError       = "VALIDATION_ERROR"
	CodeDependencyNotFound    = "DEPENDENCY_NOT_FOUND"
	CodeCradleAbsent          = "CRADLE_ABSENT"
	CodeResolutionError       = "RESOLUTION_ERROR"
	CodeControllerBuildFailed = "CONTROLLER_BUILD_FAILED"
	CodeScopeError            = "SCOPE_ERROR"
	CodeDisposalError         = "DISPOSAL_ERROR"
	CodeLifecycleError        = "LIFECYCLE_ERROR"
)

// =============================================================================
// STRUT ERROR (STRUCTURED ERROR)
// =============================================================================

// StrutError represents a structured error with context
type StrutError struct {
	Code      string
	Message   string
	Cause     error
	Timestamp time.Time
	Context   map[string]interface{}
}

func (e *StrutError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *StrutError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is interface for StrutError
// Compares by error code, allowing matching against sentinel errors
func (e *StrutError) Is(target error) bool {
	t, ok := target.(*StrutError)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds context to the error
func (e *StrutError) WithContext(key string, value interface{}) *StrutError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

func newError(code, message string, cause error) *StrutError {
	return &StrutError{
		Code:      code,
		Message:   message,
		Cause:     cause,
		Timestamp: time.Now(),
		Context:   make(map[string]interface{}),
	}
}

// ErrConfigError creates a config error
func ErrConfigError(message string, cause error) *StrutError {
	return newError(CodeConfigError, message, cause)
}

// ErrValidationError creates a validation error
func ErrValidationError(field string, cause error) *StrutError {
	return newError(CodeValidationError, fmt.Sprintf("validation error for field '%s'", field), cause)
}

// ErrDependencyNotFound creates a dependency-not-found error
func ErrDependencyNotFound(name string) *StrutError {
	return newError(CodeDependencyNotFound, fmt.Sprintf("dependency '%s' not found", name), nil)
}

// ErrCradleAbsent creates an error for a cradle-style container without a cradle.
// This is a programming error on the caller's side, not a recoverable condition.
func ErrCradleAbsent() *StrutError {
	return newError(CodeCradleAbsent, "container classified as cradle-style but exposes no cradle", nil)
}

// ErrResolutionError creates an error for a failed dependency resolution
func ErrResolutionError(token string, cause error) *StrutError {
	return newError(CodeResolutionError, fmt.Sprintf("failed to resolve '%s'", token), cause)
}

// ErrControllerBuildFailed creates an error for a controller that could not be constructed
func ErrControllerBuildFailed(name string, cause error) *StrutError {
	return newError(CodeControllerBuildFailed, fmt.Sprintf("failed to build controller '%s'", name), cause)
}

// ErrScopeError creates an error for a scope lifecycle failure
func ErrScopeError(operation string, cause error) *StrutError {
	return newError(CodeScopeError, "scope "+operation+" failed", cause)
}

// ErrDisposalError creates an error for a container/scope disposal failure
func ErrDisposalError(target string, cause error) *StrutError {
	return newError(CodeDisposalError, "failed to dispose "+target, cause)
}

// ErrLifecycleError creates a lifecycle error
func ErrLifecycleError(phase string, cause error) *StrutError {
	return newError(CodeLifecycleError, "lifecycle error in phase '"+phase+"'", cause)
}

// =============================================================================
// HTTP ERRORS
// =============================================================================

// HTTPError represents an HTTP error with status code
type HTTPError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("HTTP %d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is interface for HTTPError, matching by status code
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return e.Status == t.Status
}

// NewHTTPError creates an HTTP error with an arbitrary status code
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Message: message}
}

func BadRequest(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message)
}

func Unauthorized(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusForbidden, message)
}

func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message)
}

func UnprocessableEntity(message string) *HTTPError {
	return NewHTTPError(http.StatusUnprocessableEntity, message)
}

func TooManyRequests(message string) *HTTPError {
	return NewHTTPError(http.StatusTooManyRequests, message)
}

func InternalError(err error) *HTTPError {
	return &HTTPError{Status: http.StatusInternalServerError, Message: "Internal Server Error", Err: err}
}

// GetHTTPStatusCode extracts the HTTP status code from an error chain.
// Unrecognized errors map to 500.
func GetHTTPStatusCode(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}

// =============================================================================
// STANDARD ERRORS PACKAGE INTEGRATION
// =============================================================================

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is from the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target, and if so,
// sets target to that error value and returns true. Otherwise, it returns false.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Unwrap returns the result of calling the Unwrap method on err, if err's
// type contains an Unwrap method returning error. Otherwise, Unwrap returns nil.
func Unwrap(err error) error {
	return errors.Unwrap(err)
}

// New returns an error that formats as the given text.
func New(text string) error {
	return errors.New(text)
}

// Join returns an error that wraps the given errors.
// Any nil error values are discarded.
func Join(errs ...error) error {
	return errors.Join(errs...)
}

// =============================================================================
// SENTINEL ERRORS (for use with Is)
// =============================================================================

// Sentinel errors that can be used with errors.Is comparisons.
var (
	// ErrDependencyNotFoundSentinel is a sentinel error for missing dependencies.
	ErrDependencyNotFoundSentinel = &StrutError{Code: CodeDependencyNotFound}

	// ErrCradleAbsentSentinel is a sentinel error for an absent cradle.
	ErrCradleAbsentSentinel = &StrutError{Code: CodeCradleAbsent}

	// ErrResolutionErrorSentinel is a sentinel error for resolution failures.
	ErrResolutionErrorSentinel = &StrutError{Code: CodeResolutionError}

	// ErrControllerBuildFailedSentinel is a sentinel error for controller build failures.
	ErrControllerBuildFailedSentinel = &StrutError{Code: CodeControllerBuildFailed}

	// ErrScopeErrorSentinel is a sentinel error for scope lifecycle failures.
	ErrScopeErrorSentinel = &StrutError{Code: CodeScopeError}

	// ErrDisposalErrorSentinel is a sentinel error for disposal failures.
	ErrDisposalErrorSentinel = &StrutError{Code: CodeDisposalError}

	// ErrConfigErrorSentinel is a sentinel error for config errors.
	ErrConfigErrorSentinel = &StrutError{Code: CodeConfigError}

	// ErrValidationErrorSentinel is a sentinel error for validation errors.
	ErrValidationErrorSentinel = &StrutError{Code: CodeValidationError}
)

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsDependencyNotFound checks if the error is a dependency not found error.
func IsDependencyNotFound(err error) bool {
	return Is(err, ErrDependencyNotFoundSentinel)
}

// IsCradleAbsent checks if the error is an absent cradle error.
func IsCradleAbsent(err error) bool {
	return Is(err, ErrCradleAbsentSentinel)
}

// IsControllerBuildFailed checks if the error is a controller build failure.
func IsControllerBuildFailed(err error) bool {
	return Is(err, ErrControllerBuildFailedSentinel)
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	return Is(err, ErrValidationErrorSentinel)
}
