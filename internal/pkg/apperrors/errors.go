package apperrors

import "errors"

// Authentication errors (401)
var (
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")
)

// Authorization errors (403)
var (
	ErrPermissionDenied = errors.New("permission denied")
	ErrAccountSuspended = errors.New("account is suspended")
)

// Resource errors (404)
var (
	ErrResourceNotFound = errors.New("resource not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrVideoNotFound    = errors.New("video not found")
	ErrNoteNotFound     = errors.New("note not found")
	ErrQuizNotFound     = errors.New("quiz not found")
)

// Validation errors (400)
var (
	ErrValidationFailed   = errors.New("validation failed")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUnsupportedMedia   = errors.New("unsupported file type")
	ErrFileTooLarge       = errors.New("file too large")
)

// Cache errors
var (
	ErrCacheNotAvailable = errors.New("cache not available")
	ErrCacheNotFound     = errors.New("cache entry not found")
)

// Category groups sentinel errors by the HTTP family they surface as
type Category int

const (
	CategoryInternal Category = iota
	CategoryUnauthenticated
	CategoryForbidden
	CategoryNotFound
	CategoryValidation
)

// Classify returns the category err belongs to
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryInternal
	case Is(err, ErrUnauthenticated, ErrInvalidCredentials, ErrTokenExpired, ErrTokenInvalid, ErrInvalidFormat):
		return CategoryUnauthenticated
	case Is(err, ErrPermissionDenied, ErrAccountSuspended):
		return CategoryForbidden
	case Is(err, ErrResourceNotFound, ErrUserNotFound, ErrVideoNotFound, ErrNoteNotFound, ErrQuizNotFound):
		return CategoryNotFound
	case Is(err, ErrValidationFailed, ErrEmailAlreadyExists, ErrUnsupportedMedia, ErrFileTooLarge):
		return CategoryValidation
	default:
		return CategoryInternal
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// CustomError carries a caller-facing message while unwrapping to a sentinel
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}

// NewValidationError wraps ErrValidationFailed with a message
func NewValidationError(message string) *CustomError {
	return NewCustomError(ErrValidationFailed, message)
}

// NewForbiddenError wraps ErrPermissionDenied with a message
func NewForbiddenError(message string) *CustomError {
	return NewCustomError(ErrPermissionDenied, message)
}

// NewNotFoundError wraps a not-found sentinel with a message
func NewNotFoundError(err error, message string) *CustomError {
	return NewCustomError(err, message)
}

// MessageOf returns the caller-facing message of a CustomError, or fallback
func MessageOf(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}

// DetailsOf returns the details attached to a CustomError, if any
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
