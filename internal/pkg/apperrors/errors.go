package apperrors

import "errors"

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	ErrPermissionDenied = errors.New("permission denied")

	ErrValidationFailed = errors.New("validation failed")
)

// Quiz content errors. Each wraps ErrResourceNotFound so the HTTP layer
// can map the whole family to 404 while callers still match precisely.
var (
	ErrQuestionNotFound = NewResourceNotFoundError("question not found")
	ErrTopicNotFound    = NewResourceNotFoundError("topic not found")
	ErrQuizNotFound     = NewResourceNotFoundError("quiz not found")
	ErrUserNotFound     = NewResourceNotFoundError("user not found")
	// ErrQuizReferenceNotFound is returned when a quiz points at a missing user or topic
	ErrQuizReferenceNotFound = NewResourceNotFoundError("user or topic not found")
)

// User errors
var (
	ErrUsernameAlreadyExists = NewCustomError(ErrResourceAlreadyExists, "username already exists")
	ErrEmailAlreadyExists    = NewCustomError(ErrResourceAlreadyExists, "email already exists")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying a client-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
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

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
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

// PublicMessage returns the most specific client-safe message carried by err.
// Only CustomError messages are considered safe; anything else yields fallback.
func PublicMessage(err error, fallback string) string {
	var custom *CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}
