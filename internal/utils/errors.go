package utils

import "net/http"

// AppError is the single error type crossing actor and HTTP boundaries.
// Actors respond with *AppError instead of returning errors; handlers
// translate the code to an HTTP status.
type AppError struct {
	Code    string
	Message string
	Origin  error             // original error that caused this one, if any
	Fields  map[string]string // field-level messages for validation failures
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

func (appErr *AppError) Unwrap() error {
	return appErr.Origin
}

// Standard error codes for the application
const (
	ErrNotFound     = "NOT_FOUND"
	ErrDuplicate    = "DUPLICATE"
	ErrValidation   = "VALIDATION"
	ErrConflict     = "CONFLICT"
	ErrUnauthorized = "UNAUTHORIZED"
	ErrForbidden    = "FORBIDDEN" // authenticated but lacking role or ownership
	ErrInvalidToken = "INVALID_TOKEN"

	ErrInvalidCredentials = "INVALID_CREDENTIALS"

	ErrStorage  = "STORAGE_ERROR"
	ErrDatabase = "DATABASE_ERROR"

	// Actor communication errors
	ErrActorTimeout = "ACTOR_TIMEOUT"
)

func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

func NewNotFoundError(what string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: what + " not found",
	}
}

func NewValidationError(fields map[string]string) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

func NewFieldError(field, message string) *AppError {
	return NewValidationError(map[string]string{field: message})
}

func NewForbiddenError(reason string) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: "forbidden: " + reason,
	}
}

func NewUnauthorizedError(reason string) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized: " + reason,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    ErrConflict,
		Message: message,
	}
}

// IsErrorCode checks whether err is an AppError with the given code.
func IsErrorCode(err error, code string) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// AppErrorToHTTPStatus converts an AppError code to an HTTP status code.
func AppErrorToHTTPStatus(errorCode string) int {
	switch errorCode {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrDuplicate, ErrConflict:
		return http.StatusConflict
	case ErrValidation:
		return http.StatusUnprocessableEntity
	case ErrUnauthorized, ErrInvalidToken, ErrInvalidCredentials:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	case ErrActorTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
