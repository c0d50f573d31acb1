package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrValidation is returned when a required field is missing or malformed.
	ErrValidation = errors.New("missing or invalid field")
	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials is returned when login fails. The message never
	// distinguishes an unknown email from a wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidCiphertext is returned when stored data fails authenticated
	// decryption. Treated as a data-integrity fault, never degraded to
	// returning the raw column value.
	ErrInvalidCiphertext = errors.New("invalid ciphertext")
	// ErrPersistenceTimeout is returned when a persistence call exceeds its
	// deadline.
	ErrPersistenceTimeout = errors.New("persistence timeout")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Error messages carry no
// secret material, so they are safe to return verbatim.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrDuplicateEmail):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_EMAIL")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrInvalidCiphertext):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "INVALID_CIPHERTEXT")
	case errors.Is(err, ErrPersistenceTimeout):
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "PERSISTENCE_TIMEOUT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
