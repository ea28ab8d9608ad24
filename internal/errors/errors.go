package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrDuplicateUser is returned when the username or email is already registered.
	ErrDuplicateUser = errors.New("username or email already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrEmailNotRegistered is returned when a password reset is requested for an unknown email.
	ErrEmailNotRegistered = errors.New("email not registered")
	// ErrTokenInvalid is returned when a reset token fails signature or payload checks.
	ErrTokenInvalid = errors.New("reset token invalid")
	// ErrTokenExpired is returned when a reset token is older than its allowed window.
	ErrTokenExpired = errors.New("reset token expired")
	// ErrMalformedImage is returned when a capture payload is not a decodable image data URI.
	ErrMalformedImage = errors.New("malformed image payload")
	// ErrUserNotFound is returned when a referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// TokenErrorMessage is the single user-facing message for any reset token
// failure. Expired and tampered tokens stay distinct sentinels internally
// but are never distinguished to the end user.
const TokenErrorMessage = "the link has expired or is invalid"

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

// MapErrorToHTTP maps domain errors to HTTP errors. Both token sentinels
// collapse to the same status, code and message.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrDuplicateUser):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_USER")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailNotRegistered):
		return NewHTTPError(http.StatusNotFound, err.Error(), "EMAIL_NOT_REGISTERED")
	case errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrTokenExpired):
		return NewHTTPError(http.StatusBadRequest, TokenErrorMessage, "TOKEN_INVALID_OR_EXPIRED")
	case errors.Is(err, ErrMalformedImage):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MALFORMED_IMAGE")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
