package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors returned by the storage layer. The HTTP layer translates
// them into the client-facing envelope instead of exposing store internals.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrDuplicate = errors.New("duplicate field value")
)

const (
	// DefaultMessage is returned for uncategorized failures. Internal detail
	// is logged server-side only.
	DefaultMessage = "Something went wrong on our servers."

	// UnauthorizedMessage is deliberately uniform for every authentication
	// failure mode so callers cannot probe which check failed.
	UnauthorizedMessage = "Not authorized to access this resource."

	DuplicateMessage = "Duplicate field value entered."
)

// Error is a client-facing error with an HTTP status code.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func New(status int, message string) *Error {
	return &Error{Status: status, Message: message}
}

func NotFound(id string) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf("Resource with ID %s is not found.", id)}
}

func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

func Unauthorized() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: UnauthorizedMessage}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

func PayloadTooLarge(message string) *Error {
	return &Error{Status: http.StatusRequestEntityTooLarge, Message: message}
}

// Normalize maps any error to a client-facing *Error. Store sentinels become
// 404/400; everything unrecognized becomes an opaque 500.
func Normalize(err error, resourceID string) *Error {
	var ae *Error
	switch {
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, ErrNotFound):
		return NotFound(resourceID)
	case errors.Is(err, ErrDuplicate):
		return BadRequest(DuplicateMessage)
	default:
		return &Error{Status: http.StatusInternalServerError, Message: DefaultMessage}
	}
}
