package service

import "errors"

// Error kinds surfaced to handlers. Match with errors.Is.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
)

// Error carries a caller-safe message alongside its kind.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

var (
	errAuthRequired       = newError(ErrUnauthenticated, "Authentication required")
	errResourceNotFound   = newError(ErrNotFound, "Resource not found")
	errBookingNotFound    = newError(ErrNotFound, "Booking not found")
	errInvalidInteraction = newError(ErrInvalidArgument, "Invalid interaction type")
	errRatingOutOfRange   = newError(ErrInvalidArgument, "Rating must be between 1 and 5")
)
