package errorz

import "errors"

var (
	ErrUnauthenticated    = errors.New("user is not authenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("not found")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrAlreadyCancelled   = errors.New("registration already cancelled")
	ErrEventFull          = errors.New("event is full")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPreconditionFailed = errors.New("precondition failed")
	ErrInvalidInput       = errors.New("invalid input")
)
