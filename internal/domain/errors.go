package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP
// status codes; anything else is treated as an infrastructure failure.
var (
	ErrNotFound             = errors.New("not found")
	ErrEventNotFound        = errors.New("event not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyRegistered    = errors.New("attendee already registered for this event")
	ErrCapacityExceeded     = errors.New("event has reached maximum attendees")
	ErrVenueConflict        = errors.New("venue is occupied during the requested time")
	ErrInvalidDuration      = errors.New("duration must be a positive number of minutes")
	ErrInvalidInput         = errors.New("invalid input")
	ErrForbidden            = errors.New("forbidden")
	ErrConflict             = errors.New("resource is referenced by existing records")
	ErrDuplicateEmail       = errors.New("email already in use")
	ErrUserNotFound         = errors.New("user not found")
)
