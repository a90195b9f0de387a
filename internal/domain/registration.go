package domain

import (
	"context"
	"time"
)

// Registration is an attendee's admission record for an event. At most one
// registration may exist per (event, attendee email) pair.
// swagger:model Registration
type Registration struct {
	ID            string    `json:"id"`
	EventID       string    `json:"event_id"`
	AttendeeName  string    `json:"attendee_name"`
	AttendeeEmail string    `json:"attendee_email"`
	RegisteredAt  time.Time `json:"registered_at"`
}

// NewRegistration returns a new Registration. ID is typically set by the repository on create.
func NewRegistration(eventID, attendeeName, attendeeEmail string, registeredAt time.Time) *Registration {
	return &Registration{
		EventID:       eventID,
		AttendeeName:  attendeeName,
		AttendeeEmail: attendeeEmail,
		RegisteredAt:  registeredAt,
	}
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// CreateIfCapacity inserts the registration only while the event's live
	// registration count is below maxAttendees. The count check and the
	// insert happen in one statement so concurrent admissions cannot both
	// slip under the ceiling. Returns ErrCapacityExceeded when full and
	// ErrAlreadyRegistered on a duplicate (event, email) pair.
	CreateIfCapacity(ctx context.Context, reg *Registration, maxAttendees int) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	GetByEventAndEmail(ctx context.Context, eventID, email string) (*Registration, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	// List returns one page of registrations plus the total row count.
	List(ctx context.Context, params PaginationParams) ([]*Registration, int, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Registration, error)
	ListByEmail(ctx context.Context, email string) ([]*Registration, error)
	// Delete removes a registration; returns ErrNotFound when absent.
	Delete(ctx context.Context, id string) error
}

// RegistrationService admits attendees to events and cancels registrations.
type RegistrationService interface {
	// AdmitAttendee registers the attendee for the event. Failure modes, in
	// order of precedence: ErrEventNotFound, ErrAlreadyRegistered,
	// ErrCapacityExceeded.
	AdmitAttendee(ctx context.Context, eventID, attendeeName, attendeeEmail string) (*Registration, error)
	// CancelRegistration removes a registration. Only an admin or the caller
	// whose email matches the registration may cancel.
	CancelRegistration(ctx context.Context, registrationID, callerEmail, callerRole string) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	List(ctx context.Context, params PaginationParams) ([]*Registration, int, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Registration, error)
	ListByEmail(ctx context.Context, email string) ([]*Registration, error)
}
