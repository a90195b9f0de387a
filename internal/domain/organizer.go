package domain

import (
	"context"
	"time"
)

// Organizer runs events.
// swagger:model Organizer
type Organizer struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ContactPhone string    `json:"contact_phone"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewOrganizer returns a new Organizer with the given fields. ID is typically set by the repository on create.
func NewOrganizer(name, contactPhone, email string, createdAt, updatedAt time.Time) *Organizer {
	return &Organizer{
		Name:         name,
		ContactPhone: contactPhone,
		Email:        email,
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}
}

// OrganizerWithEvents bundles an organizer with the events they run.
type OrganizerWithEvents struct {
	Organizer *Organizer `json:"organizer"`
	Events    []*Event   `json:"events"`
}

// OrganizerRepository defines the interface for organizer storage.
type OrganizerRepository interface {
	Create(ctx context.Context, organizer *Organizer) error
	GetByID(ctx context.Context, id string) (*Organizer, error)
	List(ctx context.Context) ([]*Organizer, error)
	ListByEmailDomain(ctx context.Context, emailDomain string) ([]*Organizer, error)
	Update(ctx context.Context, organizer *Organizer) error
	// Delete removes the organizer; returns ErrConflict when events still
	// reference it.
	Delete(ctx context.Context, id string) error
}

// OrganizerService defines catalog operations over organizers.
type OrganizerService interface {
	Create(ctx context.Context, organizer *Organizer) (*Organizer, error)
	Update(ctx context.Context, id string, organizer *Organizer) (*Organizer, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Organizer, error)
	List(ctx context.Context) ([]*Organizer, error)
	ListByEmailDomain(ctx context.Context, emailDomain string) ([]*Organizer, error)
	ListWithEvents(ctx context.Context) ([]*OrganizerWithEvents, error)
}
