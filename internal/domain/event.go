package domain

import (
	"context"
	"time"
)

// Event is a scheduled happening at a venue, run by an organizer.
// swagger:model Event
type Event struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	MaxAttendees    int       `json:"max_attendees"`
	VenueID         string    `json:"venue_id"`
	OrganizerID     string    `json:"organizer_id"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is typically set by the repository on create.
func NewEvent(title, description, category string, start time.Time, durationMinutes int, price float64, maxAttendees int, venueID, organizerID string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:           title,
		Description:     description,
		Category:        category,
		StartTime:       start,
		DurationMinutes: durationMinutes,
		Price:           price,
		MaxAttendees:    maxAttendees,
		VenueID:         venueID,
		OrganizerID:     organizerID,
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
	}
}

// Window returns the event's occupied time range as a half-open interval.
func (e *Event) Window() Interval {
	return NewInterval(e.StartTime, e.DurationMinutes)
}

// EventDetails is an Event enriched with read-path computed fields. These are
// derived per request and never stored.
// swagger:model EventDetails
type EventDetails struct {
	Event
	CurrentAttendees  int  `json:"current_attendees"`
	IsUpcoming        bool `json:"is_upcoming"`
	HasAvailableSpots bool `json:"has_available_spots"`
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// CreateIfVenueFree inserts the event only if no existing event at the
	// venue overlaps its window; returns ErrVenueConflict otherwise.
	CreateIfVenueFree(ctx context.Context, event *Event) error
	// UpdateIfVenueFree replaces the event's fields only if no other event at
	// the venue overlaps the new window; returns ErrVenueConflict otherwise.
	UpdateIfVenueFree(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	ListByCategory(ctx context.Context, category string) ([]*Event, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]*Event, error)
	// ListByVenue returns events scheduled at the venue, skipping
	// excludeEventID when non-nil.
	ListByVenue(ctx context.Context, venueID string, excludeEventID *string) ([]*Event, error)
	Delete(ctx context.Context, id string) error
}

// AvailabilityChecker decides whether a venue is free for a proposed window.
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, venueID string, start time.Time, durationMinutes int, excludeEventID *string) (bool, error)
}

// EventService defines catalog operations over events.
type EventService interface {
	Create(ctx context.Context, event *Event) (*EventDetails, error)
	Update(ctx context.Context, id string, event *Event) (*EventDetails, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*EventDetails, error)
	List(ctx context.Context) ([]*EventDetails, error)
	ListByCategory(ctx context.Context, category string) ([]*EventDetails, error)
	ListUpcoming(ctx context.Context, days int) ([]*EventDetails, error)
}
