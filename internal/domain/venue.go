package domain

import (
	"context"
	"time"
)

// Venue is a place events can be held at. Capacity is the venue's physical
// ceiling, independent of any event's max_attendees.
// swagger:model Venue
type Venue struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewVenue returns a new Venue with the given fields. ID is typically set by the repository on create.
func NewVenue(name, address string, capacity int, createdAt, updatedAt time.Time) *Venue {
	return &Venue{
		Name:      name,
		Address:   address,
		Capacity:  capacity,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// VenueWithEvents bundles a venue with the events scheduled at it.
type VenueWithEvents struct {
	Venue  *Venue   `json:"venue"`
	Events []*Event `json:"events"`
}

// VenueStats summarizes the venue catalog.
// swagger:model VenueStats
type VenueStats struct {
	TotalVenues   int     `json:"total_venues"`
	TotalCapacity int     `json:"total_capacity"`
	AvgCapacity   float64 `json:"avg_capacity"`
	TotalEvents   int     `json:"total_events"`
}

// VenueRepository defines the interface for venue storage.
type VenueRepository interface {
	Create(ctx context.Context, venue *Venue) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	ListByCapacityRange(ctx context.Context, minCapacity, maxCapacity int) ([]*Venue, error)
	Update(ctx context.Context, venue *Venue) error
	// Delete removes the venue; returns ErrConflict when events still
	// reference it.
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*VenueStats, error)
}

// VenueService defines catalog operations over venues.
type VenueService interface {
	Create(ctx context.Context, venue *Venue) (*Venue, error)
	Update(ctx context.Context, id string, venue *Venue) (*Venue, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Venue, error)
	List(ctx context.Context) ([]*Venue, error)
	ListByCapacityRange(ctx context.Context, minCapacity, maxCapacity int) ([]*Venue, error)
	ListWithEvents(ctx context.Context) ([]*VenueWithEvents, error)
	Stats(ctx context.Context) (*VenueStats, error)
}
