package services

import (
	"context"
	"fmt"
	"time"

	"localeventfinder/internal/domain"
)

type availabilityChecker struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewAvailabilityChecker creates an AvailabilityChecker backed by the event repository.
func NewAvailabilityChecker(eventRepo domain.EventRepository, timeout time.Duration) domain.AvailabilityChecker {
	return &availabilityChecker{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

// IsAvailable reports whether the venue is free for the half-open window
// [start, start+durationMinutes). Windows that only touch at a boundary do
// not conflict. When excludeEventID is set, that event is ignored so an
// update does not collide with the event's own booking. Read-only.
func (c *availabilityChecker) IsAvailable(ctx context.Context, venueID string, start time.Time, durationMinutes int, excludeEventID *string) (bool, error) {
	if durationMinutes <= 0 {
		return false, domain.ErrInvalidDuration
	}
	ctx, cancel := context.WithTimeout(ctx, c.contextTimeout)
	defer cancel()

	proposed := domain.NewInterval(start, durationMinutes)

	existing, err := c.eventRepo.ListByVenue(ctx, venueID, excludeEventID)
	if err != nil {
		return false, fmt.Errorf("list events by venue: %w", err)
	}
	for _, e := range existing {
		if proposed.Overlaps(e.Window()) {
			return false, nil
		}
	}
	return true, nil
}
