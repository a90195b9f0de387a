package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"localeventfinder/internal/domain"
)

// Cache keys for event listings. Invalidation drops all of them.
const (
	cacheKeyAllEvents = "events:all"
	listingCacheTTL   = time.Minute
)

type eventService struct {
	eventRepo        domain.EventRepository
	venueRepo        domain.VenueRepository
	organizerRepo    domain.OrganizerRepository
	registrationRepo domain.RegistrationRepository
	availability     domain.AvailabilityChecker
	cache            domain.ListingCache
	contextTimeout   time.Duration
}

// NewEventService creates an EventService. cache may be nil to disable
// listing caching.
func NewEventService(
	eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	organizerRepo domain.OrganizerRepository,
	registrationRepo domain.RegistrationRepository,
	availability domain.AvailabilityChecker,
	cache domain.ListingCache,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:        eventRepo,
		venueRepo:        venueRepo,
		organizerRepo:    organizerRepo,
		registrationRepo: registrationRepo,
		availability:     availability,
		cache:            cache,
		contextTimeout:   timeout,
	}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.validateReferences(ctx, event); err != nil {
		return nil, err
	}

	available, err := s.availability.IsAvailable(ctx, event.VenueID, event.StartTime, event.DurationMinutes, nil)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrVenueConflict
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if err := s.eventRepo.CreateIfVenueFree(ctx, event); err != nil {
		if errors.Is(err, domain.ErrVenueConflict) {
			return nil, domain.ErrVenueConflict
		}
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.invalidateListings(ctx)
	return s.details(ctx, event)
}

func (s *eventService) Update(ctx context.Context, id string, event *domain.Event) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if err := s.validateReferences(ctx, event); err != nil {
		return nil, err
	}

	// The event's own window must not count against it.
	exclude := id
	available, err := s.availability.IsAvailable(ctx, event.VenueID, event.StartTime, event.DurationMinutes, &exclude)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrVenueConflict
	}

	event.ID = id
	if err := s.eventRepo.UpdateIfVenueFree(ctx, event); err != nil {
		if errors.Is(err, domain.ErrVenueConflict) {
			return nil, domain.ErrVenueConflict
		}
		return nil, fmt.Errorf("update event: %w", err)
	}

	s.invalidateListings(ctx)
	return s.details(ctx, event)
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	s.invalidateListings(ctx)
	return nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.details(ctx, event)
}

func (s *eventService) List(ctx context.Context) ([]*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKeyAllEvents); err == nil && cached != nil {
			return cached, nil
		}
	}

	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	items, err := s.detailsAll(ctx, events)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKeyAllEvents, items, listingCacheTTL)
	}
	return items, nil
}

func (s *eventService) ListByCategory(ctx context.Context, category string) ([]*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("list events by category: %w", err)
	}
	return s.detailsAll(ctx, events)
}

func (s *eventService) ListUpcoming(ctx context.Context, days int) ([]*domain.EventDetails, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if days <= 0 {
		days = 30
	}
	from := time.Now()
	to := from.AddDate(0, 0, days)
	events, err := s.eventRepo.ListStartingBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events: %w", err)
	}
	return s.detailsAll(ctx, events)
}

func (s *eventService) validateReferences(ctx context.Context, event *domain.Event) error {
	if event.DurationMinutes <= 0 {
		return domain.ErrInvalidDuration
	}
	if event.MaxAttendees <= 0 {
		return domain.ErrInvalidInput
	}
	if _, err := s.venueRepo.GetByID(ctx, event.VenueID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: venue %s", domain.ErrInvalidInput, event.VenueID)
		}
		return fmt.Errorf("get venue: %w", err)
	}
	if _, err := s.organizerRepo.GetByID(ctx, event.OrganizerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: organizer %s", domain.ErrInvalidInput, event.OrganizerID)
		}
		return fmt.Errorf("get organizer: %w", err)
	}
	return nil
}

func (s *eventService) details(ctx context.Context, event *domain.Event) (*domain.EventDetails, error) {
	count, err := s.registrationRepo.CountByEvent(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	return &domain.EventDetails{
		Event:             *event,
		CurrentAttendees:  count,
		IsUpcoming:        event.StartTime.After(time.Now()),
		HasAvailableSpots: count < event.MaxAttendees,
	}, nil
}

func (s *eventService) detailsAll(ctx context.Context, events []*domain.Event) ([]*domain.EventDetails, error) {
	items := make([]*domain.EventDetails, 0, len(events))
	for _, e := range events {
		d, err := s.details(ctx, e)
		if err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	return items, nil
}

func (s *eventService) invalidateListings(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
