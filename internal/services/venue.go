package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"localeventfinder/internal/domain"
)

type venueService struct {
	venueRepo      domain.VenueRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewVenueService creates a VenueService with the given repositories.
func NewVenueService(venueRepo domain.VenueRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.VenueService {
	return &venueService{
		venueRepo:      venueRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *venueService) Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(venue.Name) == "" || venue.Capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	venue.CreatedAt = now
	venue.UpdatedAt = now
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, fmt.Errorf("create venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) Update(ctx context.Context, id string, venue *domain.Venue) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(venue.Name) == "" || venue.Capacity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	existing, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	existing.Name = venue.Name
	existing.Address = venue.Address
	existing.Capacity = venue.Capacity
	if err := s.venueRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update venue: %w", err)
	}
	return existing, nil
}

func (s *venueService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.venueRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("delete venue: %w", err)
	}
	return nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venue, err := s.venueRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return venue, nil
}

func (s *venueService) List(ctx context.Context) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	return venues, nil
}

func (s *venueService) ListByCapacityRange(ctx context.Context, minCapacity, maxCapacity int) ([]*domain.Venue, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if minCapacity < 0 || (maxCapacity > 0 && maxCapacity < minCapacity) {
		return nil, domain.ErrInvalidInput
	}
	if maxCapacity <= 0 {
		maxCapacity = int(^uint32(0) >> 1)
	}
	venues, err := s.venueRepo.ListByCapacityRange(ctx, minCapacity, maxCapacity)
	if err != nil {
		return nil, fmt.Errorf("list venues by capacity: %w", err)
	}
	return venues, nil
}

func (s *venueService) ListWithEvents(ctx context.Context) ([]*domain.VenueWithEvents, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	venues, err := s.venueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	result := make([]*domain.VenueWithEvents, 0, len(venues))
	for _, v := range venues {
		events, err := s.eventRepo.ListByVenue(ctx, v.ID, nil)
		if err != nil {
			return nil, fmt.Errorf("list events for venue %s: %w", v.ID, err)
		}
		result = append(result, &domain.VenueWithEvents{Venue: v, Events: events})
	}
	return result, nil
}

func (s *venueService) Stats(ctx context.Context) (*domain.VenueStats, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stats, err := s.venueRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("venue stats: %w", err)
	}
	return stats, nil
}
