package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"localeventfinder/internal/domain"
)

type organizerService struct {
	organizerRepo  domain.OrganizerRepository
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewOrganizerService creates an OrganizerService with the given repositories.
func NewOrganizerService(organizerRepo domain.OrganizerRepository, eventRepo domain.EventRepository, timeout time.Duration) domain.OrganizerService {
	return &organizerService{
		organizerRepo:  organizerRepo,
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *organizerService) Create(ctx context.Context, organizer *domain.Organizer) (*domain.Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	organizer.Email = strings.TrimSpace(strings.ToLower(organizer.Email))
	if strings.TrimSpace(organizer.Name) == "" || organizer.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	organizer.CreatedAt = now
	organizer.UpdatedAt = now
	if err := s.organizerRepo.Create(ctx, organizer); err != nil {
		return nil, fmt.Errorf("create organizer: %w", err)
	}
	return organizer, nil
}

func (s *organizerService) Update(ctx context.Context, id string, organizer *domain.Organizer) (*domain.Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	organizer.Email = strings.TrimSpace(strings.ToLower(organizer.Email))
	if strings.TrimSpace(organizer.Name) == "" || organizer.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := s.organizerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	existing.Name = organizer.Name
	existing.ContactPhone = organizer.ContactPhone
	existing.Email = organizer.Email
	if err := s.organizerRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update organizer: %w", err)
	}
	return existing, nil
}

func (s *organizerService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.organizerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrConflict) {
			return err
		}
		return fmt.Errorf("delete organizer: %w", err)
	}
	return nil
}

func (s *organizerService) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	organizer, err := s.organizerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get organizer: %w", err)
	}
	return organizer, nil
}

func (s *organizerService) List(ctx context.Context) ([]*domain.Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	organizers, err := s.organizerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	return organizers, nil
}

func (s *organizerService) ListByEmailDomain(ctx context.Context, emailDomain string) ([]*domain.Organizer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if strings.TrimSpace(emailDomain) == "" {
		return nil, domain.ErrInvalidInput
	}
	organizers, err := s.organizerRepo.ListByEmailDomain(ctx, emailDomain)
	if err != nil {
		return nil, fmt.Errorf("list organizers by email domain: %w", err)
	}
	return organizers, nil
}

func (s *organizerService) ListWithEvents(ctx context.Context) ([]*domain.OrganizerWithEvents, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	organizers, err := s.organizerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizers: %w", err)
	}
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	byOrganizer := make(map[string][]*domain.Event)
	for _, e := range events {
		byOrganizer[e.OrganizerID] = append(byOrganizer[e.OrganizerID], e)
	}
	result := make([]*domain.OrganizerWithEvents, 0, len(organizers))
	for _, o := range organizers {
		evs := byOrganizer[o.ID]
		if evs == nil {
			evs = []*domain.Event{}
		}
		result = append(result, &domain.OrganizerWithEvents{Organizer: o, Events: evs})
	}
	return result, nil
}
