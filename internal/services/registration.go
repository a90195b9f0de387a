package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"localeventfinder/internal/domain"
)

type registrationService struct {
	registrationRepo domain.RegistrationRepository
	eventRepo        domain.EventRepository
	venueRepo        domain.VenueRepository
	emailService     domain.EmailService
	contextTimeout   time.Duration
}

// NewRegistrationService creates a RegistrationService. emailService may be
// nil, in which case no confirmation emails are sent.
func NewRegistrationService(
	registrationRepo domain.RegistrationRepository,
	eventRepo domain.EventRepository,
	venueRepo domain.VenueRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		venueRepo:        venueRepo,
		emailService:     emailService,
		contextTimeout:   timeout,
	}
}

// AdmitAttendee checks existence, then duplicate registration, then capacity,
// in that order, so the caller always sees the most specific failure. The
// final insert re-checks capacity and uniqueness at the store so concurrent
// admissions cannot both take the last slot.
func (s *registrationService) AdmitAttendee(ctx context.Context, eventID, attendeeName, attendeeEmail string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	attendeeEmail = strings.TrimSpace(strings.ToLower(attendeeEmail))
	attendeeName = strings.TrimSpace(attendeeName)
	if attendeeEmail == "" || attendeeName == "" {
		return nil, domain.ErrInvalidInput
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if _, err := s.registrationRepo.GetByEventAndEmail(ctx, eventID, attendeeEmail); err == nil {
		return nil, domain.ErrAlreadyRegistered
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get registration: %w", err)
	}

	count, err := s.registrationRepo.CountByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("count registrations: %w", err)
	}
	if count >= event.MaxAttendees {
		return nil, domain.ErrCapacityExceeded
	}

	reg := domain.NewRegistration(eventID, attendeeName, attendeeEmail, time.Now())
	if err := s.registrationRepo.CreateIfCapacity(ctx, reg, event.MaxAttendees); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) || errors.Is(err, domain.ErrCapacityExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}

	s.sendConfirmation(ctx, event, reg)
	return reg, nil
}

// sendConfirmation is best effort: a mail failure never fails the admission.
func (s *registrationService) sendConfirmation(ctx context.Context, event *domain.Event, reg *domain.Registration) {
	if s.emailService == nil {
		return
	}
	data := &domain.RegistrationEmailData{
		AttendeeName: reg.AttendeeName,
		EventTitle:   event.Title,
		EventStart:   event.StartTime.Format(time.RFC1123),
	}
	if venue, err := s.venueRepo.GetByID(ctx, event.VenueID); err == nil {
		data.VenueName = venue.Name
		data.VenueAddress = venue.Address
	}
	_ = s.emailService.SendRegistrationConfirmation(ctx, reg.AttendeeEmail, data)
}

// CancelRegistration removes a registration. Admins may cancel any
// registration; everyone else only their own (matched by attendee email).
func (s *registrationService) CancelRegistration(ctx context.Context, registrationID, callerEmail, callerRole string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if callerRole != domain.RoleAdmin && !strings.EqualFold(reg.AttendeeEmail, callerEmail) {
		return domain.ErrForbidden
	}
	if err := s.registrationRepo.Delete(ctx, registrationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrRegistrationNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	return nil
}

func (s *registrationService) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

func (s *registrationService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, total, err := s.registrationRepo.List(ctx, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	return regs, total, nil
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	regs, err := s.registrationRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations by event: %w", err)
	}
	return regs, nil
}

func (s *registrationService) ListByEmail(ctx context.Context, email string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	regs, err := s.registrationRepo.ListByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("list registrations by email: %w", err)
	}
	return regs, nil
}
