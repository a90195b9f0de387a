package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"localeventfinder/internal/domain"
)

func newEventServiceForTest(eventRepo *mockEventRepository, cache domain.ListingCache) domain.EventService {
	venueRepo := newMockVenueRepository(&domain.Venue{ID: "v1", Name: "Town Hall", Address: "1 Main St", Capacity: 200})
	organizerRepo := newMockOrganizerRepository(&domain.Organizer{ID: "o1", Name: "City Culture", Email: "events@city.example"})
	return NewEventService(eventRepo, venueRepo, organizerRepo, newMockRegistrationRepository(), NewAvailabilityChecker(eventRepo, time.Second), cache, time.Second)
}

func validEvent(start time.Time) *domain.Event {
	return &domain.Event{
		Title:           "Jazz Night",
		Description:     "Live quartet",
		Category:        "music",
		StartTime:       start,
		DurationMinutes: 120,
		Price:           15,
		MaxAttendees:    80,
		VenueID:         "v1",
		OrganizerID:     "o1",
	}
}

func TestEventService_Create(t *testing.T) {
	start := time.Date(2026, 10, 3, 19, 0, 0, 0, time.UTC)
	booked := &domain.Event{ID: "e1", Title: "Earlier Show", VenueID: "v1", StartTime: start, DurationMinutes: 120, MaxAttendees: 50}

	tests := []struct {
		name      string
		eventRepo *mockEventRepository
		mutate    func(*domain.Event)
		wantErr   error
	}{
		{
			name:      "success",
			eventRepo: newMockEventRepository(),
		},
		{
			name:      "venue already booked",
			eventRepo: newMockEventRepository(booked),
			wantErr:   domain.ErrVenueConflict,
		},
		{
			name:      "back to back booking allowed",
			eventRepo: newMockEventRepository(booked),
			mutate:    func(e *domain.Event) { e.StartTime = start.Add(120 * time.Minute) },
		},
		{
			name:      "unknown venue",
			eventRepo: newMockEventRepository(),
			mutate:    func(e *domain.Event) { e.VenueID = "missing" },
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "unknown organizer",
			eventRepo: newMockEventRepository(),
			mutate:    func(e *domain.Event) { e.OrganizerID = "missing" },
			wantErr:   domain.ErrInvalidInput,
		},
		{
			name:      "non-positive duration",
			eventRepo: newMockEventRepository(),
			mutate:    func(e *domain.Event) { e.DurationMinutes = 0 },
			wantErr:   domain.ErrInvalidDuration,
		},
		{
			name:      "non-positive max attendees",
			eventRepo: newMockEventRepository(),
			mutate:    func(e *domain.Event) { e.MaxAttendees = 0 },
			wantErr:   domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newEventServiceForTest(tt.eventRepo, nil)
			event := validEvent(start)
			if tt.mutate != nil {
				tt.mutate(event)
			}

			details, err := svc.Create(context.Background(), event)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if details.ID == "" {
				t.Fatal("expected event ID to be set")
			}
			if details.CurrentAttendees != 0 {
				t.Fatalf("expected 0 attendees, got %d", details.CurrentAttendees)
			}
			if !details.HasAvailableSpots {
				t.Fatal("expected available spots on a fresh event")
			}
		})
	}
}

func TestEventService_Update(t *testing.T) {
	start := time.Date(2026, 10, 3, 19, 0, 0, 0, time.UTC)

	t.Run("own window does not block the update", func(t *testing.T) {
		existing := validEvent(start)
		existing.ID = "e1"
		eventRepo := newMockEventRepository(existing)
		svc := newEventServiceForTest(eventRepo, nil)

		updated := validEvent(start.Add(30 * time.Minute))
		details, err := svc.Update(context.Background(), "e1", updated)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !details.StartTime.Equal(start.Add(30 * time.Minute)) {
			t.Fatalf("expected shifted start time, got %v", details.StartTime)
		}
	})

	t.Run("conflict with another event", func(t *testing.T) {
		existing := validEvent(start)
		existing.ID = "e1"
		other := validEvent(start.Add(3 * time.Hour))
		other.ID = "e2"
		eventRepo := newMockEventRepository(existing, other)
		svc := newEventServiceForTest(eventRepo, nil)

		moved := validEvent(start.Add(3 * time.Hour))
		if _, err := svc.Update(context.Background(), "e1", moved); !errors.Is(err, domain.ErrVenueConflict) {
			t.Fatalf("expected ErrVenueConflict, got %v", err)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := newEventServiceForTest(newMockEventRepository(), nil)
		if _, err := svc.Update(context.Background(), "missing", validEvent(start)); !errors.Is(err, domain.ErrEventNotFound) {
			t.Fatalf("expected ErrEventNotFound, got %v", err)
		}
	})
}

func TestEventService_Delete_Unknown(t *testing.T) {
	svc := newEventServiceForTest(newMockEventRepository(), nil)
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventService_List_CachesListings(t *testing.T) {
	start := time.Date(2026, 10, 3, 19, 0, 0, 0, time.UTC)
	existing := validEvent(start)
	existing.ID = "e1"
	eventRepo := newMockEventRepository(existing)
	cache := newMockListingCache()
	svc := newEventServiceForTest(eventRepo, cache)
	ctx := context.Background()

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("first list failed: %v", err)
	}
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("second list failed: %v", err)
	}
	if eventRepo.listCalls != 1 {
		t.Fatalf("expected one repository hit, got %d", eventRepo.listCalls)
	}
	if cache.sets != 1 {
		t.Fatalf("expected one cache fill, got %d", cache.sets)
	}

	// Any write drops the cached listings.
	if _, err := svc.Create(ctx, validEvent(start.Add(4*time.Hour))); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if cache.invalidations == 0 {
		t.Fatal("expected cache invalidation after create")
	}
	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("list after create failed: %v", err)
	}
	if eventRepo.listCalls != 2 {
		t.Fatalf("expected repository hit after invalidation, got %d calls", eventRepo.listCalls)
	}
}

func TestEventService_ListUpcoming(t *testing.T) {
	soon := validEvent(time.Now().AddDate(0, 0, 10))
	soon.ID = "e1"
	far := validEvent(time.Now().AddDate(0, 0, 60))
	far.ID = "e2"
	far.StartTime = far.StartTime.Add(5 * time.Hour)
	eventRepo := newMockEventRepository(soon, far)
	svc := newEventServiceForTest(eventRepo, nil)

	tests := []struct {
		name      string
		days      int
		wantCount int
	}{
		{name: "default horizon covers 30 days", days: 0, wantCount: 1},
		{name: "explicit horizon", days: 90, wantCount: 2},
		{name: "short horizon", days: 5, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListUpcoming(context.Background(), tt.days)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.wantCount {
				t.Fatalf("expected %d events, got %d", tt.wantCount, len(got))
			}
		})
	}
}

func TestEventService_GetByID_ComputesDetails(t *testing.T) {
	start := time.Now().Add(48 * time.Hour)
	existing := validEvent(start)
	existing.ID = "e1"
	existing.MaxAttendees = 2
	eventRepo := newMockEventRepository(existing)
	venueRepo := newMockVenueRepository(&domain.Venue{ID: "v1", Name: "Town Hall", Capacity: 200})
	organizerRepo := newMockOrganizerRepository(&domain.Organizer{ID: "o1", Name: "City Culture"})
	regRepo := newMockRegistrationRepository(
		&domain.Registration{ID: "r1", EventID: "e1", AttendeeEmail: "ada@example.com"},
		&domain.Registration{ID: "r2", EventID: "e1", AttendeeEmail: "bob@example.com"},
	)
	svc := NewEventService(eventRepo, venueRepo, organizerRepo, regRepo, NewAvailabilityChecker(eventRepo, time.Second), nil, time.Second)

	details, err := svc.GetByID(context.Background(), "e1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if details.CurrentAttendees != 2 {
		t.Fatalf("expected 2 attendees, got %d", details.CurrentAttendees)
	}
	if details.HasAvailableSpots {
		t.Fatal("expected no available spots at capacity")
	}
	if !details.IsUpcoming {
		t.Fatal("expected a future event to be upcoming")
	}
}
