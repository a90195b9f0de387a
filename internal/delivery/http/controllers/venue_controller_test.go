package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"localeventfinder/internal/domain"
)

type mockVenueService struct {
	venue     *domain.Venue
	venues    []*domain.Venue
	stats     *domain.VenueStats
	deleteErr error
	err       error
}

func (m *mockVenueService) Create(ctx context.Context, venue *domain.Venue) (*domain.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.venue, nil
}

func (m *mockVenueService) Update(ctx context.Context, id string, venue *domain.Venue) (*domain.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.venue, nil
}

func (m *mockVenueService) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func (m *mockVenueService) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.venue, nil
}

func (m *mockVenueService) List(ctx context.Context) ([]*domain.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.venues, nil
}

func (m *mockVenueService) ListByCapacityRange(ctx context.Context, minCapacity, maxCapacity int) ([]*domain.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.venues, nil
}

func (m *mockVenueService) ListWithEvents(ctx context.Context) ([]*domain.VenueWithEvents, error) {
	if m.err != nil {
		return nil, m.err
	}
	return nil, nil
}

func (m *mockVenueService) Stats(ctx context.Context) (*domain.VenueStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func TestVenueController_ListByCapacity(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		svcErr     error
		wantStatus int
	}{
		{name: "no bounds", query: "", wantStatus: http.StatusOK},
		{name: "bounded", query: "?min=100&max=500", wantStatus: http.StatusOK},
		{name: "malformed min", query: "?min=lots", wantStatus: http.StatusBadRequest},
		{name: "negative max", query: "?max=-5", wantStatus: http.StatusBadRequest},
		{name: "inverted range", query: "?min=500&max=100", svcErr: domain.ErrInvalidInput, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockVenueService{venues: []*domain.Venue{}, err: tt.svcErr}
			ctrl := NewVenueController(discardLogger(), svc)

			req := httptest.NewRequest(http.MethodGet, "/venues/capacity"+tt.query, nil)
			w := httptest.NewRecorder()

			ctrl.ListByCapacity(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestVenueController_Delete_StillReferenced(t *testing.T) {
	svc := &mockVenueService{deleteErr: domain.ErrConflict}
	ctrl := NewVenueController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodDelete, "/venues/"+testVenueID, nil)
	req.SetPathValue("venueID", testVenueID)
	w := httptest.NewRecorder()

	ctrl.Delete(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status %d, got %d (body %s)", http.StatusConflict, w.Code, w.Body.String())
	}
}
