package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"localeventfinder/internal/delivery/http/helpers"
	"localeventfinder/internal/delivery/http/middleware"
	"localeventfinder/internal/domain"
)

const testEventID = "2b0fdc93-0a36-4d7a-9a6f-6b1d7c1a2f10"
const testRegistrationID = "7f4a2c81-95a4-43b1-bb4d-9e2c5d0f6a33"

type mockRegistrationService struct {
	reg       *domain.Registration
	regs      []*domain.Registration
	total     int
	admitErr  error
	cancelErr error
	err       error
}

func (m *mockRegistrationService) AdmitAttendee(ctx context.Context, eventID, attendeeName, attendeeEmail string) (*domain.Registration, error) {
	if m.admitErr != nil {
		return nil, m.admitErr
	}
	return m.reg, nil
}

func (m *mockRegistrationService) CancelRegistration(ctx context.Context, registrationID, callerEmail, callerRole string) error {
	return m.cancelErr
}

func (m *mockRegistrationService) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.reg, nil
}

func (m *mockRegistrationService) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	return m.regs, m.total, nil
}

func (m *mockRegistrationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.regs, nil
}

func (m *mockRegistrationService) ListByEmail(ctx context.Context, email string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.regs, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestRegistrationController_Register(t *testing.T) {
	tests := []struct {
		name       string
		eventID    string
		body       string
		admitErr   error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "created",
			eventID:    testEventID,
			body:       `{"attendee_name":"Ada","attendee_email":"ada@example.com"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid event id",
			eventID:    "not-a-uuid",
			body:       `{"attendee_name":"Ada","attendee_email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "missing name",
			eventID:    testEventID,
			body:       `{"attendee_email":"ada@example.com"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "malformed email",
			eventID:    testEventID,
			body:       `{"attendee_name":"Ada","attendee_email":"not-an-email"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "event not found",
			eventID:    testEventID,
			body:       `{"attendee_name":"Ada","attendee_email":"ada@example.com"}`,
			admitErr:   domain.ErrEventNotFound,
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "already registered",
			eventID:    testEventID,
			body:       `{"attendee_name":"Ada","attendee_email":"ada@example.com"}`,
			admitErr:   domain.ErrAlreadyRegistered,
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "event full",
			eventID:    testEventID,
			body:       `{"attendee_name":"Ada","attendee_email":"ada@example.com"}`,
			admitErr:   domain.ErrCapacityExceeded,
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "service failure",
			eventID:    testEventID,
			body:       `{"attendee_name":"Ada","attendee_email":"ada@example.com"}`,
			admitErr:   errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRegistrationService{
				reg:      &domain.Registration{ID: testRegistrationID, EventID: testEventID, AttendeeName: "Ada", AttendeeEmail: "ada@example.com"},
				admitErr: tt.admitErr,
			}
			ctrl := NewRegistrationController(discardLogger(), svc)

			req := httptest.NewRequest(http.MethodPost, "/events/"+tt.eventID+"/registrations", bytes.NewBufferString(tt.body))
			req.SetPathValue("eventID", tt.eventID)
			w := httptest.NewRecorder()

			ctrl.Register(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.wantStatus, w.Code, w.Body.String())
			}
			var resp helpers.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if tt.wantCode == "" {
				if resp.Error != nil {
					t.Fatalf("expected no error, got %v", resp.Error)
				}
				return
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Fatalf("expected error code %q, got %v", tt.wantCode, resp.Error)
			}
		})
	}
}

func TestRegistrationController_Cancel(t *testing.T) {
	identity := middleware.Identity{UserID: "u1", Email: "ada@example.com", Role: domain.RoleUser}

	tests := []struct {
		name       string
		identity   *middleware.Identity
		cancelErr  error
		wantStatus int
	}{
		{
			name:       "cancelled",
			identity:   &identity,
			wantStatus: http.StatusOK,
		},
		{
			name:       "no identity",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not the registrant",
			identity:   &identity,
			cancelErr:  domain.ErrForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown registration",
			identity:   &identity,
			cancelErr:  domain.ErrRegistrationNotFound,
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockRegistrationService{cancelErr: tt.cancelErr}
			ctrl := NewRegistrationController(discardLogger(), svc)

			req := httptest.NewRequest(http.MethodDelete, "/registrations/"+testRegistrationID, nil)
			req.SetPathValue("registrationID", testRegistrationID)
			if tt.identity != nil {
				req = req.WithContext(middleware.SetIdentity(req.Context(), *tt.identity))
			}
			w := httptest.NewRecorder()

			ctrl.Cancel(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestRegistrationController_List_Paginated(t *testing.T) {
	svc := &mockRegistrationService{
		regs: []*domain.Registration{
			{ID: "r1", EventID: testEventID, AttendeeEmail: "ada@example.com"},
			{ID: "r2", EventID: testEventID, AttendeeEmail: "bob@example.com"},
		},
		total: 41,
	}
	ctrl := NewRegistrationController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/registrations?page=2&page_size=20", nil)
	w := httptest.NewRecorder()

	ctrl.List(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp struct {
		Data RegistrationListResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(resp.Data.Registrations) != 2 {
		t.Fatalf("expected 2 registrations, got %d", len(resp.Data.Registrations))
	}
	if resp.Data.Pagination.Total != 41 || resp.Data.Pagination.Page != 2 {
		t.Fatalf("unexpected pagination meta: %+v", resp.Data.Pagination)
	}
}

func TestRegistrationController_ListMine(t *testing.T) {
	svc := &mockRegistrationService{
		regs: []*domain.Registration{{ID: "r1", EventID: testEventID, AttendeeEmail: "ada@example.com"}},
	}
	ctrl := NewRegistrationController(discardLogger(), svc)

	t.Run("unauthorized without identity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/registrations/me", nil)
		w := httptest.NewRecorder()

		ctrl.ListMine(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/registrations/me", nil)
		id := middleware.Identity{UserID: "u1", Email: "ada@example.com", Role: domain.RoleUser}
		req = req.WithContext(middleware.SetIdentity(req.Context(), id))
		w := httptest.NewRecorder()

		ctrl.ListMine(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
	})
}

func TestRegistrationController_ListByEvent_UnknownEvent(t *testing.T) {
	svc := &mockRegistrationService{err: domain.ErrEventNotFound}
	ctrl := NewRegistrationController(discardLogger(), svc)

	req := httptest.NewRequest(http.MethodGet, "/events/"+testEventID+"/registrations", nil)
	req.SetPathValue("eventID", testEventID)
	w := httptest.NewRecorder()

	ctrl.ListByEvent(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}
