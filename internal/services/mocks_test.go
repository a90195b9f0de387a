package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"localeventfinder/internal/domain"
)

// In-memory repositories shared by the service tests in this package.

type mockEventRepository struct {
	events    map[string]*domain.Event
	nextID    int
	listCalls int
	err       error
}

func newMockEventRepository(events ...*domain.Event) *mockEventRepository {
	m := &mockEventRepository{events: make(map[string]*domain.Event)}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *mockEventRepository) overlapsExisting(event *domain.Event, excludeID string) bool {
	window := event.Window()
	for _, e := range m.events {
		if e.VenueID != event.VenueID || e.ID == excludeID {
			continue
		}
		if window.Overlaps(e.Window()) {
			return true
		}
	}
	return false
}

func (m *mockEventRepository) CreateIfVenueFree(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	if m.overlapsExisting(event, "") {
		return domain.ErrVenueConflict
	}
	m.nextID++
	event.ID = fmt.Sprintf("e%d", m.nextID)
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) UpdateIfVenueFree(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	if m.overlapsExisting(event, event.ID) {
		return domain.ErrVenueConflict
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	ev, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return ev, nil
}

func (m *mockEventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	m.listCalls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Event, 0, len(m.events))
	for _, e := range m.events {
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEventRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, e := range m.events {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, e := range m.events {
		if !e.StartTime.Before(from) && e.StartTime.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEventRepository) ListByVenue(ctx context.Context, venueID string, excludeEventID *string) ([]*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Event
	for _, e := range m.events {
		if e.VenueID != venueID {
			continue
		}
		if excludeEventID != nil && e.ID == *excludeEventID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.events, id)
	return nil
}

type mockRegistrationRepository struct {
	regs   map[string]*domain.Registration
	nextID int
	err    error
}

func newMockRegistrationRepository(regs ...*domain.Registration) *mockRegistrationRepository {
	m := &mockRegistrationRepository{regs: make(map[string]*domain.Registration)}
	for _, r := range regs {
		m.regs[r.ID] = r
	}
	return m
}

func (m *mockRegistrationRepository) CreateIfCapacity(ctx context.Context, reg *domain.Registration, maxAttendees int) error {
	if m.err != nil {
		return m.err
	}
	count := 0
	for _, r := range m.regs {
		if r.EventID != reg.EventID {
			continue
		}
		if strings.EqualFold(r.AttendeeEmail, reg.AttendeeEmail) {
			return domain.ErrAlreadyRegistered
		}
		count++
	}
	if count >= maxAttendees {
		return domain.ErrCapacityExceeded
	}
	m.nextID++
	reg.ID = fmt.Sprintf("r%d", m.nextID)
	m.regs[reg.ID] = reg
	return nil
}

func (m *mockRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.regs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (m *mockRegistrationRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, r := range m.regs {
		if r.EventID == eventID && strings.EqualFold(r.AttendeeEmail, email) {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockRegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	count := 0
	for _, r := range m.regs {
		if r.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (m *mockRegistrationRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	all := make([]*domain.Registration, 0, len(m.regs))
	for _, r := range m.regs {
		all = append(all, r)
	}
	total := len(all)
	offset := params.Offset()
	if offset >= total {
		return nil, total, nil
	}
	end := offset + params.PageSize
	if end > total {
		end = total
	}
	return all[offset:end], total, nil
}

func (m *mockRegistrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Registration
	for _, r := range m.regs {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Registration
	for _, r := range m.regs {
		if strings.EqualFold(r.AttendeeEmail, email) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.regs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.regs, id)
	return nil
}

type mockVenueRepository struct {
	venues    map[string]*domain.Venue
	stats     *domain.VenueStats
	nextID    int
	err       error
	deleteErr error
}

func newMockVenueRepository(venues ...*domain.Venue) *mockVenueRepository {
	m := &mockVenueRepository{venues: make(map[string]*domain.Venue)}
	for _, v := range venues {
		m.venues[v.ID] = v
	}
	return m
}

func (m *mockVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	venue.ID = fmt.Sprintf("v%d", m.nextID)
	m.venues[venue.ID] = venue
	return nil
}

func (m *mockVenueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	v, ok := m.venues[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

func (m *mockVenueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Venue, 0, len(m.venues))
	for _, v := range m.venues {
		out = append(out, v)
	}
	return out, nil
}

func (m *mockVenueRepository) ListByCapacityRange(ctx context.Context, minCapacity, maxCapacity int) ([]*domain.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Venue
	for _, v := range m.venues {
		if v.Capacity >= minCapacity && v.Capacity <= maxCapacity {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.venues[venue.ID]; !ok {
		return domain.ErrNotFound
	}
	m.venues[venue.ID] = venue
	return nil
}

func (m *mockVenueRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.venues[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.venues, id)
	return nil
}

func (m *mockVenueRepository) Stats(ctx context.Context) (*domain.VenueStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

type mockOrganizerRepository struct {
	organizers map[string]*domain.Organizer
	nextID     int
	err        error
	deleteErr  error
}

func newMockOrganizerRepository(organizers ...*domain.Organizer) *mockOrganizerRepository {
	m := &mockOrganizerRepository{organizers: make(map[string]*domain.Organizer)}
	for _, o := range organizers {
		m.organizers[o.ID] = o
	}
	return m
}

func (m *mockOrganizerRepository) Create(ctx context.Context, organizer *domain.Organizer) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	organizer.ID = fmt.Sprintf("o%d", m.nextID)
	m.organizers[organizer.ID] = organizer
	return nil
}

func (m *mockOrganizerRepository) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	if m.err != nil {
		return nil, m.err
	}
	o, ok := m.organizers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (m *mockOrganizerRepository) List(ctx context.Context) ([]*domain.Organizer, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]*domain.Organizer, 0, len(m.organizers))
	for _, o := range m.organizers {
		out = append(out, o)
	}
	return out, nil
}

func (m *mockOrganizerRepository) ListByEmailDomain(ctx context.Context, emailDomain string) ([]*domain.Organizer, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.Organizer
	for _, o := range m.organizers {
		if strings.HasSuffix(strings.ToLower(o.Email), "@"+strings.ToLower(emailDomain)) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockOrganizerRepository) Update(ctx context.Context, organizer *domain.Organizer) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.organizers[organizer.ID]; !ok {
		return domain.ErrNotFound
	}
	m.organizers[organizer.ID] = organizer
	return nil
}

func (m *mockOrganizerRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.organizers[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.organizers, id)
	return nil
}

type mockListingCache struct {
	entries       map[string][]*domain.EventDetails
	sets          int
	invalidations int
}

func newMockListingCache() *mockListingCache {
	return &mockListingCache{entries: make(map[string][]*domain.EventDetails)}
}

func (m *mockListingCache) Get(ctx context.Context, key string) ([]*domain.EventDetails, error) {
	return m.entries[key], nil
}

func (m *mockListingCache) Set(ctx context.Context, key string, items []*domain.EventDetails, ttl time.Duration) error {
	m.entries[key] = items
	m.sets++
	return nil
}

func (m *mockListingCache) Invalidate(ctx context.Context) error {
	m.entries = make(map[string][]*domain.EventDetails)
	m.invalidations++
	return nil
}

type fakeEmailService struct {
	sentTo []string
	err    error
}

func (f *fakeEmailService) SendRegistrationConfirmation(ctx context.Context, to string, data *domain.RegistrationEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, to)
	return nil
}
