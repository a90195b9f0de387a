package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"localeventfinder/internal/domain"
)

const eventColumns = `id, title, description, category, start_time, duration_minutes, price, max_attendees, venue_id, organizer_id, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

// CreateIfVenueFree inserts the event unless another event at the venue
// overlaps [start, start+duration). The overlap guard runs inside the INSERT
// statement itself so two concurrent bookings cannot both pass the check.
func (r *eventRepository) CreateIfVenueFree(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, category, start_time, duration_minutes, price, max_attendees, venue_id, organizer_id, created_at, updated_at)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
		WHERE NOT EXISTS (
			SELECT 1 FROM events c
			WHERE c.venue_id = $8
			  AND c.start_time < $4::timestamptz + make_interval(mins => $5)
			  AND c.start_time + make_interval(mins => c.duration_minutes) > $4::timestamptz
		)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Category, e.StartTime, e.DurationMinutes,
		e.Price, e.MaxAttendees, e.VenueID, e.OrganizerID, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrVenueConflict
		}
		return err
	}
	return nil
}

// UpdateIfVenueFree replaces the event's fields unless another event (not the
// event itself) overlaps the new window at the target venue.
func (r *eventRepository) UpdateIfVenueFree(ctx context.Context, e *domain.Event) error {
	query := `
		UPDATE events SET
			title = $2, description = $3, category = $4, start_time = $5,
			duration_minutes = $6, price = $7, max_attendees = $8,
			venue_id = $9, organizer_id = $10, updated_at = NOW()
		WHERE id = $1
		  AND NOT EXISTS (
			SELECT 1 FROM events c
			WHERE c.venue_id = $9
			  AND c.id <> $1
			  AND c.start_time < $5::timestamptz + make_interval(mins => $6)
			  AND c.start_time + make_interval(mins => c.duration_minutes) > $5::timestamptz
		)
		RETURNING created_at, updated_at
	`
	err := r.DB.QueryRowContext(ctx, query,
		e.ID, e.Title, e.Description, e.Category, e.StartTime,
		e.DurationMinutes, e.Price, e.MaxAttendees, e.VenueID, e.OrganizerID,
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Either the row is gone or the window is taken; the service
			// re-checks existence first, so a conflict is the remaining cause.
			return domain.ErrVenueConflict
		}
		return err
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e := &domain.Event{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.StartTime, &e.DurationMinutes,
		&e.Price, &e.MaxAttendees, &e.VenueID, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_time`
	return r.queryEvents(ctx, query)
}

func (r *eventRepository) ListByCategory(ctx context.Context, category string) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE category = $1 ORDER BY start_time`
	return r.queryEvents(ctx, query, category)
}

func (r *eventRepository) ListStartingBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE start_time >= $1 AND start_time <= $2 ORDER BY start_time`
	return r.queryEvents(ctx, query, from, to)
}

func (r *eventRepository) ListByVenue(ctx context.Context, venueID string, excludeEventID *string) ([]*domain.Event, error) {
	if excludeEventID != nil {
		query := `SELECT ` + eventColumns + ` FROM events WHERE venue_id = $1 AND id <> $2 ORDER BY start_time`
		return r.queryEvents(ctx, query, venueID, *excludeEventID)
	}
	query := `SELECT ` + eventColumns + ` FROM events WHERE venue_id = $1 ORDER BY start_time`
	return r.queryEvents(ctx, query, venueID)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) queryEvents(ctx context.Context, query string, args ...any) ([]*domain.Event, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Category, &e.StartTime, &e.DurationMinutes,
			&e.Price, &e.MaxAttendees, &e.VenueID, &e.OrganizerID, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
