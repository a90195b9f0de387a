package postgres

import (
	"context"
	"database/sql"
	"errors"

	"localeventfinder/internal/domain"
)

const registrationColumns = `id, event_id, attendee_name, attendee_email, registered_at`

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

// CreateIfCapacity inserts the registration with the capacity check folded
// into the same statement. The unique index on (event_id, lower(email))
// backs the duplicate check under concurrency.
func (r *registrationRepository) CreateIfCapacity(ctx context.Context, reg *domain.Registration, maxAttendees int) error {
	query := `
		INSERT INTO registrations (event_id, attendee_name, attendee_email, registered_at)
		SELECT $1, $2, $3, $4
		WHERE (SELECT COUNT(*) FROM registrations WHERE event_id = $1) < $5
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		reg.EventID, reg.AttendeeName, reg.AttendeeEmail, reg.RegisteredAt, maxAttendees,
	).Scan(&reg.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCapacityExceeded
		}
		return err
	}
	return nil
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE id = $1`
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&reg.ID, &reg.EventID, &reg.AttendeeName, &reg.AttendeeEmail, &reg.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) GetByEventAndEmail(ctx context.Context, eventID, email string) (*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 AND lower(attendee_email) = lower($2)`
	reg := &domain.Registration{}
	err := r.DB.QueryRowContext(ctx, query, eventID, email).Scan(
		&reg.ID, &reg.EventID, &reg.AttendeeName, &reg.AttendeeEmail, &reg.RegisteredAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *registrationRepository) List(ctx context.Context, params domain.PaginationParams) ([]*domain.Registration, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + registrationColumns + ` FROM registrations ORDER BY registered_at DESC LIMIT $1 OFFSET $2`
	regs, err := r.queryRegistrations(ctx, query, params.PageSize, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

func (r *registrationRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE event_id = $1 ORDER BY registered_at`
	return r.queryRegistrations(ctx, query, eventID)
}

func (r *registrationRepository) ListByEmail(ctx context.Context, email string) ([]*domain.Registration, error) {
	query := `SELECT ` + registrationColumns + ` FROM registrations WHERE lower(attendee_email) = lower($1) ORDER BY registered_at DESC`
	return r.queryRegistrations(ctx, query, email)
}

func (r *registrationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *registrationRepository) queryRegistrations(ctx context.Context, query string, args ...any) ([]*domain.Registration, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg := &domain.Registration{}
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.AttendeeName, &reg.AttendeeEmail, &reg.RegisteredAt); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}
