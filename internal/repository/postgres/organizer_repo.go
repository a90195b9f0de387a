package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"localeventfinder/internal/domain"
)

const organizerColumns = `id, name, contact_phone, email, created_at, updated_at`

type organizerRepository struct {
	DB *sql.DB
}

func NewOrganizerRepository(db *sql.DB) domain.OrganizerRepository {
	return &organizerRepository{
		DB: db,
	}
}

func (r *organizerRepository) Create(ctx context.Context, o *domain.Organizer) error {
	query := `
		INSERT INTO organizers (name, contact_phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, o.Name, o.ContactPhone, o.Email, o.CreatedAt, o.UpdatedAt).Scan(&o.ID)
}

func (r *organizerRepository) GetByID(ctx context.Context, id string) (*domain.Organizer, error) {
	query := `SELECT ` + organizerColumns + ` FROM organizers WHERE id = $1`
	o := &domain.Organizer{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&o.ID, &o.Name, &o.ContactPhone, &o.Email, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return o, nil
}

func (r *organizerRepository) List(ctx context.Context) ([]*domain.Organizer, error) {
	query := `SELECT ` + organizerColumns + ` FROM organizers ORDER BY name`
	return r.queryOrganizers(ctx, query)
}

func (r *organizerRepository) ListByEmailDomain(ctx context.Context, emailDomain string) ([]*domain.Organizer, error) {
	emailDomain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(emailDomain)), "@")
	query := `SELECT ` + organizerColumns + ` FROM organizers WHERE lower(email) LIKE '%@' || $1 ORDER BY name`
	return r.queryOrganizers(ctx, query, emailDomain)
}

func (r *organizerRepository) Update(ctx context.Context, o *domain.Organizer) error {
	query := `
		UPDATE organizers SET name = $2, contact_phone = $3, email = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, o.ID, o.Name, o.ContactPhone, o.Email).Scan(&o.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *organizerRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM organizers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *organizerRepository) queryOrganizers(ctx context.Context, query string, args ...any) ([]*domain.Organizer, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	organizers := make([]*domain.Organizer, 0)
	for rows.Next() {
		o := &domain.Organizer{}
		if err := rows.Scan(&o.ID, &o.Name, &o.ContactPhone, &o.Email, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		organizers = append(organizers, o)
	}
	return organizers, rows.Err()
}
