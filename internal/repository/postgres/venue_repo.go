package postgres

import (
	"context"
	"database/sql"
	"errors"

	"localeventfinder/internal/domain"
)

const venueColumns = `id, name, address, capacity, created_at, updated_at`

type venueRepository struct {
	DB *sql.DB
}

func NewVenueRepository(db *sql.DB) domain.VenueRepository {
	return &venueRepository{
		DB: db,
	}
}

func (r *venueRepository) Create(ctx context.Context, v *domain.Venue) error {
	query := `
		INSERT INTO venues (name, address, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, v.Name, v.Address, v.Capacity, v.CreatedAt, v.UpdatedAt).Scan(&v.ID)
}

func (r *venueRepository) GetByID(ctx context.Context, id string) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE id = $1`
	v := &domain.Venue{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *venueRepository) List(ctx context.Context) ([]*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues ORDER BY name`
	return r.queryVenues(ctx, query)
}

func (r *venueRepository) ListByCapacityRange(ctx context.Context, minCapacity, maxCapacity int) ([]*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE capacity >= $1 AND capacity <= $2 ORDER BY capacity`
	return r.queryVenues(ctx, query, minCapacity, maxCapacity)
}

func (r *venueRepository) Update(ctx context.Context, v *domain.Venue) error {
	query := `
		UPDATE venues SET name = $2, address = $3, capacity = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.DB.QueryRowContext(ctx, query, v.ID, v.Name, v.Address, v.Capacity).Scan(&v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	return nil
}

func (r *venueRepository) Delete(ctx context.Context, id string) error {
	result, err := r.DB.ExecContext(ctx, `DELETE FROM venues WHERE id = $1`, id)
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

func (r *venueRepository) Stats(ctx context.Context) (*domain.VenueStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(capacity), 0),
		       COALESCE(AVG(capacity), 0),
		       (SELECT COUNT(*) FROM events)
		FROM venues
	`
	stats := &domain.VenueStats{}
	err := r.DB.QueryRowContext(ctx, query).Scan(&stats.TotalVenues, &stats.TotalCapacity, &stats.AvgCapacity, &stats.TotalEvents)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *venueRepository) queryVenues(ctx context.Context, query string, args ...any) ([]*domain.Venue, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	venues := make([]*domain.Venue, 0)
	for rows.Next() {
		v := &domain.Venue{}
		if err := rows.Scan(&v.ID, &v.Name, &v.Address, &v.Capacity, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, v)
	}
	return venues, rows.Err()
}
