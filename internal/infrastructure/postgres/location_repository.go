package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/robshop/stock-engine/internal/domain"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo persists stores and the central warehouse in locations.
type LocationRepo struct {
	q Querier
}

// NewLocationRepository builds the adapter. Pass pool or tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create inserts a location; duplicate IDs map to domain.ErrDuplicate.
func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, name, kind, address, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, string(location.Kind), location.Address, location.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID returns one location or domain.ErrNotFound.
func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	query := `SELECT id, name, kind, address, created_at FROM locations WHERE id = $1`
	var loc entity.Location
	var kind string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&loc.ID, &loc.Name, &kind, &loc.Address, &loc.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	loc.Kind = entity.LocationKind(kind)
	return &loc, nil
}

// List returns all locations ordered by ID.
func (r *LocationRepo) List() ([]*entity.Location, error) {
	query := `SELECT id, name, kind, address, created_at FROM locations ORDER BY id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []*entity.Location
	for rows.Next() {
		var loc entity.Location
		var kind string
		if err := rows.Scan(&loc.ID, &loc.Name, &kind, &loc.Address, &loc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		loc.Kind = entity.LocationKind(kind)
		out = append(out, &loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return out, nil
}
