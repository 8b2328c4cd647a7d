package postgres

import (
	"context"
	"fmt"

	"github.com/robshop/stock-engine/internal/domain/repository"
)

var _ repository.VersionRepository = (*VersionRepo)(nil)

// VersionRepo keeps the monotonic stock version marker in a single-row
// table, bumped on every mutation so views can detect change cheaply.
type VersionRepo struct {
	q Querier
}

// NewVersionRepository builds the adapter. Pass pool or tx (Querier).
func NewVersionRepository(q Querier) *VersionRepo {
	return &VersionRepo{q: q}
}

// Current reads the marker; a missing row counts as version 0.
func (r *VersionRepo) Current() (int64, error) {
	query := `SELECT COALESCE((SELECT version FROM stock_version WHERE id = 1), 0)`
	var v int64
	if err := r.q.QueryRow(context.Background(), query).Scan(&v); err != nil {
		return 0, fmt.Errorf("read stock version: %w", err)
	}
	return v, nil
}

// Bump increments the marker atomically and returns the new value.
func (r *VersionRepo) Bump() (int64, error) {
	query := `
		INSERT INTO stock_version (id, version) VALUES (1, 1)
		ON CONFLICT (id) DO UPDATE SET version = stock_version.version + 1
		RETURNING version`
	var v int64
	if err := r.q.QueryRow(context.Background(), query).Scan(&v); err != nil {
		return 0, fmt.Errorf("bump stock version: %w", err)
	}
	return v, nil
}
