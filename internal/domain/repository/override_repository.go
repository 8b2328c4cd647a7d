package repository

import "github.com/robshop/stock-engine/internal/domain/entity"

// OverrideRepository is the port over per-location, per-category override
// rows that supersede the catalog. Used inside transactions to keep the
// two-sided transfer mutation atomic.
type OverrideRepository interface {
	List(location string, category entity.Category) ([]*entity.StockRecord, error)
	// Get returns the override whose derived item key matches, or
	// domain.ErrNotFound.
	Get(location string, category entity.Category, key string) (*entity.StockRecord, error)
	// Upsert replaces the entry with the record's derived key, or appends.
	// No partial state is observable by other callers.
	Upsert(record *entity.StockRecord) error
	// Remove deletes the entry with that key if present; no-op otherwise.
	Remove(location string, category entity.Category, key string) error
}
