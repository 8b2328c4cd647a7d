package repository

import "github.com/robshop/stock-engine/internal/domain/entity"

// CatalogRepository is the read-only port over the externally supplied
// master stock data. Implementations must return caller-safe copies; an
// unknown location/category yields an empty list, never an error.
type CatalogRepository interface {
	List(location string, category entity.Category) ([]*entity.StockRecord, error)
	// Get returns the catalog row whose derived item key matches, or
	// domain.ErrNotFound.
	Get(location string, category entity.Category, key string) (*entity.StockRecord, error)
}
