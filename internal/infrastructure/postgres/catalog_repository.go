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

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo reads the externally supplied master data from the
// stock_catalog table. The engine never writes it; the import/sync
// collaborators own its content. item_key is maintained by the loader using
// the same derivation rule as the itemkey package.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository builds the adapter. Pass pool or tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const catalogColumns = `location, category, brand, product_name, variant, serial, motor_serial, system_qty, physical_qty, unit_price, note`

// List returns the catalog rows for a location+category in catalog order.
// Unknown location/category simply yields no rows.
func (r *CatalogRepo) List(location string, category entity.Category) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + catalogColumns + `
		FROM stock_catalog
		WHERE location = $1 AND category = $2
		ORDER BY position, brand, product_name, variant`
	rows, err := r.q.Query(context.Background(), query, location, string(category))
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()
	return scanStockRecords(rows, entity.OriginCatalog)
}

// Get returns the catalog row with the derived item key, or domain.ErrNotFound.
func (r *CatalogRepo) Get(location string, category entity.Category, key string) (*entity.StockRecord, error) {
	if key == "" {
		return nil, domain.ErrNotFound
	}
	query := `
		SELECT ` + catalogColumns + `
		FROM stock_catalog
		WHERE location = $1 AND category = $2 AND item_key = $3`
	rec, err := scanStockRecord(r.q.QueryRow(context.Background(), query, location, string(category), key), entity.OriginCatalog)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get catalog row: %w", err)
	}
	return rec, nil
}
