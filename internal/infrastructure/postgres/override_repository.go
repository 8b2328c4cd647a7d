package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/robshop/stock-engine/internal/domain"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/itemkey"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

var _ repository.OverrideRepository = (*OverrideRepo)(nil)

// OverrideRepo persists override rows in stock_overrides, keyed by
// (location, category, item_key). Usable with pool or tx (Querier), which
// is how the transfer usecase keeps both sides of a movement atomic.
type OverrideRepo struct {
	q Querier
}

// NewOverrideRepository builds the adapter. Pass pool or tx (Querier).
func NewOverrideRepository(q Querier) *OverrideRepo {
	return &OverrideRepo{q: q}
}

const overrideColumns = `location, category, brand, product_name, variant, serial, motor_serial, system_qty, physical_qty, unit_price, note, updated_at`

// List returns all overrides for a location+category in key order.
func (r *OverrideRepo) List(location string, category entity.Category) ([]*entity.StockRecord, error) {
	query := `
		SELECT ` + overrideColumns + `
		FROM stock_overrides
		WHERE location = $1 AND category = $2
		ORDER BY item_key`
	rows, err := r.q.Query(context.Background(), query, location, string(category))
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	defer rows.Close()

	var out []*entity.StockRecord
	for rows.Next() {
		rec, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("scan override: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}
	return out, nil
}

// Get returns the override with the derived item key, or domain.ErrNotFound.
func (r *OverrideRepo) Get(location string, category entity.Category, key string) (*entity.StockRecord, error) {
	if key == "" {
		return nil, domain.ErrNotFound
	}
	query := `
		SELECT ` + overrideColumns + `
		FROM stock_overrides
		WHERE location = $1 AND category = $2 AND item_key = $3`
	rec, err := scanOverride(r.q.QueryRow(context.Background(), query, location, string(category), key))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get override: %w", err)
	}
	return rec, nil
}

// Upsert inserts or replaces the override with the record's derived key.
// ON CONFLICT makes the replace atomic from the caller's perspective.
func (r *OverrideRepo) Upsert(record *entity.StockRecord) error {
	key := itemkey.Derive(record.Category, record.Identity)
	query := `
		INSERT INTO stock_overrides
			(location, category, item_key, brand, product_name, variant, serial, motor_serial, system_qty, physical_qty, unit_price, note, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (location, category, item_key)
		DO UPDATE SET
			brand = EXCLUDED.brand,
			product_name = EXCLUDED.product_name,
			variant = EXCLUDED.variant,
			serial = EXCLUDED.serial,
			motor_serial = EXCLUDED.motor_serial,
			system_qty = EXCLUDED.system_qty,
			physical_qty = EXCLUDED.physical_qty,
			unit_price = EXCLUDED.unit_price,
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		record.Location, string(record.Category), key,
		record.Brand, record.ProductName, record.Variant,
		record.Serial, record.MotorSerial,
		record.SystemQty, record.PhysicalQty, record.UnitPrice, record.Note,
		record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert override: %w", err)
	}
	return nil
}

// Remove deletes the override with that key. No-op when absent.
func (r *OverrideRepo) Remove(location string, category entity.Category, key string) error {
	query := `DELETE FROM stock_overrides WHERE location = $1 AND category = $2 AND item_key = $3`
	_, err := r.q.Exec(context.Background(), query, location, string(category), key)
	if err != nil {
		return fmt.Errorf("remove override: %w", err)
	}
	return nil
}

func scanOverride(row pgx.Row) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	var category string
	err := row.Scan(
		&rec.Location, &category, &rec.Brand, &rec.ProductName, &rec.Variant,
		&rec.Serial, &rec.MotorSerial, &rec.SystemQty, &rec.PhysicalQty,
		&rec.UnitPrice, &rec.Note, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Category = entity.Category(category)
	rec.Origin = entity.OriginOverride
	return &rec, nil
}
