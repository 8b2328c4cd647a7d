package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo persists the append-only transfer audit trail in
// transfer_ledger. Rows are never updated; Clear is the only delete path.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository builds the adapter. Pass pool or tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Append persists one completed transfer.
func (r *LedgerRepo) Append(entry *entity.TransferLedgerEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transfer_ledger
			(id, created_at, source, destination, category, item_key, brand, product_name, variant, serial, motor_serial, quantity, mode, sync_system, actor, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.CreatedAt, entry.Source, entry.Destination,
		string(entry.Category), entry.ItemKey,
		entry.Brand, entry.ProductName, entry.Variant, entry.Serial, entry.MotorSerial,
		entry.Quantity, string(entry.Mode), entry.SyncSystem,
		entry.Actor, entry.Note,
	)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// List returns entries newest first. limit <= 0 means no limit.
func (r *LedgerRepo) List(limit int) ([]*entity.TransferLedgerEntry, error) {
	query := `
		SELECT id, created_at, source, destination, category, item_key, brand, product_name, variant, serial, motor_serial, quantity, mode, sync_system, actor, note
		FROM transfer_ledger
		ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	defer rows.Close()

	var out []*entity.TransferLedgerEntry
	for rows.Next() {
		var e entity.TransferLedgerEntry
		var category, mode string
		err := rows.Scan(
			&e.ID, &e.CreatedAt, &e.Source, &e.Destination, &category, &e.ItemKey,
			&e.Brand, &e.ProductName, &e.Variant, &e.Serial, &e.MotorSerial,
			&e.Quantity, &mode, &e.SyncSystem, &e.Actor, &e.Note,
		)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		e.Category = entity.Category(category)
		e.Mode = entity.TransferMode(mode)
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return out, nil
}

// Clear bulk-deletes the ledger. Maintenance/testing only.
func (r *LedgerRepo) Clear() error {
	if _, err := r.q.Exec(context.Background(), `DELETE FROM transfer_ledger`); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	return nil
}
