package repository

import "github.com/robshop/stock-engine/internal/domain/entity"

// LedgerRepository is the port over the append-only transfer audit trail.
// Entries are immutable once appended; Clear is an explicit maintenance
// operation, not part of normal flow.
type LedgerRepository interface {
	Append(entry *entity.TransferLedgerEntry) error
	// List returns entries newest first. limit <= 0 means no limit.
	List(limit int) ([]*entity.TransferLedgerEntry, error)
	Clear() error
}
