package entity

import "time"

// TransferMode selects which quantity dimensions a transfer moves.
type TransferMode string

const (
	ModePhysical TransferMode = "PHYSICAL"
	ModeSystem   TransferMode = "SYSTEM"
	ModeBoth     TransferMode = "BOTH"
)

// Valid reports whether m is a recognized transfer mode.
func (m TransferMode) Valid() bool {
	switch m {
	case ModePhysical, ModeSystem, ModeBoth:
		return true
	}
	return false
}

// TransferLedgerEntry is the immutable audit record of one completed
// transfer. Created only by the transfer usecase, never mutated, and
// deletable only through the ledger's bulk clear.
type TransferLedgerEntry struct {
	ID          string
	CreatedAt   time.Time
	Source      string
	Destination string
	Category    Category
	ItemKey     string

	// Snapshot of the item's descriptive and identity fields at transfer time.
	Brand       string
	ProductName string
	Variant     string
	Serial      string
	MotorSerial string

	Quantity   int64
	Mode       TransferMode
	SyncSystem bool

	Actor string
	Note  string
}
