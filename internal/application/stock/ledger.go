package stock

import (
	"fmt"

	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

// LedgerService is the read/maintenance surface over the transfer audit
// trail. Appending goes exclusively through the transfer usecase.
type LedgerService struct {
	ledger       repository.LedgerRepository
	defaultLimit int
}

// NewLedgerService builds the service. defaultLimit caps listings when the
// caller passes none (<= 0 keeps listings unbounded).
func NewLedgerService(ledger repository.LedgerRepository, defaultLimit int) *LedgerService {
	return &LedgerService{ledger: ledger, defaultLimit: defaultLimit}
}

// List returns ledger entries newest first. limit <= 0 applies the
// configured default.
func (s *LedgerService) List(limit int) ([]*entity.TransferLedgerEntry, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	entries, err := s.ledger.List(limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	return entries, nil
}

// Clear bulk-deletes the entire ledger. Irreversible; maintenance only.
func (s *LedgerService) Clear() error {
	if err := s.ledger.Clear(); err != nil {
		return fmt.Errorf("clear ledger: %w", err)
	}
	return nil
}
