package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/robshop/stock-engine/internal/application/stock"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

// Ensure TxRunner implements the transfer usecase's port.
var _ stock.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction, so the
// two-sided override mutation, the ledger append and the version bump land
// together or not at all.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, calls fn with tx-bound repositories and commits,
// or rolls back when fn fails.
func (r *TxRunner) Run(ctx context.Context, fn func(
	overrides repository.OverrideRepository,
	ledger repository.LedgerRepository,
	version repository.VersionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOverrideRepository(tx), NewLedgerRepository(tx), NewVersionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
