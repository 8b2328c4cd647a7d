package stock

import (
	"context"

	"github.com/robshop/stock-engine/internal/domain/repository"
)

// TxRunner executes a function inside a storage transaction, handing it
// repositories bound to that transaction. Guarantees the two-sided transfer
// mutation, the ledger append and the version bump land atomically.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		overrides repository.OverrideRepository,
		ledger repository.LedgerRepository,
		version repository.VersionRepository,
	) error) error
}

// Notifier signals that a stock-affecting mutation landed. Fire-and-forget;
// implementations must not fail the mutation. notify.Bus satisfies this.
type Notifier interface {
	Publish(locations []string, version int64)
}
