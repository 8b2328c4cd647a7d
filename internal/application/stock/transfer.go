package stock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/robshop/stock-engine/internal/domain"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/itemkey"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

// TransferInput is the full description of one requested stock movement.
type TransferInput struct {
	Source      string
	Destination string
	Category    entity.Category
	Identity    entity.Identity

	// Descriptive fields snapshotted into the ledger and into freshly
	// created override rows.
	Brand   string
	Variant string

	Quantity int64
	Mode     entity.TransferMode

	// SyncSystem moves system quantities alongside physical ones in
	// Physical mode. Ignored for the other modes.
	SyncSystem bool
	// AllowNegative skips the insufficient-stock guard; the source may be
	// driven below zero and the result is preserved exactly.
	AllowNegative bool

	Actor string
	Note  string
}

// TransferResult is what the caller gets back: the ledger entry plus the
// resulting records on both sides, so immediate feedback needs no re-query.
type TransferResult struct {
	Entry       *entity.TransferLedgerEntry
	Source      *entity.StockRecord
	Destination *entity.StockRecord
	Version     int64
}

// TransferUseCase orchestrates a stock movement between two locations:
// resolve both sides through the merge view, validate, mutate both override
// rows and append the ledger entry in one transaction, then publish a single
// change notification. Single-shot; no pending state, no automatic retry.
type TransferUseCase struct {
	txRunner  TxRunner
	resolver  *Resolver
	locations repository.LocationRepository
	notifier  Notifier
	now       func() time.Time
}

// NewTransferUseCase builds the usecase.
func NewTransferUseCase(txRunner TxRunner, resolver *Resolver, locations repository.LocationRepository, notifier Notifier) *TransferUseCase {
	return &TransferUseCase{
		txRunner:  txRunner,
		resolver:  resolver,
		locations: locations,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Transfer validates and applies one movement. Validation happens entirely
// before any mutation; the first failing precondition wins.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	if input.Source == input.Destination {
		return nil, domain.ErrSameLocation
	}
	if !input.Category.Valid() {
		return nil, domain.ErrUnknownCategory
	}
	if input.Quantity <= 0 {
		return nil, domain.ErrNonPositiveQuantity
	}
	if !input.Mode.Valid() {
		return nil, domain.ErrUnknownMode
	}

	key := itemkey.Derive(input.Category, input.Identity)
	if key == "" {
		return nil, domain.ErrBlankIdentity
	}

	for _, locID := range []string{input.Source, input.Destination} {
		if _, err := uc.locations.GetByID(locID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("location %q: %w", locID, domain.ErrNotFound)
			}
			return nil, fmt.Errorf("lookup location %q: %w", locID, err)
		}
	}

	now := uc.now()
	src, err := uc.resolveOrZero(input, input.Source, now)
	if err != nil {
		return nil, err
	}
	dst, err := uc.resolveOrZero(input, input.Destination, now)
	if err != nil {
		return nil, err
	}

	if !input.AllowNegative {
		if err := checkSufficient(src, input.Mode, input.Quantity); err != nil {
			return nil, err
		}
	}

	applyMovement(src, dst, input)
	src.Origin = entity.OriginOverride
	dst.Origin = entity.OriginOverride
	src.UpdatedAt = now
	dst.UpdatedAt = now

	entry := &entity.TransferLedgerEntry{
		ID:          uuid.New().String(),
		CreatedAt:   now,
		Source:      input.Source,
		Destination: input.Destination,
		Category:    input.Category,
		ItemKey:     key,
		Brand:       input.Brand,
		ProductName: input.Identity.ProductName,
		Variant:     input.Variant,
		Serial:      input.Identity.Serial,
		MotorSerial: input.Identity.MotorSerial,
		Quantity:    input.Quantity,
		Mode:        input.Mode,
		SyncSystem:  input.Mode == entity.ModePhysical && input.SyncSystem,
		Actor:       input.Actor,
		Note:        input.Note,
	}

	var version int64
	err = uc.txRunner.Run(ctx, func(
		overrides repository.OverrideRepository,
		ledger repository.LedgerRepository,
		versionRepo repository.VersionRepository,
	) error {
		if err := overrides.Upsert(src); err != nil {
			return fmt.Errorf("upsert source override: %w", err)
		}
		if err := overrides.Upsert(dst); err != nil {
			return fmt.Errorf("upsert destination override: %w", err)
		}
		if err := ledger.Append(entry); err != nil {
			return fmt.Errorf("append ledger entry: %w", err)
		}
		v, err := versionRepo.Bump()
		if err != nil {
			return fmt.Errorf("bump version: %w", err)
		}
		version = v
		return nil
	})
	if err != nil {
		return nil, err
	}

	// One signal covering both sides; the per-write publications of the
	// editor path are not involved here, the transaction wrote directly.
	uc.notifier.Publish([]string{input.Source, input.Destination}, version)

	return &TransferResult{
		Entry:       entry,
		Source:      src,
		Destination: dst,
		Version:     version,
	}, nil
}

// resolveOrZero resolves the item's effective record at a location, creating
// an implicit zero-quantity record when none exists ("ensure" semantics): a
// first-ever transfer touching a location never fails merely because no
// stock row existed there.
func (uc *TransferUseCase) resolveOrZero(input TransferInput, location string, now time.Time) (*entity.StockRecord, error) {
	rec, err := uc.resolver.ResolveCurrent(location, input.Category, input.Identity)
	if err == nil {
		return rec.Clone(), nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("resolve %s: %w", location, err)
	}
	return &entity.StockRecord{
		Location:  location,
		Category:  input.Category,
		Identity:  input.Identity,
		Brand:     input.Brand,
		Variant:   input.Variant,
		UpdatedAt: now,
	}, nil
}

func checkSufficient(src *entity.StockRecord, mode entity.TransferMode, qty int64) error {
	switch mode {
	case entity.ModePhysical:
		if src.PhysicalQty < qty {
			return fmt.Errorf("%w: physical %d < %d", domain.ErrInsufficientStock, src.PhysicalQty, qty)
		}
	case entity.ModeSystem:
		if src.SystemQty < qty {
			return fmt.Errorf("%w: system %d < %d", domain.ErrInsufficientStock, src.SystemQty, qty)
		}
	case entity.ModeBoth:
		if src.PhysicalQty < qty {
			return fmt.Errorf("%w: physical %d < %d", domain.ErrInsufficientStock, src.PhysicalQty, qty)
		}
		if src.SystemQty < qty {
			return fmt.Errorf("%w: system %d < %d", domain.ErrInsufficientStock, src.SystemQty, qty)
		}
	}
	return nil
}

// applyMovement shifts quantities between the two records according to the
// mode. Conservation holds per dimension touched: what leaves the source
// arrives at the destination.
func applyMovement(src, dst *entity.StockRecord, input TransferInput) {
	qty := input.Quantity
	switch input.Mode {
	case entity.ModePhysical:
		src.PhysicalQty -= qty
		dst.PhysicalQty += qty
		if input.SyncSystem {
			src.SystemQty -= qty
			dst.SystemQty += qty
		}
	case entity.ModeSystem:
		src.SystemQty -= qty
		dst.SystemQty += qty
	case entity.ModeBoth:
		src.PhysicalQty -= qty
		dst.PhysicalQty += qty
		src.SystemQty -= qty
		dst.SystemQty += qty
	}
}
