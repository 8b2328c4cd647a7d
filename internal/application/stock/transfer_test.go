package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robshop/stock-engine/internal/application/stock"
	"github.com/robshop/stock-engine/internal/domain"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/infrastructure/memory"
	"github.com/robshop/stock-engine/internal/notify"
)

type engineFixture struct {
	store *memory.Store
	bus   *notify.Bus
	uc    *stock.TransferUseCase

	events []notify.Event
}

func newEngine(t *testing.T) *engineFixture {
	t.Helper()
	store := memory.NewStore()
	for _, id := range []string{"WAREHOUSE", "STORE-A", "STORE-B"} {
		kind := entity.LocationStore
		if id == "WAREHOUSE" {
			kind = entity.LocationWarehouse
		}
		require.NoError(t, store.Locations().Create(&entity.Location{
			ID: id, Name: id, Kind: kind, CreatedAt: time.Now(),
		}))
	}

	f := &engineFixture{store: store, bus: notify.NewBus()}
	f.bus.Subscribe(func(ev notify.Event) { f.events = append(f.events, ev) })

	resolver := stock.NewResolver(store.Catalog(), store.Overrides())
	f.uc = stock.NewTransferUseCase(store, resolver, store.Locations(), f.bus)
	return f
}

// itemX is the recurring fixture: 10 physical / 6 system units of an
// accessory at the warehouse, catalog only.
func (f *engineFixture) seedItemX(t *testing.T) {
	t.Helper()
	f.store.SeedCatalog(entity.StockRecord{
		Location:    "WAREHOUSE",
		Category:    entity.CategoryAccessory,
		Identity:    entity.Identity{ProductName: "Item X", Serial: "X-001"},
		Brand:       "Generic",
		PhysicalQty: 10,
		SystemQty:   6,
	})
}

func itemXInput(qty int64, mode entity.TransferMode) stock.TransferInput {
	return stock.TransferInput{
		Source:      "WAREHOUSE",
		Destination: "STORE-A",
		Category:    entity.CategoryAccessory,
		Identity:    entity.Identity{ProductName: "Item X", Serial: "X-001"},
		Brand:       "Generic",
		Quantity:    qty,
		Mode:        mode,
		Actor:       "budi",
	}
}

func (f *engineFixture) resolve(t *testing.T, location string) *entity.StockRecord {
	t.Helper()
	resolver := stock.NewResolver(f.store.Catalog(), f.store.Overrides())
	rec, err := resolver.ResolveCurrent(location, entity.CategoryAccessory, entity.Identity{Serial: "X-001"})
	require.NoError(t, err)
	return rec
}

// Scenario: 10 physical at the warehouse, move 3 in Physical mode without
// system sync.
func TestTransfer_PhysicalMode(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)

	res, err := f.uc.Transfer(context.Background(), itemXInput(3, entity.ModePhysical))
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.Source.PhysicalQty)
	assert.Equal(t, int64(3), res.Destination.PhysicalQty)
	assert.Equal(t, int64(6), res.Source.SystemQty, "system untouched without sync")
	assert.Equal(t, int64(0), res.Destination.SystemQty)

	// Both sides became overrides, shadowing the catalog from now on.
	assert.Equal(t, entity.OriginOverride, f.resolve(t, "WAREHOUSE").Origin)
	assert.Equal(t, entity.OriginOverride, f.resolve(t, "STORE-A").Origin)

	entries, err := f.store.Ledger().List(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.ModePhysical, entries[0].Mode)
	assert.False(t, entries[0].SyncSystem)
	assert.Equal(t, "x-001", entries[0].ItemKey)
	assert.Equal(t, "budi", entries[0].Actor)
}

// Scenario: moving more than the source has fails and leaves no trace.
func TestTransfer_InsufficientStockNoMutation(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)

	_, err := f.uc.Transfer(context.Background(), itemXInput(15, entity.ModePhysical))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(10), f.resolve(t, "WAREHOUSE").PhysicalQty, "no mutation on failure")
	assert.Equal(t, entity.OriginCatalog, f.resolve(t, "WAREHOUSE").Origin)

	entries, err := f.store.Ledger().List(0)
	require.NoError(t, err)
	assert.Empty(t, entries, "no ledger entry on failure")
	assert.Empty(t, f.events, "no notification on failure")
}

// Scenario: allowNegative permits driving the source below zero, preserved
// exactly.
func TestTransfer_AllowNegative(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)

	in := itemXInput(15, entity.ModePhysical)
	in.AllowNegative = true
	res, err := f.uc.Transfer(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(-5), res.Source.PhysicalQty)
	assert.Equal(t, int64(15), res.Destination.PhysicalQty)

	entries, err := f.store.Ledger().List(0)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

// Scenario: Both mode shifts physical and system identically.
func TestTransfer_BothMode(t *testing.T) {
	f := newEngine(t)
	f.store.SeedCatalog(entity.StockRecord{
		Location:    "WAREHOUSE",
		Category:    entity.CategoryAccessory,
		Identity:    entity.Identity{ProductName: "Item X", Serial: "X-001"},
		PhysicalQty: 5,
		SystemQty:   5,
	})

	res, err := f.uc.Transfer(context.Background(), itemXInput(2, entity.ModeBoth))
	require.NoError(t, err)

	assert.Equal(t, int64(3), res.Source.PhysicalQty)
	assert.Equal(t, int64(3), res.Source.SystemQty)
	assert.Equal(t, int64(2), res.Destination.PhysicalQty)
	assert.Equal(t, int64(2), res.Destination.SystemQty)
}

func TestTransfer_SystemModeLeavesPhysicalUntouched(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)

	res, err := f.uc.Transfer(context.Background(), itemXInput(4, entity.ModeSystem))
	require.NoError(t, err)

	assert.Equal(t, int64(2), res.Source.SystemQty)
	assert.Equal(t, int64(4), res.Destination.SystemQty)
	assert.Equal(t, int64(10), res.Source.PhysicalQty)
	assert.Equal(t, int64(0), res.Destination.PhysicalQty)
}

func TestTransfer_PhysicalWithSyncSystem(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)

	in := itemXInput(3, entity.ModePhysical)
	in.SyncSystem = true
	res, err := f.uc.Transfer(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(7), res.Source.PhysicalQty)
	assert.Equal(t, int64(3), res.Source.SystemQty, "system moved alongside physical")
	assert.Equal(t, int64(3), res.Destination.PhysicalQty)
	assert.Equal(t, int64(3), res.Destination.SystemQty)
	assert.True(t, res.Entry.SyncSystem)
}

// Scenario: chained transfers; STORE-A ends with net +1 and the ledger lists
// both entries newest first.
func TestTransfer_ChainedTransfersAndLedgerOrder(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)

	_, err := f.uc.Transfer(context.Background(), itemXInput(3, entity.ModePhysical))
	require.NoError(t, err)

	second := itemXInput(2, entity.ModePhysical)
	second.Source = "STORE-A"
	second.Destination = "STORE-B"
	_, err = f.uc.Transfer(context.Background(), second)
	require.NoError(t, err)

	assert.Equal(t, int64(1), f.resolve(t, "STORE-A").PhysicalQty, "net +1 at STORE-A")
	assert.Equal(t, int64(2), f.resolve(t, "STORE-B").PhysicalQty)

	entries, err := f.store.Ledger().List(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "STORE-A", entries[0].Source, "newest first")
	assert.Equal(t, "WAREHOUSE", entries[1].Source)
}

// Conservation: per touched dimension, what leaves the source arrives at
// the destination.
func TestTransfer_Conservation(t *testing.T) {
	for _, mode := range []entity.TransferMode{entity.ModePhysical, entity.ModeSystem, entity.ModeBoth} {
		t.Run(string(mode), func(t *testing.T) {
			f := newEngine(t)
			f.seedItemX(t)

			before := f.resolve(t, "WAREHOUSE")
			res, err := f.uc.Transfer(context.Background(), itemXInput(2, mode))
			require.NoError(t, err)

			totalPhysical := res.Source.PhysicalQty + res.Destination.PhysicalQty
			totalSystem := res.Source.SystemQty + res.Destination.SystemQty
			assert.Equal(t, before.PhysicalQty, totalPhysical)
			assert.Equal(t, before.SystemQty, totalSystem)
		})
	}
}

// Ensure semantics: a first-ever transfer into a location behaves exactly
// like upserting a zero-quantity row there first.
func TestTransfer_EnsureSemanticsAtDestination(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)

	// Pre-create an explicit zero record at STORE-B on one store, not the
	// other; results must match.
	zero := entity.StockRecord{
		Location: "STORE-B",
		Category: entity.CategoryAccessory,
		Identity: entity.Identity{ProductName: "Item X", Serial: "X-001"},
		Origin:   entity.OriginOverride,
	}
	require.NoError(t, f.store.Overrides().Upsert(&zero))

	toA := itemXInput(2, entity.ModePhysical) // STORE-A has nothing at all
	resA, err := f.uc.Transfer(context.Background(), toA)
	require.NoError(t, err)

	toB := itemXInput(2, entity.ModePhysical)
	toB.Destination = "STORE-B"
	resB, err := f.uc.Transfer(context.Background(), toB)
	require.NoError(t, err)

	assert.Equal(t, resA.Destination.PhysicalQty, resB.Destination.PhysicalQty)
	assert.Equal(t, resA.Destination.SystemQty, resB.Destination.SystemQty)
}

// Transfers out of a location with no record start from zero: without
// allowNegative they fail, with it they go negative.
func TestTransfer_EnsureSemanticsAtSource(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)

	in := itemXInput(1, entity.ModePhysical)
	in.Source = "STORE-B"
	in.Destination = "STORE-A"
	_, err := f.uc.Transfer(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	in.AllowNegative = true
	res, err := f.uc.Transfer(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), res.Source.PhysicalQty)
}

// Validation order: first failing precondition wins.
func TestTransfer_ValidationOrder(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)
	ctx := context.Background()

	in := itemXInput(0, entity.TransferMode("TELEPORT"))
	in.Source = "STORE-A"
	in.Destination = "STORE-A"
	in.Category = entity.Category("FURNITURE")
	_, err := f.uc.Transfer(ctx, in)
	assert.ErrorIs(t, err, domain.ErrSameLocation, "same-location checked first")

	in.Destination = "STORE-B"
	_, err = f.uc.Transfer(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUnknownCategory)

	in.Category = entity.CategoryAccessory
	_, err = f.uc.Transfer(ctx, in)
	assert.ErrorIs(t, err, domain.ErrNonPositiveQuantity)

	in.Quantity = 1
	_, err = f.uc.Transfer(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestTransfer_BlankIdentityRejected(t *testing.T) {
	f := newEngine(t)

	in := itemXInput(1, entity.ModePhysical)
	in.Identity = entity.Identity{}
	_, err := f.uc.Transfer(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrBlankIdentity)
}

func TestTransfer_UnknownLocationRejected(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)

	in := itemXInput(1, entity.ModePhysical)
	in.Destination = "STORE-Z"
	_, err := f.uc.Transfer(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// One bus event per successful transfer, covering both locations.
func TestTransfer_PublishesOnceWithBothLocations(t *testing.T) {
	f := newEngine(t)
	f.seedItemX(t)

	res, err := f.uc.Transfer(context.Background(), itemXInput(3, entity.ModePhysical))
	require.NoError(t, err)

	require.Len(t, f.events, 1, "exactly one notification")
	assert.Equal(t, []string{"WAREHOUSE", "STORE-A"}, f.events[0].Locations)
	assert.Equal(t, res.Version, f.events[0].Version)
	assert.Equal(t, int64(1), res.Version, "first mutation bumps version to 1")
}
