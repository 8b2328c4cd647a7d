// Package memory is an in-process implementation of every repository port,
// plus a snapshot-based TxRunner. It backs tests and STOCK_STORAGE=memory
// deployments; state lives only as long as the process.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/robshop/stock-engine/internal/domain"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/itemkey"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

// Store holds all engine state behind one mutex. Repository views returned
// by the accessor methods share it.
type Store struct {
	mu        sync.Mutex
	catalog   map[string][]entity.StockRecord // scope -> rows, catalog order
	overrides map[string][]entity.StockRecord // scope -> rows, insertion order
	ledger    []entity.TransferLedgerEntry    // append order
	locations map[string]entity.Location
	version   int64
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		catalog:   make(map[string][]entity.StockRecord),
		overrides: make(map[string][]entity.StockRecord),
		locations: make(map[string]entity.Location),
	}
}

// scope keys the per-location, per-category namespaces.
func scope(location string, category entity.Category) string {
	return location + "|" + string(category)
}

// SeedCatalog loads master rows (test/demo fixture). Rows keep the given
// order, which is the catalog order merged lists start from.
func (s *Store) SeedCatalog(rows ...entity.StockRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range rows {
		row.Origin = entity.OriginCatalog
		k := scope(row.Location, row.Category)
		s.catalog[k] = append(s.catalog[k], row)
	}
}

// Catalog returns the read-only catalog port.
func (s *Store) Catalog() repository.CatalogRepository { return catalogRepo{s} }

// Overrides returns the override store port.
func (s *Store) Overrides() repository.OverrideRepository { return overrideRepo{s} }

// Ledger returns the transfer ledger port.
func (s *Store) Ledger() repository.LedgerRepository { return ledgerRepo{s} }

// Locations returns the location registry port.
func (s *Store) Locations() repository.LocationRepository { return locationRepo{s} }

// Version returns the version marker port.
func (s *Store) Version() repository.VersionRepository { return versionRepo{s} }

// Run implements stock.TxRunner: snapshot the mutable state, run fn against
// the live repos, and restore the snapshot if fn fails. Good enough for a
// single process; the postgres TxRunner gives the real guarantee.
func (s *Store) Run(_ context.Context, fn func(
	overrides repository.OverrideRepository,
	ledger repository.LedgerRepository,
	version repository.VersionRepository,
) error) error {
	snap := s.snapshot()
	if err := fn(s.Overrides(), s.Ledger(), s.Version()); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

type snapshotState struct {
	overrides map[string][]entity.StockRecord
	ledger    []entity.TransferLedgerEntry
	version   int64
}

func (s *Store) snapshot() snapshotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshotState{
		overrides: make(map[string][]entity.StockRecord, len(s.overrides)),
		ledger:    append([]entity.TransferLedgerEntry(nil), s.ledger...),
		version:   s.version,
	}
	for k, rows := range s.overrides {
		snap.overrides[k] = append([]entity.StockRecord(nil), rows...)
	}
	return snap
}

func (s *Store) restore(snap snapshotState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.overrides = snap.overrides
	s.ledger = snap.ledger
	s.version = snap.version
}

// ── Catalog ───────────────────────────────────────────────────────────────

type catalogRepo struct{ s *Store }

func (r catalogRepo) List(location string, category entity.Category) ([]*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.s.catalog[scope(location, category)]
	out := make([]*entity.StockRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Clone())
	}
	return out, nil
}

func (r catalogRepo) Get(location string, category entity.Category, key string) (*entity.StockRecord, error) {
	if key == "" {
		return nil, domain.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.catalog[scope(location, category)] {
		if itemkey.Derive(category, row.Identity) == key {
			return row.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

// ── Overrides ─────────────────────────────────────────────────────────────

type overrideRepo struct{ s *Store }

func (r overrideRepo) List(location string, category entity.Category) ([]*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rows := r.s.overrides[scope(location, category)]
	out := make([]*entity.StockRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].Clone())
	}
	return out, nil
}

func (r overrideRepo) Get(location string, category entity.Category, key string) (*entity.StockRecord, error) {
	if key == "" {
		return nil, domain.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, row := range r.s.overrides[scope(location, category)] {
		if itemkey.Derive(category, row.Identity) == key {
			return row.Clone(), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r overrideRepo) Upsert(record *entity.StockRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := scope(record.Location, record.Category)
	key := itemkey.Derive(record.Category, record.Identity)
	rows := r.s.overrides[k]
	for i := range rows {
		if itemkey.Derive(record.Category, rows[i].Identity) == key {
			rows[i] = *record.Clone()
			return nil
		}
	}
	r.s.overrides[k] = append(rows, *record.Clone())
	return nil
}

func (r overrideRepo) Remove(location string, category entity.Category, key string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	k := scope(location, category)
	rows := r.s.overrides[k]
	for i := range rows {
		if itemkey.Derive(category, rows[i].Identity) == key {
			r.s.overrides[k] = append(rows[:i:i], rows[i+1:]...)
			return nil
		}
	}
	return nil // no-op when absent
}

// ── Ledger ────────────────────────────────────────────────────────────────

type ledgerRepo struct{ s *Store }

func (r ledgerRepo) Append(entry *entity.TransferLedgerEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ledger = append(r.s.ledger, *entry)
	return nil
}

func (r ledgerRepo) List(limit int) ([]*entity.TransferLedgerEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.TransferLedgerEntry, 0, len(r.s.ledger))
	for i := len(r.s.ledger) - 1; i >= 0; i-- {
		e := r.s.ledger[i]
		out = append(out, &e)
	}
	// Newest first; reverse append order already breaks timestamp ties.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r ledgerRepo) Clear() error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.ledger = nil
	return nil
}

// ── Locations ─────────────────────────────────────────────────────────────

type locationRepo struct{ s *Store }

func (r locationRepo) Create(location *entity.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.locations[location.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.locations[location.ID] = *location
	return nil
}

func (r locationRepo) GetByID(id string) (*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	loc, ok := r.s.locations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &loc, nil
}

func (r locationRepo) List() ([]*entity.Location, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Location, 0, len(r.s.locations))
	for id := range r.s.locations {
		loc := r.s.locations[id]
		out = append(out, &loc)
	}
	sort.Slice(out, func(i, j int) bool { return strings.Compare(out[i].ID, out[j].ID) < 0 })
	return out, nil
}

// ── Version ───────────────────────────────────────────────────────────────

type versionRepo struct{ s *Store }

func (r versionRepo) Current() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.version, nil
}

func (r versionRepo) Bump() (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.version++
	return r.s.version, nil
}
