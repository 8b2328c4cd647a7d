package stock

import (
	"errors"
	"fmt"
	"sort"

	"github.com/robshop/stock-engine/internal/domain"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/itemkey"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

// Resolver computes the effective view of stock: the override wins over the
// catalog for a given (location, category, item key); at most one of the two
// is authoritative at any time.
type Resolver struct {
	catalog   repository.CatalogRepository
	overrides repository.OverrideRepository
}

// NewResolver builds the merge view over both sources.
func NewResolver(catalog repository.CatalogRepository, overrides repository.OverrideRepository) *Resolver {
	return &Resolver{catalog: catalog, overrides: overrides}
}

// ResolveCurrent returns the effective record for the item the identity
// fields describe, or domain.ErrNotFound if neither source has it. A blank
// derived key never matches a keyed row.
func (r *Resolver) ResolveCurrent(location string, category entity.Category, id entity.Identity) (*entity.StockRecord, error) {
	if !category.Valid() {
		return nil, domain.ErrUnknownCategory
	}
	key := itemkey.Derive(category, id)
	return r.resolveByKey(location, category, key)
}

func (r *Resolver) resolveByKey(location string, category entity.Category, key string) (*entity.StockRecord, error) {
	ov, err := r.overrides.Get(location, category, key)
	if err == nil {
		ov.Origin = entity.OriginOverride
		return ov, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("read override: %w", err)
	}

	cat, err := r.catalog.Get(location, category, key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	cat.Origin = entity.OriginCatalog
	return cat, nil
}

// MergedList returns the full effective list for a location+category:
// catalog rows in catalog order, each replaced by its override when one
// exists, followed by overrides with no catalog counterpart in key order.
// Stable across repeated calls for unchanged inputs.
func (r *Resolver) MergedList(location string, category entity.Category) ([]*entity.StockRecord, error) {
	if !category.Valid() {
		return nil, domain.ErrUnknownCategory
	}

	catalogRows, err := r.catalog.List(location, category)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	overrideRows, err := r.overrides.List(location, category)
	if err != nil {
		return nil, fmt.Errorf("list overrides: %w", err)
	}

	overrideByKey := make(map[string]*entity.StockRecord, len(overrideRows))
	for _, ov := range overrideRows {
		ov.Origin = entity.OriginOverride
		overrideByKey[itemkey.Derive(category, ov.Identity)] = ov
	}

	merged := make([]*entity.StockRecord, 0, len(catalogRows)+len(overrideRows))
	seen := make(map[string]bool, len(catalogRows))
	for _, row := range catalogRows {
		key := itemkey.Derive(category, row.Identity)
		// Blank-keyed catalog rows are unidentifiable: kept as-is, never
		// shadowed by an override.
		if key != "" && !seen[key] {
			seen[key] = true
			if ov, ok := overrideByKey[key]; ok {
				merged = append(merged, ov)
				continue
			}
		}
		row.Origin = entity.OriginCatalog
		merged = append(merged, row)
	}

	var extra []*entity.StockRecord
	for key, ov := range overrideByKey {
		if !seen[key] {
			extra = append(extra, ov)
		}
	}
	sort.Slice(extra, func(i, j int) bool {
		return itemkey.Derive(category, extra[i].Identity) < itemkey.Derive(category, extra[j].Identity)
	})

	return append(merged, extra...), nil
}
