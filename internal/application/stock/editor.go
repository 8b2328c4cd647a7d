package stock

import (
	"fmt"
	"time"

	"github.com/robshop/stock-engine/internal/domain"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/itemkey"
	"github.com/robshop/stock-engine/internal/domain/repository"
	"github.com/robshop/stock-engine/pkg/logger"
)

// Editor handles direct stock edits from the UI/import side: upsert-by-key
// and remove-by-key against the override store. Every successful write bumps
// the version marker and publishes one bus event.
//
// Persistence failures are propagated, not swallowed: the caller must not
// assume a write took effect when the store said otherwise.
type Editor struct {
	overrides repository.OverrideRepository
	version   repository.VersionRepository
	notifier  Notifier
	log       *logger.Logger
	now       func() time.Time
}

// NewEditor builds the editor.
func NewEditor(overrides repository.OverrideRepository, version repository.VersionRepository, notifier Notifier, log *logger.Logger) *Editor {
	return &Editor{
		overrides: overrides,
		version:   version,
		notifier:  notifier,
		log:       log,
		now:       time.Now,
	}
}

// Upsert records an override for the item: replaces the entry with the same
// derived key, or appends. Once written it shadows the catalog entry for
// that key until removed.
func (e *Editor) Upsert(record *entity.StockRecord) (*entity.StockRecord, error) {
	if !record.Category.Valid() {
		return nil, domain.ErrUnknownCategory
	}
	if record.Location == "" {
		return nil, domain.ErrInvalidInput
	}
	if record.SystemQty < 0 || record.PhysicalQty < 0 {
		return nil, domain.ErrInvalidInput
	}

	rec := record.Clone()
	rec.Origin = entity.OriginOverride
	rec.UpdatedAt = e.now()

	if err := e.overrides.Upsert(rec); err != nil {
		e.log.Error().Err(err).
			Str("location", rec.Location).
			Str("category", string(rec.Category)).
			Msg("persist stock override")
		return nil, fmt.Errorf("upsert override: %w", err)
	}

	e.publish(rec.Location)
	return rec, nil
}

// Remove deletes the override with that key if present; no-op otherwise.
// Removing an override un-shadows the catalog entry for the key.
func (e *Editor) Remove(location string, category entity.Category, id entity.Identity) error {
	if !category.Valid() {
		return domain.ErrUnknownCategory
	}
	key := itemkey.Derive(category, id)
	if key == "" {
		return domain.ErrBlankIdentity
	}

	if err := e.overrides.Remove(location, category, key); err != nil {
		e.log.Error().Err(err).
			Str("location", location).
			Str("key", key).
			Msg("remove stock override")
		return fmt.Errorf("remove override: %w", err)
	}

	e.publish(location)
	return nil
}

func (e *Editor) publish(location string) {
	version, err := e.version.Bump()
	if err != nil {
		// The write itself landed; a failed bump only degrades change
		// detection for other views.
		e.log.Warn().Err(err).Msg("bump stock version")
	}
	e.notifier.Publish([]string{location}, version)
}
