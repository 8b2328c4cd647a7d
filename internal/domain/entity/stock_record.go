package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origin marks where a resolved stock record came from: the immutable master
// catalog or a location-scoped override that shadows it.
type Origin string

const (
	OriginCatalog  Origin = "CATALOG"
	OriginOverride Origin = "OVERRIDE"
)

// Identity groups the fields an item key can be derived from. Which field
// wins depends on the category (see itemkey.Derive).
type Identity struct {
	ProductName string
	Serial      string // IMEI or unit serial (handphone, accessory)
	MotorSerial string // drivetrain serial (electric motorcycle)
}

// StockRecord is the state of one distinguishable item at one location in
// one category. Catalog rows are externally supplied and read-only; override
// rows supersede them per (location, category, item key).
type StockRecord struct {
	Location string
	Category Category
	Identity

	Brand   string
	Variant string // e.g. color

	SystemQty   int64 // bookkeeping count
	PhysicalQty int64 // counted on-hand
	UnitPrice   decimal.Decimal
	Note        string

	Origin    Origin
	UpdatedAt time.Time
}

// Clone returns a caller-safe copy of the record.
func (r *StockRecord) Clone() *StockRecord {
	c := *r
	return &c
}
