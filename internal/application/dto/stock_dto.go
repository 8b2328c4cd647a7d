package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/robshop/stock-engine/internal/domain/entity"
)

// UpsertStockRequest body for POST /api/stock.
type UpsertStockRequest struct {
	Location    string          `json:"location" validate:"required"`
	Category    string          `json:"category" validate:"required,oneof=ACCESSORY HANDPHONE ELECTRIC_MOTORCYCLE"`
	Brand       string          `json:"brand,omitempty"`
	ProductName string          `json:"product_name" validate:"required"`
	Variant     string          `json:"variant,omitempty"`
	Serial      string          `json:"serial,omitempty"`
	MotorSerial string          `json:"motor_serial,omitempty"`
	SystemQty   int64           `json:"system_qty" validate:"gte=0"`
	PhysicalQty int64           `json:"physical_qty" validate:"gte=0"`
	UnitPrice   decimal.Decimal `json:"unit_price,omitempty"`
	Note        string          `json:"note,omitempty"`
}

// ToRecord maps the request onto the domain record.
func (r UpsertStockRequest) ToRecord() *entity.StockRecord {
	return &entity.StockRecord{
		Location: r.Location,
		Category: entity.Category(r.Category),
		Identity: entity.Identity{
			ProductName: r.ProductName,
			Serial:      r.Serial,
			MotorSerial: r.MotorSerial,
		},
		Brand:       r.Brand,
		Variant:     r.Variant,
		SystemQty:   r.SystemQty,
		PhysicalQty: r.PhysicalQty,
		UnitPrice:   r.UnitPrice,
		Note:        r.Note,
	}
}

// RemoveStockRequest body for DELETE /api/stock.
type RemoveStockRequest struct {
	Location    string `json:"location" validate:"required"`
	Category    string `json:"category" validate:"required,oneof=ACCESSORY HANDPHONE ELECTRIC_MOTORCYCLE"`
	ProductName string `json:"product_name,omitempty"`
	Serial      string `json:"serial,omitempty"`
	MotorSerial string `json:"motor_serial,omitempty"`
}

// StockRecordResponse is the wire shape of one resolved stock record.
type StockRecordResponse struct {
	Location    string          `json:"location"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand,omitempty"`
	ProductName string          `json:"product_name"`
	Variant     string          `json:"variant,omitempty"`
	Serial      string          `json:"serial,omitempty"`
	MotorSerial string          `json:"motor_serial,omitempty"`
	SystemQty   int64           `json:"system_qty"`
	PhysicalQty int64           `json:"physical_qty"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Note        string          `json:"note,omitempty"`
	Origin      string          `json:"origin"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

// NewStockRecordResponse maps a domain record to the wire shape.
func NewStockRecordResponse(rec *entity.StockRecord) StockRecordResponse {
	return StockRecordResponse{
		Location:    rec.Location,
		Category:    string(rec.Category),
		Brand:       rec.Brand,
		ProductName: rec.ProductName,
		Variant:     rec.Variant,
		Serial:      rec.Serial,
		MotorSerial: rec.MotorSerial,
		SystemQty:   rec.SystemQty,
		PhysicalQty: rec.PhysicalQty,
		UnitPrice:   rec.UnitPrice,
		Note:        rec.Note,
		Origin:      string(rec.Origin),
		UpdatedAt:   rec.UpdatedAt,
	}
}

// NewStockRecordResponses maps a list of records.
func NewStockRecordResponses(recs []*entity.StockRecord) []StockRecordResponse {
	out := make([]StockRecordResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, NewStockRecordResponse(rec))
	}
	return out
}

// CreateLocationRequest body for POST /api/locations.
type CreateLocationRequest struct {
	ID      string `json:"id" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Kind    string `json:"kind" validate:"required,oneof=WAREHOUSE STORE"`
	Address string `json:"address,omitempty"`
}

// LocationResponse is the wire shape of one registered location.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLocationResponse maps a location to the wire shape.
func NewLocationResponse(loc *entity.Location) LocationResponse {
	return LocationResponse{
		ID:        loc.ID,
		Name:      loc.Name,
		Kind:      string(loc.Kind),
		Address:   loc.Address,
		CreatedAt: loc.CreatedAt,
	}
}

// NewLocationResponses maps a list of locations.
func NewLocationResponses(locs []*entity.Location) []LocationResponse {
	out := make([]LocationResponse, 0, len(locs))
	for _, loc := range locs {
		out = append(out, NewLocationResponse(loc))
	}
	return out
}
