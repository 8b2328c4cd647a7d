package dto

import (
	"time"

	"github.com/robshop/stock-engine/internal/domain/entity"
)

// TransferRequest body for POST /api/transfers.
type TransferRequest struct {
	Source      string `json:"source" validate:"required"`
	Destination string `json:"destination" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Brand       string `json:"brand,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Variant     string `json:"variant,omitempty"`
	Serial      string `json:"serial,omitempty"`
	MotorSerial string `json:"motor_serial,omitempty"`
	Quantity    int64  `json:"quantity" validate:"required"`
	Mode        string `json:"mode" validate:"required"`

	SyncSystem    bool `json:"sync_system,omitempty"`
	AllowNegative bool `json:"allow_negative,omitempty"`

	Actor string `json:"actor,omitempty"`
	Note  string `json:"note,omitempty"`
}

// LedgerEntryResponse is the wire shape of one transfer ledger entry.
type LedgerEntryResponse struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Category    string    `json:"category"`
	ItemKey     string    `json:"item_key"`
	Brand       string    `json:"brand,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	Variant     string    `json:"variant,omitempty"`
	Serial      string    `json:"serial,omitempty"`
	MotorSerial string    `json:"motor_serial,omitempty"`
	Quantity    int64     `json:"quantity"`
	Mode        string    `json:"mode"`
	SyncSystem  bool      `json:"sync_system"`
	Actor       string    `json:"actor,omitempty"`
	Note        string    `json:"note,omitempty"`
}

// NewLedgerEntryResponse maps a ledger entry to the wire shape.
func NewLedgerEntryResponse(e *entity.TransferLedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		ID:          e.ID,
		CreatedAt:   e.CreatedAt,
		Source:      e.Source,
		Destination: e.Destination,
		Category:    string(e.Category),
		ItemKey:     e.ItemKey,
		Brand:       e.Brand,
		ProductName: e.ProductName,
		Variant:     e.Variant,
		Serial:      e.Serial,
		MotorSerial: e.MotorSerial,
		Quantity:    e.Quantity,
		Mode:        string(e.Mode),
		SyncSystem:  e.SyncSystem,
		Actor:       e.Actor,
		Note:        e.Note,
	}
}

// TransferResponse is the immediate feedback a successful transfer returns:
// the ledger entry plus both resulting records, no re-query needed.
type TransferResponse struct {
	Entry       LedgerEntryResponse `json:"entry"`
	Source      StockRecordResponse `json:"source"`
	Destination StockRecordResponse `json:"destination"`
	Version     int64               `json:"version"`
}
