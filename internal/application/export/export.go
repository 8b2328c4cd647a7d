// Package export flattens the transfer ledger into the tabular report the
// surrounding pages hand to spreadsheet/print collaborators.
package export

import (
	"context"
	"fmt"
	"time"

	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

// LedgerRow is one flattened transfer: the exact export surface, one row
// per ledger entry.
type LedgerRow struct {
	Timestamp   time.Time
	Source      string
	Destination string
	Category    entity.Category
	Item        string // identity fields joined for display
	Quantity    int64
	Mode        entity.TransferMode
	SyncSystem  bool
	Actor       string
	Note        string
}

// LedgerPDFGenerator renders the flattened rows. Implemented by the maroto
// adapter in infrastructure/pdf.
type LedgerPDFGenerator interface {
	GenerateLedgerPDF(ctx context.Context, generatedAt time.Time, rows []LedgerRow) ([]byte, error)
}

// LedgerExportUseCase reads the ledger and renders it through the PDF port.
type LedgerExportUseCase struct {
	ledger repository.LedgerRepository
	pdf    LedgerPDFGenerator
	now    func() time.Time
}

// NewLedgerExportUseCase builds the usecase.
func NewLedgerExportUseCase(ledger repository.LedgerRepository, pdf LedgerPDFGenerator) *LedgerExportUseCase {
	return &LedgerExportUseCase{ledger: ledger, pdf: pdf, now: time.Now}
}

// Rows flattens up to limit ledger entries, newest first.
func (uc *LedgerExportUseCase) Rows(limit int) ([]LedgerRow, error) {
	entries, err := uc.ledger.List(limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger: %w", err)
	}
	rows := make([]LedgerRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, LedgerRow{
			Timestamp:   e.CreatedAt,
			Source:      e.Source,
			Destination: e.Destination,
			Category:    e.Category,
			Item:        itemLabel(e),
			Quantity:    e.Quantity,
			Mode:        e.Mode,
			SyncSystem:  e.SyncSystem,
			Actor:       e.Actor,
			Note:        e.Note,
		})
	}
	return rows, nil
}

// ExportPDF renders the flattened ledger as a PDF document.
func (uc *LedgerExportUseCase) ExportPDF(ctx context.Context, limit int) ([]byte, error) {
	rows, err := uc.Rows(limit)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.pdf.GenerateLedgerPDF(ctx, uc.now(), rows)
	if err != nil {
		return nil, fmt.Errorf("render ledger pdf: %w", err)
	}
	return pdf, nil
}

// itemLabel joins the identity snapshot into one display string: product
// name plus whichever serial identifies the item in its category.
func itemLabel(e *entity.TransferLedgerEntry) string {
	label := e.ProductName
	if e.Brand != "" {
		label = e.Brand + " " + label
	}
	if e.Variant != "" {
		label += " (" + e.Variant + ")"
	}
	switch {
	case e.Category == entity.CategoryElectricMotorcycle && e.MotorSerial != "":
		label += " [" + e.MotorSerial + "]"
	case e.Serial != "":
		label += " [" + e.Serial + "]"
	}
	return label
}
