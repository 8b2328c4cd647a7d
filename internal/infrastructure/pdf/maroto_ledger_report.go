// Package pdf renders the flattened transfer ledger as a printable report:
// a header with the generation timestamp, one table row per transfer, and a
// totals line.
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/robshop/stock-engine/internal/application/export"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoLedgerReport implements export.LedgerPDFGenerator using Maroto v2.
type MarotoLedgerReport struct{}

// NewMarotoLedgerReport builds the generator.
func NewMarotoLedgerReport() *MarotoLedgerReport { return &MarotoLedgerReport{} }

// GenerateLedgerPDF renders the report and returns its bytes.
func (g *MarotoLedgerReport) GenerateLedgerPDF(_ context.Context, generatedAt time.Time, rows []export.LedgerRow) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Transfer Ledger", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt, len(rows)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range rows {
		m.AddRows(entryRow(r))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(len(rows)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(generatedAt time.Time, count int) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("STOCK TRANSFER LEDGER", props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d transfers, newest first", count), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generated: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("From", 1, align.Left),
		h("To", 1, align.Left),
		h("Item", 4, align.Left),
		h("Qty", 1, align.Right),
		h("Mode", 1, align.Center),
		h("Actor", 1, align.Left),
		h("Note", 1, align.Left),
	)
}

func entryRow(r export.LedgerRow) core.Row {
	mode := string(r.Mode)
	if r.SyncSystem {
		mode += "+SYS"
	}
	cell := func(value string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(value, props.Text{
			Size: 7, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		cell(r.Timestamp.Format("02/01/2006 15:04"), 2, align.Left),
		cell(r.Source, 1, align.Left),
		cell(r.Destination, 1, align.Left),
		cell(r.Item, 4, align.Left),
		cell(fmt.Sprintf("%d", r.Quantity), 1, align.Right),
		cell(mode, 1, align.Center),
		cell(r.Actor, 1, align.Left),
		cell(r.Note, 1, align.Left),
	)
}

func footerRow(count int) core.Row {
	return row.New(6).Add(
		col.New(12).Add(text.New(
			fmt.Sprintf("End of report, %d entries", count),
			props.Text{Size: 7, Align: align.Right, Color: colorGray, Top: 1},
		)),
	)
}
