package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/robshop/stock-engine/internal/application/export"
	"github.com/robshop/stock-engine/internal/application/stock"
	"github.com/robshop/stock-engine/internal/domain/repository"
)

// RouterDeps wires the handlers' dependencies.
type RouterDeps struct {
	Editor       *stock.Editor
	Resolver     *stock.Resolver
	CatalogIndex *stock.CatalogIndex
	Transfer     *stock.TransferUseCase
	Ledger       *stock.LedgerService
	LedgerExport *export.LedgerExportUseCase
	Locations    *stock.LocationService
	Version      repository.VersionRepository
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Stock: merge view, catalog pickers, direct edits
	stockGroup := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Editor, deps.Resolver, deps.CatalogIndex, deps.Version)
	stockGroup.Post("/", stockHandler.Upsert)
	stockGroup.Delete("/", stockHandler.Remove)
	stockGroup.Get("/index", stockHandler.MergedIndex)
	stockGroup.Get("/resolve", stockHandler.Resolve)
	stockGroup.Get("/catalog", stockHandler.Catalog)
	stockGroup.Get("/catalog/brands", stockHandler.BrandIndex)
	stockGroup.Get("/version", stockHandler.Version)

	// Transfers and the audit ledger
	transfers := api.Group("/transfers")
	transferHandler := NewTransferHandler(deps.Transfer, deps.Ledger, deps.LedgerExport)
	transfers.Post("/", transferHandler.Transfer)
	transfers.Get("/ledger", transferHandler.ListLedger)
	transfers.Delete("/ledger", transferHandler.ClearLedger)
	transfers.Get("/ledger/export.pdf", transferHandler.ExportLedgerPDF)

	// Store/warehouse registry
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.Locations)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
}
