package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/robshop/stock-engine/internal/application/export"
	"github.com/robshop/stock-engine/internal/application/stock"
	"github.com/robshop/stock-engine/internal/domain/repository"
	"github.com/robshop/stock-engine/internal/infrastructure/memory"
	infrapdf "github.com/robshop/stock-engine/internal/infrastructure/pdf"
	"github.com/robshop/stock-engine/internal/infrastructure/postgres"
	"github.com/robshop/stock-engine/internal/interfaces/http"
	"github.com/robshop/stock-engine/internal/notify"
	"github.com/robshop/stock-engine/pkg/config"
	"github.com/robshop/stock-engine/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Stock.Storage).
		Msg("starting application")

	ctx := context.Background()

	var (
		catalogRepo  repository.CatalogRepository
		overrideRepo repository.OverrideRepository
		ledgerRepo   repository.LedgerRepository
		locationRepo repository.LocationRepository
		versionRepo  repository.VersionRepository
		txRunner     stock.TxRunner
	)

	switch cfg.Stock.Storage {
	case "memory":
		store := memory.NewStore()
		catalogRepo = store.Catalog()
		overrideRepo = store.Overrides()
		ledgerRepo = store.Ledger()
		locationRepo = store.Locations()
		versionRepo = store.Version()
		txRunner = store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("connect to PostgreSQL")
		}
		defer pool.Close()
		catalogRepo = postgres.NewCatalogRepository(pool)
		overrideRepo = postgres.NewOverrideRepository(pool)
		ledgerRepo = postgres.NewLedgerRepository(pool)
		locationRepo = postgres.NewLocationRepository(pool)
		versionRepo = postgres.NewVersionRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	bus := notify.NewBus()
	hub := notify.NewHub(bus, log)
	go hub.Run()

	resolver := stock.NewResolver(catalogRepo, overrideRepo)
	catalogIndex := stock.NewCatalogIndex(catalogRepo, cfg.Stock.CatalogLocale)
	editor := stock.NewEditor(overrideRepo, versionRepo, bus, log)
	locationSvc := stock.NewLocationService(locationRepo)
	transferUC := stock.NewTransferUseCase(txRunner, resolver, locationRepo, bus)
	ledgerSvc := stock.NewLedgerService(ledgerRepo, cfg.Stock.LedgerDefaultLimit)
	ledgerExport := export.NewLedgerExportUseCase(ledgerRepo, infrapdf.NewMarotoLedgerReport())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	http.RegisterWS(app, hub)
	http.Router(app, http.RouterDeps{
		Editor:       editor,
		Resolver:     resolver,
		CatalogIndex: catalogIndex,
		Transfer:     transferUC,
		Ledger:       ledgerSvc,
		LedgerExport: ledgerExport,
		Locations:    locationSvc,
		Version:      versionRepo,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
