package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robshop/stock-engine/internal/application/export"
	"github.com/robshop/stock-engine/internal/application/stock"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/infrastructure/memory"
	infrapdf "github.com/robshop/stock-engine/internal/infrastructure/pdf"
	apihttp "github.com/robshop/stock-engine/internal/interfaces/http"
	"github.com/robshop/stock-engine/internal/notify"
	"github.com/robshop/stock-engine/pkg/logger"
)

// newTestApp wires the full API against the in-memory store, mirroring the
// composition in cmd/api.
func newTestApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	for _, id := range []string{"WAREHOUSE", "STORE-A"} {
		require.NoError(t, store.Locations().Create(&entity.Location{
			ID: id, Name: id, Kind: entity.LocationStore, CreatedAt: time.Now(),
		}))
	}

	bus := notify.NewBus()
	resolver := stock.NewResolver(store.Catalog(), store.Overrides())

	app := fiber.New()
	apihttp.Router(app, apihttp.RouterDeps{
		Editor:       stock.NewEditor(store.Overrides(), store.Version(), bus, logger.Nop()),
		Resolver:     resolver,
		CatalogIndex: stock.NewCatalogIndex(store.Catalog(), "id"),
		Transfer:     stock.NewTransferUseCase(store, resolver, store.Locations(), bus),
		Ledger:       stock.NewLedgerService(store.Ledger(), 200),
		LedgerExport: export.NewLedgerExportUseCase(store.Ledger(), infrapdf.NewMarotoLedgerReport()),
		Locations:    stock.NewLocationService(store.Locations()),
		Version:      store.Version(),
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) *nethttp.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *nethttp.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func seedWarehouseItem(store *memory.Store, phys, sys int64) {
	store.SeedCatalog(entity.StockRecord{
		Location:    "WAREHOUSE",
		Category:    entity.CategoryAccessory,
		Identity:    entity.Identity{ProductName: "Charger 33W"},
		Brand:       "Xiaomi",
		PhysicalQty: phys,
		SystemQty:   sys,
	})
}

func TestAPI_UpsertAndResolve(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/stock/", map[string]any{
		"location":     "STORE-A",
		"category":     "ACCESSORY",
		"product_name": "Charger 33W",
		"physical_qty": 12,
		"system_qty":   10,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var created map[string]any
	decode(t, resp, &created)
	assert.Equal(t, "OVERRIDE", created["origin"])

	resp = doJSON(t, app, "GET", "/api/stock/resolve?location=STORE-A&category=ACCESSORY&product_name=Charger+33W", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var resolved map[string]any
	decode(t, resp, &resolved)
	assert.Equal(t, float64(12), resolved["physical_qty"])
}

func TestAPI_UpsertValidationFails(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/stock/", map[string]any{
		"location": "STORE-A",
		"category": "FURNITURE",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "VALIDATION", body["code"])
}

func TestAPI_ResolveMissingIs404(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "GET", "/api/stock/resolve?location=STORE-A&category=ACCESSORY&product_name=ghost", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestAPI_TransferHappyPath(t *testing.T) {
	app, store := newTestApp(t)
	seedWarehouseItem(store, 10, 6)

	resp := doJSON(t, app, "POST", "/api/transfers/", map[string]any{
		"source":       "WAREHOUSE",
		"destination":  "STORE-A",
		"category":     "ACCESSORY",
		"product_name": "Charger 33W",
		"brand":        "Xiaomi",
		"quantity":     3,
		"mode":         "PHYSICAL",
		"actor":        "budi",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Entry struct {
			ItemKey string `json:"item_key"`
			Mode    string `json:"mode"`
		} `json:"entry"`
		Source struct {
			PhysicalQty int64 `json:"physical_qty"`
		} `json:"source"`
		Destination struct {
			PhysicalQty int64 `json:"physical_qty"`
		} `json:"destination"`
		Version int64 `json:"version"`
	}
	decode(t, resp, &body)
	assert.Equal(t, "charger 33w", body.Entry.ItemKey)
	assert.Equal(t, int64(7), body.Source.PhysicalQty)
	assert.Equal(t, int64(3), body.Destination.PhysicalQty)
	assert.Equal(t, int64(1), body.Version)
}

func TestAPI_TransferInsufficientStockIs409(t *testing.T) {
	app, store := newTestApp(t)
	seedWarehouseItem(store, 2, 2)

	resp := doJSON(t, app, "POST", "/api/transfers/", map[string]any{
		"source":       "WAREHOUSE",
		"destination":  "STORE-A",
		"category":     "ACCESSORY",
		"product_name": "Charger 33W",
		"quantity":     5,
		"mode":         "PHYSICAL",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
}

func TestAPI_TransferSameLocationIs400(t *testing.T) {
	app, store := newTestApp(t)
	seedWarehouseItem(store, 2, 2)

	resp := doJSON(t, app, "POST", "/api/transfers/", map[string]any{
		"source":       "WAREHOUSE",
		"destination":  "WAREHOUSE",
		"category":     "ACCESSORY",
		"product_name": "Charger 33W",
		"quantity":     1,
		"mode":         "PHYSICAL",
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body map[string]any
	decode(t, resp, &body)
	assert.Equal(t, "SAME_LOCATION", body["code"])
}

func TestAPI_LedgerListAndClear(t *testing.T) {
	app, store := newTestApp(t)
	seedWarehouseItem(store, 10, 10)

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, "POST", "/api/transfers/", map[string]any{
			"source":       "WAREHOUSE",
			"destination":  "STORE-A",
			"category":     "ACCESSORY",
			"product_name": "Charger 33W",
			"quantity":     1,
			"mode":         "BOTH",
		})
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp := doJSON(t, app, "GET", "/api/transfers/ledger?limit=1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var listed struct {
		Total   int               `json:"total"`
		Entries []json.RawMessage `json:"entries"`
	}
	decode(t, resp, &listed)
	assert.Equal(t, 1, listed.Total)

	resp = doJSON(t, app, "DELETE", "/api/transfers/ledger", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/transfers/ledger", nil)
	decode(t, resp, &listed)
	assert.Equal(t, 0, listed.Total)
}

func TestAPI_LedgerExportPDF(t *testing.T) {
	app, store := newTestApp(t)
	seedWarehouseItem(store, 10, 10)

	resp := doJSON(t, app, "GET", "/api/transfers/ledger/export.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")), "response is a PDF document")
}

func TestAPI_MergedIndex(t *testing.T) {
	app, store := newTestApp(t)
	seedWarehouseItem(store, 10, 10)

	resp := doJSON(t, app, "POST", "/api/stock/", map[string]any{
		"location":     "WAREHOUSE",
		"category":     "ACCESSORY",
		"product_name": "Charger 33W",
		"physical_qty": 4,
		"system_qty":   10,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/stock/index?location=WAREHOUSE&category=ACCESSORY", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Total   int `json:"total"`
		Records []struct {
			Origin      string `json:"origin"`
			PhysicalQty int64  `json:"physical_qty"`
		} `json:"records"`
	}
	decode(t, resp, &body)
	require.Equal(t, 1, body.Total)
	assert.Equal(t, "OVERRIDE", body.Records[0].Origin)
	assert.Equal(t, int64(4), body.Records[0].PhysicalQty)
}

func TestAPI_VersionAdvancesPerWrite(t *testing.T) {
	app, _ := newTestApp(t)

	read := func() int64 {
		resp := doJSON(t, app, "GET", "/api/stock/version", nil)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
		var body struct {
			Version int64 `json:"version"`
		}
		decode(t, resp, &body)
		return body.Version
	}
	require.Equal(t, int64(0), read())

	resp := doJSON(t, app, "POST", "/api/stock/", map[string]any{
		"location":     "STORE-A",
		"category":     "ACCESSORY",
		"product_name": "Charger 33W",
		"physical_qty": 1,
		"system_qty":   1,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(1), read())
}

func TestAPI_Locations(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/locations/", map[string]any{
		"id":   "store-b",
		"name": "Store B",
		"kind": "STORE",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Creating the same ID again conflicts.
	resp = doJSON(t, app, "POST", "/api/locations/", map[string]any{
		"id":   "STORE-B",
		"name": "Store B",
		"kind": "STORE",
	})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = doJSON(t, app, "GET", "/api/locations/", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var body struct {
		Total     int `json:"total"`
		Locations []struct {
			ID string `json:"id"`
		} `json:"locations"`
	}
	decode(t, resp, &body)
	assert.Equal(t, 3, body.Total)
}
