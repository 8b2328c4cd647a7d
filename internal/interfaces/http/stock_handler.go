package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/robshop/stock-engine/internal/application/dto"
	"github.com/robshop/stock-engine/internal/application/stock"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/internal/domain/repository"
	"github.com/robshop/stock-engine/pkg/validator"
)

// StockHandler serves the stock read side (merged index, resolve, catalog
// pickers) and direct edits (upsert/remove overrides).
type StockHandler struct {
	editor   *stock.Editor
	resolver *stock.Resolver
	catalog  *stock.CatalogIndex
	version  repository.VersionRepository
}

// NewStockHandler builds the handler.
func NewStockHandler(editor *stock.Editor, resolver *stock.Resolver, catalog *stock.CatalogIndex, version repository.VersionRepository) *StockHandler {
	return &StockHandler{editor: editor, resolver: resolver, catalog: catalog, version: version}
}

// Upsert records an override for an item (POST /api/stock).
func (h *StockHandler) Upsert(c *fiber.Ctx) error {
	var in dto.UpsertStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": errs})
	}
	rec, err := h.editor.Upsert(in.ToRecord())
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewStockRecordResponse(rec))
}

// Remove deletes an override by identity (DELETE /api/stock).
func (h *StockHandler) Remove(c *fiber.Ctx) error {
	var in dto.RemoveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": errs})
	}
	id := entity.Identity{ProductName: in.ProductName, Serial: in.Serial, MotorSerial: in.MotorSerial}
	if err := h.editor.Remove(in.Location, entity.Category(in.Category), id); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "override removed"})
}

// MergedIndex returns the effective stock list for a location+category
// (GET /api/stock/index?location=&category=).
func (h *StockHandler) MergedIndex(c *fiber.Ctx) error {
	list, err := h.resolver.MergedList(c.Query("location"), entity.Category(c.Query("category")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":   len(list),
		"records": dto.NewStockRecordResponses(list),
	})
}

// Resolve returns the effective record for one item
// (GET /api/stock/resolve?location=&category=&product_name=&serial=&motor_serial=).
func (h *StockHandler) Resolve(c *fiber.Ctx) error {
	id := entity.Identity{
		ProductName: c.Query("product_name"),
		Serial:      c.Query("serial"),
		MotorSerial: c.Query("motor_serial"),
	}
	rec, err := h.resolver.ResolveCurrent(c.Query("location"), entity.Category(c.Query("category")), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewStockRecordResponse(rec))
}

// Catalog returns the raw catalog rows (GET /api/stock/catalog).
func (h *StockHandler) Catalog(c *fiber.Ctx) error {
	list, err := h.catalog.GetCatalog(c.Query("location"), entity.Category(c.Query("category")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":   len(list),
		"records": dto.NewStockRecordResponses(list),
	})
}

// BrandIndex returns the brand/product/variant picker groups
// (GET /api/stock/catalog/brands).
func (h *StockHandler) BrandIndex(c *fiber.Ctx) error {
	index, err := h.catalog.IndexByBrand(c.Query("location"), entity.Category(c.Query("category")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(index)
}

// Version returns the monotonic change marker (GET /api/stock/version).
func (h *StockHandler) Version(c *fiber.Ctx) error {
	v, err := h.version.Current()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"version": v})
}
