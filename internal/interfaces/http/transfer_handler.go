package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/robshop/stock-engine/internal/application/dto"
	"github.com/robshop/stock-engine/internal/application/export"
	"github.com/robshop/stock-engine/internal/application/stock"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/pkg/validator"
)

// TransferHandler serves transfers and the ledger surface.
type TransferHandler struct {
	transfer *stock.TransferUseCase
	ledger   *stock.LedgerService
	export   *export.LedgerExportUseCase
}

// NewTransferHandler builds the handler.
func NewTransferHandler(transfer *stock.TransferUseCase, ledger *stock.LedgerService, exportUC *export.LedgerExportUseCase) *TransferHandler {
	return &TransferHandler{transfer: transfer, ledger: ledger, export: exportUC}
}

// Transfer applies one stock movement (POST /api/transfers).
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": errs})
	}

	result, err := h.transfer.Transfer(c.Context(), stock.TransferInput{
		Source:      in.Source,
		Destination: in.Destination,
		Category:    entity.Category(in.Category),
		Identity: entity.Identity{
			ProductName: in.ProductName,
			Serial:      in.Serial,
			MotorSerial: in.MotorSerial,
		},
		Brand:         in.Brand,
		Variant:       in.Variant,
		Quantity:      in.Quantity,
		Mode:          entity.TransferMode(in.Mode),
		SyncSystem:    in.SyncSystem,
		AllowNegative: in.AllowNegative,
		Actor:         in.Actor,
		Note:          in.Note,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.TransferResponse{
		Entry:       dto.NewLedgerEntryResponse(result.Entry),
		Source:      dto.NewStockRecordResponse(result.Source),
		Destination: dto.NewStockRecordResponse(result.Destination),
		Version:     result.Version,
	})
}

// ListLedger returns ledger entries newest first
// (GET /api/transfers/ledger?limit=).
func (h *TransferHandler) ListLedger(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := h.ledger.List(limit)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.NewLedgerEntryResponse(e))
	}
	return c.JSON(fiber.Map{
		"total":   len(out),
		"entries": out,
	})
}

// ClearLedger bulk-deletes the audit trail (DELETE /api/transfers/ledger).
// Irreversible; maintenance only.
func (h *TransferHandler) ClearLedger(c *fiber.Ctx) error {
	if err := h.ledger.Clear(); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ledger cleared"})
}

// ExportLedgerPDF streams the flattened ledger report
// (GET /api/transfers/ledger/export.pdf?limit=).
func (h *TransferHandler) ExportLedgerPDF(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit"))
	pdfBytes, err := h.export.ExportPDF(c.Context(), limit)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="transfer-ledger.pdf"`)
	return c.Send(pdfBytes)
}
