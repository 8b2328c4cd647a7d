package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/robshop/stock-engine/internal/application/dto"
	"github.com/robshop/stock-engine/internal/domain"
)

// writeError maps domain errors onto the uniform error body. Validation
// failures are 400, missing resources 404, the insufficient-stock guard 409,
// anything unmapped 500.
func writeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrSameLocation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "SAME_LOCATION", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownCategory):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_CATEGORY", Message: err.Error()})
	case errors.Is(err, domain.ErrNonPositiveQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NON_POSITIVE_QUANTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrUnknownMode):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "UNKNOWN_MODE", Message: err.Error()})
	case errors.Is(err, domain.ErrBlankIdentity):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "BLANK_IDENTITY", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
