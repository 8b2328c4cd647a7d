package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/robshop/stock-engine/internal/application/dto"
	"github.com/robshop/stock-engine/internal/application/stock"
	"github.com/robshop/stock-engine/internal/domain/entity"
	"github.com/robshop/stock-engine/pkg/validator"
)

// LocationHandler serves the store/warehouse registry.
type LocationHandler struct {
	locations *stock.LocationService
}

// NewLocationHandler builds the handler.
func NewLocationHandler(locations *stock.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

// Create registers a location (POST /api/locations).
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed request body"})
	}
	if errs := validator.ValidateStruct(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"code": "VALIDATION", "errors": errs})
	}
	loc, err := h.locations.Create(&entity.Location{
		ID:      in.ID,
		Name:    in.Name,
		Kind:    entity.LocationKind(in.Kind),
		Address: in.Address,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLocationResponse(loc))
}

// List returns all locations (GET /api/locations).
func (h *LocationHandler) List(c *fiber.Ctx) error {
	list, err := h.locations.List()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "locations": dto.NewLocationResponses(list)})
}
