package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/dto"
	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/internal/service"
)

// SpotsHandler exposes spot directory queries.
type SpotsHandler struct {
	service *service.ParkingService
}

// NewSpotsHandler constructs handler.
func NewSpotsHandler(parkingService *service.ParkingService) *SpotsHandler {
	return &SpotsHandler{service: parkingService}
}

// Availability GET /spots/availability.
func (h *SpotsHandler) Availability(c *fiber.Ctx) error {
	counts, err := h.service.Availability(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.AvailabilityResponse{Available: counts}})
}

// Next GET /spots/next?type=CAR.
func (h *SpotsHandler) Next(c *fiber.Ctx) error {
	vehicleType, err := domain.ParseVehicleType(c.Query("type"))
	if err != nil {
		return err
	}
	spot, err := h.service.NextAvailableSpot(c.UserContext(), vehicleType)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.SpotResponse{
		ID:          spot.ID,
		VehicleType: spot.Type,
		Available:   spot.Available,
	}})
}
