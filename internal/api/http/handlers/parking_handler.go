package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/dto"
	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/internal/service"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// ParkingHandler exposes the vehicle entry/exit endpoints.
type ParkingHandler struct {
	service *service.ParkingService
}

// NewParkingHandler constructs handler.
func NewParkingHandler(parkingService *service.ParkingService) *ParkingHandler {
	return &ParkingHandler{service: parkingService}
}

// Enter POST /parking/entries.
func (h *ParkingHandler) Enter(c *fiber.Ctx) error {
	var req dto.VehicleEntryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Registration) == "" {
		return apperrors.NewValidationError("registration required", nil)
	}

	vehicleType, err := resolveVehicleType(req)
	if err != nil {
		return err
	}

	result, err := h.service.ProcessIncomingVehicle(c.UserContext(), vehicleType, req.Registration)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.EntryResponse{
		Ticket:        dto.NewTicketResponse(result.Ticket),
		RecurringUser: result.RecurringUser,
		Message:       result.Message,
	}})
}

// Exit POST /parking/exits.
func (h *ParkingHandler) Exit(c *fiber.Ctx) error {
	var req dto.VehicleExitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Registration) == "" {
		return apperrors.NewValidationError("registration required", nil)
	}

	result, err := h.service.ProcessExitingVehicle(c.UserContext(), req.Registration)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ExitResponse{
		Ticket:     dto.NewTicketResponse(result.Ticket),
		Discounted: result.Discounted,
		FreeExit:   result.FreeExit,
		Message:    result.Message,
	}})
}

// resolveVehicleType rejects malformed type input before any spot lookup.
func resolveVehicleType(req dto.VehicleEntryRequest) (domain.VehicleType, error) {
	if req.Selection != 0 {
		return domain.VehicleTypeFromSelection(req.Selection)
	}
	return domain.ParseVehicleType(req.VehicleType)
}
