package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/parking-service/internal/api/dto"
	"github.com/spec-kit/parking-service/internal/service"
	apperrors "github.com/spec-kit/parking-service/pkg/util"
)

// TicketsHandler exposes session history lookups.
type TicketsHandler struct {
	service *service.ParkingService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(parkingService *service.ParkingService) *TicketsHandler {
	return &TicketsHandler{service: parkingService}
}

// List GET /tickets?registration=ABCDEF.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	registration := strings.TrimSpace(c.Query("registration"))
	if registration == "" {
		return apperrors.NewValidationError("registration query parameter required", nil)
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))

	tickets, err := h.service.TicketHistory(c.UserContext(), registration, limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
