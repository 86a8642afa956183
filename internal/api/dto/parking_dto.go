package dto

import (
	"time"

	"github.com/spec-kit/parking-service/internal/domain"
)

// VehicleEntryRequest payload for an incoming vehicle. Either a vehicle type
// tag or a terminal menu selection (1 car, 2 bike) identifies the type.
type VehicleEntryRequest struct {
	VehicleType  string `json:"vehicle_type"`
	Selection    int    `json:"selection"`
	Registration string `json:"registration"`
}

// VehicleExitRequest payload for an exiting vehicle.
type VehicleExitRequest struct {
	Registration string `json:"registration"`
}

// TicketResponse serializes one parking session.
type TicketResponse struct {
	ID            int64              `json:"id"`
	ReceiptNumber string             `json:"receipt_number"`
	Registration  string             `json:"registration"`
	SpotID        int                `json:"spot_id"`
	VehicleType   domain.VehicleType `json:"vehicle_type"`
	InTime        time.Time          `json:"in_time"`
	OutTime       *time.Time         `json:"out_time,omitempty"`
	Price         float64            `json:"price"`
	Open          bool               `json:"open"`
}

// EntryResponse body for a successful entry.
type EntryResponse struct {
	Ticket        TicketResponse `json:"ticket"`
	RecurringUser bool           `json:"recurring_user"`
	Message       string         `json:"message"`
}

// ExitResponse body for a successful exit.
type ExitResponse struct {
	Ticket     TicketResponse `json:"ticket"`
	Discounted bool           `json:"discounted"`
	FreeExit   bool           `json:"free_exit"`
	Message    string         `json:"message"`
}

// SpotResponse serializes a spot.
type SpotResponse struct {
	ID          int                `json:"id"`
	VehicleType domain.VehicleType `json:"vehicle_type"`
	Available   bool               `json:"available"`
}

// AvailabilityResponse reports free spot counts per vehicle type.
type AvailabilityResponse struct {
	Available map[domain.VehicleType]int `json:"available"`
}

// NewTicketResponse maps a domain ticket.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID,
		ReceiptNumber: ticket.ReceiptNumber,
		Registration:  ticket.VehicleRegNumber,
		SpotID:        ticket.Spot.ID,
		VehicleType:   ticket.Spot.Type,
		InTime:        ticket.InTime,
		OutTime:       ticket.OutTime,
		Price:         ticket.Price,
		Open:          ticket.IsOpen(),
	}
}
