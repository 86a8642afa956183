package events

import (
	"time"

	"github.com/spec-kit/parking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventVehicleEntered EventType = "vehicle_entered"
	EventVehicleExited  EventType = "vehicle_exited"
	EventSpotReleased   EventType = "spot_released"
)

// Event represents a domain event emitted by the orchestrator.
type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	Registration string      `json:"registration"`
	Timestamp    time.Time   `json:"timestamp"`
	Payload      interface{} `json:"payload"`
}

// VehicleEnteredPayload payload.
type VehicleEnteredPayload struct {
	TicketID      int64              `json:"ticket_id"`
	ReceiptNumber string             `json:"receipt_number"`
	SpotID        int                `json:"spot_id"`
	VehicleType   domain.VehicleType `json:"vehicle_type"`
	InTime        time.Time          `json:"in_time"`
	RecurringUser bool               `json:"recurring_user"`
}

// VehicleExitedPayload payload.
type VehicleExitedPayload struct {
	TicketID      int64              `json:"ticket_id"`
	ReceiptNumber string             `json:"receipt_number"`
	SpotID        int                `json:"spot_id"`
	VehicleType   domain.VehicleType `json:"vehicle_type"`
	OutTime       time.Time          `json:"out_time"`
	Price         float64            `json:"price"`
	Discounted    bool               `json:"discounted"`
	FreeExit      bool               `json:"free_exit"`
}

// SpotReleasedPayload payload.
type SpotReleasedPayload struct {
	SpotID      int                `json:"spot_id"`
	VehicleType domain.VehicleType `json:"vehicle_type"`
}
