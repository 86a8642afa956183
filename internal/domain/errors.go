package domain

import "errors"

// Sentinel errors surfaced by the parking core. Callers match them with
// errors.Is; the API layer maps them to response envelopes.
var (
	ErrNoAvailableSpot        = errors.New("no available spot for vehicle type")
	ErrTicketNotFound         = errors.New("no open ticket for registration")
	ErrInvalidDuration        = errors.New("exit time missing or before entry time")
	ErrUnsupportedVehicleType = errors.New("unsupported vehicle type")
	ErrRegistrationBusy       = errors.New("registration is being processed by another terminal")
)
