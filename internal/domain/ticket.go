package domain

import "time"

// Ticket records one parking session. A ticket with no OutTime is open;
// at most one open ticket exists per registration.
type Ticket struct {
	ID               int64
	ReceiptNumber    string
	VehicleRegNumber string
	Spot             ParkingSpot
	InTime           time.Time
	OutTime          *time.Time
	Price            float64
}

// IsOpen reports whether the session is still in progress.
func (t *Ticket) IsOpen() bool {
	return t.OutTime == nil
}

// Duration returns the parked duration, or zero while the ticket is open.
func (t *Ticket) Duration() time.Duration {
	if t.OutTime == nil {
		return 0
	}
	return t.OutTime.Sub(t.InTime)
}
