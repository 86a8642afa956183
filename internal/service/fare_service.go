package service

import (
	"fmt"
	"time"

	"github.com/spec-kit/parking-service/internal/config"
	"github.com/spec-kit/parking-service/internal/domain"
)

// FareCalculator computes a ticket's price from its duration, the spot's
// vehicle type and loyalty-discount eligibility.
type FareCalculator struct {
	rates map[domain.VehicleType]config.FareRate
	grace time.Duration
}

// NewFareCalculator builds the calculator from the configured pricing policy.
func NewFareCalculator(cfg config.FareConfig) *FareCalculator {
	return &FareCalculator{
		rates: cfg.Rates,
		grace: cfg.GracePeriod(),
	}
}

// ComputeFare writes the computed price onto the ticket. Durations under the
// grace period are free regardless of vehicle type or discount flag.
func (f *FareCalculator) ComputeFare(ticket *domain.Ticket, discountEligible bool) error {
	if ticket.OutTime == nil || ticket.OutTime.Before(ticket.InTime) {
		return fmt.Errorf("%w: registration %s", domain.ErrInvalidDuration, ticket.VehicleRegNumber)
	}

	if ticket.Duration() < f.grace {
		ticket.Price = 0
		return nil
	}

	rate, ok := f.rates[ticket.Spot.Type]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnsupportedVehicleType, ticket.Spot.Type)
	}

	hourly := rate.PerHour
	if discountEligible {
		hourly = rate.DiscountPerHour
	}
	ticket.Price = ticket.Duration().Hours() * hourly
	return nil
}
