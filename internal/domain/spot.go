package domain

import "time"

// ParkingSpot is one slot in the fixed spot pool. The id never changes after
// seeding; only the availability flag toggles, and only through the repository.
type ParkingSpot struct {
	ID        int
	Type      VehicleType
	Available bool
	UpdatedAt time.Time
}
