package domain

import "strings"

// VehicleType enumerates the vehicle categories the facility accepts.
type VehicleType string

const (
	VehicleTypeCar  VehicleType = "CAR"
	VehicleTypeBike VehicleType = "BIKE"
)

// ParseVehicleType maps a free-form tag to a VehicleType.
func ParseVehicleType(tag string) (VehicleType, error) {
	switch VehicleType(strings.ToUpper(strings.TrimSpace(tag))) {
	case VehicleTypeCar:
		return VehicleTypeCar, nil
	case VehicleTypeBike:
		return VehicleTypeBike, nil
	default:
		return "", ErrUnsupportedVehicleType
	}
}

// VehicleTypeFromSelection maps a terminal menu selection (1 car, 2 bike)
// to a VehicleType.
func VehicleTypeFromSelection(selection int) (VehicleType, error) {
	switch selection {
	case 1:
		return VehicleTypeCar, nil
	case 2:
		return VehicleTypeBike, nil
	default:
		return "", ErrUnsupportedVehicleType
	}
}
