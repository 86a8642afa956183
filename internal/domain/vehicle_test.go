package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parking-service/internal/domain"
)

func Test_ParseVehicleType(t *testing.T) {
	tests := []struct {
		input    string
		expected domain.VehicleType
	}{
		{"CAR", domain.VehicleTypeCar},
		{"car", domain.VehicleTypeCar},
		{" Bike ", domain.VehicleTypeBike},
		{"BIKE", domain.VehicleTypeBike},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			parsed, err := domain.ParseVehicleType(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, parsed)
		})
	}
}

func Test_ParseVehicleType_Unsupported(t *testing.T) {
	for _, input := range []string{"", "TRUCK", "3"} {
		_, err := domain.ParseVehicleType(input)
		assert.ErrorIs(t, err, domain.ErrUnsupportedVehicleType, "input %q", input)
	}
}

func Test_VehicleTypeFromSelection(t *testing.T) {
	car, err := domain.VehicleTypeFromSelection(1)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleTypeCar, car)

	bike, err := domain.VehicleTypeFromSelection(2)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleTypeBike, bike)

	_, err = domain.VehicleTypeFromSelection(3)
	assert.ErrorIs(t, err, domain.ErrUnsupportedVehicleType)
}
