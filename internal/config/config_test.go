package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parking-service/internal/config"
	"github.com/spec-kit/parking-service/internal/domain"
)

func Test_Load_FareDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	car := cfg.Fare.Rates[domain.VehicleTypeCar]
	bike := cfg.Fare.Rates[domain.VehicleTypeBike]
	assert.InDelta(t, 1.5, car.PerHour, 1e-9)
	assert.InDelta(t, 1.425, car.DiscountPerHour, 1e-9)
	assert.InDelta(t, 1.0, bike.PerHour, 1e-9)
	assert.InDelta(t, 0.95, bike.DiscountPerHour, 1e-9)
	assert.Equal(t, 30, cfg.Fare.GracePeriodMinutes)
	assert.Equal(t, 2, cfg.Fare.LoyaltyMinSessions)
}

func Test_Load_FareOverrides(t *testing.T) {
	t.Setenv("FARE_CAR_RATE_PER_HOUR", "2.5")
	t.Setenv("FARE_GRACE_PERIOD_MINUTES", "15")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.InDelta(t, 2.5, cfg.Fare.Rates[domain.VehicleTypeCar].PerHour, 1e-9)
	assert.Equal(t, 15, cfg.Fare.GracePeriodMinutes)
}
