package util_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parking-service/internal/domain"
	"github.com/spec-kit/parking-service/pkg/util"
)

func Test_ToDomainError_MapsParkingSentinels(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedCode   string
		expectedStatus int
	}{
		{"no_available_spot", domain.ErrNoAvailableSpot, "NO_AVAILABLE_SPOT", http.StatusConflict},
		{"ticket_not_found", domain.ErrTicketNotFound, "TICKET_NOT_FOUND", http.StatusNotFound},
		{"invalid_duration", domain.ErrInvalidDuration, "INVALID_DURATION", http.StatusUnprocessableEntity},
		{"registration_busy", domain.ErrRegistrationBusy, "REGISTRATION_BUSY", http.StatusConflict},
		{"unsupported_vehicle_type", domain.ErrUnsupportedVehicleType, "UNSUPPORTED_VEHICLE_TYPE", http.StatusBadRequest},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := util.ToDomainError(fmt.Errorf("context: %w", tc.err))
			require.NotNil(t, mapped)
			assert.Equal(t, tc.expectedCode, mapped.Code)
			assert.Equal(t, tc.expectedStatus, mapped.HTTPStatus)
			assert.ErrorIs(t, mapped, tc.err)
		})
	}
}

func Test_ToDomainError_PassesThroughDomainError(t *testing.T) {
	original := util.NewDomainError("CONFLICT", "already parked", http.StatusConflict, nil)
	mapped := util.ToDomainError(original)
	assert.Same(t, original, mapped)
}

func Test_ToDomainError_MapsFiberErrors(t *testing.T) {
	tests := []struct {
		name         string
		err          *fiber.Error
		expectedCode string
	}{
		{"unauthorized", fiber.NewError(http.StatusUnauthorized, "missing bearer token"), "UNAUTHORIZED"},
		{"forbidden", fiber.NewError(http.StatusForbidden, "operator role required"), "FORBIDDEN"},
		{"teapot", fiber.NewError(http.StatusTeapot, "short and stout"), "REQUEST_FAILED"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mapped := util.ToDomainError(tc.err)
			require.NotNil(t, mapped)
			assert.Equal(t, tc.expectedCode, mapped.Code)
			assert.Equal(t, tc.err.Code, mapped.HTTPStatus)
			assert.Equal(t, tc.err.Message, mapped.Message)
		})
	}
}

func Test_ToDomainError_WrapsUnknownErrors(t *testing.T) {
	mapped := util.ToDomainError(errors.New("boom"))
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
}

func Test_ToDomainError_Nil(t *testing.T) {
	assert.Nil(t, util.ToDomainError(nil))
}
