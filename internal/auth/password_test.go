package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parking-service/internal/auth"
)

func Test_HashPassword_RoundTrip(t *testing.T) {
	hashed, err := auth.HashPassword("attendant-secret", 4)

	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(hashed, "attendant-secret"))
	assert.Error(t, auth.ComparePassword(hashed, "wrong-secret"))
}

func Test_HashPassword_OutOfRangeCostFallsBack(t *testing.T) {
	hashed, err := auth.HashPassword("attendant-secret", 0)

	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(hashed, "attendant-secret"))
}

func Test_HashPassword_TooLong(t *testing.T) {
	_, err := auth.HashPassword(strings.Repeat("x", 73), 4)

	assert.ErrorIs(t, err, auth.ErrPasswordTooLong)
}
