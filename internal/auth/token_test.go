package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parking-service/internal/auth"
	"github.com/spec-kit/parking-service/internal/domain"
)

func Test_TokenManager_RoundTrip(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", 60)

	token, expiresAt, err := manager.GenerateToken("op-1", domain.OperatorRoleAttendant)
	require.NoError(t, err)
	assert.False(t, expiresAt.IsZero())

	claims, err := manager.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims.OperatorID)
	assert.Equal(t, domain.OperatorRoleAttendant, claims.Role)
}

func Test_TokenManager_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewTokenManager("secret-a", 60)
	verifier := auth.NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken("op-1", domain.OperatorRoleAdmin)
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func Test_TokenManager_RejectsGarbage(t *testing.T) {
	manager := auth.NewTokenManager("test-secret", 60)

	_, err := manager.ParseToken("not-a-token")
	assert.Error(t, err)
}
