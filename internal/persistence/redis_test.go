package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/parking-service/internal/persistence"
)

func Test_RegistrationGuard_GrantsLeaseWithoutRedis(t *testing.T) {
	guard := persistence.NewRegistrationGuard(nil, time.Second)

	release, err := guard.Acquire(context.Background(), "ABCDEF")

	require.NoError(t, err)
	require.NotNil(t, release)
	release()
}

func Test_RegistrationGuard_GrantsLeaseWithNilClient(t *testing.T) {
	guard := persistence.NewRegistrationGuard(&persistence.Redis{}, time.Second)

	release, err := guard.Acquire(context.Background(), "ABCDEF")

	require.NoError(t, err)
	assert.NotNil(t, release)
}

func Test_Redis_PingWithoutClient(t *testing.T) {
	var r *persistence.Redis

	assert.Error(t, r.Ping(context.Background()))
	assert.Error(t, (&persistence.Redis{}).Ping(context.Background()))
}
