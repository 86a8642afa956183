package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/parking-service/internal/config"
	"github.com/spec-kit/parking-service/internal/domain"
)

const registrationLockPrefix = "parking:registration-lock:"

// Redis wraps the go-redis client.
type Redis struct {
	Client *redis.Client
}

// NewRedis connects to Redis using the provided configuration.
func NewRedis(cfg config.RedisConfig, logger *zap.Logger) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &Redis{Client: client}
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies Redis connectivity.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client not configured")
	}
	return r.Client.Ping(ctx).Err()
}

// RegistrationGuard serializes entry/exit processing per vehicle registration
// across terminals with a SETNX lease. Without a reachable Redis the guard
// degrades to single-terminal mode and always grants the lease.
type RegistrationGuard struct {
	redis *Redis
	ttl   time.Duration
}

// NewRegistrationGuard builds a guard with the given lease TTL.
func NewRegistrationGuard(r *Redis, ttl time.Duration) *RegistrationGuard {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RegistrationGuard{redis: r, ttl: ttl}
}

// Acquire takes the lease for a registration and returns a release function.
// A held lease yields ErrRegistrationBusy.
func (g *RegistrationGuard) Acquire(ctx context.Context, registration string) (func(), error) {
	if g == nil || g.redis == nil || g.redis.Client == nil {
		return func() {}, nil
	}
	key := registrationLockPrefix + registration
	ok, err := g.redis.Client.SetNX(ctx, key, "1", g.ttl).Result()
	if err != nil {
		// Redis outage falls back to unguarded single-terminal mode.
		return func() {}, nil
	}
	if !ok {
		return nil, domain.ErrRegistrationBusy
	}
	return func() {
		_ = g.redis.Client.Del(context.Background(), key).Err()
	}, nil
}
