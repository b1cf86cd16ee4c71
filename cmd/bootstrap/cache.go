package bootstrap

import (
	"context"
	"log/slog"

	"hotel-booking/internal/infra/cache"
	"hotel-booking/internal/pkg/config"
	"hotel-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewIdempotencyStore,
	),
)

// NewIdempotencyStore falls back to a no-op store when REDIS_ADDR is empty;
// payments are then recorded without replay protection.
func NewIdempotencyStore(lc fx.Lifecycle, cfg config.Config) (shared.IdempotencyStore, error) {
	if !cfg.Redis.Enabled() {
		slog.Info("redis not configured; payment idempotency keys are ignored")
		return cache.NopIdempotencyStore{}, nil
	}

	client, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return cache.NewRedisIdempotencyStore(client, cfg.Redis.IdempotencyTTL), nil
}
