package bootstrap

import (
	"context"
	"log/slog"

	"resource-booking/internal/infra/cache"
	"resource-booking/internal/infra/events"
	"resource-booking/internal/pkg/config"
	"resource-booking/internal/usecase/queries"
	"resource-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

type ResourceCacheResult struct {
	fx.Out

	Lister      queries.ResourceListCache
	Invalidator shared.ResourceCacheInvalidator
}

var CacheModule = fx.Module("cache",
	fx.Provide(NewResourceCache),
)

func NewResourceCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) ResourceCacheResult {
	if !cfg.Redis.Enabled() {
		logger.Info("resource list cache disabled")
		return ResourceCacheResult{Lister: cache.NopResourceCache{}, Invalidator: cache.NopResourceCache{}}
	}

	client := cache.NewRedisClient(cfg.Redis)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				// reads fall back to the store while redis is unreachable
				logger.Warn("redis ping failed", "addr", cfg.Redis.Addr, "error", err)
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	rc := cache.NewResourceCache(client, cfg.Redis.ResourceListTTL)
	return ResourceCacheResult{Lister: rc, Invalidator: rc}
}

var EventsModule = fx.Module("events",
	fx.Provide(NewEventPublisher),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if !cfg.Kafka.Enabled() {
		logger.Info("booking event publishing disabled")
		return events.NopPublisher{}
	}

	publisher := events.NewKafkaPublisher(cfg.Kafka)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}
