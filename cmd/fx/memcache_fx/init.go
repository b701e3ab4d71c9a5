package memcache_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"playgroundr/internal/config"
	"playgroundr/internal/infra"
	"playgroundr/pkg/memcache"
)

var Module = fx.Provide(providePlaceCache)

func providePlaceCache(lc fx.Lifecycle, cfg config.CacheConfig, logger *zap.Logger) (memcache.PlaceCache, error) {
	switch cfg.Driver {
	case "redis":
		client, err := infra.NewRedis(context.Background(), cfg.Redis)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error { return client.Close() },
		})
		logger.Info("using redis place cache", zap.String("address", cfg.Redis.Address))
		return memcache.NewRedisPlaceCache(client, logger.Named("cache")), nil
	case "none":
		return memcache.NoopPlaceCache{}, nil
	default:
		return memcache.NewMemoryPlaceCache(), nil
	}
}
