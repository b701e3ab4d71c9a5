package config_fx

import (
	"go.uber.org/fx"

	"playgroundr/internal/config"
)

var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(
		func(cfg *config.Config) config.PlacesConfig { return cfg.Places },
		func(cfg *config.Config) config.ScoringConfig { return cfg.Scoring },
		func(cfg *config.Config) config.CacheConfig { return cfg.Cache },
		func(cfg *config.Config) config.DatabaseConfig { return cfg.Database },
		func(cfg *config.Config) config.ServerConfig { return cfg.Server },
	),
)
