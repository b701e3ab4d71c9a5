package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"playgroundr/internal/config"
	"playgroundr/internal/infra"
	"playgroundr/internal/repositories"
)

var Module = fx.Provide(provideParkScoreRepository)

// provideParkScoreRepository connects to Postgres when the database is
// enabled and falls back to a repository that stores nothing.
func provideParkScoreRepository(lc fx.Lifecycle, cfg config.DatabaseConfig, logger *zap.Logger) (repositories.ParkScoreRepository, error) {
	if !cfg.Enabled {
		logger.Info("database disabled, park snapshots will not be stored")
		return repositories.NoopParkScoreRepository{}, nil
	}

	db, err := infra.InitPostgresql(cfg.Postgres, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.ClosePostgresql(db, logger)
			return nil
		},
	})
	return repositories.NewParkScoreRepository(db), nil
}
