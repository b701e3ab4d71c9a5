package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"playgroundr/cmd/fx/config_fx"
	"playgroundr/cmd/fx/controllers_fx"
	"playgroundr/cmd/fx/db_fx"
	"playgroundr/cmd/fx/logger_fx"
	"playgroundr/cmd/fx/memcache_fx"
	"playgroundr/cmd/fx/parks_fx"
	"playgroundr/cmd/fx/places_fx"
	"playgroundr/cmd/fx/scoring_fx"
	"playgroundr/internal/api/controllers"
	"playgroundr/internal/config"
	"playgroundr/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		places_fx.Module,
		scoring_fx.Module,
		parks_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.ServerConfig, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.Address(),
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("starting HTTP server", zap.String("address", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(cfg config.ServerConfig, parksController *controllers.ParksController, logger *zap.Logger) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(logger.Named("http")))
	r.Use(middleware.CORSMiddleware())

	controllers.RegisterRoutes(r, parksController)

	return r
}
