package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	service "school-dashboard/app/service/dashboard"
	"school-dashboard/app/repository/source"
	"school-dashboard/config"
	"school-dashboard/database"
	FiberApp "school-dashboard/fiber"
	"school-dashboard/logging"
	"school-dashboard/route"
)

func main() {
	// 1. Load .env and config
	config.LoadEnv()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if err := logging.Init(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Record source
	src, closeSource := connectSource(ctx, cfg)
	defer closeSource()

	// 3. Sessions
	store := service.NewStore(cfg.SessionTTL)
	go store.Run(ctx, time.Minute)
	dashboardService := service.NewDashboardService(src, store, cfg.FetchTimeout)

	// 4. Setup Fiber App and routes
	app := FiberApp.SetupFiber()
	route.SetupRoutes(app, dashboardService, cfg.JWTSecret)

	// 5. Start server
	go func() {
		log.Info().Str("port", cfg.Port).Str("source", cfg.SourceDriver).Msg("server running")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	}()

	// 6. Graceful shutdown
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
}

func connectSource(ctx context.Context, cfg config.Config) (source.RecordSource, func()) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch cfg.SourceDriver {
	case config.DriverPostgres:
		db, err := database.ConnectPostgres(connectCtx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("postgres unavailable")
		}
		return source.NewPostgresSource(db), func() { db.Close() }
	case config.DriverMongo:
		db, err := database.ConnectMongo(connectCtx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Fatal().Err(err).Msg("mongo unavailable")
		}
		return source.NewMongoSource(db), func() { _ = db.Client().Disconnect(context.Background()) }
	}
	return source.NewHTTPSource(cfg.APIBaseURL, cfg.FetchTimeout), func() {}
}
