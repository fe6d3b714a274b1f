package main // Entry point package

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iliyamo/fyyur-booking/internal/config"
	"github.com/iliyamo/fyyur-booking/internal/database"
	"github.com/iliyamo/fyyur-booking/internal/handler"
	"github.com/iliyamo/fyyur-booking/internal/logging"
	"github.com/iliyamo/fyyur-booking/internal/queue"
	"github.com/iliyamo/fyyur-booking/internal/repository"
	"github.com/iliyamo/fyyur-booking/internal/router"
	"github.com/iliyamo/fyyur-booking/internal/service"
)

func main() {
	config.LoadDotEnv()
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("load config")
	}
	if err := logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile}); err != nil {
		logging.Warn().Err(err).Str("file", cfg.LogFile).Msg("log file unavailable, logging to stderr only")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(database.Options{
		Driver: cfg.DBDriver,
		User:   cfg.DBUser,
		Pass:   cfg.DBPass,
		Host:   cfg.DBHost,
		Port:   cfg.DBPort,
		Name:   cfg.DBName,
		Path:   cfg.DBPath,
	})
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.DBDriver).Msg("open database")
	}
	defer db.Close()
	if err := database.Migrate(ctx, db, cfg.DBDriver); err != nil {
		logging.Fatal().Err(err).Msg("migrate database")
	}

	rdb, err := config.NewRedisClient(ctx, config.LoadRedisConfig())
	if err != nil {
		logging.Warn().Err(err).Msg("redis unavailable, cache and rate limiting disabled")
	}
	if rdb != nil {
		defer rdb.Close()
	}

	dir := service.NewDirectory(
		repository.NewVenueRepo(db),
		repository.NewArtistRepo(db),
		repository.NewShowRepo(db),
		nil,
	)
	if cfg.Events.Enabled {
		dir.Events = queue.NewPublisher(cfg.Events.URL, cfg.Events.Queue)
		logging.Info().Str("queue", cfg.Events.Queue).Msg("publishing directory events")
	}
	if cfg.Events.ConsumerEnabled {
		go func() {
			if err := queue.StartActivityConsumer(ctx, cfg.Events.URL, cfg.Events.Queue, cfg.Events.ActivityLog); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error().Err(err).Msg("activity consumer stopped")
			}
		}()
	}

	e, err := router.New(router.Deps{
		Handler:   handler.NewHandler(dir, handler.NewFlashStore(cfg.FlashSecret)),
		DB:        db,
		Redis:     rdb,
		Cache:     config.LoadCacheConfig(),
		RateLimit: config.LoadRateLimitConfig(),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("build router")
	}

	addr := ":" + cfg.Port
	go func() {
		logging.Info().Str("addr", addr).Str("env", cfg.Env).Str("db_driver", cfg.DBDriver).Msg("listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}
}
