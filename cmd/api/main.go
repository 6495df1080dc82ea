package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/planora/bidboard/internal/adapter/handler"
	"github.com/planora/bidboard/internal/adapter/locker/redis"
	"github.com/planora/bidboard/internal/adapter/notifier"
	"github.com/planora/bidboard/internal/adapter/repository/postgres"
	"github.com/planora/bidboard/internal/core/services"
	"github.com/planora/bidboard/internal/platform/config"
	"github.com/planora/bidboard/internal/platform/database"
	"github.com/planora/bidboard/internal/router"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(".")
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot load config")
	}

	runDBMigration(cfg.MigrationURL, cfg.PostgresConn, logger)

	db, err := database.NewPostgresDB(cfg.PostgresConn, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	redisClient := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect to redis")
	}
	logger.Info().Str("addr", cfg.RedisAddr).Msg("redis connected")

	bidRepo := postgres.NewBidRepository(db)
	scopeLocker := redis.NewScopeLocker(redisClient, time.Duration(cfg.LockTTLMillis)*time.Millisecond)
	bidNotifier := notifier.NewLogNotifier(logger)

	bidService := services.NewBidService(bidRepo, scopeLocker, bidNotifier, redisClient, logger)
	bidQuery := services.NewBidQuery(bidRepo, redisClient, time.Duration(cfg.CacheTTLSec)*time.Second, logger)

	bidHandler := handler.NewBidHandler(bidService, bidQuery)

	server := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      router.InitRoutes(bidHandler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", cfg.ServerAddress).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exiting")
}

func runDBMigration(migrationURL, dbSource string, logger zerolog.Logger) {
	migration, err := migrate.New(migrationURL, dbSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create migrate instance")
	}

	if err = migration.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatal().Err(err).Msg("failed to run migrate up")
	}
	logger.Info().Msg("db migrated")
}
