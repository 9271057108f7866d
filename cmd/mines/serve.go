package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/vancomm/minesweeper/internal/app"
	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the game server",
		Long: `Start the HTTP game server.

A database (DATABASE_URL or POSTGRES_*), Redis (REDIS_ADDR) and player
tokens (JWT_PUBLIC_KEY or JWT_PUBLIC_KEY_FILE) are all optional.`,
		RunE: runServe,
	})
}

func connectRedis(ctx context.Context, logger *slog.Logger) (*redis.Client, error) {
	opts, ok, err := config.NewRedisOptions()
	if err != nil || !ok {
		return nil, err
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, rate limiting disabled", slog.Any("error", err))
		client.Close()
		return nil, nil
	}
	return client, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	if err := setupEngineLogging(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := app.Options{}

	db, err := database.ConnectAndMigrate(ctx, migrations)
	switch {
	case errors.Is(err, config.ErrNoDatabase):
		logger.Info("no database configured, game records disabled")
	case err != nil:
		return fmt.Errorf("unable to connect to db: %w", err)
	default:
		defer db.Close()
		opts.DB = db
	}

	client, err := connectRedis(ctx, logger)
	if err != nil {
		return err
	}
	if client != nil {
		defer client.Close()
		opts.Redis = client
	}

	jwt, err := config.NewJWT()
	switch {
	case errors.Is(err, config.ErrNoJWTKey):
		logger.Info("no JWT key configured, all players are anonymous")
	case err != nil:
		return fmt.Errorf("failed to read jwt config: %w", err)
	default:
		opts.Cookies = config.NewCookies(jwt)
	}

	if opts.RateLimit, err = config.NewRateLimit(); err != nil {
		return err
	}
	if opts.TTL, err = config.SessionTTL(); err != nil {
		return err
	}
	if opts.MaxCells, err = config.MaxCells(); err != nil {
		return err
	}

	logger.Info("starting up", slog.Bool("development", config.Development()))
	return app.New(logger, opts).Start(ctx)
}
