package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"journal_backend/internal/app/di"
	"journal_backend/internal/app/router"
	"journal_backend/internal/config"
	infradb "journal_backend/internal/platform/db"
	"journal_backend/internal/platform/logging"
	infraredis "journal_backend/internal/platform/redis"
)

func main() {
	// .envを読み込む
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(os.Stdout, cfg.Env, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	// db
	db, err := infradb.OpenDB(cfg.DB, cfg.DBConnectTimeout)
	if err != nil {
		return err
	}
	defer func() {
		if err := infradb.Close(db); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	if cfg.RunMigrations {
		if err := infradb.Migrate(ctx, db, cfg.DB.Driver); err != nil {
			return err
		}
		logger.Info("migrations applied", "driver", cfg.DB.Driver)
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			logger.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					logger.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// ルータ生成
	app := di.NewApp(cfg, db, rdb)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(cfg, app, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Journal API server running", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
