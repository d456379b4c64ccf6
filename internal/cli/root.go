// Package cli は運用コマンド journalctl を提供します。
package cli

import (
	"context"
	"net/http"
	"time"

	"journal_backend/internal/config"
	"journal_backend/internal/platform/db"
	infrahttp "journal_backend/internal/platform/http"
	"journal_backend/internal/platform/logging"
	infraredis "journal_backend/internal/platform/redis"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// Deps は各コマンドが外部リソースを開くための関数です。テストで差し替えます。
type Deps struct {
	OpenDB     func(cfg db.Config) (*gorm.DB, error)
	OpenRedis  func(ctx context.Context, cfg infraredis.Config) (*redis.Client, error)
	HTTPClient *http.Client
}

// DefaultDeps returns the production dependencies.
func DefaultDeps() Deps {
	return Deps{
		OpenDB: func(cfg db.Config) (*gorm.DB, error) {
			return db.OpenDB(cfg, 30*time.Second)
		},
		OpenRedis:  infraredis.NewRedisClient,
		HTTPClient: infrahttp.NewHTTPClient(5 * time.Second),
	}
}

// RootOptions holds global flags for all commands.
type RootOptions struct {
	EnvFile  string
	LogLevel string
}

// NewRootCommand creates the root command for journalctl.
func NewRootCommand(deps Deps) *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "journalctl",
		Short: "Operational tasks for the journal API",
		Long:  "Run schema migrations, flush cached tag summaries and probe a running journal API.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(cmd.ErrOrStderr(), "", opts.LogLevel)
			if opts.EnvFile != "" {
				config.LoadDotEnv(opts.EnvFile)
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env-file", ".env", "dotenv file to load before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewMigrateCommand(deps))
	cmd.AddCommand(NewCacheCommand(deps))
	cmd.AddCommand(NewPingCommand(deps))

	return cmd
}
