package cli

import (
	"errors"
	"fmt"

	"journal_backend/internal/platform/cache"
	infraredis "journal_backend/internal/platform/redis"

	"github.com/spf13/cobra"
)

// NewCacheCommand creates the cache command group.
func NewCacheCommand(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the Redis tag summary cache",
	}

	var namespace string
	flush := &cobra.Command{
		Use:   "flush",
		Short: "Drop every cached tag summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := infraredis.LoadConfigFromEnv()
			if !cfg.Enabled() {
				return errors.New("redis is not configured (set REDIS_URL or REDIS_HOST)")
			}
			rdb, err := deps.OpenRedis(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer rdb.Close()

			removed, err := cache.NewCachingTagRepository(rdb, 0, nil, namespace).InvalidateAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d cached tag summaries\n", removed)
			return nil
		},
	}
	flush.Flags().StringVar(&namespace, "namespace", "tags", "cache key namespace")

	cmd.AddCommand(flush)
	return cmd
}
