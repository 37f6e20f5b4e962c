package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/canardconfit/gns3-inventory/internal/config"
	"github.com/canardconfit/gns3-inventory/internal/exit"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the cached node list",
	}

	cmd.AddCommand(newCacheFlushCmd())

	return cmd
}

func newCacheFlushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Drop the cache entry for the current inventory source",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return exit.New(exit.CodeUsage, err)
			}

			ctx := context.Background()
			store, closeFn, err := newCacheBackend(ctx, cfg)
			if err != nil {
				return exit.New(exit.CodeAPI, err)
			}
			defer closeFn()

			if err := store.Delete(ctx, cfg.CacheKey); err != nil {
				return exit.New(exit.CodeAPI, err)
			}

			fmt.Fprintln(os.Stderr, "cache entry flushed")
			return nil
		},
	}
}
