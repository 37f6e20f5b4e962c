package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/canardconfit/gns3-inventory/internal/config"
	"github.com/canardconfit/gns3-inventory/internal/exit"
	"github.com/canardconfit/gns3-inventory/internal/output"
)

func newListCmd() *cobra.Command {
	var outputMode string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Discover project nodes and emit the inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := output.ParseMode(outputMode)
			if err != nil {
				return exit.New(exit.CodeUsage, err)
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return exit.New(exit.CodeUsage, err)
			}

			ctx := context.Background()
			builder, closeFn, err := newBuilder(ctx, cfg)
			if err != nil {
				return exit.New(exit.CodeAPI, err)
			}
			defer closeFn()

			inv, err := builder.Build(ctx)
			if err != nil {
				return exit.New(exit.CodeAPI, err)
			}

			if err := output.RenderInventory(os.Stdout, inv, mode); err != nil {
				return exit.New(exit.CodeUsage, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputMode, "output", "json", "output format: json|yaml|table")

	return cmd
}
