package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/canardconfit/gns3-inventory/internal/config"
	"github.com/canardconfit/gns3-inventory/internal/exit"
	"github.com/canardconfit/gns3-inventory/internal/output"
)

func newHostCmd() *cobra.Command {
	var outputMode string

	cmd := &cobra.Command{
		Use:   "host <name>",
		Short: "Emit the variables of a single host",
		Args:  cobra.ExactArgs(1),
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

			// Unknown hosts yield an empty map, per the external
			// inventory script contract.
			if err := output.RenderHostVars(os.Stdout, inv.HostVars(args[0]), mode); err != nil {
				return exit.New(exit.CodeUsage, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputMode, "output", "json", "output format: json|yaml")

	return cmd
}
