package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/canardconfit/gns3-inventory/internal/config"
	"github.com/canardconfit/gns3-inventory/internal/exit"
	"github.com/canardconfit/gns3-inventory/internal/gns3"
	"github.com/canardconfit/gns3-inventory/internal/output"
)

func newNodesCmd() *cobra.Command {
	var outputMode string

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List raw nodes of the configured project",
		Long:  "Queries the controller directly, bypassing the cache, to show the project's node records as the API reports them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := output.ParseMode(outputMode)
			if err != nil {
				return exit.New(exit.CodeUsage, err)
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return exit.New(exit.CodeUsage, err)
			}

			client, err := gns3.NewClient(cfg.URL, cfg.ValidateCerts)
			if err != nil {
				return exit.New(exit.CodeUsage, err)
			}

			ctx := context.Background()
			projects, err := client.ListProjects(ctx)
			if err != nil {
				return exit.New(exit.CodeAPI, err)
			}

			pid, err := gns3.ResolveProject(projects, cfg.ProjectID, cfg.ProjectName)
			if err != nil {
				return exit.New(exit.CodeAPI, err)
			}

			nodes, err := client.ListNodes(ctx, pid)
			if err != nil {
				return exit.New(exit.CodeAPI, err)
			}

			if err := output.RenderNodes(os.Stdout, nodes, mode); err != nil {
				return exit.New(exit.CodeUsage, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputMode, "output", "table", "output format: table|json|yaml")

	return cmd
}
