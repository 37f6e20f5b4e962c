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

func newProjectsCmd() *cobra.Command {
	var outputMode string

	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List projects visible on the controller",
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

			projects, err := client.ListProjects(context.Background())
			if err != nil {
				return exit.New(exit.CodeAPI, err)
			}

			if err := output.RenderProjects(os.Stdout, projects, mode); err != nil {
				return exit.New(exit.CodeUsage, err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&outputMode, "output", "table", "output format: table|json|yaml")

	return cmd
}
