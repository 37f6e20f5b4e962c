package cmd

import (
	"github.com/spf13/cobra"

	"github.com/canardconfit/gns3-inventory/internal/log"
)

var (
	cfgFile string
	verbose bool
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gns3-inventory",
		Short:         "Build an Ansible inventory from a GNS3 controller",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Init(verbose)
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "gns3.yml", "path to the YAML inventory source")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newHostCmd())
	cmd.AddCommand(newNodesCmd())
	cmd.AddCommand(newProjectsCmd())
	cmd.AddCommand(newCacheCmd())

	return cmd
}
