package cli

import (
	"os"

	"github.com/spf13/cobra"

	"weather-history/config"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:          "weather-history",
		Short:        "Weather lookups with a searchable history",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), configPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "Path to the YAML config file")

	cmd.AddCommand(serveCmd(&configPath))
	cmd.AddCommand(lookupCmd(&configPath))
	cmd.AddCommand(exportCmd(&configPath))
	return cmd
}
