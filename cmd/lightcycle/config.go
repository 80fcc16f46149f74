package main

import (
	"github.com/spf13/cobra"

	"github.com/zeusync/lightcycle/internal/core/arena"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective arena config",
		Long: `Print the arena config as YAML.

Without --config the built-in defaults are printed, which makes a good
starting point for a config file:

  lightcycle config > arena.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return arena.WriteYAML(cmd.OutOrStdout(), cfg)
		},
	}
}

// loadConfig reads --config, or returns the defaults when it is unset.
func loadConfig(cmd *cobra.Command) (arena.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return arena.DefaultConfig(), nil
	}
	return arena.LoadFile(path)
}
