package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lightcycle",
		Short: "Headless lightcycle arena simulation",
		Long: `lightcycle runs the lightcycle movement and collision core without a
renderer or network layer.

Cycles, arena extents and scripted turn inputs come from a YAML config.
Runs can be recorded to a replay file for later inspection.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("config", "", "Arena config file (YAML); defaults are used when empty")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newRunCmd(),
		newReplayCmd(),
	)
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lightcycle version %s\n", version)
		},
	}
}
