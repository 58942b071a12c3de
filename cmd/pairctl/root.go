package main

import (
	"time"

	"github.com/spf13/cobra"
)

const (
	defaultConfigPath = "pairctl.toml"
	defaultLinger     = 500 * time.Millisecond
	drainTimeout      = 2 * time.Second
)

func newRootCommand() *cobra.Command {
	var configFlag string

	rootCmd := &cobra.Command{
		Use:           "pairctl",
		Short:         "Drive a subordinate process over its stdin/stdout",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", defaultConfigPath, "Configuration file path")

	rootCmd.AddCommand(newRunCommand(&configFlag))

	return rootCmd
}
