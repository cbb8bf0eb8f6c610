// Package main provides the entry point for the aoi CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for aoi.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aoi",
		Short: "Defect analysis for quad-panel optical inspection data",
		Long: `aoi analyzes automated optical inspection defect data for panels built
as four sub-panels in a 2x2 arrangement.

It classifies each defect into its quadrant, maps unit indices onto the
physical panel layout, ranks defect types per quadrant, and compares
quadrants against each other.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (YAML)")

	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewAnalyzeCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
