package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nsweep",
	Short: "nsweep launches hyperparameter grid sweeps",
	Long: `nsweep expands a sweep file into the Cartesian product of its axes and
launches one training run per combination, pinned to a GPU, sequentially
per device.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("file", "f", "sweep.yaml", "Sweep definition file")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable terminal styling of reports")
}
