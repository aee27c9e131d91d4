package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxfield/nsweep/internal/config"
	"github.com/voxfield/nsweep/pkg/grid"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a sweep file for consistency",
	Long:  `Parses the sweep file and reports missing fields, unknown keys, empty axes or duplicate axis names.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("file")
		if !cmd.Flags().Changed("file") && len(args) > 0 {
			path = args[0]
		}

		sweep, err := config.Load(path)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Sweep %q is valid: %d axes, %d combinations.\n",
			sweep.Name, len(sweep.Axes), grid.Size(sweep.Axes))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
