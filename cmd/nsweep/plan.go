package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxfield/nsweep/internal/cli"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Print the ordered invocation list without launching",
	Long: `Expands the sweep file into its grid and prints one row per combination:
the experiment name and the flag value each axis contributes.`,
	Run: func(cmd *cobra.Command, args []string) {
		var opts cli.PlanOptions
		opts.File, _ = cmd.Flags().GetString("file")
		if !cmd.Flags().Changed("file") && len(args) > 0 {
			opts.File = args[0]
		}
		opts.Devices, _ = cmd.Flags().GetIntSlice("device")
		opts.Plain, _ = cmd.Flags().GetBool("plain")

		if err := cli.ExecutePlan(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().IntSlice("device", nil, "GPU device id(s) to pin, overrides the sweep file")
}
