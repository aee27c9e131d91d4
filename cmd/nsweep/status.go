package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxfield/nsweep/internal/cli"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the recorded progress of a sweep",
	Long: `Loads the persisted ledger of a sweep and prints the outcome counts and
failed runs. The sweep is identified by --name, or by the name declared in
the sweep file.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.StatusOptions{
			Store: storeOptions(cmd),
		}
		opts.File, _ = cmd.Flags().GetString("file")
		opts.Name, _ = cmd.Flags().GetString("name")
		opts.Plain, _ = cmd.Flags().GetBool("plain")

		if err := cli.ExecuteStatus(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().String("name", "", "Sweep name (overrides the sweep file)")
	addStoreFlags(statusCmd)
}
