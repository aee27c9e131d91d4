package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxfield/nsweep/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch every combination of the sweep",
	Long: `Expands the sweep file into its grid and launches the trainer once per
combination, blocking on each run. Progress is persisted, so an interrupted
sweep can be continued with --resume.`,
	Run: func(cmd *cobra.Command, args []string) {
		opts := cli.RunOptions{
			Store: storeOptions(cmd),
		}
		opts.File, _ = cmd.Flags().GetString("file")
		if !cmd.Flags().Changed("file") && len(args) > 0 {
			opts.File = args[0]
		}
		opts.Devices, _ = cmd.Flags().GetIntSlice("device")
		opts.Resume, _ = cmd.Flags().GetBool("resume")
		opts.DryRun, _ = cmd.Flags().GetBool("dry-run")
		opts.Listen, _ = cmd.Flags().GetString("listen")
		opts.LogLevel, _ = cmd.Flags().GetString("log-level")
		opts.Plain, _ = cmd.Flags().GetBool("plain")

		if err := cli.Execute(opts); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntSlice("device", nil, "GPU device id(s) to pin, overrides the sweep file")
	runCmd.Flags().Bool("resume", false, "Skip combinations already recorded as succeeded")
	runCmd.Flags().Bool("dry-run", false, "Print the plan instead of launching")
	runCmd.Flags().String("listen", "", "Serve /status and /metrics on this address (e.g. :8080)")
	addStoreFlags(runCmd)
}

// storeOptions collects the shared ledger flags.
func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	var opts cli.StoreOptions
	opts.Kind, _ = cmd.Flags().GetString("store")
	opts.StateDir, _ = cmd.Flags().GetString("state-dir")
	opts.Addr, _ = cmd.Flags().GetString("redis-addr")
	opts.Password, _ = cmd.Flags().GetString("redis-password")
	opts.DB, _ = cmd.Flags().GetInt("redis-db")
	opts.Lock, _ = cmd.Flags().GetBool("lock")
	return opts
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("store", "file", "Ledger backend: 'file' or 'redis'")
	cmd.Flags().String("state-dir", "", "Directory for the file ledger (default .nsweep/sweeps)")
	cmd.Flags().String("redis-addr", "localhost:6379", "Redis address (only for --store redis)")
	cmd.Flags().String("redis-password", "", "Redis password")
	cmd.Flags().Int("redis-db", 0, "Redis database number")
	cmd.Flags().Bool("lock", false, "Guard the sweep with a distributed lock (requires redis)")
}
