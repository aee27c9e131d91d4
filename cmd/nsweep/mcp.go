package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxfield/nsweep"
	"github.com/voxfield/nsweep/internal/config"
	"github.com/voxfield/nsweep/internal/logging"
	"github.com/voxfield/nsweep/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts nsweep as an MCP server over stdio, exposing the configured sweep
to agents as read-only tools: sweep_plan lists the invocations, sweep_status
reports recorded progress.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, _ := cmd.Flags().GetString("file")
		if !cmd.Flags().Changed("file") && len(args) > 0 {
			path = args[0]
		}

		sweep, err := config.Load(path)
		if err != nil {
			log.Fatalf("Error loading sweep: %v", err)
		}

		engine, err := nsweep.New(sweep)
		if err != nil {
			log.Fatalf("Error initializing engine: %v", err)
		}

		// Ensure logs don't corrupt JSON-RPC on Stdout.
		log.SetOutput(os.Stderr)
		logger := logging.New(slog.LevelInfo)
		slog.SetDefault(logger)

		srv := mcp.NewServer(engine, nsweep.Version)
		slog.Info("Starting nsweep MCP Server (Stdio)...")
		if err := srv.ServeStdio(); err != nil {
			slog.Error("MCP Server execution failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
