package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/voxfield/nsweep"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of nsweep",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("nsweep version %s\n", strings.TrimSpace(nsweep.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
