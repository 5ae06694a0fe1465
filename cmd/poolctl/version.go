package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("poolctl %s\n", rootCmd.Version)
		if bi, ok := debug.ReadBuildInfo(); ok {
			fmt.Printf("  module: %s\n", bi.Main.Path)
			fmt.Printf("  go: %s\n", bi.GoVersion)
			for _, s := range bi.Settings {
				if s.Key == "vcs.revision" {
					fmt.Printf("  commit: %s\n", s.Value)
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
