// Package cmd implements the TrueScan command-line interface.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Atharva080324/TrueScan/cmd/generate"
	"github.com/Atharva080324/TrueScan/cmd/httpd"
	cmdscheduler "github.com/Atharva080324/TrueScan/cmd/scheduler"
)

// version is overridden at build time via -ldflags.
var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "truescan",
	Short: "AI news broadcast generator",
	Long: `TrueScan turns a handful of topics into a spoken news broadcast.
It scrapes Google News, analyzes Reddit discussion through a Bright Data
MCP server, writes a broadcast script with Gemini, and synthesizes audio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String(
		"config",
		"config.yml",
		"path to the configuration file",
	)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("truescan version %s\n", version)
		},
	})

	rootCmd.AddCommand(httpd.Command())
	rootCmd.AddCommand(generate.Command())
	rootCmd.AddCommand(cmdscheduler.Command())
}
