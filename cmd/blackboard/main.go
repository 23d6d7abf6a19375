// Package main is the entry point for the blackboard CLI.
//
// The CLI drives the process-wide blackboard the same way an application
// does: a control loop publishes parameters while a render loop reads them
// every frame.
//
// Usage:
//
//	blackboard demo -p preset.yaml          # Simulated control surface + render loop
//	blackboard stress --readers 8           # Concurrency check for torn reads
//	blackboard inspect -p preset.yaml       # Show what a preset publishes
//	blackboard version                      # Show version info
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "blackboard",
	Short: "Live-parameter blackboard tooling",
	Long: `blackboard exercises the shared live-parameter store used between a
control surface and a real-time renderer.

Quick start:
  1. Run: blackboard demo
  2. Try a preset: blackboard demo -p preset.yaml
  3. Check concurrency: blackboard stress --duration 5s`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("blackboard %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	rootCmd.AddCommand(versionCmd)
}

// newLogger creates a JSON logger for CLI use at the level set by --log-level.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelName, _ := cmd.Flags().GetString("log-level")

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(levelName))); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", levelName, err)
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})), nil
}
