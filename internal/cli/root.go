// Package cli implements the QuestForge command-line interface using
// Cobra. Each subcommand drives the reward engine through an in-process
// daemon, so the CLI works with or without a running server.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "questforge",
	Short: "QuestForge — Turn your habits into an RPG",
	Long: `QuestForge is a habit tracker that plays like an RPG.
Completing real-world habits earns XP, gold and stats for your hero;
skipping them costs health. Streaks, classes and achievements keep the
grind honest.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
