package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fireside",
	Short: "Fireside presents branching lesson decks in the terminal",
	Long:  `Fireside loads a YAML deck of nodes and presents it as a directed graph: linear where you want it linear, branching where the audience decides.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("deck", "deck.yaml", "Path to the deck file")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level (debug|info|warn|error)")
}
