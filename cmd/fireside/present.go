package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tiberius-s/fireside/internal/cli"
)

// presentCmd represents the present command
var presentCmd = &cobra.Command{
	Use:   "present [deck]",
	Short: "Present a deck interactively",
	Long:  `Opens the deck in the terminal and drives it from single keystrokes: space advances, branch keys choose, b goes back.`,
	Run: func(cmd *cobra.Command, args []string) {
		deckPath, _ := cmd.Flags().GetString("deck")
		if !cmd.Flags().Changed("deck") && len(args) > 0 {
			deckPath = args[0]
		}

		logLevel, _ := cmd.Flags().GetString("log-level")
		noBanner, _ := cmd.Flags().GetBool("no-banner")
		historyLimit, _ := cmd.Flags().GetInt("history-limit")

		err := cli.RunPresent(cli.PresentOptions{
			DeckPath:     deckPath,
			LogLevel:     logLevel,
			NoBanner:     noBanner,
			HistoryLimit: historyLimit,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(presentCmd)
	presentCmd.Flags().Bool("no-banner", false, "Skip the startup banner")
	presentCmd.Flags().Int("history-limit", 0, "Override the visit history bound")
}
