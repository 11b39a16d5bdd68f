package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tiberius-s/fireside"
	"github.com/tiberius-s/fireside/internal/cli"
	"github.com/tiberius-s/fireside/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [deck]",
	Short: "Check the deck for consistency",
	Long:  `Parses the deck and reports duplicate ids, dangling traversal targets, empty branch points and unreachable nodes.`,
	Run: func(cmd *cobra.Command, args []string) {
		deckPath, _ := cmd.Flags().GetString("deck")
		if !cmd.Flags().Changed("deck") && len(args) > 0 {
			deckPath = args[0]
		}

		sess, err := fireside.LoadFile(deckPath)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		diags := sess.Validate()
		cli.PrintDiagnostics(os.Stdout, diags)
		if validate.Errors(diags) {
			os.Exit(1)
		}
		if len(diags) == 0 {
			fmt.Println("Deck is valid! ✅")
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
