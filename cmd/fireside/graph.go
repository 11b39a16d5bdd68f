package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tiberius-s/fireside"
	"github.com/tiberius-s/fireside/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph [deck]",
	Short: "Export the deck graph visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the deck's traversal structure.`,
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

		fmt.Print(graph.GenerateMermaid(sess.Graph(), nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
