package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tiberius-s/fireside"
	"github.com/tiberius-s/fireside/internal/logging"
	"github.com/tiberius-s/fireside/pkg/adapters/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [deck]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the deck as an MCP server over stdio.
This allows AI agents (like Claude Desktop) to navigate and inspect the deck as tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		deckPath, _ := cmd.Flags().GetString("deck")
		if !cmd.Flags().Changed("deck") && len(args) > 0 {
			deckPath = args[0]
		}

		// Ensure logs don't corrupt JSON-RPC on Stdout.
		log.SetOutput(os.Stderr)
		logger := logging.New(slog.LevelDebug)

		sess, err := fireside.LoadFile(deckPath, fireside.WithLogger(logger))
		if err != nil {
			logger.Error("failed to load deck", "err", err)
			os.Exit(1)
		}

		srv := mcp.NewServer(sess, logger)
		logger.Info("starting MCP server (stdio)")
		if err := srv.ServeStdio(); err != nil {
			logger.Error("MCP server execution failed", "err", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
