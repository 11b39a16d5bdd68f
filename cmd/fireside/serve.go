package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/tiberius-s/fireside/internal/adapters/http"
	"github.com/tiberius-s/fireside/internal/logging"
	"github.com/tiberius-s/fireside/pkg/adapters/memory"
	"github.com/tiberius-s/fireside/pkg/adapters/redis"
	"github.com/tiberius-s/fireside/pkg/persistence/middleware"
	"github.com/tiberius-s/fireside/pkg/ports"
)

var serveCmd = &cobra.Command{
	Use:   "serve [deck]",
	Short: "Start the HTTP session server",
	Long: `Serves the deck over a JSON API. Each client session gets its own
traversal state and edit history; bookmarks let sessions stop and resume.`,
	Run: func(cmd *cobra.Command, args []string) {
		deckPath, _ := cmd.Flags().GetString("deck")
		if !cmd.Flags().Changed("deck") && len(args) > 0 {
			deckPath = args[0]
		}

		logLevel, _ := cmd.Flags().GetString("log-level")
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")

		logger := logging.New(logging.ParseLevel(logLevel))

		deck, err := os.ReadFile(deckPath)
		if err != nil {
			fmt.Printf("Error reading deck: %v\n", err)
			os.Exit(1)
		}

		var bookmarks ports.BookmarkStore
		if redisAddr != "" {
			store := redis.New(redisAddr, "", 0)
			defer store.Close()
			bookmarks = store
		} else {
			bookmarks = memory.NewStore()
		}
		bookmarks = middleware.Chain(bookmarks, middleware.NewLoggingMiddleware(logger))

		server := httpAdapter.NewServer(deck, logger, bookmarks)
		srv := &http.Server{
			Addr:    ":" + port,
			Handler: server.Handler(),
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Fireside Server on %s\n", srv.Addr)
			fmt.Printf("Serving deck: %s\n", deckPath)
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Fireside Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for bookmark persistence (host:port)")
}
