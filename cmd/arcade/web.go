package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/platform/web"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

var (
	flagWebAddr string
	flagCols    int
	flagRows    int
)

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the arcade HTTP server",
	Long: `Start an HTTP server with a landing page and browser play.

Each browser tab gets its own game session over a WebSocket. Add
?player=<name> to the play URL to record scores under a name.

Endpoints:
  /                    - Landing page
  /play/<game>         - Play a game
  /api/scores/<game>   - Top scores as JSON

Examples:
  arcade web
  arcade web --addr :9000
  arcade web --db ./scores.db --fps 30`,
	Run: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", ":8080", "HTTP server address (host:port)")
	webCmd.Flags().IntVar(&flagCols, "cols", 80, "Columns of the character grid sent to browsers")
	webCmd.Flags().IntVar(&flagRows, "rows", 24, "Rows of the character grid sent to browsers")
}

func runWeb(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	server := web.NewServer(web.Config{
		Address:  flagWebAddr,
		TickRate: flagFPS,
		ScreenW:  flagCols,
		ScreenH:  flagRows,
	}, store)

	fmt.Printf("Starting arcade web server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
