package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/registry"
	"github.com/vovakirdan/mini-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows every game in the arcade with its best recorded score.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// Scores are optional here; a missing database just hides the column values.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	best := func(string) int { return 0 }
	if store != nil {
		best = func(id string) int {
			high, _ := store.HighScore(id)
			return high
		}
	}
	printGameList(os.Stdout, games, best)

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game, or 'arcade web' to play in a browser.")
}

// printGameList writes an aligned ID/Title/Best table. Games without a
// positive best score show "-".
func printGameList(w io.Writer, games []registry.GameInfo, best func(id string) int) {
	idW, titleW := len("ID"), len("Title")
	for _, g := range games {
		idW = max(idW, len(g.ID))
		titleW = max(titleW, len(g.Title))
	}

	fmt.Fprintln(w, "Available games:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-*s  %-*s  %s\n", idW, "ID", titleW, "Title", "Best")
	fmt.Fprintf(w, "  %-*s  %-*s  %s\n", idW, "--", titleW, "-----", "----")

	for _, g := range games {
		score := "-"
		if high := best(g.ID); high > 0 {
			score = fmt.Sprint(high)
		}
		fmt.Fprintf(w, "  %-*s  %-*s  %s\n", idW, g.ID, titleW, g.Title, score)
	}
}
