package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mini-arcade/internal/config"
	"github.com/vovakirdan/mini-arcade/internal/registry"
)

var (
	flagWriteConfig bool
	flagConfigOut   string
)

var configCmd = &cobra.Command{
	Use:   "config <game>",
	Short: "Print or install a game's default config",
	Long: `Print the built-in YAML config for a game, or write it to disk so it
can be edited.

Without --out, --write installs to ~/.arcade/configs/<game>.yaml, which
'arcade play' picks up automatically. Existing files are never overwritten.

Examples:
  arcade config blocks
  arcade config snake --write
  arcade config blocks --write --out ./fast-blocks.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagWriteConfig, "write", false, "Write the config to disk instead of printing it")
	configCmd.Flags().StringVar(&flagConfigOut, "out", "", "Destination for --write (default ~/.arcade/configs/<game>.yaml)")
}

func runConfig(_ *cobra.Command, args []string) {
	gameID := args[0]
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	if !flagWriteConfig {
		os.Stdout.Write(config.GetDefaultYAML(gameID)) //nolint:errcheck
		return
	}

	path, err := config.WriteDefault(gameID, flagConfigOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}
