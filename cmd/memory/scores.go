package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/platform/tui"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var (
	flagPlain   bool
	flagRecent  int
	flagFastest bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show best times and recent games",
	Long: `Display the best time for each difficulty and the most recent
finished games, or the fastest ones with --fastest. Opens an
interactive table when run in a terminal.

Examples:
  memory scores
  memory scores --plain --recent 20
  memory scores --plain --fastest`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive table")
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of games to print with --plain")
	scoresCmd.Flags().BoolVar(&flagFastest, "fastest", false, "List the fastest games instead of the most recent with --plain (press f in the table)")
}

func runScores(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	if flagPlain || !interactive {
		return tui.WriteScores(os.Stdout, store, flagRecent, scoresOrder(flagFastest))
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	return tui.RunScoreboard(store, width, height)
}

func scoresOrder(fastest bool) tui.Order {
	if fastest {
		return tui.OrderFastest
	}
	return tui.OrderRecent
}
