package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-memory/internal/memory"
	"github.com/vovakirdan/tui-memory/internal/platform/tui"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Deal a board and start playing.

Controls:
  Arrows/HJKL  - Move the cursor
  Enter/Space  - Flip the card under the cursor
  R            - Restart with the same difficulty
  N/Esc        - Back to the difficulty picker
  ?            - Show all keys
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - 6 pairs
  medium - 10 pairs
  hard   - 15 pairs

Examples:
  memory play
  memory play --difficulty hard
  memory play --seed 42 --log-file /tmp/memory.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Skip the picker: easy, medium, hard")
}

func runPlay(_ *cobra.Command, _ []string) error {
	// The TUI owns the terminal, so logs only go to --log-file.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	var difficulty memory.Difficulty
	if flagDifficulty != "" {
		if difficulty, err = memory.ParseDifficulty(flagDifficulty); err != nil {
			return err
		}
	}

	// Get terminal size early for the first frame
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	opts := memory.Options{
		Deck:       cfg.DeckSpec(),
		MatchDelay: cfg.MatchDelay(),
		ResetDelay: cfg.ResetDelay(),
		Seed:       flagSeed,
		Logger:     logger,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("playing without persistence", "error", err)
		// Continue without storage - game still works
	} else {
		defer store.Close()
		opts.Store = store
		opts.Recorder = store
	}

	notifier := tui.NewNotifier()
	opts.OnChange = notifier.OnChange

	ctrl := memory.NewController(opts)
	defer ctrl.Close()

	if err := tui.Run(ctrl, tui.Options{
		Config:     cfg,
		Difficulty: difficulty,
		Notifier:   notifier,
		Logger:     logger,
		Width:      width,
		Height:     height,
	}); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
