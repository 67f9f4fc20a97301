package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-memory/internal/memory"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

var flagClearDifficulty string

var clearScoresCmd = &cobra.Command{
	Use:   "clear-scores",
	Short: "Forget best times and history",
	Long: `Remove the best time and completion history for one difficulty,
or for all of them when --difficulty is omitted.

Examples:
  memory clear-scores
  memory clear-scores --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runClearScores,
}

func init() {
	clearScoresCmd.Flags().StringVar(&flagClearDifficulty, "difficulty", "", "Only clear this difficulty")
}

func runClearScores(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	targets := memory.Difficulties
	var only memory.Difficulty
	if flagClearDifficulty != "" {
		if only, err = memory.ParseDifficulty(flagClearDifficulty); err != nil {
			return err
		}
		targets = []memory.Difficulty{only}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	for _, d := range targets {
		if err := store.ClearBestScore(d); err != nil {
			return err
		}
	}
	if err := store.ClearCompletions(only); err != nil {
		return err
	}

	logger.Info("scores cleared", "difficulties", targets)
	return nil
}
