package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-memory/internal/memory"
	"github.com/vovakirdan/tui-memory/internal/platform/tui"
	"github.com/vovakirdan/tui-memory/internal/storage"
)

func TestClearScoresCommand(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	store, err := storage.Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SaveBestScores(memory.BestScores{}.With(memory.Easy, time.Minute).With(memory.Hard, 3*time.Minute))
	store.RecordCompletion(memory.Completion{Difficulty: memory.Easy, Duration: time.Minute, Moves: 9, NewBest: true})
	store.RecordCompletion(memory.Completion{Difficulty: memory.Hard, Duration: 3 * time.Minute, Moves: 40, NewBest: true})
	store.Close()

	rootCmd.SetArgs([]string{"clear-scores", "--db", dbPath, "--difficulty", "easy", "--log-level", "error"})
	t.Cleanup(func() { flagClearDifficulty = "" })
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("clear-scores failed: %v", err)
	}

	store, err = storage.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	best, _ := store.LoadBestScores()
	if best.Easy != nil || best.Hard == nil {
		t.Errorf("best after clear = %+v, want only hard", best)
	}
	left, _ := store.RecentCompletions("", 10)
	if len(left) != 1 || left[0].Difficulty != memory.Hard {
		t.Errorf("history after clear = %+v, want only hard", left)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	flagLogLevel = "loud"
	t.Cleanup(func() { flagLogLevel = "info" })

	if _, _, err := newLogger(nil); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestScoresOrder(t *testing.T) {
	if scoresOrder(true) != tui.OrderFastest {
		t.Error("--fastest should list the fastest games")
	}
	if scoresOrder(false) != tui.OrderRecent {
		t.Error("default listing should be the most recent games")
	}
}
