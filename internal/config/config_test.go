package config

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-memory/internal/memory"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "memory.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestEmbeddedDefaults(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded config does not parse: %v", err)
	}

	if cfg.MatchDelay() != memory.DefaultMatchDelay {
		t.Errorf("MatchDelay = %v, want %v", cfg.MatchDelay(), memory.DefaultMatchDelay)
	}
	if cfg.ResetDelay() != memory.DefaultResetDelay {
		t.Errorf("ResetDelay = %v, want %v", cfg.ResetDelay(), memory.DefaultResetDelay)
	}
	for _, d := range memory.Difficulties {
		if got, want := cfg.Deck.Pairs.Get(d), memory.DefaultPairs[d]; got != want {
			t.Errorf("pairs[%s] = %d, want %d", d, got, want)
		}
	}
	if len(cfg.Deck.Palette) != len(memory.DefaultPalette) {
		t.Errorf("palette has %d values, want %d", len(cfg.Deck.Palette), len(memory.DefaultPalette))
	}
	if cfg.DefaultDifficulty() != memory.Easy {
		t.Errorf("DefaultDifficulty = %s, want easy", cfg.DefaultDifficulty())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, `
timing:
  match_delay_ms: 200
deck:
  pairs:
    easy: 2
  palette: ["A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N", "O"]
ui:
  default_difficulty: hard
`)

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, want %q", source, path)
	}
	if cfg.MatchDelay() != 200*time.Millisecond {
		t.Errorf("MatchDelay = %v, want 200ms", cfg.MatchDelay())
	}
	// Unset keys keep their defaults.
	if cfg.ResetDelay() != time.Second {
		t.Errorf("ResetDelay = %v, want 1s", cfg.ResetDelay())
	}
	if cfg.Deck.Pairs.Medium != 10 {
		t.Errorf("medium pairs = %d, want 10", cfg.Deck.Pairs.Medium)
	}
	if cfg.DefaultDifficulty() != memory.Hard {
		t.Errorf("DefaultDifficulty = %s, want hard", cfg.DefaultDifficulty())
	}

	spec := cfg.DeckSpec()
	if n, err := spec.PairCount(memory.Easy); err != nil || n != 2 {
		t.Errorf("PairCount(easy) = %d, %v, want 2", n, err)
	}
	deck, err := spec.GenerateDeck(memory.Easy, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("GenerateDeck failed: %v", err)
	}
	if len(deck) != 4 {
		t.Errorf("deck has %d cards, want 4", len(deck))
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"bad yaml", "timing: [", false},
		{"zero match delay", "timing:\n  match_delay_ms: 0\n", true},
		{"negative reset delay", "timing:\n  reset_delay_ms: -1\n", true},
		{"too many pairs", "deck:\n  pairs:\n    hard: 31\n", true},
		{"duplicate palette", "deck:\n  pairs: {easy: 1, medium: 1, hard: 1}\n  palette: [X, X]\n", true},
		{"short palette", "deck:\n  pairs: {easy: 1, medium: 1, hard: 1}\n  palette: [X]\n", true},
		{"unknown difficulty", "ui:\n  default_difficulty: nightmare\n", true},
		{"zero columns", "ui:\n  columns:\n    easy: 0\n", true},
		{"unknown theme", "ui:\n  theme: sepia\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrInvalid); got != tt.invalid {
				t.Errorf("errors.Is(err, ErrInvalid) = %v, want %v (err: %v)", got, tt.invalid, err)
			}
		})
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestLoadFallsBackToLocalThenEmbedded(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, source, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != "embedded" {
		t.Errorf("source = %q, want embedded", source)
	}
	if cfg.MatchDelay() != memory.DefaultMatchDelay {
		t.Errorf("MatchDelay = %v", cfg.MatchDelay())
	}

	os.MkdirAll("configs", 0o755)
	os.WriteFile(filepath.Join("configs", FileName), []byte("timing:\n  reset_delay_ms: 1500\n"), 0o644)

	cfg, source, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if source != filepath.Join("configs", FileName) {
		t.Errorf("source = %q, want local configs", source)
	}
	if cfg.ResetDelay() != 1500*time.Millisecond {
		t.Errorf("ResetDelay = %v, want 1.5s", cfg.ResetDelay())
	}

	// A broken user file is skipped.
	userDir := filepath.Join(home, ".memory", "configs")
	os.MkdirAll(userDir, 0o755)
	os.WriteFile(filepath.Join(userDir, FileName), []byte("timing: ["), 0o644)

	_, source, _ = Load("")
	if source != filepath.Join("configs", FileName) {
		t.Errorf("broken user config should be skipped, source = %q", source)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(Default())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := parse(data)
	if err != nil {
		t.Fatalf("parse(Marshal(Default())) failed: %v", err)
	}
	if cfg.Timing != Default().Timing || cfg.UI.TickRate != Default().UI.TickRate {
		t.Errorf("round trip changed config: %+v", cfg)
	}
}
