// Package config provides YAML-based configuration loading for the memory game.
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/vovakirdan/tui-memory/internal/memory"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// MinPaletteSize is the fewest symbols a deck palette may hold.
const MinPaletteSize = 15

// Config contains all configuration for the memory game.
type Config struct {
	Timing TimingConfig `yaml:"timing"`
	Deck   DeckConfig   `yaml:"deck"`
	UI     UIConfig     `yaml:"ui"`
}

// TimingConfig defines the delays of the scheduled transitions.
type TimingConfig struct {
	MatchDelayMS int `yaml:"match_delay_ms"`
	ResetDelayMS int `yaml:"reset_delay_ms"`
}

// DeckConfig defines deck sizes and the symbol palette.
type DeckConfig struct {
	Pairs   PerDifficulty `yaml:"pairs"`
	Palette []string      `yaml:"palette"`
}

// UIConfig defines presentation settings.
type UIConfig struct {
	DefaultDifficulty string        `yaml:"default_difficulty"`
	TickRate          int           `yaml:"tick_rate"` // Redraws per second
	Columns           PerDifficulty `yaml:"columns"`   // Board width in cards
	Theme             string        `yaml:"theme"`
}

// Themes lists the accepted ui.theme values.
var Themes = []string{"default", "neon", "mono"}

// PerDifficulty holds one integer per difficulty.
type PerDifficulty struct {
	Easy   int `yaml:"easy"`
	Medium int `yaml:"medium"`
	Hard   int `yaml:"hard"`
}

// Get returns the value for d.
func (p PerDifficulty) Get(d memory.Difficulty) int {
	switch d {
	case memory.Easy:
		return p.Easy
	case memory.Medium:
		return p.Medium
	case memory.Hard:
		return p.Hard
	}
	return 0
}

// MatchDelay returns the match-check delay.
func (c Config) MatchDelay() time.Duration {
	return time.Duration(c.Timing.MatchDelayMS) * time.Millisecond
}

// ResetDelay returns the mismatch-reset delay.
func (c Config) ResetDelay() time.Duration {
	return time.Duration(c.Timing.ResetDelayMS) * time.Millisecond
}

// DeckSpec converts the deck section for the game package.
func (c Config) DeckSpec() memory.DeckSpec {
	pairs := make(map[memory.Difficulty]int, len(memory.Difficulties))
	for _, d := range memory.Difficulties {
		pairs[d] = c.Deck.Pairs.Get(d)
	}
	return memory.DeckSpec{
		Pairs:   pairs,
		Palette: append([]string(nil), c.Deck.Palette...),
	}
}

// DefaultDifficulty returns the configured starting difficulty.
func (c Config) DefaultDifficulty() memory.Difficulty {
	d, err := memory.ParseDifficulty(c.UI.DefaultDifficulty)
	if err != nil {
		return memory.Easy
	}
	return d
}

// Validate checks the configuration for values the game cannot run with.
func (c Config) Validate() error {
	if c.Timing.MatchDelayMS <= 0 {
		return fmt.Errorf("%w: timing.match_delay_ms must be positive, got %d", ErrInvalid, c.Timing.MatchDelayMS)
	}
	if c.Timing.ResetDelayMS <= 0 {
		return fmt.Errorf("%w: timing.reset_delay_ms must be positive, got %d", ErrInvalid, c.Timing.ResetDelayMS)
	}

	seen := make(map[string]bool, len(c.Deck.Palette))
	for _, v := range c.Deck.Palette {
		if v == "" {
			return fmt.Errorf("%w: deck.palette has an empty entry", ErrInvalid)
		}
		if seen[v] {
			return fmt.Errorf("%w: deck.palette has duplicate %q", ErrInvalid, v)
		}
		seen[v] = true
	}
	if len(c.Deck.Palette) < MinPaletteSize {
		return fmt.Errorf("%w: deck.palette needs at least %d values, got %d", ErrInvalid, MinPaletteSize, len(c.Deck.Palette))
	}

	for _, d := range memory.Difficulties {
		n := c.Deck.Pairs.Get(d)
		if n <= 0 {
			return fmt.Errorf("%w: deck.pairs.%s must be positive, got %d", ErrInvalid, d, n)
		}
		if n > len(c.Deck.Palette) {
			return fmt.Errorf("%w: deck.pairs.%s is %d but the palette has %d values", ErrInvalid, d, n, len(c.Deck.Palette))
		}
		if cols := c.UI.Columns.Get(d); cols <= 0 {
			return fmt.Errorf("%w: ui.columns.%s must be positive, got %d", ErrInvalid, d, cols)
		}
	}

	if _, err := memory.ParseDifficulty(c.UI.DefaultDifficulty); err != nil {
		return fmt.Errorf("%w: ui.default_difficulty: %v", ErrInvalid, err)
	}
	if c.UI.TickRate <= 0 {
		return fmt.Errorf("%w: ui.tick_rate must be positive, got %d", ErrInvalid, c.UI.TickRate)
	}
	if !slices.Contains(Themes, c.UI.Theme) {
		return fmt.Errorf("%w: ui.theme %q is not one of %v", ErrInvalid, c.UI.Theme, Themes)
	}
	return nil
}
