package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-memory/internal/memory"
)

//go:embed defaults/memory.yaml
var defaultMemoryYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timing: TimingConfig{
			MatchDelayMS: int(memory.DefaultMatchDelay.Milliseconds()),
			ResetDelayMS: int(memory.DefaultResetDelay.Milliseconds()),
		},
		Deck: DeckConfig{
			Pairs: PerDifficulty{
				Easy:   memory.DefaultPairs[memory.Easy],
				Medium: memory.DefaultPairs[memory.Medium],
				Hard:   memory.DefaultPairs[memory.Hard],
			},
			Palette: append([]string(nil), memory.DefaultPalette...),
		},
		UI: UIConfig{
			DefaultDifficulty: string(memory.Easy),
			TickRate:          10,
			Columns: PerDifficulty{
				Easy:   4,
				Medium: 5,
				Hard:   6,
			},
			Theme: "default",
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultMemoryYAML
}
