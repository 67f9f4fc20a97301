// Package memory implements the memory-matching card game: deck generation,
// the pure state reducer, and the controller that schedules the timed
// match-check and mismatch-reset transitions.
//
// The package has no UI dependencies. The platform layer reads State
// snapshots and calls the Controller intents.
package memory

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

// Difficulty selects the deck size.
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// Difficulties lists all difficulties in ascending order.
var Difficulties = []Difficulty{Easy, Medium, Hard}

var (
	// ErrUnknownDifficulty is returned for a difficulty outside Difficulties.
	ErrUnknownDifficulty = errors.New("memory: unknown difficulty")
	// ErrPaletteTooSmall is returned when a difficulty needs more pairs than the palette holds.
	ErrPaletteTooSmall = errors.New("memory: palette too small for difficulty")
)

// DefaultPairs maps each difficulty to its pair count.
var DefaultPairs = map[Difficulty]int{
	Easy:   6,  // 12 cards
	Medium: 10, // 20 cards
	Hard:   15, // 30 cards
}

// DefaultPalette is the symbol set cards are drawn from, in selection order.
var DefaultPalette = []string{
	"🍎", "🍐", "🍊", "🍋", "🍌", "🍉", "🍇", "🍓", "🫐", "🍒",
	"🍑", "🥭", "🍍", "🥥", "🥝", "🍅", "🥑", "🥦", "🥕", "🌽",
	"🌶️", "🫑", "🥔", "🍄", "🧀", "🥨", "🥐", "🥖", "🥞", "🍦",
}

// ParseDifficulty converts a name to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

// Valid reports whether d is one of the known difficulties.
func (d Difficulty) Valid() bool {
	switch d {
	case Easy, Medium, Hard:
		return true
	}
	return false
}

// Title returns the capitalized display name.
func (d Difficulty) Title() string {
	switch d {
	case Easy:
		return "Easy"
	case Medium:
		return "Medium"
	case Hard:
		return "Hard"
	default:
		return string(d)
	}
}

// Card is a single card on the board.
type Card struct {
	ID        uuid.UUID
	Value     string
	IsFlipped bool
	IsMatched bool
}

// DeckSpec describes how decks are built. The zero value is not usable;
// use DefaultDeckSpec or fill both fields.
type DeckSpec struct {
	Pairs   map[Difficulty]int
	Palette []string
}

// DefaultDeckSpec returns the standard pair counts and palette.
func DefaultDeckSpec() DeckSpec {
	return DeckSpec{
		Pairs:   DefaultPairs,
		Palette: DefaultPalette,
	}
}

// PairCount returns the number of pairs dealt for d.
func (s DeckSpec) PairCount(d Difficulty) (int, error) {
	n, ok := s.Pairs[d]
	if !ok || !d.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, d)
	}
	if n > len(s.Palette) {
		return 0, fmt.Errorf("%w: %s needs %d values, palette has %d",
			ErrPaletteTooSmall, d, n, len(s.Palette))
	}
	return n, nil
}

// GenerateDeck builds a shuffled deck for d. Every value appears exactly
// twice and every card gets a fresh ID.
func (s DeckSpec) GenerateDeck(d Difficulty, rng *rand.Rand) ([]Card, error) {
	n, err := s.PairCount(d)
	if err != nil {
		return nil, err
	}

	cards := make([]Card, 0, n*2)
	for _, value := range s.Palette[:n] {
		cards = append(cards,
			Card{ID: uuid.New(), Value: value},
			Card{ID: uuid.New(), Value: value},
		)
	}

	shuffleInPlace(cards, rng)
	return cards, nil
}

// GenerateDeck builds a shuffled deck for d from the default spec.
func GenerateDeck(d Difficulty, rng *rand.Rand) ([]Card, error) {
	return DefaultDeckSpec().GenerateDeck(d, rng)
}

// Shuffle returns a shuffled copy of cards. The input is left untouched.
func Shuffle(cards []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	shuffleInPlace(out, rng)
	return out
}

// shuffleInPlace is a Fisher-Yates shuffle walking from the end.
func shuffleInPlace(cards []Card, rng *rand.Rand) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
