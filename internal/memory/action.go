package memory

import (
	"time"

	"github.com/google/uuid"
)

// Action is a state transition request handled by Reduce.
// The set of actions is closed; each kind is its own struct.
type Action interface {
	isAction()
	String() string
}

// StartGame deals Deck and starts the clock at At.
// The caller builds the deck so Reduce stays deterministic.
type StartGame struct {
	Difficulty Difficulty
	Deck       []Card
	At         time.Time
}

// FlipCard turns a face-down card face up.
type FlipCard struct {
	CardID uuid.UUID
}

// CheckMatch compares the two flipped cards. At is used as the end time
// when the match completes the deck.
type CheckMatch struct {
	At time.Time
}

// ResetFlippedCards turns unmatched selected cards face down again.
type ResetFlippedCards struct{}

// ResetGame returns to the initial state, keeping best scores.
type ResetGame struct{}

// UpdateBestScore records the finished game's time if it beats the best.
type UpdateBestScore struct{}

func (StartGame) isAction()         {}
func (FlipCard) isAction()          {}
func (CheckMatch) isAction()        {}
func (ResetFlippedCards) isAction() {}
func (ResetGame) isAction()         {}
func (UpdateBestScore) isAction()   {}

func (StartGame) String() string         { return "START_GAME" }
func (FlipCard) String() string          { return "FLIP_CARD" }
func (CheckMatch) String() string        { return "CHECK_MATCH" }
func (ResetFlippedCards) String() string { return "RESET_FLIPPED_CARDS" }
func (ResetGame) String() string         { return "RESET_GAME" }
func (UpdateBestScore) String() string   { return "UPDATE_BEST_SCORE" }
