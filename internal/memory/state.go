package memory

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// BestScores holds the fastest completion time per difficulty.
// A nil entry means the difficulty has never been completed.
type BestScores struct {
	Easy   *time.Duration
	Medium *time.Duration
	Hard   *time.Duration
}

// Get returns the best time for d, or nil.
func (b BestScores) Get(d Difficulty) *time.Duration {
	switch d {
	case Easy:
		return b.Easy
	case Medium:
		return b.Medium
	case Hard:
		return b.Hard
	}
	return nil
}

// With returns a copy of b with the entry for d replaced.
func (b BestScores) With(d Difficulty, v time.Duration) BestScores {
	switch d {
	case Easy:
		b.Easy = &v
	case Medium:
		b.Medium = &v
	case Hard:
		b.Hard = &v
	}
	return b
}

// clone copies the pointed-to values so snapshots never alias.
func (b BestScores) clone() BestScores {
	return BestScores{
		Easy:   cloneDuration(b.Easy),
		Medium: cloneDuration(b.Medium),
		Hard:   cloneDuration(b.Hard),
	}
}

// bestScoresJSON is the persisted shape: milliseconds or null.
type bestScoresJSON struct {
	Easy   *int64 `json:"easy"`
	Medium *int64 `json:"medium"`
	Hard   *int64 `json:"hard"`
}

// MarshalJSON encodes durations as integer milliseconds.
func (b BestScores) MarshalJSON() ([]byte, error) {
	return json.Marshal(bestScoresJSON{
		Easy:   toMillis(b.Easy),
		Medium: toMillis(b.Medium),
		Hard:   toMillis(b.Hard),
	})
}

// maxMillis is the largest millisecond count a time.Duration can hold.
const maxMillis = math.MaxInt64 / int64(time.Millisecond)

// UnmarshalJSON decodes the millisecond form. Negative values and values
// that overflow a time.Duration are rejected.
func (b *BestScores) UnmarshalJSON(data []byte) error {
	var raw bestScoresJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for name, v := range map[string]*int64{"easy": raw.Easy, "medium": raw.Medium, "hard": raw.Hard} {
		if v != nil && *v < 0 {
			return fmt.Errorf("memory: negative best score for %s: %d", name, *v)
		}
		if v != nil && *v > maxMillis {
			return fmt.Errorf("memory: best score for %s out of range: %d", name, *v)
		}
	}
	*b = BestScores{
		Easy:   fromMillis(raw.Easy),
		Medium: fromMillis(raw.Medium),
		Hard:   fromMillis(raw.Hard),
	}
	return nil
}

func toMillis(d *time.Duration) *int64 {
	if d == nil {
		return nil
	}
	ms := d.Milliseconds()
	return &ms
}

func fromMillis(ms *int64) *time.Duration {
	if ms == nil {
		return nil
	}
	d := time.Duration(*ms) * time.Millisecond
	return &d
}

func cloneDuration(d *time.Duration) *time.Duration {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// State is the complete game state. Transitions go through Reduce.
type State struct {
	Cards        []Card
	Moves        int
	MatchedPairs int
	IsPlaying    bool
	Difficulty   Difficulty
	StartTime    *time.Time
	EndTime      *time.Time

	// FlippedCards holds the current selection, at most two cards.
	FlippedCards []Card

	// Mismatched holds the pair from the last failed check while it is
	// still face up, waiting for ResetFlippedCards.
	Mismatched []uuid.UUID

	BestScores BestScores
}

// NewState returns the initial state: empty deck, not playing, easy.
func NewState(best BestScores) State {
	return State{
		Difficulty: Easy,
		BestScores: best,
	}
}

// TotalPairs is the number of pairs in the current deck.
func (s State) TotalPairs() int {
	return len(s.Cards) / 2
}

// IsComplete reports whether every pair has been matched.
func (s State) IsComplete() bool {
	return s.EndTime != nil && len(s.Cards) > 0 && s.MatchedPairs == s.TotalPairs()
}

// Elapsed returns the play time so far, or the final time once complete.
func (s State) Elapsed(now time.Time) time.Duration {
	if s.StartTime == nil {
		return 0
	}
	if s.EndTime != nil {
		return s.EndTime.Sub(*s.StartTime)
	}
	return now.Sub(*s.StartTime)
}

// Duration returns the completion time once the game has ended.
func (s State) Duration() (time.Duration, bool) {
	if s.StartTime == nil || s.EndTime == nil {
		return 0, false
	}
	return s.EndTime.Sub(*s.StartTime), true
}

// BestScore returns the stored best for the current difficulty.
func (s State) BestScore() *time.Duration {
	return s.BestScores.Get(s.Difficulty)
}

// CardIndex returns the deck position of id, or -1.
func (s State) CardIndex(id uuid.UUID) int {
	for i := range s.Cards {
		if s.Cards[i].ID == id {
			return i
		}
	}
	return -1
}

// IsSelected reports whether id is in FlippedCards.
func (s State) IsSelected(id uuid.UUID) bool {
	for _, c := range s.FlippedCards {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a deep copy safe to hand to another goroutine.
func (s State) Clone() State {
	out := s
	out.Cards = append([]Card(nil), s.Cards...)
	out.FlippedCards = append([]Card(nil), s.FlippedCards...)
	out.Mismatched = append([]uuid.UUID(nil), s.Mismatched...)
	out.StartTime = cloneTime(s.StartTime)
	out.EndTime = cloneTime(s.EndTime)
	out.BestScores = s.BestScores.clone()
	return out
}

// FormatDuration renders d as mm:ss. Zero renders as 00:00.
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "00:00"
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
