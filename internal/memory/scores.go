package memory

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// BestScoreStore persists the best-score map. SaveBestScores overwrites the
// whole map; the last write wins.
type BestScoreStore interface {
	LoadBestScores() (BestScores, error)
	SaveBestScores(BestScores) error
}

// Completion describes a finished game.
type Completion struct {
	Difficulty Difficulty
	Duration   time.Duration
	Moves      int
	NewBest    bool
}

// CompletionRecorder receives every finished game. It is optional and never
// affects best-score bookkeeping.
type CompletionRecorder interface {
	RecordCompletion(Completion) error
}

// LoadInitialState builds the initial state with best scores read from store.
// A nil store, a read error or a corrupt payload all yield empty best scores.
func LoadInitialState(store BestScoreStore, logger *log.Logger) State {
	if store == nil {
		return NewState(BestScores{})
	}
	best, err := store.LoadBestScores()
	if err != nil {
		if logger != nil {
			logger.Warn("best scores unreadable, using defaults", "error", err)
		}
		return NewState(BestScores{})
	}
	return NewState(best)
}

// MemoryStore keeps best scores in process memory.
type MemoryStore struct {
	mu    sync.Mutex
	best  BestScores
	saves int
}

// NewMemoryStore returns a store seeded with best.
func NewMemoryStore(best BestScores) *MemoryStore {
	return &MemoryStore{best: best.clone()}
}

// LoadBestScores returns a copy of the stored map.
func (m *MemoryStore) LoadBestScores() (BestScores, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best.clone(), nil
}

// SaveBestScores replaces the stored map.
func (m *MemoryStore) SaveBestScores(b BestScores) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = b.clone()
	m.saves++
	return nil
}

// Saves returns how many times SaveBestScores was called.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var _ BestScoreStore = (*MemoryStore)(nil)
