// Package storage provides SQLite-based persistence for best scores and
// completed games. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-memory/internal/memory"
)

// BestScoresKey is the kv key holding the best-score map.
const BestScoresKey = "memoryGameBestScores"

// ErrCorruptBestScores is returned when the stored best-score payload cannot be decoded.
var ErrCorruptBestScores = errors.New("storage: corrupt best scores")

// Store manages the SQLite database connection.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// CompletionEntry is one finished game.
type CompletionEntry struct {
	ID         int64
	Difficulty memory.Difficulty
	Duration   time.Duration
	Moves      int
	NewBest    bool
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandPath(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			difficulty TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			new_best INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_difficulty ON completions(difficulty);
		CREATE INDEX IF NOT EXISTS idx_completions_fastest ON completions(difficulty, duration_ms ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored under key. ok is false if the key is absent.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read key %s: %w", key, err)
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write key %s: %w", key, err)
	}
	return nil
}

// LoadBestScores implements memory.BestScoreStore.
// A missing key yields empty best scores.
func (s *Store) LoadBestScores() (memory.BestScores, error) {
	raw, ok, err := s.Get(BestScoresKey)
	if err != nil || !ok {
		return memory.BestScores{}, err
	}

	var best memory.BestScores
	if err := json.Unmarshal([]byte(raw), &best); err != nil {
		return memory.BestScores{}, fmt.Errorf("%w: %v", ErrCorruptBestScores, err)
	}
	return best, nil
}

// SaveBestScores implements memory.BestScoreStore. The whole map is
// overwritten in a single statement.
func (s *Store) SaveBestScores(best memory.BestScores) error {
	data, err := json.Marshal(best)
	if err != nil {
		return fmt.Errorf("storage: cannot encode best scores: %w", err)
	}
	return s.Put(BestScoresKey, string(data))
}

// ClearBestScore removes the best time for d. Clearing an empty or
// corrupt record writes a fresh empty map.
func (s *Store) ClearBestScore(d memory.Difficulty) error {
	best, err := s.LoadBestScores()
	if err != nil && !errors.Is(err, ErrCorruptBestScores) {
		return err
	}
	switch d {
	case memory.Easy:
		best.Easy = nil
	case memory.Medium:
		best.Medium = nil
	case memory.Hard:
		best.Hard = nil
	}
	return s.SaveBestScores(best)
}

// RecordCompletion implements memory.CompletionRecorder.
func (s *Store) RecordCompletion(c memory.Completion) error {
	_, err := s.db.Exec(
		"INSERT INTO completions (difficulty, duration_ms, moves, new_best, created_at) VALUES (?, ?, ?, ?, ?)",
		string(c.Difficulty), c.Duration.Milliseconds(), c.Moves, boolInt(c.NewBest), s.now().UTC().Format(time.DateTime),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record completion: %w", err)
	}
	return nil
}

// RecentCompletions returns the latest completions for d, newest first.
// An empty difficulty returns completions for all difficulties.
func (s *Store) RecentCompletions(d memory.Difficulty, limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryCompletions(
		`SELECT id, difficulty, duration_ms, moves, new_best, created_at
		 FROM completions
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		string(d), string(d), limit,
	)
}

// FastestCompletions returns the quickest completions for d. Ties keep
// the earlier game first. An empty difficulty ranks all difficulties together.
func (s *Store) FastestCompletions(d memory.Difficulty, limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryCompletions(
		`SELECT id, difficulty, duration_ms, moves, new_best, created_at
		 FROM completions
		 WHERE ? = '' OR difficulty = ?
		 ORDER BY duration_ms ASC, id ASC
		 LIMIT ?`,
		string(d), string(d), limit,
	)
}

func (s *Store) queryCompletions(query string, args ...any) ([]CompletionEntry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []CompletionEntry
	for rows.Next() {
		var (
			e          CompletionEntry
			difficulty string
			durationMS int64
			createdAt  any
		)
		if err := rows.Scan(&e.ID, &difficulty, &durationMS, &e.Moves, &e.NewBest, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Difficulty = memory.Difficulty(difficulty)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// DifficultyStats contains aggregated statistics for one difficulty.
type DifficultyStats struct {
	Difficulty memory.Difficulty
	Games      int
	Fastest    time.Duration
	Average    time.Duration
	AvgMoves   float64
}

// Stats returns aggregated completion statistics for d.
func (s *Store) Stats(d memory.Difficulty) (DifficultyStats, error) {
	stats := DifficultyStats{Difficulty: d}
	var fastest, avg float64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MIN(duration_ms), 0), COALESCE(AVG(duration_ms), 0), COALESCE(AVG(moves), 0)
		 FROM completions WHERE difficulty = ?`,
		string(d),
	).Scan(&stats.Games, &fastest, &avg, &stats.AvgMoves)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.Fastest = time.Duration(fastest) * time.Millisecond
	stats.Average = time.Duration(avg) * time.Millisecond
	return stats, nil
}

// ClearCompletions deletes completion history for d, or for every
// difficulty when d is empty.
func (s *Store) ClearCompletions(d memory.Difficulty) error {
	_, err := s.db.Exec("DELETE FROM completions WHERE ? = '' OR difficulty = ?", string(d), string(d))
	if err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(time.DateTime, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

var (
	_ memory.BestScoreStore     = (*Store)(nil)
	_ memory.CompletionRecorder = (*Store)(nil)
)
