// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/beatdodge/internal/engine"
)

// Store manages the SQLite database connection for run results.
type Store struct {
	db *sql.DB
}

// Result is one finished run of a level.
type Result struct {
	ID          int64
	LevelID     string
	HitsLeft    int
	MaxHits     int
	Cleared     bool
	ReachedBeat float64
	Speed       float64
	CreatedAt   time.Time
}

// NewResult builds a storable result from a finished run.
func NewResult(levelID string, run engine.RunResult) Result {
	return Result{
		LevelID:     levelID,
		HitsLeft:    run.HitsLeft,
		MaxHits:     run.MaxHits,
		Cleared:     run.Cleared,
		ReachedBeat: run.ReachedBeat,
		Speed:       run.Speed,
	}
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

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

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			level_id TEXT NOT NULL,
			hits_left INTEGER NOT NULL,
			max_hits INTEGER NOT NULL,
			cleared INTEGER NOT NULL DEFAULT 0,
			reached_beat REAL NOT NULL DEFAULT 0,
			speed REAL NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_level_id ON results(level_id);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(level_id, cleared DESC, hits_left DESC, reached_beat DESC);
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

// SaveResult records a finished run.
// Returns the ID of the inserted record.
func (s *Store) SaveResult(r Result) (int64, error) {
	if r.LevelID == "" {
		return 0, errors.New("storage: result has no level id")
	}
	result, err := s.db.Exec(
		`INSERT INTO results (level_id, hits_left, max_hits, cleared, reached_beat, speed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.LevelID, r.HitsLeft, r.MaxHits, r.Cleared, r.ReachedBeat, r.Speed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectResults = `SELECT id, level_id, hits_left, max_hits, cleared, reached_beat, speed, created_at
	FROM results
	WHERE level_id = ?
	ORDER BY cleared DESC, hits_left DESC, reached_beat DESC, id ASC`

// TopResults retrieves the best N runs of the given level.
// Cleared runs rank first, then hits left, then how far the run got.
func (s *Store) TopResults(levelID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(selectResults+" LIMIT ?", levelID, limit)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// AllResults retrieves all runs of the given level (no limit).
func (s *Store) AllResults(levelID string) ([]Result, error) {
	rows, err := s.db.Query(selectResults, levelID)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	return scanResults(rows)
}

// BestResult returns the top run of the given level.
// Returns false if the level has never been played.
func (s *Store) BestResult(levelID string) (Result, bool, error) {
	top, err := s.TopResults(levelID, 1)
	if err != nil {
		return Result{}, false, err
	}
	if len(top) == 0 {
		return Result{}, false, nil
	}
	return top[0], true, nil
}

// ClearResults deletes all runs of the given level.
func (s *Store) ClearResults(levelID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE level_id = ?", levelID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var createdAt any
		if err := rows.Scan(&r.ID, &r.LevelID, &r.HitsLeft, &r.MaxHits, &r.Cleared,
			&r.ReachedBeat, &r.Speed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	LevelID      string
	Runs         int
	Clears       int
	BestHitsLeft int
	FurthestBeat float64
	LastPlayed   time.Time
}

// ClearRate returns the fraction of runs that cleared the level.
func (st LevelStats) ClearRate() float64 {
	if st.Runs == 0 {
		return 0
	}
	return float64(st.Clears) / float64(st.Runs)
}

// LevelStats retrieves aggregated statistics for a specific level.
func (s *Store) LevelStats(levelID string) (*LevelStats, error) {
	stats := &LevelStats{LevelID: levelID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(cleared), 0), COALESCE(MAX(hits_left), 0), COALESCE(MAX(reached_beat), 0)
		 FROM results WHERE level_id = ?`,
		levelID,
	).Scan(&stats.Runs, &stats.Clears, &stats.BestHitsLeft, &stats.FurthestBeat)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE level_id = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		levelID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// AllLevelStats retrieves statistics for every level that has been played.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*), SUM(cleared), MAX(hits_left), MAX(reached_beat), MAX(created_at)
		 FROM results
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var st LevelStats
		var lastPlayed any
		if err := rows.Scan(&st.LevelID, &st.Runs, &st.Clears, &st.BestHitsLeft, &st.FurthestBeat, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.LevelID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
