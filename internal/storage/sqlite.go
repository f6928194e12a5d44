// Package storage keeps a history of finished runs in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/matatu/internal/core"
)

// Run modes.
const (
	ModeInteractive = "interactive"
	ModeHeadless    = "headless"
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is the summary of one finished session.
type RunRecord struct {
	ID      int64
	GameID  string
	Mode    string
	Seed    int64
	Stats   core.RunStats
	EndedAt time.Time
}

// Totals aggregates every recorded run of a game.
type Totals struct {
	Runs        int
	Ticks       int
	PausedTicks int
	Pauses      int
	Dodges      int
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			paused_ticks INTEGER NOT NULL DEFAULT 0,
			pauses INTEGER NOT NULL DEFAULT 0,
			dodges INTEGER NOT NULL DEFAULT 0,
			obstacles INTEGER NOT NULL DEFAULT 0,
			crossings INTEGER NOT NULL DEFAULT 0,
			ignored INTEGER NOT NULL DEFAULT 0,
			ended_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_game_id ON runs(game_id, id DESC);
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

// SaveRun records a finished run and returns its ID.
// A zero EndedAt is stamped by the database.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	var endedAt any
	if !r.EndedAt.IsZero() {
		endedAt = r.EndedAt.UTC().Format(timeLayout)
	}

	result, err := s.db.Exec(
		`INSERT INTO runs
		 (game_id, mode, seed, ticks, paused_ticks, pauses, dodges, obstacles, crossings, ignored, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, COALESCE(?, CURRENT_TIMESTAMP))`,
		r.GameID,
		r.Mode,
		r.Seed,
		r.Stats.Ticks,
		r.Stats.PausedTicks,
		r.Stats.Pauses,
		r.Stats.Dodges,
		r.Stats.ObstaclesSpawned,
		r.Stats.CrossingsSpawned,
		r.Stats.SpawnsIgnored,
		endedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentRuns returns up to limit runs of gameID, newest first.
func (s *Store) RecentRuns(gameID string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, mode, seed, ticks, paused_ticks, pauses, dodges,
		        obstacles, crossings, ignored, ended_at
		 FROM runs
		 WHERE game_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var endedAt any
		if err := rows.Scan(
			&r.ID,
			&r.GameID,
			&r.Mode,
			&r.Seed,
			&r.Stats.Ticks,
			&r.Stats.PausedTicks,
			&r.Stats.Pauses,
			&r.Stats.Dodges,
			&r.Stats.ObstaclesSpawned,
			&r.Stats.CrossingsSpawned,
			&r.Stats.SpawnsIgnored,
			&endedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.EndedAt = parseTime(endedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// RunTotals sums every recorded run of gameID.
func (s *Store) RunTotals(gameID string) (Totals, error) {
	var t Totals
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(ticks), 0), COALESCE(SUM(paused_ticks), 0),
		        COALESCE(SUM(pauses), 0), COALESCE(SUM(dodges), 0)
		 FROM runs
		 WHERE game_id = ?`,
		gameID,
	).Scan(&t.Runs, &t.Ticks, &t.PausedTicks, &t.Pauses, &t.Dodges)
	if err != nil {
		return Totals{}, fmt.Errorf("storage: cannot query totals: %w", err)
	}

	return t, nil
}

// ClearRuns deletes all runs of gameID.
func (s *Store) ClearRuns(gameID string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
