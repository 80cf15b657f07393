// Package leaderboard provides SQLite-based persistence for weekly run
// results. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies. Boards are partitioned by week key; every weekly seed
// rotation starts a fresh board without touching older rows.
package leaderboard

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is the database location used when none is configured.
const DefaultPath = "~/.moto/moto.db"

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// Entry represents a single finished run on a weekly board.
type Entry struct {
	ID           int64
	Name         string // Empty for anonymous runs
	Score        int
	SurvivalSecs float64
	WeekKey      string
	CreatedAt    time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("leaderboard: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			survival_secs REAL NOT NULL DEFAULT 0,
			week_key TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_week ON runs(week_key);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(week_key, score DESC);
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

// Submit records a finished run on its weekly board.
// Returns the ID of the inserted record.
func (s *Store) Submit(e Entry) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO runs (name, score, survival_secs, week_key) VALUES (?, ?, ?, ?)",
		e.Name, e.Score, e.SurvivalSecs, e.WeekKey,
	)
	if err != nil {
		return 0, fmt.Errorf("leaderboard: cannot submit run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("leaderboard: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopN retrieves the top N runs for the given week.
// Results are ordered by score descending, earliest submission first on ties.
func (s *Store) TopN(weekKey string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, name, score, survival_secs, week_key, created_at
		 FROM runs
		 WHERE week_key = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		weekKey, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &e.SurvivalSecs, &e.WeekKey, &createdAt); err != nil {
			return nil, fmt.Errorf("leaderboard: cannot scan row: %w", err)
		}
		e.CreatedAt = parseCreatedAt(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard: row iteration error: %w", err)
	}

	return entries, nil
}

// Rank returns the 1-based position a run with the given score would take
// on the week's board.
func (s *Store) Rank(weekKey string, score int) (int, error) {
	var above int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM runs WHERE week_key = ? AND score > ?",
		weekKey, score,
	).Scan(&above)
	if err != nil {
		return 0, fmt.Errorf("leaderboard: cannot compute rank: %w", err)
	}
	return above + 1, nil
}

// HighScore returns the highest score for the given week.
// Returns 0 if no runs exist.
func (s *Store) HighScore(weekKey string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE week_key = ?",
		weekKey,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("leaderboard: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearWeek deletes all runs for the given week.
func (s *Store) ClearWeek(weekKey string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE week_key = ?", weekKey)
	if err != nil {
		return fmt.Errorf("leaderboard: cannot clear week: %w", err)
	}
	return nil
}

// parseCreatedAt handles the driver returning either time.Time or string.
func parseCreatedAt(v any) time.Time {
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
