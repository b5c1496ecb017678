// Package storage provides SQLite-based persistence for simulation results.
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

	"github.com/vovakirdan/samegame/internal/games/samegame/core"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("storage: run not found")

// Store manages the SQLite database connection for result persistence.
type Store struct {
	db *sql.DB
}

// Run is a finished simulation to be recorded.
type Run struct {
	BoardID   string
	Variant   string // Registry ID of the rules used, e.g. "samegame"
	Score     int
	Remaining int
	End       core.EndReason
	Moves     []core.Move
}

// ScoreEntry represents a single recorded run.
type ScoreEntry struct {
	ID        int64
	BoardID   string
	Variant   string
	Score     int
	MoveCount int
	Remaining int
	End       string
	CreatedAt time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; SSH sessions and HTTP saves share the store.
	db.SetMaxOpenConns(1)

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
			board_id TEXT NOT NULL,
			variant TEXT NOT NULL,
			score INTEGER NOT NULL,
			move_count INTEGER NOT NULL,
			remaining INTEGER NOT NULL,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_board_id ON runs(board_id);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(board_id, score DESC);

		CREATE TABLE IF NOT EXISTS moves (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			move_no INTEGER NOT NULL,
			pos_row INTEGER NOT NULL,
			pos_col INTEGER NOT NULL,
			removed INTEGER NOT NULL,
			color TEXT NOT NULL,
			score INTEGER NOT NULL,
			PRIMARY KEY (run_id, move_no)
		);
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

// SaveRun records a run and its move log in one transaction.
// Returns the ID of the inserted run.
func (s *Store) SaveRun(run Run) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(
		`INSERT INTO runs (board_id, variant, score, move_count, remaining, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.BoardID, run.Variant, run.Score, len(run.Moves), run.Remaining, string(run.End),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO moves (run_id, move_no, pos_row, pos_col, removed, color, score)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot prepare move insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range run.Moves {
		if _, err := stmt.Exec(id, m.Number, m.Row, m.Column, m.Removed, m.Color.String(), m.Score); err != nil {
			return 0, fmt.Errorf("storage: cannot save move %d: %w", m.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot commit run: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N runs for the given board.
// Results are ordered by score descending, earlier runs first on ties.
func (s *Store) TopScores(boardID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, board_id, variant, score, move_count, remaining, end_reason, created_at
		 FROM runs
		 WHERE board_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		boardID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// RecentRuns retrieves the most recent runs across all boards.
func (s *Store) RecentRuns(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, board_id, variant, score, move_count, remaining, end_reason, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.BoardID, &e.Variant, &e.Score, &e.MoveCount, &e.Remaining, &e.End, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// RunMoves returns the move log of a recorded run in move order.
func (s *Store) RunMoves(runID int64) ([]core.Move, error) {
	var exists int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE id = ?", runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	if exists == 0 {
		return nil, ErrRunNotFound
	}

	rows, err := s.db.Query(
		`SELECT move_no, pos_row, pos_col, removed, color, score
		 FROM moves
		 WHERE run_id = ?
		 ORDER BY move_no`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query moves: %w", err)
	}
	defer rows.Close()

	moves := []core.Move{}
	for rows.Next() {
		var m core.Move
		var color string
		if err := rows.Scan(&m.Number, &m.Row, &m.Column, &m.Removed, &color, &m.Score); err != nil {
			return nil, fmt.Errorf("storage: cannot scan move: %w", err)
		}
		if err := m.Color.UnmarshalText([]byte(color)); err != nil {
			return nil, fmt.Errorf("storage: move %d: %w", m.Number, err)
		}
		moves = append(moves, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return moves, nil
}

// HighScore returns the highest score for the given board.
// Returns 0 if no runs exist.
func (s *Store) HighScore(boardID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE board_id = ?",
		boardID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all runs, and their moves, for the given board.
func (s *Store) ClearScores(boardID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM moves WHERE run_id IN (SELECT id FROM runs WHERE board_id = ?)", boardID); err != nil {
		return fmt.Errorf("storage: cannot clear moves: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM runs WHERE board_id = ?", boardID); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit clear: %w", err)
	}
	return nil
}

// BoardStats contains aggregated statistics for a board.
type BoardStats struct {
	BoardID    string
	RunsCount  int
	HighScore  int
	AvgScore   float64
	Cleared    int // Runs that emptied the board
	LastPlayed time.Time
}

// GetBoardStats retrieves aggregated statistics for a specific board.
func (s *Store) GetBoardStats(boardID string) (*BoardStats, error) {
	stats := &BoardStats{BoardID: boardID}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(CASE WHEN end_reason = ? THEN 1 ELSE 0 END), 0),
		        MAX(created_at)
		 FROM runs WHERE board_id = ?`,
		string(core.EndCleared), boardID,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &stats.Cleared, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get board stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllBoardsStats retrieves statistics for every board that has runs.
func (s *Store) GetAllBoardsStats() (map[string]*BoardStats, error) {
	rows, err := s.db.Query(
		`SELECT board_id, COUNT(*), MAX(score), AVG(score),
		        SUM(CASE WHEN end_reason = ? THEN 1 ELSE 0 END), MAX(created_at)
		 FROM runs
		 GROUP BY board_id`,
		string(core.EndCleared),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all boards stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*BoardStats)
	for rows.Next() {
		var st BoardStats
		var lastPlayed any
		if err := rows.Scan(&st.BoardID, &st.RunsCount, &st.HighScore, &st.AvgScore, &st.Cleared, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.BoardID] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// parseTime handles both time.Time and string datetime values.
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
