// Package store persists saved games and daily results to SQLite.
//
// The engine stays I/O-free; sessions serialize their history and hand
// the bytes here. Corrupt rows are the caller's problem to fail closed
// on (the history deserializer already does), so this layer only moves
// bytes.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a saved game does not exist.
var ErrNotFound = errors.New("store: not found")

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if missing) the SQLite database at dsn with WAL
// journaling, a busy timeout, and foreign keys on, then applies the
// schema migrations.
func Open(dsn string) (*Store, error) {
	if dir := filepath.Dir(dsn); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			id         TEXT PRIMARY KEY,
			game_type  TEXT NOT NULL,
			history    BLOB NOT NULL,
			share_code TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS daily_results (
			date   TEXT NOT NULL,
			player TEXT NOT NULL,
			moves  INTEGER NOT NULL,
			won    INTEGER NOT NULL,
			PRIMARY KEY (date, player)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_results_date ON daily_results(date)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// SavedGame is one persisted session: its serialized history plus the
// share code of the current position for quick linking.
type SavedGame struct {
	ID        string
	GameType  string
	History   []byte
	ShareCode string
	UpdatedAt time.Time
}

// SaveGame upserts a saved game.
func (s *Store) SaveGame(ctx context.Context, g SavedGame) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO saves (id, game_type, history, share_code, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			game_type = excluded.game_type,
			history = excluded.history,
			share_code = excluded.share_code,
			updated_at = excluded.updated_at`,
		g.ID, g.GameType, g.History, g.ShareCode, g.UpdatedAt.UTC())
	return err
}

// LoadGame fetches a saved game by id.
func (s *Store) LoadGame(ctx context.Context, id string) (SavedGame, error) {
	var g SavedGame
	err := s.db.QueryRowContext(ctx, `
		SELECT id, game_type, history, share_code, updated_at
		FROM saves WHERE id = ?`, id).
		Scan(&g.ID, &g.GameType, &g.History, &g.ShareCode, &g.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return SavedGame{}, ErrNotFound
	}
	return g, err
}

// DeleteGame removes a saved game; deleting a missing game is not an
// error.
func (s *Store) DeleteGame(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM saves WHERE id = ?`, id)
	return err
}

// DailyResult is one player's finish on a daily deal.
type DailyResult struct {
	Date   string `json:"date"`
	Player string `json:"player"`
	Moves  int    `json:"moves"`
	Won    bool   `json:"won"`
}

// RecordDailyResult upserts a player's result for a date, keeping the
// better (fewer-move) winning attempt.
func (s *Store) RecordDailyResult(ctx context.Context, r DailyResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO daily_results (date, player, moves, won)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(date, player) DO UPDATE SET
			moves = excluded.moves,
			won = excluded.won
		WHERE excluded.won > daily_results.won
		   OR (excluded.won = daily_results.won AND excluded.moves < daily_results.moves)`,
		r.Date, r.Player, r.Moves, boolToInt(r.Won))
	return err
}

// DailyLeaderboard lists results for a date: winners first, fewest
// moves first.
func (s *Store) DailyLeaderboard(ctx context.Context, date string, limit int) ([]DailyResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT date, player, moves, won FROM daily_results
		WHERE date = ?
		ORDER BY won DESC, moves ASC
		LIMIT ?`, date, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DailyResult
	for rows.Next() {
		var r DailyResult
		var won int
		if err := rows.Scan(&r.Date, &r.Player, &r.Moves, &won); err != nil {
			return nil, err
		}
		r.Won = won != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
