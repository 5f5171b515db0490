// Package store persists finished games: the high-score table lives in
// SQLite, full game records go to parquet archives.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Score is one high-score entry: who won, with how many disks, and when.
type Score struct {
	Player     string
	Score      int
	AchievedAt time.Time
}

// Highscores wraps the SQLite connection with thread-safe operations.
type Highscores struct {
	conn *sql.DB
	mu   sync.Mutex
}

// OpenHighscores opens (or creates) the high-score database at dbPath.
func OpenHighscores(dbPath string) (*Highscores, error) {
	conn, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open highscore db: %w", err)
	}

	// SQLite only supports one writer.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	h := &Highscores{conn: conn}
	if err := h.initSchema(); err != nil {
		conn.Close()
		return nil, err
	}
	return h, nil
}

func (h *Highscores) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS highscores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		player TEXT NOT NULL,
		score INTEGER NOT NULL CHECK (score >= 0),
		achieved_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_highscores_score ON highscores(score DESC);
	`

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := h.conn.Exec(schema); err != nil {
		return fmt.Errorf("create highscore schema: %w", err)
	}
	return nil
}

// Add records a score. Empty player names are stored as "<no_name>".
func (h *Highscores) Add(s Score) error {
	if s.Score < 0 {
		return fmt.Errorf("score must not be negative: %d", s.Score)
	}
	name := s.Player
	if name == "" {
		name = "<no_name>"
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.conn.Exec(
		"INSERT INTO highscores (player, score, achieved_at) VALUES (?, ?, ?)",
		name, s.Score, s.AchievedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert highscore: %w", err)
	}
	return nil
}

// Top returns the best scores, highest first, most recent first on ties.
func (h *Highscores) Top(limit int) ([]Score, error) {
	if limit <= 0 {
		limit = 10
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	rows, err := h.conn.Query(
		"SELECT player, score, achieved_at FROM highscores ORDER BY score DESC, achieved_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query highscores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var s Score
		if err := rows.Scan(&s.Player, &s.Score, &s.AchievedAt); err != nil {
			return nil, fmt.Errorf("scan highscore: %w", err)
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}

// Close closes the database connection.
func (h *Highscores) Close() error {
	return h.conn.Close()
}
