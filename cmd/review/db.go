package main

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"

	_ "github.com/duckdb/duckdb-go/v2"
)

// GameSummary is one archived game as seen by the review queries.
type GameSummary struct {
	GameID     string
	TurnCount  int32
	Winner     string
	BlackCount int32
	WhiteCount int32
	Source     string
	File       string
}

// WinnerStats aggregates outcomes across every archived game.
type WinnerStats struct {
	Games      int64
	BlackWins  int64
	WhiteWins  int64
	Draws      int64
	TotalTurns int64
}

// openDuckDBWithGlobs creates an in-memory DuckDB connection with a `turns`
// view over every parquet file under the given roots. Glob patterns are much
// faster than enumerating files ourselves.
func openDuckDBWithGlobs(roots []string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, err
	}
	_, _ = db.Exec("PRAGMA threads=4")

	globs := make([]string, 0, len(roots))
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		glob := filepath.Join(root, "**", "*.parquet")
		globs = append(globs, "'"+escapeSQLString(glob)+"'")
	}
	if len(globs) == 0 {
		_ = db.Close()
		return nil, errNoRoots
	}

	// Exclude the tmp staging directories the batch writer uses.
	sqlText := `CREATE OR REPLACE VIEW turns AS
		SELECT * FROM read_parquet([` + strings.Join(globs, ",") + `], filename=true, union_by_name=true)
		WHERE NOT contains(filename, '/tmp/')`
	if _, err := db.Exec(sqlText); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func escapeSQLString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// queryGames returns one summary row per archived game, newest first.
func queryGames(ctx context.Context, db *sql.DB, limit int) ([]GameSummary, error) {
	query := `WITH last_turns AS (
		SELECT game_id, black_count, white_count, winner, source, filename,
			row_number() OVER (PARTITION BY game_id ORDER BY turn DESC) AS rn
		FROM turns
	),
	counts AS (
		SELECT game_id, COUNT(*)::INTEGER AS turn_count
		FROM turns
		GROUP BY game_id
	)
	SELECT l.game_id, c.turn_count, l.winner, l.black_count, l.white_count, l.source, l.filename
	FROM last_turns l
	JOIN counts c ON c.game_id = l.game_id
	WHERE l.rn = 1
	ORDER BY l.game_id DESC
	LIMIT ?`

	rows, err := db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]GameSummary, 0, limit)
	for rows.Next() {
		var g GameSummary
		if err := rows.Scan(&g.GameID, &g.TurnCount, &g.Winner, &g.BlackCount, &g.WhiteCount, &g.Source, &g.File); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func queryWinnerStats(ctx context.Context, db *sql.DB) (WinnerStats, error) {
	query := `WITH games AS (
		SELECT game_id, MIN(winner) AS winner, COUNT(*)::BIGINT AS turn_count
		FROM turns
		GROUP BY game_id
	)
	SELECT
		COUNT(*)::BIGINT AS games,
		SUM(CASE WHEN winner = 'black' THEN 1 ELSE 0 END)::BIGINT AS black_wins,
		SUM(CASE WHEN winner = 'white' THEN 1 ELSE 0 END)::BIGINT AS white_wins,
		SUM(CASE WHEN winner = 'draw' THEN 1 ELSE 0 END)::BIGINT AS draws,
		SUM(turn_count)::BIGINT AS total_turns
	FROM games`

	var s WinnerStats
	err := db.QueryRowContext(ctx, query).Scan(&s.Games, &s.BlackWins, &s.WhiteWins, &s.Draws, &s.TotalTurns)
	return s, err
}

// Turn is one archived move with the resulting position.
type Turn struct {
	Turn       int32
	Mover      string
	MoveX      int32
	MoveY      int32
	Board      string
	BlackCount int32
	WhiteCount int32
}

func queryTurns(ctx context.Context, db *sql.DB, gameID string) ([]Turn, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT turn::INTEGER, mover, move_x::INTEGER, move_y::INTEGER, board, black_count::INTEGER, white_count::INTEGER
		 FROM turns
		 WHERE game_id = ?
		 ORDER BY turn ASC`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	turns := make([]Turn, 0, 64)
	for rows.Next() {
		var t Turn
		if err := rows.Scan(&t.Turn, &t.Mover, &t.MoveX, &t.MoveY, &t.Board, &t.BlackCount, &t.WhiteCount); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
