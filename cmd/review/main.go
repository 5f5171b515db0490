// Command review inspects archived games and high scores from the command
// line: list recent games, aggregate winner stats, or replay one game's
// positions turn by turn.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"othello-engine/config"
	"othello-engine/game"
	"othello-engine/store"
)

var errNoRoots = errors.New("no archive roots given")

func main() {
	cfgPath := flag.String("config", "othello.env", "Path to optional config file")
	archiveDir := flag.String("archive", "", "Archive directory to read (overrides config)")
	limit := flag.Int("limit", 20, "Maximum games or scores to list")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *archiveDir == "" {
		*archiveDir = cfg.ArchiveDir
	}

	cmd := flag.Arg(0)
	if cmd == "" {
		cmd = "stats"
	}

	ctx := context.Background()
	switch cmd {
	case "games":
		runGames(ctx, *archiveDir, *limit)
	case "stats":
		runStats(ctx, *archiveDir)
	case "game":
		gameID := flag.Arg(1)
		if gameID == "" {
			log.Fatal("Usage: review game <game_id>")
		}
		runGame(ctx, *archiveDir, gameID)
	case "scores":
		runScores(cfg.HighscorePath, *limit)
	default:
		log.Fatalf("Unknown command %q (want games, stats, game or scores)", cmd)
	}
}

func runGames(ctx context.Context, archiveDir string, limit int) {
	db, err := openDuckDBWithGlobs([]string{archiveDir})
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	defer db.Close()

	games, err := queryGames(ctx, db, limit)
	if err != nil {
		log.Fatalf("Failed to query games: %v", err)
	}
	if len(games) == 0 {
		fmt.Println("No archived games found.")
		return
	}

	fmt.Printf("%-40s %6s %-6s %6s %6s %s\n", "GAME", "TURNS", "WINNER", "BLACK", "WHITE", "SOURCE")
	for _, g := range games {
		fmt.Printf("%-40s %6d %-6s %6d %6d %s\n",
			g.GameID, g.TurnCount, g.Winner, g.BlackCount, g.WhiteCount, g.Source)
	}
}

func runStats(ctx context.Context, archiveDir string) {
	db, err := openDuckDBWithGlobs([]string{archiveDir})
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	defer db.Close()

	s, err := queryWinnerStats(ctx, db)
	if err != nil {
		log.Fatalf("Failed to query stats: %v", err)
	}
	if s.Games == 0 {
		fmt.Println("No archived games found.")
		return
	}

	fmt.Printf("Games:      %d\n", s.Games)
	fmt.Printf("Black wins: %d (%.1f%%)\n", s.BlackWins, pct(s.BlackWins, s.Games))
	fmt.Printf("White wins: %d (%.1f%%)\n", s.WhiteWins, pct(s.WhiteWins, s.Games))
	fmt.Printf("Draws:      %d (%.1f%%)\n", s.Draws, pct(s.Draws, s.Games))
	fmt.Printf("Avg turns:  %.1f\n", float64(s.TotalTurns)/float64(s.Games))
}

func runGame(ctx context.Context, archiveDir, gameID string) {
	db, err := openDuckDBWithGlobs([]string{archiveDir})
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	defer db.Close()

	turns, err := queryTurns(ctx, db, gameID)
	if err != nil {
		log.Fatalf("Failed to query turns: %v", err)
	}
	if len(turns) == 0 {
		fmt.Printf("No turns found for game %s.\n", gameID)
		os.Exit(1)
	}

	for _, t := range turns {
		fmt.Printf("turn %d: %s plays (%d,%d)  B:%d W:%d\n",
			t.Turn, t.Mover, t.MoveX, t.MoveY, t.BlackCount, t.WhiteCount)
		fmt.Println(renderBoard(t.Board))
	}
}

func runScores(dbPath string, limit int) {
	hs, err := store.OpenHighscores(dbPath)
	if err != nil {
		log.Fatalf("Failed to open high scores: %v", err)
	}
	defer hs.Close()

	scores, err := hs.Top(limit)
	if err != nil {
		log.Fatalf("Failed to query high scores: %v", err)
	}
	if len(scores) == 0 {
		fmt.Println("No high scores yet.")
		return
	}

	for i, s := range scores {
		fmt.Printf("%2d. %-20s %3d  %s\n", i+1, s.Player, s.Score, s.AchievedAt.Format("2006-01-02 15:04"))
	}
}

// renderBoard re-wraps the flat 64-char board dump into rows.
func renderBoard(flat string) string {
	var sb strings.Builder
	for y := 0; y < game.BoardSize; y++ {
		start := y * game.BoardSize
		if start+game.BoardSize > len(flat) {
			break
		}
		sb.WriteString("  ")
		sb.WriteString(flat[start : start+game.BoardSize])
		sb.WriteString("\n")
	}
	return sb.String()
}

func pct(n, total int64) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
