// Command selfplay runs headless agent-vs-agent games and archives every
// turn to parquet batches for later review.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"othello-engine/config"
	"othello-engine/game"
	"othello-engine/logging"
	"othello-engine/player"
	"othello-engine/selfplay"
	"othello-engine/store"
)

var (
	totalGames atomic.Int64
	totalTurns atomic.Int64
)

type gameWriteRequest struct {
	rows []store.TurnRow
}

func main() {
	cfgPath := flag.String("config", "othello.env", "Path to optional config file")
	outDir := flag.String("out-dir", "", "Output directory for archived game parquet batches (overrides config)")
	workers := flag.Int("workers", 4, "Number of self-play workers")
	gamesPerFlush := flag.Int("games-per-flush", 50, "Number of games to buffer per parquet flush")
	maxGames := flag.Int64("max-games", 0, "If > 0, stop after this many games (across all workers)")
	blackDepth := flag.Int("black-depth", 0, "Search depth for the black agent (0 uses config/default)")
	whiteDepth := flag.Int("white-depth", 0, "Search depth for the white agent (0 uses config/default)")
	flag.Parse()

	logger := logging.New(os.Stderr, slog.LevelInfo)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.Error("failed to load config", "path", *cfgPath, "err", err)
		os.Exit(1)
	}
	if *outDir == "" {
		*outDir = cfg.ArchiveDir
	}

	blackCfg := cfg.SearchConfig()
	whiteCfg := cfg.SearchConfig()
	if *blackDepth > 0 {
		blackCfg.Depth = *blackDepth
	}
	if *whiteDepth > 0 {
		whiteCfg.Depth = *whiteDepth
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	logger.Info("starting self-play",
		"workers", *workers,
		"out_dir", *outDir,
		"black_depth", blackCfg.Depth,
		"white_depth", whiteCfg.Depth,
	)

	writeReqs := make(chan gameWriteRequest, (*workers)*4)
	writerDone := make(chan struct{})
	go func() {
		parquetWriterLoop(logger, *outDir, *gamesPerFlush, writeReqs)
		close(writerDone)
	}()

	var workerWG sync.WaitGroup
	for i := 0; i < *workers; i++ {
		workerWG.Add(1)
		go func(workerID int) {
			defer workerWG.Done()
			black, err := player.NewSearch(game.Black, "black_agent", blackCfg)
			if err != nil {
				logger.Error("worker setup failed", "worker", workerID, "err", err)
				return
			}
			white, err := player.NewSearch(game.White, "white_agent", whiteCfg)
			if err != nil {
				logger.Error("worker setup failed", "worker", workerID, "err", err)
				return
			}

			for {
				select {
				case <-ctx.Done():
					return
				default:
				}

				gameID := fmt.Sprintf("selfplay_%d_%d", workerID, time.Now().UnixNano())
				rows, result, err := selfplay.PlayGame(ctx, gameID, "selfplay", black, white)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					logger.Error("game aborted", "worker", workerID, "game_id", gameID, "err", err)
					continue
				}

				total := totalGames.Add(1)
				totalTurns.Add(int64(result.Turns))
				logger.Info("game finished",
					"worker", workerID,
					"game_id", result.GameID,
					"winner", result.WinnerLabel(),
					"black", result.BlackCount,
					"white", result.WhiteCount,
					"turns", result.Turns,
					"total_games", total,
				)

				if len(rows) > 0 {
					writeReqs <- gameWriteRequest{rows: rows}
				}
				if *maxGames > 0 && total >= *maxGames {
					cancel()
				}
			}
		}(i)
	}

	startTime := time.Now()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutdown requested; waiting for workers to finish current games")
			workerWG.Wait()
			close(writeReqs)
			<-writerDone
			logger.Info("shutdown complete", "games", totalGames.Load(), "turns", totalTurns.Load())
			return
		case <-ticker.C:
			elapsed := time.Since(startTime)
			games := totalGames.Load()
			turns := totalTurns.Load()
			logger.Info("stats",
				"games", games,
				"turns", turns,
				"games_per_min", float64(games)/elapsed.Minutes(),
			)
		}
	}
}

func parquetWriterLoop(logger *slog.Logger, outDir string, gamesPerFlush int, in <-chan gameWriteRequest) {
	if gamesPerFlush <= 0 {
		gamesPerFlush = 50
	}

	pendingRows := make([]store.TurnRow, 0, 64*gamesPerFlush)
	pendingGames := 0

	flush := func(final bool) {
		if pendingGames == 0 || len(pendingRows) == 0 {
			return
		}
		outPath, err := store.WriteArchiveBatchAtomic(outDir, pendingRows)
		if err != nil {
			logger.Error("parquet flush failed",
				"final", final, "games", pendingGames, "rows", len(pendingRows), "err", err)
		} else {
			logger.Info("parquet flush ok",
				"final", final, "path", outPath, "games", pendingGames, "rows", len(pendingRows))
		}
		pendingRows = pendingRows[:0]
		pendingGames = 0
	}

	for req := range in {
		if len(req.rows) == 0 {
			continue
		}
		pendingRows = append(pendingRows, req.rows...)
		pendingGames++
		if pendingGames >= gamesPerFlush {
			flush(false)
		}
	}
	flush(true)
}
