package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// TurnRow is one move of an archived game.
//
// Rows are self-contained: every row carries the board snapshot after the
// move plus the final outcome, so tools can query single turns without
// reassembling the game. Board is the 64-byte row-major cell dump produced
// by game.Board.String with newlines stripped ('.', 'B', 'W').
type TurnRow struct {
	GameID string `parquet:"game_id,dict"`
	Turn   int32  `parquet:"turn"`

	Mover string `parquet:"mover,dict"`
	MoveX int32  `parquet:"move_x"`
	MoveY int32  `parquet:"move_y"`

	Board string `parquet:"board"`

	BlackCount int32 `parquet:"black_count"`
	WhiteCount int32 `parquet:"white_count"`

	// Winner is the final game outcome ("black", "white" or "draw"),
	// repeated on every row of the game.
	Winner string `parquet:"winner,dict"`

	Source string `parquet:"source,dict"`
}

const archiveSchema = "othello_turn_v1"

// WriteArchiveParquet writes a game archive to outPath, creating parent
// directories as needed. The file appears atomically via tmp+rename.
func WriteArchiveParquet(outPath string, rows []TurnRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", archiveSchema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// WriteArchiveBatchAtomic writes a batch file holding one or more games into
// outDir. The file is staged under outDir/tmp and moved into place, so
// long-running writers never expose partially-written parquet files to
// readers. Returns the final file path.
func WriteArchiveBatchAtomic(outDir string, rows []TurnRow) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmpDir := filepath.Join(outDir, "tmp")
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", fmt.Errorf("create tmp dir: %w", err)
	}

	name := fmt.Sprintf("games_%d.parquet", time.Now().UnixNano())
	finalPath := filepath.Join(outDir, name)
	tmpPath := filepath.Join(tmpDir, name+".tmp")
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", archiveSchema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", fmt.Errorf("rename parquet: %w", err)
	}

	return finalPath, nil
}

// ReadArchiveParquet loads every row of an archive file.
func ReadArchiveParquet(path string) ([]TurnRow, error) {
	rows, err := parquet.ReadFile[TurnRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
