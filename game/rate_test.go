package game

import (
	"errors"
	"testing"
)

func TestDefaultWeights_Symmetry(t *testing.T) {
	w := DefaultWeights()
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			v := w[y][x]
			if hv := w[y][BoardSize-1-x]; hv != v {
				t.Errorf("horizontal asymmetry at (%d,%d): %d vs %d", x, y, v, hv)
			}
			if vv := w[BoardSize-1-y][x]; vv != v {
				t.Errorf("vertical asymmetry at (%d,%d): %d vs %d", x, y, v, vv)
			}
		}
	}

	if got := w.At(Position{X: 0, Y: 0}); got != 50 {
		t.Errorf("corner weight = %d, want 50", got)
	}
	if got := w.At(Position{X: 1, Y: 1}); got != -10 {
		t.Errorf("X-square weight = %d, want -10", got)
	}
	if got := w.At(Position{X: 1, Y: 0}); got != -5 {
		t.Errorf("C-square weight = %d, want -5", got)
	}
}

func TestRate_OpeningPosition(t *testing.T) {
	b := NewBoard()
	w := DefaultWeights()

	// Both players hold two interior disks (weight 1 each) and face four
	// opposing legal moves: 2 - 4 = -2.
	for _, player := range []Cell{Black, White} {
		got, err := b.Rate(player, w)
		if err != nil {
			t.Fatalf("Rate(%v) failed: %v", player, err)
		}
		if got != -2 {
			t.Errorf("Rate(%v) = %d, want -2", player, got)
		}
	}
}

func TestRate_DecidedGame(t *testing.T) {
	b := mustParse(t, `
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		BBBBBBBB
		BBBBWWWW
	`)
	w := DefaultWeights()

	got, err := b.Rate(Black, w)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if got != WinScore {
		t.Errorf("Rate(winner) = %d, want WinScore", got)
	}
	got, err = b.Rate(White, w)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if got != LossScore {
		t.Errorf("Rate(loser) = %d, want LossScore", got)
	}
}

func TestRate_DrawUsesPositionalScore(t *testing.T) {
	b := mustParse(t, `
		BBBBWWWW
		BBBBWWWW
		BBBBWWWW
		BBBBWWWW
		BBBBWWWW
		BBBBWWWW
		BBBBWWWW
		BBBBWWWW
	`)
	w := DefaultWeights()

	blackScore, err := b.Rate(Black, w)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	whiteScore, err := b.Rate(White, w)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if blackScore != whiteScore {
		t.Errorf("draw scores differ: black %d, white %d", blackScore, whiteScore)
	}
	if blackScore == WinScore || blackScore == LossScore {
		t.Errorf("draw score = %d, want a positional score, not a sentinel", blackScore)
	}
}

func TestRate_InvalidArguments(t *testing.T) {
	b := NewBoard()
	if _, err := b.Rate(Empty, DefaultWeights()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Rate(Empty) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := b.Rate(Black, nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Rate with nil weights error = %v, want ErrInvalidArgument", err)
	}
}

func TestPoints_WinnerTakesEmptyCells(t *testing.T) {
	// Black owns every disk; the 60 empty cells go to the winner.
	b := mustParse(t, `
		BB......
		BB......
		........
		........
		........
		........
		........
		........
	`)
	if !b.IsGameOver() {
		t.Fatal("expected a finished game")
	}

	blackPoints, err := b.Points(Black)
	if err != nil {
		t.Fatalf("Points failed: %v", err)
	}
	if blackPoints != 64 {
		t.Errorf("Points(Black) = %d, want 64", blackPoints)
	}
	whitePoints, err := b.Points(White)
	if err != nil {
		t.Fatalf("Points failed: %v", err)
	}
	if whitePoints != 0 {
		t.Errorf("Points(White) = %d, want 0", whitePoints)
	}
}
