package game

import (
	"fmt"
	"math"
)

// Score sentinels for decided games. Half the int32 range rather than the
// full range, because search propagates scores through comparisons against
// open bounds and must never overflow.
const (
	WinScore  = math.MaxInt32 / 2
	LossScore = math.MinInt32 / 2
)

// Weights assigns a positional value to every cell, indexed [y][x].
type Weights [BoardSize][BoardSize]int

// At returns the weight of the cell at p.
func (w *Weights) At(p Position) int {
	return w[p.Y][p.X]
}

// DefaultWeights returns the standard disk-square table: corners are worth
// holding (50), the cells diagonally adjacent to corners are traps that hand
// the corner to the opponent (-10), edge cells next to corners are mildly
// bad (-5), remaining edges are stable (4) and the interior is neutral (1).
func DefaultWeights() *Weights {
	return &Weights{
		{50, -5, 4, 4, 4, 4, -5, 50},
		{-5, -10, 1, 1, 1, 1, -10, -5},
		{4, 1, 1, 1, 1, 1, 1, 4},
		{4, 1, 1, 1, 1, 1, 1, 4},
		{4, 1, 1, 1, 1, 1, 1, 4},
		{4, 1, 1, 1, 1, 1, 1, 4},
		{-5, -10, 1, 1, 1, 1, -10, -5},
		{50, -5, 4, 4, 4, 4, -5, 50},
	}
}

// Rate scores the board from player's perspective: WinScore when the game is
// over and player won, LossScore when the opponent won, and otherwise the
// weighted disk count minus the opponent's mobility (their deep legal-move
// count), so positions that leave the opponent fewer options score higher.
func (b *Board) Rate(player Cell, weights *Weights) (int, error) {
	if err := validatePlayer(player); err != nil {
		return 0, err
	}
	if weights == nil {
		return 0, fmt.Errorf("%w: nil weights", ErrInvalidArgument)
	}

	if winner, over := b.Winner(); over {
		switch winner {
		case player:
			return WinScore, nil
		case player.Opponent():
			return LossScore, nil
		}
		// A draw falls through to the positional score.
	}

	mobility := len(b.legalMoves(player.Opponent(), true))
	return b.weightedCount(player, weights) - mobility, nil
}

func (b *Board) weightedCount(player Cell, weights *Weights) int {
	sum := 0
	for _, p := range positions {
		if b.cells[p.X][p.Y] == player {
			sum += weights.At(p)
		}
	}
	return sum
}

// Points returns the player's score under the tournament counting rule that
// awards empty cells to the winner. The default evaluation does not use
// this; it exists as a documented alternative for score keeping.
func (b *Board) Points(player Cell) (int, error) {
	if err := validatePlayer(player); err != nil {
		return 0, err
	}
	count := b.CountCells(player)
	if winner, over := b.Winner(); over && winner == player {
		return count + b.CountCells(Empty), nil
	}
	return count, nil
}
