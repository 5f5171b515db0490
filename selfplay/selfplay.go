// Package selfplay runs complete games between two players and turns them
// into archive rows.
package selfplay

import (
	"context"
	"fmt"
	"strings"
	"time"

	"othello-engine/game"
	"othello-engine/player"
	"othello-engine/store"
)

// GameResult summarizes a finished game.
type GameResult struct {
	GameID     string
	Winner     game.Cell // Empty means draw
	WinnerName string
	BlackCount int
	WhiteCount int
	Turns      int
}

// WinnerLabel is the archive representation of the outcome.
func (r GameResult) WinnerLabel() string {
	if r.Winner == game.Empty {
		return "draw"
	}
	return r.Winner.String()
}

// PlayGame plays a full game between black and white from the starting
// position, enforcing the pass rule: a player with no legal move passes, the
// game ends when neither side can move. Both players must be able to propose
// moves (agents); a player that declines with a legal move available is an
// error. The context aborts long games between turns.
func PlayGame(ctx context.Context, gameID, source string, black, white player.Player) ([]store.TurnRow, GameResult, error) {
	if black.Color() != game.Black || white.Color() != game.White {
		return nil, GameResult{}, fmt.Errorf("%w: players must be black and white", game.ErrInvalidArgument)
	}
	if gameID == "" {
		gameID = fmt.Sprintf("selfplay_%d", time.Now().UnixNano())
	}

	board := game.NewBoard()
	current := black
	rows := make([]store.TurnRow, 0, 64)
	turn := int32(0)

	for !board.IsGameOver() {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return nil, GameResult{}, ctx.Err()
			default:
			}
		}

		moves, err := board.LegalMoves(current.Color(), true)
		if err != nil {
			return nil, GameResult{}, err
		}
		if len(moves) == 0 {
			// Pass: the turn goes back to the opponent.
			current = other(current, black, white)
			continue
		}

		pos, ok, err := current.ProposeMove(board)
		if err != nil {
			return nil, GameResult{}, fmt.Errorf("turn %d (%v): %w", turn, current.Color(), err)
		}
		if !ok {
			return nil, GameResult{}, fmt.Errorf("turn %d: %s proposed no move with %d available", turn, current.Name(), len(moves))
		}

		board, err = board.ApplyMove(current.Color(), pos)
		if err != nil {
			return nil, GameResult{}, fmt.Errorf("turn %d (%v at %v): %w", turn, current.Color(), pos, err)
		}

		rows = append(rows, store.TurnRow{
			GameID:     gameID,
			Turn:       turn,
			Mover:      current.Color().String(),
			MoveX:      int32(pos.X),
			MoveY:      int32(pos.Y),
			Board:      flatBoard(board),
			BlackCount: int32(board.CountCells(game.Black)),
			WhiteCount: int32(board.CountCells(game.White)),
			Source:     source,
		})
		turn++
		current = other(current, black, white)
	}

	winner, _ := board.Winner()
	result := GameResult{
		GameID:     gameID,
		Winner:     winner,
		BlackCount: board.CountCells(game.Black),
		WhiteCount: board.CountCells(game.White),
		Turns:      int(turn),
	}
	switch winner {
	case game.Black:
		result.WinnerName = black.Name()
	case game.White:
		result.WinnerName = white.Name()
	}

	// The outcome is only known now; stamp it on every row.
	label := result.WinnerLabel()
	for i := range rows {
		rows[i].Winner = label
	}
	return rows, result, nil
}

func other(current, black, white player.Player) player.Player {
	if current == black {
		return white
	}
	return black
}

// flatBoard is the 64-character archive form of a board.
func flatBoard(b *game.Board) string {
	return strings.ReplaceAll(b.String(), "\n", "")
}
