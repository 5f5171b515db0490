package game

import (
	"fmt"
	"strings"
	"sync"
)

// Board is an immutable snapshot of an Othello game.
//
// Boards are created by NewBoard and ApplyMove and never change afterwards.
// The only mutable piece is a per-instance memo of the last legal-move query,
// which is invisible to callers: repeated queries with the same arguments on
// the same Board return the same set.
type Board struct {
	cells [BoardSize][BoardSize]Cell // indexed [x][y]

	// Legal-move memo. A single entry keyed by (player, deep); a query with
	// a different key replaces it. Never shared between Board instances.
	mu         sync.Mutex
	memoValid  bool
	memoPlayer Cell
	memoDeep   bool
	memoMoves  []Position
}

// NewBoard returns the starting position: empty everywhere except the four
// center cells, with White on (3,3) and (4,4) and Black on (4,3) and (3,4).
func NewBoard() *Board {
	b := &Board{}
	b.cells[3][3] = White
	b.cells[4][4] = White
	b.cells[4][3] = Black
	b.cells[3][4] = Black
	return b
}

func validatePlayer(player Cell) error {
	if !player.IsPlayer() {
		return fmt.Errorf("%w: %v is not a player", ErrInvalidArgument, player)
	}
	return nil
}

// CellAt returns the cell content at p.
// Fails with ErrInvalidArgument if p is outside the board.
func (b *Board) CellAt(p Position) (Cell, error) {
	if !p.InBounds() {
		return Empty, fmt.Errorf("%w: position %v out of range", ErrInvalidArgument, p)
	}
	return b.cells[p.X][p.Y], nil
}

// LegalMoves returns the moves available to player, in stable scan order.
//
// With deep=false the result is the cheap superset of candidate moves: every
// empty cell adjacent (8-neighborhood) to at least one opposing disk. With
// deep=true only candidates with a non-empty flip set remain, i.e. the true
// legal moves. Fails with ErrInvalidArgument if player is not Black or White.
func (b *Board) LegalMoves(player Cell, deep bool) ([]Position, error) {
	if err := validatePlayer(player); err != nil {
		return nil, err
	}
	moves := b.legalMoves(player, deep)
	out := make([]Position, len(moves))
	copy(out, moves)
	return out, nil
}

// legalMoves computes (or recalls) the move set for a validated player.
// The returned slice is the memo itself and must not be modified.
func (b *Board) legalMoves(player Cell, deep bool) []Position {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.memoValid && b.memoPlayer == player && b.memoDeep == deep {
		return b.memoMoves
	}

	opponent := player.Opponent()
	var moves []Position
	for _, p := range positions {
		if b.cells[p.X][p.Y] != Empty {
			continue
		}
		if !b.adjacentTo(p, opponent) {
			continue
		}
		if deep && len(b.linesToFlip(p, player)) == 0 {
			continue
		}
		moves = append(moves, p)
	}

	b.memoValid = true
	b.memoPlayer = player
	b.memoDeep = deep
	b.memoMoves = moves
	return moves
}

// adjacentTo reports whether any of the 8 neighbors of p holds c.
func (b *Board) adjacentTo(p Position, c Cell) bool {
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Position{X: p.X + dx, Y: p.Y + dy}
			if n.InBounds() && b.cells[n.X][n.Y] == c {
				return true
			}
		}
	}
	return false
}

// axes groups the 8 scan directions into 4 axes: vertical, horizontal and
// the two diagonals. The two directions of one axis merge into one line.
var axes = [4][2][2]int{
	{{0, 1}, {0, -1}},
	{{1, 0}, {-1, 0}},
	{{1, 1}, {-1, -1}},
	{{1, -1}, {-1, 1}},
}

// LinesToFlip returns, per axis, the run of opponent disks that placing a
// player disk at p would flip. A direction contributes its run only when the
// run ends at a same-color disk before any empty cell or the board edge.
// Axes that contribute nothing are omitted, so the result holds at most 4
// non-empty lines. Fails with ErrInvalidArgument on a bad position or player.
func (b *Board) LinesToFlip(p Position, player Cell) ([][]Position, error) {
	if !p.InBounds() {
		return nil, fmt.Errorf("%w: position %v out of range", ErrInvalidArgument, p)
	}
	if err := validatePlayer(player); err != nil {
		return nil, err
	}
	return b.linesToFlip(p, player), nil
}

func (b *Board) linesToFlip(p Position, player Cell) [][]Position {
	var lines [][]Position
	for _, axis := range axes {
		line := b.flipRun(p, axis[0][0], axis[0][1], player)
		line = append(line, b.flipRun(p, axis[1][0], axis[1][1], player)...)
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return lines
}

// flipRun walks from p in direction (dx,dy) and returns the consecutive
// opponent disks, provided the run is terminated by a player disk. An empty
// cell or the board edge invalidates the whole direction.
func (b *Board) flipRun(p Position, dx, dy int, player Cell) []Position {
	opponent := player.Opponent()
	var run []Position
	for cur := (Position{X: p.X + dx, Y: p.Y + dy}); cur.InBounds(); cur.X, cur.Y = cur.X+dx, cur.Y+dy {
		switch b.cells[cur.X][cur.Y] {
		case opponent:
			run = append(run, cur)
		case player:
			return run
		default:
			return nil
		}
	}
	return nil
}

// ApplyMove places a player disk at p and flips every enclosed opponent run,
// returning the resulting Board. The receiver is left untouched.
//
// Fails with ErrInvalidArgument on a bad player and with ErrInvalidMove when
// p is not in the player's deep legal-move set or flips nothing.
func (b *Board) ApplyMove(player Cell, p Position) (*Board, error) {
	if err := validatePlayer(player); err != nil {
		return nil, err
	}
	if !p.InBounds() {
		return nil, fmt.Errorf("%w: position %v out of range", ErrInvalidArgument, p)
	}
	legal := false
	for _, m := range b.legalMoves(player, true) {
		if m == p {
			legal = true
			break
		}
	}
	if !legal {
		return nil, fmt.Errorf("%w: %v is not legal for %v", ErrInvalidMove, p, player)
	}
	lines := b.linesToFlip(p, player)
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %v flips nothing for %v", ErrInvalidMove, p, player)
	}

	next := &Board{cells: b.cells}
	for _, line := range lines {
		for _, fp := range line {
			if err := next.place(fp, player); err != nil {
				return nil, err
			}
		}
	}
	if err := next.place(p, player); err != nil {
		return nil, err
	}
	return next, nil
}

// place sets a cell to the player's color, asserting that the cell actually
// changes. Only used while constructing a new Board inside ApplyMove.
func (b *Board) place(p Position, player Cell) error {
	if b.cells[p.X][p.Y] == player {
		return fmt.Errorf("%w: %v did not change at %v", ErrInvalidMove, player, p)
	}
	b.cells[p.X][p.Y] = player
	return nil
}

// IsGameOver reports whether neither player has a legal move left.
func (b *Board) IsGameOver() bool {
	return len(b.legalMoves(Black, true)) == 0 && len(b.legalMoves(White, true)) == 0
}

// Winner returns the color holding more disks once the game is over, or
// Empty for a draw. The second return value is false while the game is
// still running.
func (b *Board) Winner() (Cell, bool) {
	if !b.IsGameOver() {
		return Empty, false
	}
	blackCount := b.CountCells(Black)
	whiteCount := b.CountCells(White)
	switch {
	case blackCount > whiteCount:
		return Black, true
	case whiteCount > blackCount:
		return White, true
	default:
		return Empty, true
	}
}

// CountCells returns the number of cells holding c. Empty is a valid
// argument and counts the unoccupied cells.
func (b *Board) CountCells(c Cell) int {
	count := 0
	for _, p := range positions {
		if b.cells[p.X][p.Y] == c {
			count++
		}
	}
	return count
}

// Parse builds a Board from the diagram format String produces: BoardSize
// rows of '.', 'B' and 'W', top row first. Whitespace between rows is
// ignored, so indented raw-string literals parse cleanly.
func Parse(diagram string) (*Board, error) {
	cleaned := strings.Join(strings.Fields(diagram), "")
	if len(cleaned) != BoardSize*BoardSize {
		return nil, fmt.Errorf("%w: diagram has %d cells, want %d", ErrInvalidArgument, len(cleaned), BoardSize*BoardSize)
	}
	b := &Board{}
	for i := 0; i < len(cleaned); i++ {
		x, y := i%BoardSize, i/BoardSize
		switch cleaned[i] {
		case 'B':
			b.cells[x][y] = Black
		case 'W':
			b.cells[x][y] = White
		case '.':
		default:
			return nil, fmt.Errorf("%w: unexpected cell %q at (%d,%d)", ErrInvalidArgument, cleaned[i], x, y)
		}
	}
	return b, nil
}

// String renders the board top-to-bottom with '.', 'B' and 'W'.
func (b *Board) String() string {
	var sb strings.Builder
	for y := 0; y < BoardSize; y++ {
		for x := 0; x < BoardSize; x++ {
			switch b.cells[x][y] {
			case Black:
				sb.WriteByte('B')
			case White:
				sb.WriteByte('W')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
