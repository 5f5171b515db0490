package game

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, diagram string) *Board {
	t.Helper()
	b, err := Parse(diagram)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return b
}

func positionSet(moves []Position) map[Position]bool {
	set := make(map[Position]bool, len(moves))
	for _, m := range moves {
		set[m] = true
	}
	return set
}

func TestNewBoard_StartingPosition(t *testing.T) {
	b := NewBoard()

	want := map[Position]Cell{
		{X: 3, Y: 3}: White,
		{X: 4, Y: 4}: White,
		{X: 4, Y: 3}: Black,
		{X: 3, Y: 4}: Black,
	}
	for p, wantCell := range want {
		got, err := b.CellAt(p)
		if err != nil {
			t.Fatalf("CellAt(%v) failed: %v", p, err)
		}
		if got != wantCell {
			t.Errorf("CellAt(%v) = %v, want %v", p, got, wantCell)
		}
	}

	if got := b.CountCells(Black); got != 2 {
		t.Errorf("CountCells(Black) = %d, want 2", got)
	}
	if got := b.CountCells(White); got != 2 {
		t.Errorf("CountCells(White) = %d, want 2", got)
	}
	if got := b.CountCells(Empty); got != 60 {
		t.Errorf("CountCells(Empty) = %d, want 60", got)
	}
}

func TestLegalMoves_Opening(t *testing.T) {
	b := NewBoard()

	deep, err := b.LegalMoves(Black, true)
	if err != nil {
		t.Fatalf("LegalMoves failed: %v", err)
	}
	wantDeep := []Position{{X: 2, Y: 3}, {X: 3, Y: 2}, {X: 4, Y: 5}, {X: 5, Y: 4}}
	if len(deep) != len(wantDeep) {
		t.Fatalf("deep moves = %v, want %v", deep, wantDeep)
	}
	for i, m := range wantDeep {
		if deep[i] != m {
			t.Errorf("deep[%d] = %v, want %v (scan order)", i, deep[i], m)
		}
	}

	shallow, err := b.LegalMoves(Black, false)
	if err != nil {
		t.Fatalf("LegalMoves failed: %v", err)
	}
	if len(shallow) != 10 {
		t.Errorf("shallow moves = %v, want 10 candidates", shallow)
	}
	shallowSet := positionSet(shallow)
	for _, m := range deep {
		if !shallowSet[m] {
			t.Errorf("deep move %v missing from shallow candidates", m)
		}
	}
	for _, m := range shallow {
		cell, err := b.CellAt(m)
		if err != nil {
			t.Fatalf("CellAt(%v) failed: %v", m, err)
		}
		if cell != Empty {
			t.Errorf("shallow candidate %v is not empty", m)
		}
	}
}

func TestLegalMoves_InvalidPlayer(t *testing.T) {
	b := NewBoard()
	if _, err := b.LegalMoves(Empty, true); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("LegalMoves(Empty) error = %v, want ErrInvalidArgument", err)
	}
}

func TestLegalMoves_ResultIsACopy(t *testing.T) {
	b := NewBoard()
	first, err := b.LegalMoves(Black, true)
	if err != nil {
		t.Fatalf("LegalMoves failed: %v", err)
	}
	first[0] = Position{X: 7, Y: 7}

	second, err := b.LegalMoves(Black, true)
	if err != nil {
		t.Fatalf("LegalMoves failed: %v", err)
	}
	if second[0] != (Position{X: 2, Y: 3}) {
		t.Errorf("mutating a returned slice changed the memo: second[0] = %v", second[0])
	}
}

func TestCellAt_OutOfRange(t *testing.T) {
	b := NewBoard()
	for _, p := range []Position{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 8, Y: 0}, {X: 0, Y: 8}} {
		if _, err := b.CellAt(p); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("CellAt(%v) error = %v, want ErrInvalidArgument", p, err)
		}
	}
}

func TestApplyMove_FlipsAndLeavesReceiverUntouched(t *testing.T) {
	b := NewBoard()
	next, err := b.ApplyMove(Black, Position{X: 2, Y: 3})
	if err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}

	if got := next.CountCells(Black); got != 4 {
		t.Errorf("next black count = %d, want 4", got)
	}
	if got := next.CountCells(White); got != 1 {
		t.Errorf("next white count = %d, want 1", got)
	}
	flipped, err := next.CellAt(Position{X: 3, Y: 3})
	if err != nil {
		t.Fatalf("CellAt failed: %v", err)
	}
	if flipped != Black {
		t.Errorf("cell (3,3) = %v, want Black after flip", flipped)
	}

	// Applying the same move again yields an equal state.
	again, err := b.ApplyMove(Black, Position{X: 2, Y: 3})
	if err != nil {
		t.Fatalf("second ApplyMove failed: %v", err)
	}
	if again.String() != next.String() {
		t.Errorf("repeated ApplyMove differs:\n%s\nvs\n%s", again, next)
	}

	// The original board is a different value.
	if got := b.CountCells(Black); got != 2 {
		t.Errorf("original black count = %d, want 2", got)
	}
	orig, err := b.CellAt(Position{X: 2, Y: 3})
	if err != nil {
		t.Fatalf("CellAt failed: %v", err)
	}
	if orig != Empty {
		t.Errorf("original cell (2,3) = %v, want Empty", orig)
	}
}

func TestApplyMove_Rejections(t *testing.T) {
	b := NewBoard()

	if _, err := b.ApplyMove(Empty, Position{X: 2, Y: 3}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ApplyMove(Empty) error = %v, want ErrInvalidArgument", err)
	}
	if _, err := b.ApplyMove(Black, Position{X: 8, Y: 8}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ApplyMove out of range error = %v, want ErrInvalidArgument", err)
	}
	// Occupied cell.
	if _, err := b.ApplyMove(Black, Position{X: 3, Y: 3}); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("ApplyMove on occupied cell error = %v, want ErrInvalidMove", err)
	}
	// Empty but flips nothing.
	if _, err := b.ApplyMove(Black, Position{X: 0, Y: 0}); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("ApplyMove on non-flipping cell error = %v, want ErrInvalidMove", err)
	}
	// A shallow candidate that flips nothing is still rejected.
	if _, err := b.ApplyMove(Black, Position{X: 2, Y: 2}); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("ApplyMove on shallow-only candidate error = %v, want ErrInvalidMove", err)
	}
}

func TestLinesToFlip_MultipleAxes(t *testing.T) {
	b := mustParse(t, `
		...B....
		.B.W....
		..WW....
		.BW.....
		........
		........
		........
		........
	`)

	lines, err := b.LinesToFlip(Position{X: 3, Y: 3}, Black)
	if err != nil {
		t.Fatalf("LinesToFlip failed: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %v", len(lines), lines)
	}

	flips := make(map[Position]bool)
	total := 0
	for _, line := range lines {
		if len(line) == 0 {
			t.Fatal("got an empty line, empty lines must be omitted")
		}
		total += len(line)
		for _, p := range line {
			flips[p] = true
		}
	}
	if total != 4 {
		t.Errorf("got %d flipped positions, want 4", total)
	}
	for _, want := range []Position{{X: 3, Y: 2}, {X: 3, Y: 1}, {X: 2, Y: 3}, {X: 2, Y: 2}} {
		if !flips[want] {
			t.Errorf("expected %v to be flipped", want)
		}
	}

	next, err := b.ApplyMove(Black, Position{X: 3, Y: 3})
	if err != nil {
		t.Fatalf("ApplyMove failed: %v", err)
	}
	if got := next.CountCells(White); got != 0 {
		t.Errorf("white count after move = %d, want 0", got)
	}
	if got := next.CountCells(Black); got != 8 {
		t.Errorf("black count after move = %d, want 8", got)
	}
}

func TestLinesToFlip_EmptyCellBreaksRun(t *testing.T) {
	// The white run is never terminated by a black disk, so nothing flips.
	b := mustParse(t, `
		........
		........
		...W....
		...W....
		........
		...B....
		........
		........
	`)
	lines, err := b.LinesToFlip(Position{X: 3, Y: 1}, Black)
	if err != nil {
		t.Fatalf("LinesToFlip failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("got lines %v, want none across the gap", lines)
	}
}

func TestIsGameOver_PassIsNotGameOver(t *testing.T) {
	// Black has no legal move but White does, so the game continues.
	b := mustParse(t, `
		WB......
		........
		........
		........
		........
		........
		........
		........
	`)

	blackMoves, err := b.LegalMoves(Black, true)
	if err != nil {
		t.Fatalf("LegalMoves failed: %v", err)
	}
	if len(blackMoves) != 0 {
		t.Fatalf("black moves = %v, want none", blackMoves)
	}
	whiteMoves, err := b.LegalMoves(White, true)
	if err != nil {
		t.Fatalf("LegalMoves failed: %v", err)
	}
	if len(whiteMoves) == 0 {
		t.Fatal("white should have a legal move")
	}
	if b.IsGameOver() {
		t.Error("IsGameOver = true, want false while one player can still move")
	}
	if _, over := b.Winner(); over {
		t.Error("Winner reported a finished game")
	}
}

func TestWinner_ByDiskCount(t *testing.T) {
	// No empty cell borders an opposing disk, so neither player can move.
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
	if !b.IsGameOver() {
		t.Fatal("IsGameOver = false, want true")
	}
	winner, over := b.Winner()
	if !over {
		t.Fatal("Winner not reported on a finished game")
	}
	if winner != Black {
		t.Errorf("winner = %v, want Black", winner)
	}
}

func TestWinner_Draw(t *testing.T) {
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
	winner, over := b.Winner()
	if !over {
		t.Fatal("Winner not reported on a full board")
	}
	if winner != Empty {
		t.Errorf("winner = %v, want Empty for a draw", winner)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	b := NewBoard()
	parsed, err := Parse(b.String())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if parsed.String() != b.String() {
		t.Errorf("round trip mismatch:\ngot:\n%swant:\n%s", parsed.String(), b.String())
	}

	if _, err := Parse("BW"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Parse of short diagram error = %v, want ErrInvalidArgument", err)
	}
	if _, err := Parse(string(make([]byte, 64))); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Parse of bad bytes error = %v, want ErrInvalidArgument", err)
	}
}

// TestFullGame_FirstLegalMove plays a complete game where each player always
// takes its first legal move, checking board invariants after every turn.
func TestFullGame_FirstLegalMove(t *testing.T) {
	b := NewBoard()
	current := Black
	passes := 0

	for turn := 0; turn < 200; turn++ {
		if b.IsGameOver() {
			break
		}
		moves, err := b.LegalMoves(current, true)
		if err != nil {
			t.Fatalf("LegalMoves failed: %v", err)
		}
		if len(moves) == 0 {
			current = current.Opponent()
			passes++
			if passes > 2 {
				t.Fatal("both players passing without game over")
			}
			continue
		}
		passes = 0

		before := b.CountCells(current)
		next, err := b.ApplyMove(current, moves[0])
		if err != nil {
			t.Fatalf("ApplyMove(%v, %v) failed:\n%s%v", current, moves[0], b, err)
		}
		if got := next.CountCells(current); got < before+2 {
			t.Errorf("turn %d: mover count went from %d to %d, want at least +2", turn, before, got)
		}
		total := next.CountCells(Black) + next.CountCells(White) + next.CountCells(Empty)
		if total != BoardSize*BoardSize {
			t.Fatalf("turn %d: cell total = %d, want %d", turn, total, BoardSize*BoardSize)
		}

		b = next
		current = current.Opponent()
	}

	if !b.IsGameOver() {
		t.Fatalf("game did not finish:\n%s", b)
	}
	if _, over := b.Winner(); !over {
		t.Error("Winner not reported after game over")
	}
}
