package game

import "fmt"

// BoardSize is the side length of the board. Othello is always played 8x8.
const BoardSize = 8

// Position is a board coordinate. X runs left to right, Y top to bottom,
// both 0..7. Positions are plain values: two positions with equal
// coordinates are interchangeable and compare equal.
type Position struct {
	X int
	Y int
}

// InBounds reports whether p lies on the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// positions holds all 64 board positions in scan order (X ascending, then Y).
// Iterating this slice gives every board walk the same stable order, which
// keeps move generation and search tie-breaking deterministic.
var positions = makePositions()

func makePositions() []Position {
	out := make([]Position, 0, BoardSize*BoardSize)
	for x := 0; x < BoardSize; x++ {
		for y := 0; y < BoardSize; y++ {
			out = append(out, Position{X: x, Y: y})
		}
	}
	return out
}

// Positions returns all 64 board positions in stable scan order.
// The returned slice is shared; callers must not modify it.
func Positions() []Position {
	return positions
}
