// Package game defines the core Othello state types.
//
// A Board is a complete, immutable snapshot of all 64 cells. Every move
// produces a new Board value; nothing ever mutates a Board after it is
// constructed, which makes snapshots safely shareable between goroutines.
package game

// Cell is the content of a single board cell.
// Black and White are the only valid player identities; Empty is never a
// player, but it is a valid argument wherever cell contents are counted.
type Cell uint8

const (
	Empty Cell = iota
	Black
	White
)

// Opponent returns the opposing player color.
// Calling it on Empty returns Empty; validate with IsPlayer first where the
// distinction matters.
func (c Cell) Opponent() Cell {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return Empty
	}
}

// IsPlayer reports whether c is a player identity (Black or White).
func (c Cell) IsPlayer() bool {
	return c == Black || c == White
}

func (c Cell) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "empty"
	}
}
