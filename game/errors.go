package game

import "errors"

// The two caller-visible error kinds.
//
// ErrInvalidArgument marks programming errors: coordinates outside the
// board, or Empty passed where a player identity is required. These are
// never recovered from.
//
// ErrInvalidMove marks rule-rejected moves: a well-formed position that is
// not currently legal for the acting player. Callers typically re-prompt.
//
// Both are matched with errors.Is; the wrapped messages carry the details.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidMove     = errors.New("invalid move")
)
