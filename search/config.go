// Package search implements the look-ahead move selection agent: a
// depth-bounded alpha-beta minimax over board snapshots, with a
// branching-limit policy that widens exploration near the root.
package search

import "othello-engine/game"

// Config holds the search parameters.
type Config struct {
	// Depth is the number of plies the agent looks ahead.
	Depth int

	// BranchLimit caps how many of the top-rated successor states are
	// expanded at each node. A widening bonus is added on top of it at
	// shallow depths; set it to 64 to explore every option.
	BranchLimit int

	// MaxWidenDiv and MinWidenDiv control the widening bonus: the
	// maximizing step explores BranchLimit + depth/MaxWidenDiv candidates,
	// the minimizing step BranchLimit + depth/MinWidenDiv. The two steps
	// widen at different rates; tune them separately.
	MaxWidenDiv int
	MinWidenDiv int

	// Weights is the positional table used for every evaluation.
	Weights *game.Weights
}

// DefaultConfig returns the parameters the agent ships with.
func DefaultConfig() Config {
	return Config{
		Depth:       6,
		BranchLimit: 3,
		MaxWidenDiv: 3,
		MinWidenDiv: 2,
		Weights:     game.DefaultWeights(),
	}
}
