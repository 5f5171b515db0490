package search

import (
	"math"
	"sort"

	"othello-engine/game"
)

// Agent selects moves with alpha-beta minimax. An Agent is stateless between
// calls and safe for concurrent use; every ChooseMove runs on its own
// search state.
type Agent struct {
	cfg Config
}

// New returns an agent for the given configuration. Zero-valued fields fall
// back to their DefaultConfig values.
func New(cfg Config) *Agent {
	def := DefaultConfig()
	if cfg.Depth <= 0 {
		cfg.Depth = def.Depth
	}
	if cfg.BranchLimit <= 0 {
		cfg.BranchLimit = def.BranchLimit
	}
	if cfg.MaxWidenDiv <= 0 {
		cfg.MaxWidenDiv = def.MaxWidenDiv
	}
	if cfg.MinWidenDiv <= 0 {
		cfg.MinWidenDiv = def.MinWidenDiv
	}
	if cfg.Weights == nil {
		cfg.Weights = def.Weights
	}
	return &Agent{cfg: cfg}
}

// Config returns the agent's effective configuration.
func (a *Agent) Config() Config {
	return a.cfg
}

// ChooseMove runs the search for player on b and returns the selected move.
// The second return value is false when the player has no legal move (the
// turn passes). The search is deterministic: identical inputs always return
// the same move, with score ties broken by board scan order.
func (a *Agent) ChooseMove(b *game.Board, player game.Cell) (game.Position, bool, error) {
	moves, err := b.LegalMoves(player, true)
	if err != nil {
		return game.Position{}, false, err
	}
	if len(moves) == 0 {
		return game.Position{}, false, nil
	}

	s := &searcher{cfg: a.cfg}
	if _, err := s.max(b, player, a.cfg.Depth, math.MinInt32, math.MaxInt32); err != nil {
		return game.Position{}, false, err
	}
	// The guard above makes an empty result unexpected, but tolerate it.
	return s.best, s.haveBest, nil
}

// searcher carries the per-call state: the configuration and the best move
// recorded at the root of the tree.
type searcher struct {
	cfg      Config
	best     game.Position
	haveBest bool
}

// candidate is a successor state with the move that produced it and its
// immediate rating from the acting player's perspective.
type candidate struct {
	move  game.Position
	score int
	next  *game.Board
}

// candidates generates all legal successors for player, rates each one, and
// keeps the BranchLimit+widen best, ordered by descending score. The sort is
// stable over the board-scan move order, so equally rated moves keep a fixed
// preference.
func (s *searcher) candidates(b *game.Board, player game.Cell, moves []game.Position, widen int) ([]candidate, error) {
	cands := make([]candidate, 0, len(moves))
	for _, m := range moves {
		next, err := b.ApplyMove(player, m)
		if err != nil {
			return nil, err
		}
		score, err := next.Rate(player, s.cfg.Weights)
		if err != nil {
			return nil, err
		}
		cands = append(cands, candidate{move: m, score: score, next: next})
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].score > cands[j].score })

	limit := s.cfg.BranchLimit
	if widen > 0 {
		limit += widen
	}
	if len(cands) > limit {
		cands = cands[:limit]
	}
	return cands, nil
}

// leafValue handles the shared recursion end: depth exhausted, at most one
// legal move, or a finished game. A single forced move is resolved (applied
// and the successor rated) rather than scored in place; at the root the
// forced move also becomes the chosen move. The second return value is
// false when the recursion should continue instead.
func (s *searcher) leafValue(b *game.Board, player game.Cell, depth int, moves []game.Position) (int, bool, error) {
	if depth != 0 && len(moves) > 1 && !b.IsGameOver() {
		return 0, false, nil
	}
	if len(moves) == 1 {
		if depth == s.cfg.Depth {
			s.best = moves[0]
			s.haveBest = true
		}
		next, err := b.ApplyMove(player, moves[0])
		if err != nil {
			return 0, false, err
		}
		score, err := next.Rate(player, s.cfg.Weights)
		if err != nil {
			return 0, false, err
		}
		return score, true, nil
	}
	score, err := b.Rate(player, s.cfg.Weights)
	if err != nil {
		return 0, false, err
	}
	return score, true, nil
}

// max is the maximizing step. alpha is the best value the maximizer has
// secured so far, beta the opponent's bound; exploration stops once the
// running best reaches beta.
func (s *searcher) max(b *game.Board, player game.Cell, depth, alpha, beta int) (int, error) {
	moves, err := b.LegalMoves(player, true)
	if err != nil {
		return 0, err
	}
	if score, done, err := s.leafValue(b, player, depth, moves); done || err != nil {
		return score, err
	}

	opponent := player.Opponent()
	best := alpha
	cands, err := s.candidates(b, player, moves, depth/s.cfg.MaxWidenDiv)
	if err != nil {
		return 0, err
	}
	for _, c := range cands {
		val, err := s.min(c.next, opponent, depth-1, best, beta)
		if err != nil {
			return 0, err
		}
		if val > best {
			best = val
			if depth == s.cfg.Depth {
				s.best = c.move
				s.haveBest = true
			}
			if best >= beta {
				break
			}
		}
	}
	return best, nil
}

// min mirrors max for the minimizing player, with a slightly different
// widening bonus (see Config.MinWidenDiv).
func (s *searcher) min(b *game.Board, player game.Cell, depth, alpha, beta int) (int, error) {
	moves, err := b.LegalMoves(player, true)
	if err != nil {
		return 0, err
	}
	if score, done, err := s.leafValue(b, player, depth, moves); done || err != nil {
		return score, err
	}

	opponent := player.Opponent()
	best := beta
	cands, err := s.candidates(b, player, moves, depth/s.cfg.MinWidenDiv)
	if err != nil {
		return 0, err
	}
	for _, c := range cands {
		val, err := s.max(c.next, opponent, depth-1, alpha, best)
		if err != nil {
			return 0, err
		}
		if val < best {
			best = val
			if depth == s.cfg.Depth {
				s.best = c.move
				s.haveBest = true
			}
			if best <= alpha {
				break
			}
		}
	}
	return best, nil
}
