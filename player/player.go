// Package player models the two kinds of Othello players: humans, whose
// moves arrive from outside, and search agents, which compute their own.
package player

import (
	"fmt"

	"othello-engine/game"
	"othello-engine/search"
)

// Player is a game participant: an identity (Black or White), a display
// name, and the ability to propose a move for a board. The set of
// implementations is closed: Human and Search.
type Player interface {
	Color() game.Cell
	Name() string

	// ProposeMove returns the player's move for b. Humans never propose;
	// their second return value is always false. For agents false means the
	// player has no legal move and passes.
	ProposeMove(b *game.Board) (game.Position, bool, error)
}

// Human is a player whose moves come from the UI. ProposeMove never
// returns a move.
type Human struct {
	color game.Cell
	name  string
}

// NewHuman returns a human player. Fails with game.ErrInvalidArgument when
// color is not Black or White.
func NewHuman(color game.Cell, name string) (*Human, error) {
	if !color.IsPlayer() {
		return nil, fmt.Errorf("%w: %v is not a player color", game.ErrInvalidArgument, color)
	}
	return &Human{color: color, name: name}, nil
}

func (h *Human) Color() game.Cell { return h.color }
func (h *Human) Name() string     { return h.name }

func (h *Human) ProposeMove(*game.Board) (game.Position, bool, error) {
	return game.Position{}, false, nil
}

// Search is a player backed by the alpha-beta agent.
type Search struct {
	color game.Cell
	name  string
	agent *search.Agent
}

// NewSearch returns an agent-backed player using cfg for every move.
func NewSearch(color game.Cell, name string, cfg search.Config) (*Search, error) {
	if !color.IsPlayer() {
		return nil, fmt.Errorf("%w: %v is not a player color", game.ErrInvalidArgument, color)
	}
	return &Search{color: color, name: name, agent: search.New(cfg)}, nil
}

func (s *Search) Color() game.Cell { return s.color }
func (s *Search) Name() string     { return s.name }

func (s *Search) ProposeMove(b *game.Board) (game.Position, bool, error) {
	return s.agent.ChooseMove(b, s.color)
}
