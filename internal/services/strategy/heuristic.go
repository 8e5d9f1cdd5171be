package strategy

import (
	"github.com/mcoot/tictactoe-strategies/internal/dependencies/random"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/outcome"
)

// Heuristic plays by fixed priority: win, block, center, corner, anything
type Heuristic struct {
	meta
	random random.Random
}

// NewHeuristic creates a new Heuristic
func NewHeuristic(rnd random.Random) *Heuristic {
	return &Heuristic{meta: meta{kind: model.StrategyHeuristic}, random: rnd}
}

// FindMove picks uniformly among the candidates of the highest applicable tier
func (s *Heuristic) FindMove(board model.Board, mover model.Player) (int, bool) {
	candidates := Candidates(board, mover)
	switch len(candidates) {
	case 0:
		return 0, false
	case 1:
		return candidates[0], true
	default:
		return candidates[s.random.Intn(len(candidates))], true
	}
}

// Candidates returns the cells the heuristic considers at its highest
// applicable tier. Win, block and center tiers yield a single cell; the
// corner tier yields every empty corner; the last tier every empty cell.
func Candidates(board model.Board, mover model.Player) []int {
	if idx, ok := outcome.CompletingMove(board, mover); ok {
		return []int{idx}
	}
	if idx, ok := outcome.CompletingMove(board, mover.Next()); ok {
		return []int{idx}
	}
	if board.IsEmpty(model.CenterCell) {
		return []int{model.CenterCell}
	}
	var corners []int
	for _, c := range model.Corners {
		if board.IsEmpty(c) {
			corners = append(corners, c)
		}
	}
	if len(corners) > 0 {
		return corners
	}
	return board.EmptyCells()
}
