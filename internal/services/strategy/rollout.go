package strategy

import (
	"github.com/mcoot/tictactoe-strategies/internal/dependencies/random"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/outcome"
)

// Rollout scores each legal move by the mean result of random playouts
type Rollout struct {
	meta
	random   random.Random
	playouts int
}

// NewRollout creates a new Rollout running playouts games per candidate move
func NewRollout(rnd random.Random, playouts int) *Rollout {
	return &Rollout{meta: meta{kind: model.StrategyRollout}, random: rnd, playouts: playouts}
}

// FindMove returns the cell with the best mean playout score, lowest index on ties
func (s *Rollout) FindMove(board model.Board, mover model.Player) (int, bool) {
	return bestByPlayouts(board, mover, s.playouts, func(b model.Board) model.Outcome {
		return s.playout(b, mover.Next())
	})
}

// playout finishes the game with both sides moving uniformly at random
func (s *Rollout) playout(b model.Board, toMove model.Player) model.Outcome {
	var buf [model.CellCount]int
	for {
		result := outcome.Detect(b)
		if result.IsOver() {
			return result
		}
		cells := emptyCells(&b, &buf)
		b[cells[s.random.Intn(len(cells))]] = toMove
		toMove = toMove.Next()
	}
}

// playoutScore is 1 for a mover win, 0.5 for a draw, 0 for a loss
func playoutScore(result model.Outcome, mover model.Player) float64 {
	switch {
	case result.Status == model.OutcomeDraw:
		return 0.5
	case result.Status == model.OutcomeWin && result.Winner == mover:
		return 1
	default:
		return 0
	}
}

// bestByPlayouts applies each empty cell for mover, runs play on the
// resulting board n times, and returns the cell with the highest mean score.
// Cells are visited in ascending order and only a strictly better mean
// replaces the current best.
func bestByPlayouts(board model.Board, mover model.Player, n int, play func(model.Board) model.Outcome) (int, bool) {
	if n <= 0 {
		n = 1
	}
	best, bestMean, found := 0, -1.0, false
	for i := 0; i < model.CellCount; i++ {
		if board[i] != model.NoPlayer {
			continue
		}
		child := board.With(i, mover)
		total := 0.0
		for range n {
			total += playoutScore(play(child), mover)
		}
		if mean := total / float64(n); mean > bestMean {
			best, bestMean, found = i, mean, true
		}
	}
	return best, found
}
