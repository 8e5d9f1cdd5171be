package strategy

import (
	"math"

	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/outcome"
)

// winScore is the value of an immediate win; deeper wins score less
const winScore = 10

// MoveScore is the minimax value of playing Cell
type MoveScore struct {
	Cell  int
	Score int
}

// Minimax searches the full game tree with depth-adjusted scores
type Minimax struct {
	meta
}

// NewMinimax creates a new Minimax
func NewMinimax() *Minimax {
	return &Minimax{meta: meta{kind: model.StrategyMinimax}}
}

// FindMove returns the highest scoring cell, lowest index on ties
func (s *Minimax) FindMove(board model.Board, mover model.Player) (int, bool) {
	move, _, ok := s.Evaluate(board, mover)
	return move, ok
}

// Evaluate returns the chosen move and its value from mover's perspective
func (s *Minimax) Evaluate(board model.Board, mover model.Player) (move, score int, ok bool) {
	score = math.MinInt
	for _, ms := range s.MoveScores(board, mover) {
		if ms.Score > score {
			move, score, ok = ms.Cell, ms.Score, true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return move, score, true
}

// MoveScores returns the value of every legal move in ascending cell order
func (s *Minimax) MoveScores(board model.Board, mover model.Player) []MoveScore {
	var scores []MoveScore
	for i := 0; i < model.CellCount; i++ {
		if board[i] != model.NoPlayer {
			continue
		}
		board[i] = mover
		scores = append(scores, MoveScore{Cell: i, Score: minimax(&board, 0, false, mover)})
		board[i] = model.NoPlayer
	}
	return scores
}

// terminalScore scores a finished board for owner, reporting false if play continues
func terminalScore(b *model.Board, depth int, owner model.Player) (int, bool) {
	if w := outcome.Winner(*b); w != model.NoPlayer {
		if w == owner {
			return winScore - depth, true
		}
		return depth - winScore, true
	}
	if b.IsFull() {
		return 0, true
	}
	return 0, false
}

func minimax(b *model.Board, depth int, maximizing bool, owner model.Player) int {
	if score, done := terminalScore(b, depth, owner); done {
		return score
	}

	player := owner
	best := math.MinInt
	if !maximizing {
		player = owner.Next()
		best = math.MaxInt
	}
	for i := 0; i < model.CellCount; i++ {
		if b[i] != model.NoPlayer {
			continue
		}
		b[i] = player
		score := minimax(b, depth+1, !maximizing, owner)
		b[i] = model.NoPlayer
		if maximizing {
			best = max(best, score)
		} else {
			best = min(best, score)
		}
	}
	return best
}
