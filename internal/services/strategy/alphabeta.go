package strategy

import (
	"math"

	"github.com/mcoot/tictactoe-strategies/internal/model"
)

// AlphaBeta is minimax with alpha-beta pruning. It returns the same move
// and value as Minimax for every position.
type AlphaBeta struct {
	meta
}

// NewAlphaBeta creates a new AlphaBeta
func NewAlphaBeta() *AlphaBeta {
	return &AlphaBeta{meta: meta{kind: model.StrategyAlphaBeta}}
}

// FindMove returns the highest scoring cell, lowest index on ties
func (s *AlphaBeta) FindMove(board model.Board, mover model.Player) (int, bool) {
	move, _, ok := s.Evaluate(board, mover)
	return move, ok
}

// Evaluate returns the chosen move and its value from mover's perspective.
// The root narrows alpha as it goes; a later child that only ties the best
// fails low and cannot displace the earlier cell.
func (s *AlphaBeta) Evaluate(board model.Board, mover model.Player) (move, score int, ok bool) {
	alpha := math.MinInt
	score = math.MinInt
	for i := 0; i < model.CellCount; i++ {
		if board[i] != model.NoPlayer {
			continue
		}
		board[i] = mover
		v := alphaBeta(&board, 0, alpha, math.MaxInt, false, mover)
		board[i] = model.NoPlayer
		if v > score {
			move, score, ok = i, v, true
		}
		alpha = max(alpha, v)
	}
	if !ok {
		return 0, 0, false
	}
	return move, score, true
}

func alphaBeta(b *model.Board, depth, alpha, beta int, maximizing bool, owner model.Player) int {
	if score, done := terminalScore(b, depth, owner); done {
		return score
	}

	if maximizing {
		best := math.MinInt
		for i := 0; i < model.CellCount; i++ {
			if b[i] != model.NoPlayer {
				continue
			}
			b[i] = owner
			best = max(best, alphaBeta(b, depth+1, alpha, beta, false, owner))
			b[i] = model.NoPlayer
			alpha = max(alpha, best)
			if beta <= alpha {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	opponent := owner.Next()
	for i := 0; i < model.CellCount; i++ {
		if b[i] != model.NoPlayer {
			continue
		}
		b[i] = opponent
		best = min(best, alphaBeta(b, depth+1, alpha, beta, true, owner))
		b[i] = model.NoPlayer
		beta = min(beta, best)
		if beta <= alpha {
			break
		}
	}
	return best
}
