package strategy

import (
	"github.com/mcoot/tictactoe-strategies/internal/dependencies/random"
	"github.com/mcoot/tictactoe-strategies/internal/model"
)

// QLearning plays epsilon-greedily over a Q-table
type QLearning struct {
	meta
	random  random.Random
	table   *QTable
	epsilon float64
}

// NewQLearning creates a new QLearning reading from table
func NewQLearning(rnd random.Random, table *QTable, epsilon float64) *QLearning {
	return &QLearning{
		meta:    meta{kind: model.StrategyQLearning},
		random:  rnd,
		table:   table,
		epsilon: epsilon,
	}
}

// Table returns the backing Q-table
func (s *QLearning) Table() *QTable {
	return s.table
}

// FindMove explores with probability epsilon, otherwise takes the empty
// cell with the highest value. Unseen actions are worth 0; a state with no
// stored values at all is played randomly.
func (s *QLearning) FindMove(board model.Board, mover model.Player) (int, bool) {
	if board.IsFull() {
		return 0, false
	}
	if s.random.Float64() < s.epsilon {
		return randomEmpty(&board, s.random)
	}

	state := board.StateKey()
	if !s.table.HasState(state) {
		return randomEmpty(&board, s.random)
	}

	best, bestValue, found := 0, 0.0, false
	for _, idx := range board.EmptyCells() {
		v := s.table.Value(state, idx)
		if !found || v > bestValue {
			best, bestValue, found = idx, v, true
		}
	}
	return best, found
}
