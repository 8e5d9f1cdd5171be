package strategy

import (
	"maps"

	"github.com/mcoot/tictactoe-strategies/internal/dependencies/random"
	"github.com/mcoot/tictactoe-strategies/internal/model"
)

// openingBook holds precomputed replies for early states
var openingBook = map[string]int{
	"_________": 4,
	"X________": 4,
	"_X_______": 4,
	"__X______": 4,
	"___X_____": 4,
	"____X____": 0,
	"_____X___": 4,
	"______X__": 4,
	"_______X_": 4,
	"________X": 4,
	"X___O____": 2,
	"X____O___": 0,
	"X_____O__": 0,
	"X______O_": 2,
	"X_______O": 1,
}

// Lookup answers from the opening book and defers to the heuristic otherwise.
// Book entries naming an occupied cell are ignored.
type Lookup struct {
	meta
	heuristic *Heuristic
}

// NewLookup creates a new Lookup
func NewLookup(rnd random.Random) *Lookup {
	return &Lookup{meta: meta{kind: model.StrategyLookup}, heuristic: NewHeuristic(rnd)}
}

// FindMove returns the book move if it is playable, else the heuristic move
func (s *Lookup) FindMove(board model.Board, mover model.Player) (int, bool) {
	if board.IsFull() {
		return 0, false
	}
	if idx, ok := openingBook[board.StateKey()]; ok && board.IsEmpty(idx) {
		return idx, true
	}
	return s.heuristic.FindMove(board, mover)
}

// OpeningBook returns a copy of the book
func OpeningBook() map[string]int {
	return maps.Clone(openingBook)
}
