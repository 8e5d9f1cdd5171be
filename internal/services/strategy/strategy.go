// Package strategy implements the move-selection strategies an AI player
// can use. Every strategy is pure with respect to the board it is handed:
// it never mutates the caller's board and returns either an empty cell or
// no move when the board is full.
package strategy

import (
	"fmt"

	"github.com/mcoot/tictactoe-strategies/internal/dependencies/random"
	"github.com/mcoot/tictactoe-strategies/internal/model"
)

// Default tuning used when a Config is left zero
const (
	DefaultRolloutPlayouts = 1000
	DefaultModeledPlayouts = 2000
	DefaultEpsilon         = 0.1
)

// Strategy chooses a cell for the player to move.
// The set of implementations is closed; construct them with New.
type Strategy interface {
	// Kind identifies the strategy
	Kind() model.StrategyKind
	// Info returns display metadata
	Info() model.StrategyInfo
	// FindMove returns an empty cell for mover, or false if the board is full
	FindMove(board model.Board, mover model.Player) (int, bool)

	sealed()
}

// OpponentModeler is a Strategy that keeps beliefs about how the opponent plays
type OpponentModeler interface {
	Strategy
	// UpdateOpponentModel folds an observed opponent move into the beliefs.
	// before is the board immediately prior to the observed move.
	UpdateOpponentModel(observed int, before model.Board)
	// Beliefs returns a copy of the current distribution
	Beliefs() model.BeliefDistribution
	// RestoreBeliefs replaces the distribution, ignoring unnormalized input
	RestoreBeliefs(d model.BeliefDistribution)
}

// Config holds tuning parameters for the search and learning strategies
type Config struct {
	RolloutPlayouts int
	ModeledPlayouts int
	Epsilon         float64
}

// DefaultConfig returns the standard tuning
func DefaultConfig() Config {
	return Config{
		RolloutPlayouts: DefaultRolloutPlayouts,
		ModeledPlayouts: DefaultModeledPlayouts,
		Epsilon:         DefaultEpsilon,
	}
}

// Deps are the collaborators handed to New
type Deps struct {
	Random random.Random
	QTable *QTable
	Config Config
}

// New constructs the strategy for kind. Each call returns a fresh instance;
// only the Q-table is shared between instances.
func New(kind model.StrategyKind, deps Deps) (Strategy, error) {
	rnd := deps.Random
	if rnd == nil {
		rnd = random.New()
	}
	cfg := deps.Config
	if cfg.RolloutPlayouts <= 0 {
		cfg.RolloutPlayouts = DefaultRolloutPlayouts
	}
	if cfg.ModeledPlayouts <= 0 {
		cfg.ModeledPlayouts = DefaultModeledPlayouts
	}

	switch kind {
	case model.StrategyHeuristic:
		return NewHeuristic(rnd), nil
	case model.StrategyMinimax:
		return NewMinimax(), nil
	case model.StrategyAlphaBeta:
		return NewAlphaBeta(), nil
	case model.StrategyRollout:
		return NewRollout(rnd, cfg.RolloutPlayouts), nil
	case model.StrategyModeled:
		return NewModeled(rnd, cfg.ModeledPlayouts), nil
	case model.StrategyQLearning:
		table := deps.QTable
		if table == nil {
			table = NewQTable()
		}
		return NewQLearning(rnd, table, cfg.Epsilon), nil
	case model.StrategyLookup:
		return NewLookup(rnd), nil
	default:
		return nil, fmt.Errorf("%w: %s", model.ErrUnknownStrategy, kind)
	}
}

// meta carries the identity shared by every implementation
type meta struct {
	kind model.StrategyKind
}

func (m meta) Kind() model.StrategyKind { return m.kind }

func (m meta) Info() model.StrategyInfo { return model.StrategyInfoFor(m.kind) }

func (meta) sealed() {}

// emptyCells writes the empty indices of b into buf and returns the filled prefix.
// Rollouts call this in their inner loop, so it avoids allocating.
func emptyCells(b *model.Board, buf *[model.CellCount]int) []int {
	n := 0
	for i, c := range b {
		if c == model.NoPlayer {
			buf[n] = i
			n++
		}
	}
	return buf[:n]
}

// randomEmpty picks a uniformly random empty cell
func randomEmpty(b *model.Board, rnd random.Random) (int, bool) {
	var buf [model.CellCount]int
	cells := emptyCells(b, &buf)
	switch len(cells) {
	case 0:
		return 0, false
	case 1:
		return cells[0], true
	default:
		return cells[rnd.Intn(len(cells))], true
	}
}
