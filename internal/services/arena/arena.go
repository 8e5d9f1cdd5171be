// Package arena plays strategies against each other in batches of games
// and summarizes the results.
package arena

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mcoot/tictactoe-strategies/internal/dependencies/random"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/outcome"
	"github.com/mcoot/tictactoe-strategies/internal/services/strategy"
)

// Config describes a batch of games
type Config struct {
	X     model.StrategyKind
	O     model.StrategyKind
	Games int
	// Workers bounds the number of games played concurrently; <= 0 means 1
	Workers int
	// Seed makes the batch reproducible; 0 draws fresh randomness per game
	Seed uint64

	Strategy strategy.Config
	// QTable is shared by Q-learning participants; nil uses an empty table
	QTable *strategy.QTable
	Logger *slog.Logger
}

// GameResult is the outcome of one game
type GameResult struct {
	Outcome model.Outcome
	Length  int
	// Beliefs is the modeled participant's distribution after the game
	Beliefs *model.BeliefDistribution
}

// Result summarizes a batch
type Result struct {
	X     model.StrategyKind
	O     model.StrategyKind
	Games int

	XWins int
	OWins int
	Draws int

	AverageLength float64
	// Beliefs is the mean end-of-game distribution of the modeled
	// participant, or nil if neither side models its opponent
	Beliefs *model.BeliefDistribution
	// ModeledPlayer is the side whose beliefs are reported
	ModeledPlayer model.Player
}

// Run plays cfg.Games games of cfg.X against cfg.O. X always moves first.
// Every game gets fresh strategy instances and its own random source.
func Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	for _, kind := range []*model.StrategyKind{&cfg.X, &cfg.O} {
		parsed, err := model.ParseStrategyKind(string(*kind))
		if err != nil {
			return nil, err
		}
		*kind = parsed
	}
	if cfg.QTable == nil {
		cfg.QTable = strategy.NewQTable()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "arena"))

	results := make([]GameResult, cfg.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i := range cfg.Games {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := playGame(cfg, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := summarize(cfg, results)
	logger.Info("arena finished",
		slog.String("x", string(cfg.X)),
		slog.String("o", string(cfg.O)),
		slog.Int("games", result.Games),
		slog.Int("x_wins", result.XWins),
		slog.Int("o_wins", result.OWins),
		slog.Int("draws", result.Draws),
	)
	return result, nil
}

func gameRandom(seed uint64, game int, side uint64) random.Random {
	if seed == 0 {
		return random.New()
	}
	return random.NewSeeded(seed + 2*uint64(game) + side)
}

// playGame plays a single game to completion
func playGame(cfg Config, game int) (GameResult, error) {
	players := make(map[model.Player]strategy.Strategy, 2)
	for side, p := range []model.Player{model.PlayerX, model.PlayerO} {
		kind := cfg.X
		if p == model.PlayerO {
			kind = cfg.O
		}
		strat, err := strategy.New(kind, strategy.Deps{
			Random: gameRandom(cfg.Seed, game, uint64(side)),
			QTable: cfg.QTable,
			Config: cfg.Strategy,
		})
		if err != nil {
			return GameResult{}, err
		}
		players[p] = strat
	}

	board := model.NewBoard()
	mover := model.PlayerX
	result := GameResult{Outcome: model.InProgress()}
	for !result.Outcome.IsOver() {
		move, found := players[mover].FindMove(board, mover)
		if !found {
			break
		}
		if !board.IsEmpty(move) {
			return GameResult{}, fmt.Errorf("%w: %s chose %d", model.ErrCellOccupied, players[mover].Kind(), move)
		}
		if watcher, ok := players[mover.Next()].(strategy.OpponentModeler); ok {
			watcher.UpdateOpponentModel(move, board)
		}
		board.Set(move, mover)
		result.Length++
		result.Outcome = outcome.Detect(board)
		mover = mover.Next()
	}

	// When both sides model each other, O's view is reported
	for _, p := range []model.Player{model.PlayerO, model.PlayerX} {
		if modeler, ok := players[p].(strategy.OpponentModeler); ok {
			beliefs := modeler.Beliefs()
			result.Beliefs = &beliefs
			break
		}
	}
	return result, nil
}

func summarize(cfg Config, games []GameResult) *Result {
	result := &Result{X: cfg.X, O: cfg.O, Games: len(games)}
	switch {
	case cfg.O == model.StrategyModeled:
		result.ModeledPlayer = model.PlayerO
	case cfg.X == model.StrategyModeled:
		result.ModeledPlayer = model.PlayerX
	}

	var moves int
	var beliefs model.BeliefDistribution
	for _, g := range games {
		moves += g.Length
		switch {
		case g.Outcome.Status == model.OutcomeDraw:
			result.Draws++
		case g.Outcome.Winner == model.PlayerX:
			result.XWins++
		case g.Outcome.Winner == model.PlayerO:
			result.OWins++
		}
		if g.Beliefs != nil {
			for i := range beliefs {
				beliefs[i] += g.Beliefs[i]
			}
		}
	}
	result.AverageLength = float64(moves) / float64(len(games))

	if result.ModeledPlayer != model.NoPlayer {
		for i := range beliefs {
			beliefs[i] /= float64(len(games))
		}
		result.Beliefs = &beliefs
	}
	return result
}
