package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-strategies/internal/api/response"
	"github.com/mcoot/tictactoe-strategies/internal/dependencies/random"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/strategy"
)

// strategyFlags are the tuning flags shared by local commands
type strategyFlags struct {
	seed       uint64
	playouts   int
	epsilon    float64
	qtablePath string
}

func (f *strategyFlags) register(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "Seed for reproducible runs (0 = random)")
	cmd.Flags().IntVar(&f.playouts, "playouts", 0, "Playouts per move for the mcts strategies (0 = default)")
	cmd.Flags().Float64Var(&f.epsilon, "epsilon", strategy.DefaultEpsilon, "Exploration rate for qlearning")
	cmd.Flags().StringVar(&f.qtablePath, "qtable", "", "Q-table JSON file for qlearning")
}

func (f *strategyFlags) config() strategy.Config {
	return strategy.Config{
		RolloutPlayouts: f.playouts,
		ModeledPlayouts: f.playouts,
		Epsilon:         f.epsilon,
	}
}

func (f *strategyFlags) qtable() (*strategy.QTable, error) {
	if f.qtablePath == "" {
		return nil, nil
	}
	return strategy.LoadQTableFile(f.qtablePath)
}

func (f *strategyFlags) random() random.Random {
	if f.seed == 0 {
		return random.New()
	}
	return random.NewSeeded(f.seed)
}

func newSuggestCmd() *cobra.Command {
	var (
		mover   string
		kind    string
		explain bool
		flags   strategyFlags
	)

	cmd := &cobra.Command{
		Use:   "suggest <board>",
		Short: "Suggest a move for a board",
		Long: `Ask a strategy for its move on a board, without a server.

The board is nine characters in row-major order: X, O, or _ for empty.
The mover defaults to whoever is next on the board.

--explain shows the evaluation behind the move for minimax, alphabeta and
heuristic.`,
		Example: `  ttt suggest XX__O____ --strategy minimax
  ttt suggest _________ --strategy mcts --playouts 5000 --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := model.ParseBoard(args[0])
			if err != nil {
				return err
			}
			player := board.ToMove()
			if mover != "" {
				if player, err = model.ParsePlayer(mover); err != nil {
					return err
				}
			}
			k, err := model.ParseStrategyKind(kind)
			if err != nil {
				return err
			}
			table, err := flags.qtable()
			if err != nil {
				return err
			}

			s, err := strategy.New(k, strategy.Deps{
				Random: flags.random(),
				QTable: table,
				Config: flags.config(),
			})
			if err != nil {
				return err
			}

			out := newOutput(cmd)
			if explain {
				out.Print(explainMove(s, board, player))
				return nil
			}
			move, found := s.FindMove(board, player)
			out.Print(response.Suggestion{Move: move, Found: found, Strategy: string(k)})
			return nil
		},
	}

	cmd.Flags().StringVar(&mover, "mover", "", "Player to move: X or O (default: next on the board)")
	cmd.Flags().StringVarP(&kind, "strategy", "s", string(model.DefaultStrategy), "Strategy to ask")
	cmd.Flags().BoolVar(&explain, "explain", false, "Show the evaluation behind the move")
	flags.register(cmd)

	return cmd
}

// explainMove runs s and collects whatever evaluation it exposes
func explainMove(s strategy.Strategy, board model.Board, mover model.Player) Explanation {
	e := Explanation{
		Board:    board.String(),
		Mover:    mover.String(),
		Strategy: string(s.Kind()),
	}

	switch v := s.(type) {
	case *strategy.Minimax:
		move, score, ok := v.Evaluate(board, mover)
		e.Move, e.Found = move, ok
		if ok {
			e.Score = &score
		}
		for _, ms := range v.MoveScores(board, mover) {
			e.MoveScores = append(e.MoveScores, CellScore{Cell: ms.Cell, Score: ms.Score})
		}
	case *strategy.AlphaBeta:
		move, score, ok := v.Evaluate(board, mover)
		e.Move, e.Found = move, ok
		if ok {
			e.Score = &score
		}
	case *strategy.Heuristic:
		e.Candidates = strategy.Candidates(board, mover)
		e.Move, e.Found = v.FindMove(board, mover)
	default:
		e.Move, e.Found = s.FindMove(board, mover)
	}
	return e
}
