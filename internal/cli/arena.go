package cli

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/arena"
)

func newArenaCmd() *cobra.Command {
	var (
		x, o      string
		games     int
		workers   int
		chartPath string
		flags     strategyFlags
	)

	cmd := &cobra.Command{
		Use:   "arena",
		Short: "Play two strategies against each other",
		Long: `Play a batch of games between two strategies and report the results.

X always moves first. When a side is mcts-modeled, the mean of its opponent
beliefs at the end of each game is reported too. --chart writes an HTML page
with bar charts of the results.`,
		Example: `  ttt arena --x alphabeta --o minimax --games 10
  ttt arena --x heuristic --o mcts-modeled --games 200 --chart arena.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := flags.qtable()
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			result, err := arena.Run(cmd.Context(), arena.Config{
				X:        model.StrategyKind(x),
				O:        model.StrategyKind(o),
				Games:    games,
				Workers:  workers,
				Seed:     flags.seed,
				Strategy: flags.config(),
				QTable:   table,
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			out := newOutput(cmd)
			out.Print(ArenaSummaryFromResult(result))

			if chartPath != "" {
				if err := writeChart(chartPath, result); err != nil {
					return err
				}
				if cfg.Output != "json" {
					out.PrintMessage(fmt.Sprintf("Chart written to %s", chartPath))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&x, "x", string(model.StrategyAlphaBeta), "Strategy playing X")
	cmd.Flags().StringVar(&o, "o", string(model.DefaultStrategy), "Strategy playing O")
	cmd.Flags().IntVarP(&games, "games", "n", 100, "Number of games")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "Games played concurrently")
	cmd.Flags().StringVar(&chartPath, "chart", "", "Write an HTML chart of the results to this file")
	flags.register(cmd)

	return cmd
}

func writeChart(path string, result *arena.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	if err := arena.RenderChart(f, result); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return f.Close()
}
