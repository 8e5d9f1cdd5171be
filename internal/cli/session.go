package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-strategies/internal/api/request"
	"github.com/mcoot/tictactoe-strategies/internal/api/response"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Play against the AI on a server",
	}

	cmd.AddCommand(newSessionNewCmd())
	cmd.AddCommand(newSessionGetCmd())
	cmd.AddCommand(newSessionListCmd())
	cmd.AddCommand(newSessionMoveCmd())
	cmd.AddCommand(newSessionResetCmd())
	cmd.AddCommand(newSessionResetScoresCmd())
	cmd.AddCommand(newSessionDeleteCmd())
	cmd.AddCommand(newSessionBeliefsCmd())

	return cmd
}

func sessionPath(id string, suffix ...string) string {
	p := "/api/v1/sessions/" + url.PathEscape(id)
	for _, s := range suffix {
		p += "/" + s
	}
	return p
}

func newSessionNewCmd() *cobra.Command {
	var req request.CreateSessionRequest

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new session",
		Long: `Start a session against an AI strategy.

If you play O the AI opens; use 'session get' to see its move.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			if err := client.Post(cmd.Context(), "/api/v1/sessions", req, &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&req.Strategy, "strategy", "s", "", "AI strategy (default: heuristic)")
	cmd.Flags().StringVar(&req.HumanPlayer, "human", "X", "Your side: X or O")

	return cmd
}

func newSessionGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			if err := client.Get(cmd.Context(), sessionPath(args[0]), &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newSessionListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.SessionList
			if err := client.Get(cmd.Context(), "/api/v1/sessions", &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newSessionMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <id> <cell>",
		Short: "Play a move",
		Long: `Place your mark on a cell. Cells are numbered 0-8 in row-major order:

   0 | 1 | 2
  ---+---+---
   3 | 4 | 5
  ---+---+---
   6 | 7 | 8`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cell, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid cell %q: must be 0-8", args[1])
			}

			var result response.Session
			if err := client.Post(cmd.Context(), sessionPath(args[0], "moves"), request.MoveRequest{Cell: &cell}, &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newSessionResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <id>",
		Short: "Start the next game, keeping the score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			if err := client.Post(cmd.Context(), sessionPath(args[0], "reset"), nil, &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newSessionResetScoresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-scores <id>",
		Short: "Clear the score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Session
			if err := client.Post(cmd.Context(), sessionPath(args[0], "reset-scores"), nil, &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newSessionDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(cmd.Context(), sessionPath(args[0])); err != nil {
				return err
			}
			newOutput(cmd).PrintMessage(fmt.Sprintf("Deleted session %s", args[0]))
			return nil
		},
	}
}

func newSessionBeliefsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "beliefs <id>",
		Short: "Show the AI's opponent model (mcts-modeled only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Beliefs
			if err := client.Get(cmd.Context(), sessionPath(args[0], "beliefs"), &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}
}
