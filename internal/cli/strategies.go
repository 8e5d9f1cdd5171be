package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-strategies/internal/api/response"
	"github.com/mcoot/tictactoe-strategies/internal/model"
)

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available AI strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kinds := model.StrategyKinds()
			list := response.StrategyList{
				Strategies: make([]response.Strategy, len(kinds)),
				Default:    string(model.DefaultStrategy),
			}
			for i, kind := range kinds {
				list.Strategies[i] = response.StrategyFromModel(model.StrategyInfoFor(kind))
			}

			newOutput(cmd).Print(list)
			return nil
		},
	}
}
