package arena

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/strategy"
	"github.com/mcoot/tictactoe-strategies/internal/testutil"
)

func testConfig(x, o model.StrategyKind, games int) Config {
	return Config{
		X:        x,
		O:        o,
		Games:    games,
		Workers:  4,
		Seed:     42,
		Strategy: strategy.Config{RolloutPlayouts: 30, ModeledPlayouts: 30, Epsilon: 0.1},
		Logger:   testutil.NopLogger(),
	}
}

func TestRun_PerfectPlayDraws(t *testing.T) {
	result, err := Run(context.Background(), testConfig(model.StrategyAlphaBeta, model.StrategyMinimax, 5))
	require.NoError(t, err)

	assert.Equal(t, 5, result.Games)
	assert.Equal(t, 5, result.Draws)
	assert.Zero(t, result.XWins)
	assert.Zero(t, result.OWins)
	assert.InDelta(t, 9.0, result.AverageLength, 1e-9)
	assert.Nil(t, result.Beliefs)
	assert.Equal(t, model.NoPlayer, result.ModeledPlayer)
}

func TestRun_AlphaBetaNeverLoses(t *testing.T) {
	result, err := Run(context.Background(), testConfig(model.StrategyRollout, model.StrategyAlphaBeta, 20))
	require.NoError(t, err)

	assert.Zero(t, result.XWins)
	assert.Equal(t, 20, result.OWins+result.Draws)
	assert.GreaterOrEqual(t, result.AverageLength, 5.0)
}

func TestRun_Deterministic(t *testing.T) {
	cfg := testConfig(model.StrategyHeuristic, model.StrategyRollout, 12)
	first, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	second, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_ReportsModeledBeliefs(t *testing.T) {
	result, err := Run(context.Background(), testConfig(model.StrategyAlphaBeta, model.StrategyModeled, 6))
	require.NoError(t, err)

	assert.Equal(t, model.PlayerO, result.ModeledPlayer)
	require.NotNil(t, result.Beliefs)
	assert.True(t, result.Beliefs.IsNormalized(1e-6))
	// Alpha-beta opens in a corner, which the optimal archetype does not predict
	assert.NotEqual(t, model.UniformBeliefs(), *result.Beliefs)
}

func TestRun_DefaultsEmptyKinds(t *testing.T) {
	cfg := testConfig("", "", 1)
	result, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultStrategy, result.X)
	assert.Equal(t, model.DefaultStrategy, result.O)
}

func TestRun_Rejects(t *testing.T) {
	_, err := Run(context.Background(), testConfig("nope", model.StrategyMinimax, 1))
	assert.ErrorIs(t, err, model.ErrUnknownStrategy)

	_, err = Run(context.Background(), testConfig(model.StrategyMinimax, model.StrategyMinimax, 0))
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testConfig(model.StrategyMinimax, model.StrategyMinimax, 3))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderChart(t *testing.T) {
	beliefs := model.BeliefDistribution{0.1, 0.2, 0.3, 0.4}
	result := &Result{
		X: model.StrategyHeuristic, O: model.StrategyModeled,
		Games: 10, XWins: 3, OWins: 5, Draws: 2, AverageLength: 7.5,
		Beliefs: &beliefs, ModeledPlayer: model.PlayerO,
	}

	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, result))
	html := buf.String()
	assert.Contains(t, html, "echarts")
	assert.Contains(t, html, "heuristic (X) vs mcts-modeled (O)")
	assert.Contains(t, html, "Opponent model")
}

func TestRenderChart_WithoutBeliefs(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, &Result{X: model.StrategyMinimax, O: model.StrategyMinimax, Games: 1, Draws: 1}))
	assert.NotContains(t, buf.String(), "Opponent model")
}
