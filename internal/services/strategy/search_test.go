package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/outcome"
	"github.com/mcoot/tictactoe-strategies/internal/services/strategy"
)

func mustBoard(t *testing.T, key string) model.Board {
	t.Helper()
	b, err := model.ParseBoard(key)
	require.NoError(t, err)
	return b
}

// reachablePositions returns every non-terminal position reachable from
// the empty board with X moving first
func reachablePositions() []model.Board {
	seen := make(map[model.Board]bool)
	var walk func(b model.Board, toMove model.Player)
	walk = func(b model.Board, toMove model.Player) {
		if seen[b] || outcome.Detect(b).IsOver() {
			return
		}
		seen[b] = true
		for _, idx := range b.EmptyCells() {
			walk(b.With(idx, toMove), toMove.Next())
		}
	}
	walk(model.NewBoard(), model.PlayerX)

	positions := make([]model.Board, 0, len(seen))
	for b := range seen {
		positions = append(positions, b)
	}
	return positions
}

func TestMinimax_ScenarioWin(t *testing.T) {
	move, score, ok := strategy.NewMinimax().Evaluate(mustBoard(t, "XX__O____"), model.PlayerX)
	require.True(t, ok)
	assert.Equal(t, 2, move)
	assert.Equal(t, 10, score)
}

func TestMinimax_ScenarioBlock(t *testing.T) {
	move, ok := strategy.NewMinimax().FindMove(mustBoard(t, "____O_XX_"), model.PlayerO)
	require.True(t, ok)
	assert.Equal(t, 8, move)
}

func TestAlphaBeta_ScenarioBlock(t *testing.T) {
	move, ok := strategy.NewAlphaBeta().FindMove(mustBoard(t, "____O_XX_"), model.PlayerO)
	require.True(t, ok)
	assert.Equal(t, 8, move)
}

func TestMinimax_EmptyBoardIsDraw(t *testing.T) {
	move, score, ok := strategy.NewMinimax().Evaluate(model.NewBoard(), model.PlayerX)
	require.True(t, ok)
	assert.Equal(t, 0, score)
	// every opening draws, so the lowest index wins the tie
	assert.Equal(t, 0, move)
}

func TestMinimax_MoveScores(t *testing.T) {
	scores := strategy.NewMinimax().MoveScores(mustBoard(t, "XX__O____"), model.PlayerX)
	require.Len(t, scores, 6)
	assert.Equal(t, strategy.MoveScore{Cell: 2, Score: 10}, scores[0])
	for _, ms := range scores[1:] {
		assert.Less(t, ms.Score, 10)
	}
}

func TestMinimax_FullBoard(t *testing.T) {
	full := mustBoard(t, "XOXXOOOXX")
	_, ok := strategy.NewMinimax().FindMove(full, model.PlayerX)
	assert.False(t, ok)
	_, ok = strategy.NewAlphaBeta().FindMove(full, model.PlayerX)
	assert.False(t, ok)
}

func TestAlphaBeta_AgreesWithMinimax(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive search")
	}
	mm := strategy.NewMinimax()
	ab := strategy.NewAlphaBeta()

	positions := reachablePositions()
	require.Len(t, positions, 4520)

	for _, b := range positions {
		mover := b.ToMove()
		mmMove, mmScore, mmOK := mm.Evaluate(b, mover)
		abMove, abScore, abOK := ab.Evaluate(b, mover)
		require.Equal(t, mmOK, abOK, b.String())
		require.Equal(t, mmScore, abScore, "score for %s", b)
		require.Equal(t, mmMove, abMove, "move for %s", b)
	}
}

func TestMinimax_SelfPlayDraws(t *testing.T) {
	for _, kind := range []model.StrategyKind{model.StrategyMinimax, model.StrategyAlphaBeta} {
		s, err := strategy.New(kind, strategy.Deps{})
		require.NoError(t, err)

		b := model.NewBoard()
		mover := model.PlayerX
		for !outcome.Detect(b).IsOver() {
			move, ok := s.FindMove(b, mover)
			require.True(t, ok)
			require.True(t, b.IsEmpty(move))
			b = b.With(move, mover)
			mover = mover.Next()
		}
		assert.Equal(t, model.Draw(), outcome.Detect(b), "%s self-play", kind)
	}
}

func TestAlphaBeta_NeverLosesAsSecondPlayer(t *testing.T) {
	ab := strategy.NewAlphaBeta()

	// X tries every legal sequence; O always replies with alpha-beta
	var walk func(b model.Board)
	walk = func(b model.Board) {
		for _, idx := range b.EmptyCells() {
			afterX := b.With(idx, model.PlayerX)
			result := outcome.Detect(afterX)
			require.False(t, result.Status == model.OutcomeWin && result.Winner == model.PlayerX,
				"X won with %s", afterX)
			if result.IsOver() {
				continue
			}
			reply, ok := ab.FindMove(afterX, model.PlayerO)
			require.True(t, ok)
			afterO := afterX.With(reply, model.PlayerO)
			if outcome.Detect(afterO).IsOver() {
				continue
			}
			walk(afterO)
		}
	}
	walk(model.NewBoard())
}
