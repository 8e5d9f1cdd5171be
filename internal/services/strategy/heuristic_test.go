package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-strategies/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/strategy"
)

type HeuristicSuite struct {
	suite.Suite
	mockRandom *mocks.MockRandom
	strategy   *strategy.Heuristic
}

func TestHeuristicSuite(t *testing.T) {
	suite.Run(t, new(HeuristicSuite))
}

func (s *HeuristicSuite) SetupTest() {
	s.mockRandom = mocks.NewMockRandom()
	s.strategy = strategy.NewHeuristic(s.mockRandom)
}

func (s *HeuristicSuite) board(key string) model.Board {
	b, err := model.ParseBoard(key)
	s.Require().NoError(err)
	return b
}

func (s *HeuristicSuite) TestEmptyBoard_TakesCenter() {
	move, ok := s.strategy.FindMove(model.NewBoard(), model.PlayerO)
	s.True(ok)
	s.Equal(4, move)
}

func (s *HeuristicSuite) TestWinsWhenPossible() {
	move, ok := s.strategy.FindMove(s.board("XX__O____"), model.PlayerX)
	s.True(ok)
	s.Equal(2, move)
}

func (s *HeuristicSuite) TestWinPreferredOverBlock() {
	// O can win at 5 and must otherwise block X at 2
	move, ok := s.strategy.FindMove(s.board("XX_OO_X__"), model.PlayerO)
	s.True(ok)
	s.Equal(5, move)
}

func (s *HeuristicSuite) TestBlocksOpponent() {
	move, ok := s.strategy.FindMove(s.board("____O_XX_"), model.PlayerO)
	s.True(ok)
	s.Equal(8, move)
}

func (s *HeuristicSuite) TestCornerTier_UsesRandom() {
	b := s.board("____X____")
	s.Equal([]int{0, 2, 6, 8}, strategy.Candidates(b, model.PlayerO))

	s.mockRandom.QueueIntn(2)
	move, ok := s.strategy.FindMove(b, model.PlayerO)
	s.True(ok)
	s.Equal(6, move)
}

func (s *HeuristicSuite) TestAnyCellTier() {
	// Center and corners taken, no threats on either side
	b := s.board("OXO_X_XOX")
	s.Equal([]int{3, 5}, strategy.Candidates(b, model.PlayerO))

	s.mockRandom.QueueIntn(1)
	move, ok := s.strategy.FindMove(b, model.PlayerO)
	s.True(ok)
	s.Equal(5, move)
}

func (s *HeuristicSuite) TestFullBoard_NoMove() {
	_, ok := s.strategy.FindMove(s.board("XOXXOOOXX"), model.PlayerX)
	s.False(ok)
	s.Empty(strategy.Candidates(s.board("XOXXOOOXX"), model.PlayerX))
}

func (s *HeuristicSuite) TestDoesNotMutateBoard() {
	b := s.board("XX__O____")
	before := b
	_, _ = s.strategy.FindMove(b, model.PlayerX)
	s.Equal(before, b)
}
