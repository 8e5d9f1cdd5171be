package strategy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-strategies/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/strategy"
)

func TestLookup_BookMoves(t *testing.T) {
	s := strategy.NewLookup(mocks.NewMockRandom())
	tests := map[string]int{
		"_________": 4,
		"X________": 4,
		"____X____": 0,
		"X___O____": 2,
		"X______O_": 2,
		"X_______O": 1,
	}
	for key, expected := range tests {
		b := mustBoard(t, key)
		move, ok := s.FindMove(b, b.ToMove())
		require.True(t, ok, key)
		assert.Equal(t, expected, move, key)
	}
}

func TestLookup_OccupiedBookEntryFallsBack(t *testing.T) {
	s := strategy.NewLookup(mocks.NewMockRandom())
	book := strategy.OpeningBook()
	require.Equal(t, 0, book["X____O___"])

	// the book answer is occupied by X; the heuristic takes the center
	move, ok := s.FindMove(mustBoard(t, "X____O___"), model.PlayerX)
	require.True(t, ok)
	assert.Equal(t, 4, move)
}

func TestLookup_MissFallsBack(t *testing.T) {
	s := strategy.NewLookup(mocks.NewMockRandom())
	move, ok := s.FindMove(mustBoard(t, "XX__O____"), model.PlayerX)
	require.True(t, ok)
	assert.Equal(t, 2, move)
}

func TestLookup_BookIsCopied(t *testing.T) {
	book := strategy.OpeningBook()
	book["_________"] = 8
	assert.Equal(t, 4, strategy.OpeningBook()["_________"])
}
