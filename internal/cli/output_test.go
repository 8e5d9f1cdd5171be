package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-strategies/internal/api/response"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/arena"
	"github.com/mcoot/tictactoe-strategies/internal/services/strategy"
)

func textOutput(color bool) (*Output, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewOutput("text", &buf, &buf, color), &buf
}

func TestOutput_Board(t *testing.T) {
	out, buf := textOutput(false)

	out.printBoard("XO__X___O")

	expected := "" +
		"   X | O | 2 \n" +
		"  ---+---+---\n" +
		"   3 | X | 5 \n" +
		"  ---+---+---\n" +
		"   6 | 7 | O \n"
	assert.Equal(t, expected, buf.String())
}

func TestOutput_BoardColors(t *testing.T) {
	out, buf := textOutput(true)

	out.printBoard("XO_______")

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "X")
	assert.Contains(t, buf.String(), "O")
}

func TestOutput_Session(t *testing.T) {
	out, buf := textOutput(false)

	out.Print(response.Session{
		ID:          "abc",
		Strategy:    "mcts-modeled",
		HumanPlayer: "X",
		AIPlayer:    "O",
		Board:       "XXX_OO___",
		Status:      string(model.OutcomeWin),
		Winner:      "X",
		GameNumber:  2,
		Score:       response.Score{HumanWins: 2, AIWins: 0, Draws: 1},
		Beliefs:     model.UniformBeliefs().Map(),
	})

	text := buf.String()
	assert.Contains(t, text, "Session: abc")
	assert.Contains(t, text, "X wins")
	assert.Contains(t, text, "Score: you 2, AI 0, draws 1")
	assert.Contains(t, text, "Opponent model:")
	assert.Regexp(t, `random\s+25\.0%`, text)
}

func TestOutput_SessionStates(t *testing.T) {
	tests := []struct {
		name     string
		session  response.Session
		expected string
	}{
		{"draw", response.Session{Board: "XOXXOOOXX", Status: string(model.OutcomeDraw)}, "Draw"},
		{"thinking", response.Session{Board: "X________", AIPlayer: "O", AIPending: true}, "AI (O) is thinking..."},
		{"to move", response.Session{Board: "X___O____", ToMove: "X"}, "To move: X"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, buf := textOutput(false)
			out.Print(tt.session)
			assert.Contains(t, buf.String(), tt.expected)
		})
	}
}

func TestOutput_Explanation(t *testing.T) {
	board, err := model.ParseBoard("XX__O____")
	require.NoError(t, err)

	e := explainMove(strategy.NewMinimax(), board, model.PlayerX)
	assert.Equal(t, 2, e.Move)
	require.NotNil(t, e.Score)

	out, buf := textOutput(false)
	out.Print(e)
	assert.Contains(t, buf.String(), "minimax suggests cell 2 for X")
	assert.Contains(t, buf.String(), "cell 2: +10")
}

func TestOutput_ExplanationFullBoard(t *testing.T) {
	board, err := model.ParseBoard("XOXXOOOXX")
	require.NoError(t, err)

	e := explainMove(strategy.NewAlphaBeta(), board, model.PlayerO)
	assert.False(t, e.Found)
	assert.Nil(t, e.Score)

	out, buf := textOutput(false)
	out.Print(e)
	assert.Contains(t, buf.String(), "No move: the board is full")
}

func TestOutput_ArenaSummary(t *testing.T) {
	beliefs := model.BeliefDistribution{0.1, 0.2, 0.3, 0.4}
	summary := ArenaSummaryFromResult(&arena.Result{
		X: model.StrategyHeuristic, O: model.StrategyModeled,
		Games: 10, XWins: 2, OWins: 5, Draws: 3,
		AverageLength: 7.5,
		Beliefs:       &beliefs, ModeledPlayer: model.PlayerO,
	})
	assert.Equal(t, "O", summary.ModeledPlayer)

	out, buf := textOutput(false)
	out.Print(summary)

	text := buf.String()
	assert.Contains(t, text, "heuristic (X) vs mcts-modeled (O), 10 games")
	assert.Regexp(t, `O wins:\s+5\s+50\.0%`, text)
	assert.Contains(t, text, "Average length: 7.50 moves")
	assert.Contains(t, text, "Opponent model (O):")
	assert.Regexp(t, `optimal\s+40\.0% ########`, text)
}

func TestOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput("json", &buf, &buf, false)

	out.Print(response.Suggestion{Move: 4, Found: true, Strategy: "heuristic"})

	var decoded response.Suggestion
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 4, decoded.Move)
}

func TestOutput_PrintError(t *testing.T) {
	var stdout, stderr bytes.Buffer
	out := NewOutput("json", &stdout, &stderr, false)

	out.PrintError(errors.New("boom"))

	assert.Empty(t, stdout.String())
	assert.JSONEq(t, `{"error":{"message":"boom"}}`, stderr.String())
}
