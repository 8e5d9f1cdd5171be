package outcome

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/tictactoe-strategies/internal/model"
)

func mustBoard(t *testing.T, key string) model.Board {
	t.Helper()
	b, err := model.ParseBoard(key)
	require.NoError(t, err)
	return b
}

func TestDetect_EveryPatternWins(t *testing.T) {
	for _, player := range []model.Player{model.PlayerX, model.PlayerO} {
		for i, pattern := range model.WinPatterns {
			t.Run(fmt.Sprintf("%s_pattern_%d", player, i), func(t *testing.T) {
				var b model.Board
				for _, idx := range pattern {
					b[idx] = player
				}
				// Fill one unrelated cell with the other player where possible
				for idx := 0; idx < model.CellCount; idx++ {
					if b[idx] == model.NoPlayer {
						b[idx] = player.Next()
						break
					}
				}

				assert.Equal(t, model.Win(player), Detect(b))
			})
		}
	}
}

func TestDetect_Draw(t *testing.T) {
	// X O X / X O O / O X X
	b := mustBoard(t, "XOXXOOOXX")
	assert.Equal(t, model.Draw(), Detect(b))
}

func TestDetect_InProgress(t *testing.T) {
	tests := []string{
		"_________",
		"X___O____",
		"XOXXOO_XO",
	}
	for _, key := range tests {
		t.Run(key, func(t *testing.T) {
			assert.Equal(t, model.InProgress(), Detect(mustBoard(t, key)))
		})
	}
}

func TestDetect_WinOnFullBoard(t *testing.T) {
	// X X X / O O X / X O O
	b := mustBoard(t, "XXXOOXXOO")
	assert.Equal(t, model.Win(model.PlayerX), Detect(b))
}

func TestDetect_FirstPatternReported(t *testing.T) {
	// Row 0 and column 0 both X; row 0 comes first in enumeration
	b := mustBoard(t, "XXXXOOXOO")
	assert.Equal(t, model.PlayerX, Winner(b))
}

func TestCompletingMove(t *testing.T) {
	tests := []struct {
		name   string
		board  string
		player model.Player
		want   int
		found  bool
	}{
		{"row completion", "XX__O____", model.PlayerX, 2, true},
		{"column blocked", "X__X__O_O", model.PlayerX, 6, false},
		{"diagonal blocked", "O___O___X", model.PlayerO, 0, false},
		{"block target for O", "____O_XX_", model.PlayerX, 8, true},
		{"no pair", "X___O____", model.PlayerX, 0, false},
		{"blocked pattern", "XXO______", model.PlayerX, 0, false},
		{"first pattern wins", "XX_XO____", model.PlayerX, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			move, ok := CompletingMove(mustBoard(t, tt.board), tt.player)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, move)
			}
		})
	}
}
