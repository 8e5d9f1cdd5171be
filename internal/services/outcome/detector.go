// Package outcome detects wins and draws and finds pattern-completing moves.
// Every strategy shares these rules.
package outcome

import "github.com/mcoot/tictactoe-strategies/internal/model"

// Detect reports the first satisfied win pattern, else Draw for a full board,
// else InProgress
func Detect(b model.Board) model.Outcome {
	if winner := Winner(b); winner != model.NoPlayer {
		return model.Win(winner)
	}
	if b.IsFull() {
		return model.Draw()
	}
	return model.InProgress()
}

// Winner returns the owner of the first satisfied pattern, or NoPlayer
func Winner(b model.Board) model.Player {
	for _, pattern := range model.WinPatterns {
		p := b[pattern[0]]
		if p != model.NoPlayer && b[pattern[1]] == p && b[pattern[2]] == p {
			return p
		}
	}
	return model.NoPlayer
}

// CompletingMove returns the empty cell of the first pattern holding exactly
// two of p's tokens and one empty cell. Playing it wins for p.
func CompletingMove(b model.Board, p model.Player) (int, bool) {
	for _, pattern := range model.WinPatterns {
		owned, empty := 0, -1
		for _, idx := range pattern {
			switch b[idx] {
			case p:
				owned++
			case model.NoPlayer:
				empty = idx
			}
		}
		if owned == 2 && empty >= 0 {
			return empty, true
		}
	}
	return 0, false
}
