package model

// OutcomeStatus is the state of a game as seen from a board
type OutcomeStatus string

const (
	OutcomeInProgress OutcomeStatus = "in_progress"
	OutcomeWin        OutcomeStatus = "win"
	OutcomeDraw       OutcomeStatus = "draw"
)

// Outcome is the result of inspecting a board.
// Winner is only set when Status is OutcomeWin.
type Outcome struct {
	Status OutcomeStatus
	Winner Player
}

// InProgress is the outcome of a board with moves remaining and no winner
func InProgress() Outcome {
	return Outcome{Status: OutcomeInProgress}
}

// Draw is the outcome of a full board with no winner
func Draw() Outcome {
	return Outcome{Status: OutcomeDraw}
}

// Win is the outcome of a board where p completed a pattern
func Win(p Player) Outcome {
	return Outcome{Status: OutcomeWin, Winner: p}
}

// IsOver returns true for wins and draws
func (o Outcome) IsOver() bool {
	return o.Status != OutcomeInProgress
}
