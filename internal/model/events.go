package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventSessionCreated EventType = "session_created"
	EventMoveApplied    EventType = "move_applied"
	EventAIThinking     EventType = "ai_thinking"
	EventGameOver       EventType = "game_over"
	EventGameReset      EventType = "game_reset"
	EventScoresReset    EventType = "scores_reset"
	EventBeliefsUpdated EventType = "beliefs_updated"
	EventAIMoveDropped  EventType = "ai_move_dropped"
)

// Event is the base structure for all session events
type Event struct {
	Type      EventType
	Timestamp time.Time
	SessionID SessionID
	Payload   any // Type-specific data
}

// MoveAppliedPayload contains data for move applied events
type MoveAppliedPayload struct {
	Cell   int
	Player Player
	ByAI   bool
	Board  Board
}

// GameOverPayload contains data for game over events
type GameOverPayload struct {
	Outcome Outcome
	Score   Score
}

// BeliefsUpdatedPayload contains data for belief update events
type BeliefsUpdatedPayload struct {
	ObservedCell int
	Beliefs      BeliefDistribution
}

// SessionPayload contains data for session created and game reset events
type SessionPayload struct {
	Strategy    StrategyKind
	HumanPlayer Player
	GameNumber  int
	Board       Board
}

// AIThinkingPayload contains data for AI thinking events
type AIThinkingPayload struct {
	Delay time.Duration
}

// ScoresResetPayload contains data for score reset events
type ScoresResetPayload struct {
	Score Score
}

// AIMoveDroppedPayload is sent when a delayed AI move outlived its game
type AIMoveDroppedPayload struct {
	Generation uint64
}
