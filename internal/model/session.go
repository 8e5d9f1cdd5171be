package model

import "time"

// SessionID uniquely identifies a play session
type SessionID string

// MoveRecord is one applied move in the current game
type MoveRecord struct {
	Cell   int
	Player Player
	ByAI   bool
	At     time.Time
}

// Score is the running tally across the games of a session
type Score struct {
	HumanWins int
	AIWins    int
	Draws     int
}

// Total returns the number of finished games
func (s Score) Total() int {
	return s.HumanWins + s.AIWins + s.Draws
}

// Session is a human playing a sequence of games against one strategy.
// The board is replaced on reset; the score and opponent model carry over.
type Session struct {
	ID          SessionID
	Strategy    StrategyKind
	HumanPlayer Player

	// Current game
	Board      Board
	ToMove     Player
	Outcome    Outcome
	Moves      []MoveRecord
	GameNumber int // 1-indexed

	// AIPending is true between a human move and the delayed AI reply
	AIPending bool
	// Generation is bumped on reset so stale AI replies can be discarded
	Generation uint64

	Score   Score
	Beliefs *BeliefDistribution // nil unless the strategy models the opponent

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AIPlayer returns the token the strategy plays
func (s *Session) AIPlayer() Player {
	return s.HumanPlayer.Next()
}

// IsOver returns true if the current game has finished
func (s *Session) IsOver() bool {
	return s.Outcome.IsOver()
}

// IsAITurn returns true if the strategy should move next
func (s *Session) IsAITurn() bool {
	return !s.IsOver() && s.ToMove == s.AIPlayer()
}

// RecordResult adds the finished game's outcome to the score
func (s *Session) RecordResult() {
	switch {
	case s.Outcome.Status == OutcomeDraw:
		s.Score.Draws++
	case s.Outcome.Status == OutcomeWin && s.Outcome.Winner == s.HumanPlayer:
		s.Score.HumanWins++
	case s.Outcome.Status == OutcomeWin:
		s.Score.AIWins++
	}
}

// SessionSummary is a lightweight listing entry
type SessionSummary struct {
	ID        SessionID
	Strategy  StrategyKind
	Outcome   Outcome
	Score     Score
	UpdatedAt time.Time
}

// Summary returns the listing entry for the session
func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		ID:        s.ID,
		Strategy:  s.Strategy,
		Outcome:   s.Outcome,
		Score:     s.Score,
		UpdatedAt: s.UpdatedAt,
	}
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	c.Moves = append([]MoveRecord(nil), s.Moves...)
	if s.Beliefs != nil {
		beliefs := *s.Beliefs
		c.Beliefs = &beliefs
	}
	return &c
}
