package events

import (
	"encoding/json"
	"time"

	"github.com/mcoot/tictactoe-strategies/internal/model"
)

// WireEvent is the JSON form of a session event sent to streaming clients
type WireEvent struct {
	Type      model.EventType `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	SessionID model.SessionID `json:"session_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

// MovePayload is the wire form of model.MoveAppliedPayload
type MovePayload struct {
	Cell   int    `json:"cell"`
	Player string `json:"player"`
	ByAI   bool   `json:"by_ai"`
	Board  string `json:"board"`
}

// ScorePayload is the wire form of model.Score
type ScorePayload struct {
	HumanWins int `json:"human_wins"`
	AIWins    int `json:"ai_wins"`
	Draws     int `json:"draws"`
}

// GameOverPayload is the wire form of model.GameOverPayload
type GameOverPayload struct {
	Status string       `json:"status"`
	Winner string       `json:"winner,omitempty"`
	Score  ScorePayload `json:"score"`
}

// BeliefsPayload is the wire form of model.BeliefsUpdatedPayload
type BeliefsPayload struct {
	ObservedCell int                `json:"observed_cell"`
	Beliefs      map[string]float64 `json:"beliefs"`
}

// SessionPayload is the wire form of model.SessionPayload
type SessionPayload struct {
	Strategy    string `json:"strategy"`
	HumanPlayer string `json:"human_player"`
	GameNumber  int    `json:"game_number"`
	Board       string `json:"board"`
}

// ThinkingPayload is the wire form of model.AIThinkingPayload
type ThinkingPayload struct {
	DelayMS int64 `json:"delay_ms"`
}

// DroppedPayload is the wire form of model.AIMoveDroppedPayload
type DroppedPayload struct {
	Generation uint64 `json:"generation"`
}

func scoreToWire(s model.Score) ScorePayload {
	return ScorePayload{HumanWins: s.HumanWins, AIWins: s.AIWins, Draws: s.Draws}
}

// payloadToWire maps a model payload to its tagged wire struct
func payloadToWire(payload any) any {
	switch p := payload.(type) {
	case model.MoveAppliedPayload:
		return MovePayload{Cell: p.Cell, Player: p.Player.String(), ByAI: p.ByAI, Board: p.Board.String()}
	case model.GameOverPayload:
		return GameOverPayload{
			Status: string(p.Outcome.Status),
			Winner: p.Outcome.Winner.String(),
			Score:  scoreToWire(p.Score),
		}
	case model.BeliefsUpdatedPayload:
		return BeliefsPayload{ObservedCell: p.ObservedCell, Beliefs: p.Beliefs.Map()}
	case model.SessionPayload:
		return SessionPayload{
			Strategy:    string(p.Strategy),
			HumanPlayer: p.HumanPlayer.String(),
			GameNumber:  p.GameNumber,
			Board:       p.Board.String(),
		}
	case model.AIThinkingPayload:
		return ThinkingPayload{DelayMS: p.Delay.Milliseconds()}
	case model.ScoresResetPayload:
		return scoreToWire(p.Score)
	case model.AIMoveDroppedPayload:
		return DroppedPayload{Generation: p.Generation}
	default:
		return p
	}
}

// Encode returns the JSON wire encoding of an event
func Encode(event model.Event) ([]byte, error) {
	wire := WireEvent{
		Type:      event.Type,
		Timestamp: event.Timestamp,
		SessionID: event.SessionID,
	}
	if event.Payload != nil {
		payload, err := json.Marshal(payloadToWire(event.Payload))
		if err != nil {
			return nil, err
		}
		wire.Payload = payload
	}
	return json.Marshal(wire)
}
