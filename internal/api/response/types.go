package response

import (
	"time"

	"github.com/mcoot/tictactoe-strategies/internal/model"
)

// Strategy describes a selectable strategy
type Strategy struct {
	Kind              string `json:"kind"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	HistoricalContext string `json:"historical_context"`
	ModelsOpponent    bool   `json:"models_opponent"`
}

// StrategyFromModel converts model.StrategyInfo
func StrategyFromModel(info model.StrategyInfo) Strategy {
	return Strategy{
		Kind:              string(info.Kind),
		Name:              info.Name,
		Description:       info.Description,
		HistoricalContext: info.HistoricalContext,
		ModelsOpponent:    info.Kind == model.StrategyModeled,
	}
}

// StrategyList is the response for GET /strategies
type StrategyList struct {
	Strategies []Strategy `json:"strategies"`
	Default    string     `json:"default"`
}

// Suggestion is the response for POST /suggest
type Suggestion struct {
	Move     int    `json:"move"`
	Found    bool   `json:"found"`
	Strategy string `json:"strategy"`
}

// Score is the running tally of a session
type Score struct {
	HumanWins int `json:"human_wins"`
	AIWins    int `json:"ai_wins"`
	Draws     int `json:"draws"`
}

// ScoreFromModel converts model.Score
func ScoreFromModel(s model.Score) Score {
	return Score{HumanWins: s.HumanWins, AIWins: s.AIWins, Draws: s.Draws}
}

// Move is one applied move
type Move struct {
	Cell   int       `json:"cell"`
	Player string    `json:"player"`
	ByAI   bool      `json:"by_ai"`
	At     time.Time `json:"at"`
}

// Session is the full state of a session
type Session struct {
	ID          string             `json:"id"`
	Strategy    string             `json:"strategy"`
	HumanPlayer string             `json:"human_player"`
	AIPlayer    string             `json:"ai_player"`
	Board       string             `json:"board"`
	ToMove      string             `json:"to_move"`
	Status      string             `json:"status"`
	Winner      string             `json:"winner,omitempty"`
	GameNumber  int                `json:"game_number"`
	AIPending   bool               `json:"ai_pending"`
	Moves       []Move             `json:"moves"`
	Score       Score              `json:"score"`
	Beliefs     map[string]float64 `json:"beliefs,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// SessionFromModel converts a model.Session
func SessionFromModel(s *model.Session) Session {
	moves := make([]Move, len(s.Moves))
	for i, m := range s.Moves {
		moves[i] = Move{Cell: m.Cell, Player: m.Player.String(), ByAI: m.ByAI, At: m.At}
	}

	resp := Session{
		ID:          string(s.ID),
		Strategy:    string(s.Strategy),
		HumanPlayer: s.HumanPlayer.String(),
		AIPlayer:    s.AIPlayer().String(),
		Board:       s.Board.String(),
		ToMove:      s.ToMove.String(),
		Status:      string(s.Outcome.Status),
		Winner:      s.Outcome.Winner.String(),
		GameNumber:  s.GameNumber,
		AIPending:   s.AIPending,
		Moves:       moves,
		Score:       ScoreFromModel(s.Score),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.IsOver() {
		resp.ToMove = ""
	}
	if s.Beliefs != nil {
		resp.Beliefs = s.Beliefs.Map()
	}
	return resp
}

// SessionSummary is a listing entry
type SessionSummary struct {
	ID        string    `json:"id"`
	Strategy  string    `json:"strategy"`
	Status    string    `json:"status"`
	Score     Score     `json:"score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionList is the response for GET /sessions
type SessionList struct {
	Sessions []SessionSummary `json:"sessions"`
}

// SessionListFromModel converts session summaries
func SessionListFromModel(summaries []model.SessionSummary) SessionList {
	list := SessionList{Sessions: make([]SessionSummary, len(summaries))}
	for i, s := range summaries {
		list.Sessions[i] = SessionSummary{
			ID:        string(s.ID),
			Strategy:  string(s.Strategy),
			Status:    string(s.Outcome.Status),
			Score:     ScoreFromModel(s.Score),
			UpdatedAt: s.UpdatedAt,
		}
	}
	return list
}

// Beliefs is the response for GET /sessions/{id}/beliefs
type Beliefs struct {
	Beliefs    map[string]float64 `json:"beliefs"`
	MostLikely string             `json:"most_likely"`
}

// BeliefsFromModel converts a belief distribution
func BeliefsFromModel(d model.BeliefDistribution) Beliefs {
	return Beliefs{Beliefs: d.Map(), MostLikely: d.MostLikely().String()}
}

// Health is the response for GET /health
type Health struct {
	Status string `json:"status"`
}
