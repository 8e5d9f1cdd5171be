package request

// SuggestRequest is the request body for a one-off move suggestion
type SuggestRequest struct {
	Board    string `json:"board"`
	Mover    string `json:"mover"`
	Strategy string `json:"strategy,omitempty"`
}

// CreateSessionRequest is the request body for starting a session
type CreateSessionRequest struct {
	Strategy    string `json:"strategy,omitempty"`
	HumanPlayer string `json:"human_player,omitempty"`
}

// MoveRequest is the request body for a human move
type MoveRequest struct {
	Cell *int `json:"cell"`
}
