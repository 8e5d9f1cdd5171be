package storage

import (
	"cmp"
	"context"
	"slices"

	"github.com/mcoot/tictactoe-strategies/internal/model"
)

// Storage defines the interface for session persistence
type Storage interface {
	SaveSession(ctx context.Context, session *model.Session) error
	// GetSession returns model.ErrSessionNotFound for unknown ids
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	// ListSessions returns summaries, most recently updated first
	ListSessions(ctx context.Context) ([]model.SessionSummary, error)
}

// SortSummaries orders summaries most recently updated first, then by id
func SortSummaries(summaries []model.SessionSummary) {
	slices.SortFunc(summaries, func(a, b model.SessionSummary) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}
