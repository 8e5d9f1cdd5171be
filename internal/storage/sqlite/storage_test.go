package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-strategies/internal/model"
)

type StorageSuite struct {
	suite.Suite
	path    string
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "sessions.db")
	store, err := New(s.path)
	s.Require().NoError(err)
	s.storage = store
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
}

func newSession(id model.SessionID, updated time.Time) *model.Session {
	return &model.Session{
		ID:          id,
		Strategy:    model.StrategyAlphaBeta,
		HumanPlayer: model.PlayerO,
		Board:       model.NewBoard().With(4, model.PlayerX),
		ToMove:      model.PlayerO,
		Outcome:     model.InProgress(),
		Moves:       []model.MoveRecord{{Cell: 4, Player: model.PlayerX, ByAI: true, At: updated}},
		GameNumber:  1,
		CreatedAt:   updated,
		UpdatedAt:   updated,
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := newSession("session-1", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(session.ID, retrieved.ID)
	s.Equal(session.Strategy, retrieved.Strategy)
	s.Equal(model.PlayerO, retrieved.HumanPlayer)
	s.Equal(session.Board, retrieved.Board)
	s.Equal(session.Moves, retrieved.Moves)
	s.Nil(retrieved.Beliefs)
}

func (s *StorageSuite) TestSaveSession_Overwrites() {
	session := newSession("session-1", time.Now())
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	session.Board.Set(0, model.PlayerO)
	session.Score.AIWins = 4
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(model.PlayerO, retrieved.Board.Get(0))
	s.Equal(4, retrieved.Score.AIWins)

	summaries, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Len(summaries, 1)
}

func (s *StorageSuite) TestGetSessionNotFound() {
	_, err := s.storage.GetSession(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestDeleteSession() {
	_ = s.storage.SaveSession(s.ctx, newSession("session-1", time.Now()))

	err := s.storage.DeleteSession(s.ctx, "session-1")
	s.Require().NoError(err)

	_, err = s.storage.GetSession(s.ctx, "session-1")
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *StorageSuite) TestListSessions() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = s.storage.SaveSession(s.ctx, newSession("a", base.Add(time.Minute)))
	_ = s.storage.SaveSession(s.ctx, newSession("b", base))

	summaries, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal(model.SessionID("a"), summaries[0].ID)
	s.Equal(model.SessionID("b"), summaries[1].ID)
}

func (s *StorageSuite) TestPersistsAcrossReopen() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, newSession("session-1", time.Now())))
	s.Require().NoError(s.storage.Close())

	reopened, err := New(s.path)
	s.Require().NoError(err)
	s.storage = reopened

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(model.StrategyAlphaBeta, retrieved.Strategy)
}
