package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-strategies/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.SessionTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func newSession(id model.SessionID, updated time.Time) *model.Session {
	beliefs := model.BeliefDistribution{0.1, 0.2, 0.3, 0.4}
	return &model.Session{
		ID:          id,
		Strategy:    model.StrategyModeled,
		HumanPlayer: model.PlayerX,
		Board:       model.NewBoard().With(0, model.PlayerX).With(4, model.PlayerO),
		ToMove:      model.PlayerX,
		Outcome:     model.InProgress(),
		Moves: []model.MoveRecord{
			{Cell: 0, Player: model.PlayerX, At: updated},
			{Cell: 4, Player: model.PlayerO, ByAI: true, At: updated},
		},
		GameNumber: 2,
		Generation: 3,
		Score:      model.Score{HumanWins: 1, Draws: 2},
		Beliefs:    &beliefs,
		CreatedAt:  updated,
		UpdatedAt:  updated,
	}
}

func (s *StorageSuite) TestSaveAndGetSession() {
	session := newSession("session-1", time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))

	err := s.storage.SaveSession(s.ctx, session)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(session.Board, retrieved.Board)
	s.Equal(session.Moves, retrieved.Moves)
	s.Equal(session.Score, retrieved.Score)
	s.Equal(*session.Beliefs, *retrieved.Beliefs)
	s.Equal(session.Outcome, retrieved.Outcome)
	s.Equal(uint64(3), retrieved.Generation)
	s.True(session.UpdatedAt.Equal(retrieved.UpdatedAt))
}

func (s *StorageSuite) TestSaveSession_FinishedGame() {
	session := newSession("session-1", time.Now())
	session.Outcome = model.Win(model.PlayerO)
	session.Beliefs = nil
	s.Require().NoError(s.storage.SaveSession(s.ctx, session))

	retrieved, err := s.storage.GetSession(s.ctx, "session-1")
	s.Require().NoError(err)
	s.Equal(model.Win(model.PlayerO), retrieved.Outcome)
	s.Nil(retrieved.Beliefs)
}

func (s *StorageSuite) TestSaveSession_AppliesTTL() {
	s.Require().NoError(s.storage.SaveSession(s.ctx, newSession("session-1", time.Now())))
	s.Equal(time.Hour, s.mini.TTL(sessionKey("session-1")))
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

	s.False(s.mini.Exists(sessionIndexKey()))
}

func (s *StorageSuite) TestListSessions() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = s.storage.SaveSession(s.ctx, newSession("a", base))
	_ = s.storage.SaveSession(s.ctx, newSession("b", base.Add(time.Minute)))

	summaries, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal(model.SessionID("b"), summaries[0].ID)
	s.Equal(model.SessionID("a"), summaries[1].ID)
	s.Equal(model.Score{HumanWins: 1, Draws: 2}, summaries[0].Score)
}

func (s *StorageSuite) TestListSessions_PrunesExpired() {
	_ = s.storage.SaveSession(s.ctx, newSession("a", time.Now()))
	_ = s.storage.SaveSession(s.ctx, newSession("b", time.Now()))

	s.mini.Del(sessionKey("a"))

	summaries, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(summaries, 1)
	s.Equal(model.SessionID("b"), summaries[0].ID)

	members, err := s.mini.Members(sessionIndexKey())
	s.Require().NoError(err)
	s.Equal([]string{"b"}, members)
}

func (s *StorageSuite) TestListSessions_Empty() {
	summaries, err := s.storage.ListSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(summaries)
}
