package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/tictactoe-strategies/internal/events"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	redisstorage "github.com/mcoot/tictactoe-strategies/internal/storage/redis"
	"github.com/mcoot/tictactoe-strategies/internal/testutil"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

func (s *IntegrationSuite) TearDownTest() {
	s.NoError(s.app.Close())
}

func (s *IntegrationSuite) subscribe(id model.SessionID) *events.Client {
	hub := s.app.HubManager.GetOrCreateHub(id)
	client := events.NewClient("test")
	hub.Register(client)
	s.Require().Eventually(func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	return client
}

func (s *IntegrationSuite) nextEvent(client *events.Client) model.Event {
	select {
	case event := <-client.Events():
		return event
	case <-time.After(time.Second):
		s.FailNow("no event received")
		return model.Event{}
	}
}

// playPerfectly plays the human side with alpha-beta until the game ends
func (s *IntegrationSuite) playPerfectly(id model.SessionID) *model.Session {
	for range model.CellCount {
		session, err := s.app.GameController.GetSession(s.ctx, id)
		s.Require().NoError(err)
		if session.IsOver() {
			return session
		}
		move, found, err := s.app.GameController.Suggest(session.Board, session.HumanPlayer, model.StrategyAlphaBeta)
		s.Require().NoError(err)
		s.Require().True(found)
		_, err = s.app.GameController.HumanMove(s.ctx, id, move)
		s.Require().NoError(err)
		s.app.AdvancePastAIDelay()
	}
	session, err := s.app.GameController.GetSession(s.ctx, id)
	s.Require().NoError(err)
	return session
}

// Test: events reach a subscribed client in order
func (s *IntegrationSuite) TestEventsFlowToSubscribers() {
	client := s.subscribe("GAME01")
	s.app.MockRandom.QueueString("GAME01")

	_, err := s.app.GameController.NewSession(s.ctx, model.StrategyMinimax, model.PlayerX)
	s.Require().NoError(err)
	s.Equal(model.EventSessionCreated, s.nextEvent(client).Type)

	_, err = s.app.GameController.HumanMove(s.ctx, "GAME01", 4)
	s.Require().NoError(err)
	applied := s.nextEvent(client)
	s.Equal(model.EventMoveApplied, applied.Type)
	s.Equal(model.MoveAppliedPayload{Cell: 4, Player: model.PlayerX, Board: model.NewBoard().With(4, model.PlayerX)}, applied.Payload)
	s.Equal(model.EventAIThinking, s.nextEvent(client).Type)

	s.app.AdvancePastAIDelay()
	reply := s.nextEvent(client)
	s.Equal(model.EventMoveApplied, reply.Type)
	payload, ok := reply.Payload.(model.MoveAppliedPayload)
	s.Require().True(ok)
	s.True(payload.ByAI)
	s.Equal(model.PlayerO, payload.Player)
}

// Test: perfect play against a perfect strategy draws, and the tally carries across games
func (s *IntegrationSuite) TestPerfectPlayDrawsAcrossGames() {
	s.app.MockRandom.QueueString("GAME01")
	_, err := s.app.GameController.NewSession(s.ctx, model.StrategyAlphaBeta, model.PlayerX)
	s.Require().NoError(err)

	session := s.playPerfectly("GAME01")
	s.Equal(model.Draw(), session.Outcome)
	s.Equal(model.Score{Draws: 1}, session.Score)

	_, err = s.app.GameController.Reset(s.ctx, "GAME01")
	s.Require().NoError(err)
	session = s.playPerfectly("GAME01")
	s.Equal(model.Draw(), session.Outcome)
	s.Equal(model.Score{Draws: 2}, session.Score)
	s.Equal(2, session.GameNumber)
}

// Test: AI moving first as X against the human's O
func (s *IntegrationSuite) TestAIMovesFirst() {
	s.app.MockRandom.QueueString("GAME01")
	session, err := s.app.GameController.NewSession(s.ctx, model.StrategyLookup, model.PlayerO)
	s.Require().NoError(err)
	s.True(session.AIPending)

	s.app.AdvancePastAIDelay()
	session, err = s.app.GameController.GetSession(s.ctx, "GAME01")
	s.Require().NoError(err)
	s.Equal(1, session.Board.Count(model.PlayerX))
	s.Equal(model.PlayerO, session.ToMove)

	session = s.playPerfectly("GAME01")
	s.True(session.IsOver())
	s.NotEqual(model.Win(model.PlayerX), session.Outcome)
}

// Test: the opponent model learns across several games of the same session
func (s *IntegrationSuite) TestModeledBeliefsPersistAcrossGames() {
	s.app.MockRandom.QueueString("GAME01")
	_, err := s.app.GameController.NewSession(s.ctx, model.StrategyModeled, model.PlayerX)
	s.Require().NoError(err)

	var previous model.BeliefDistribution
	for game := range 3 {
		session := s.playPerfectly("GAME01")
		s.Require().NotNil(session.Beliefs)
		s.True(session.Beliefs.IsNormalized(1e-6))
		if game > 0 {
			s.NotEqual(previous, *session.Beliefs)
		}
		previous = *session.Beliefs

		_, err = s.app.GameController.Reset(s.ctx, "GAME01")
		s.Require().NoError(err)
	}

	beliefs, err := s.app.GameController.Beliefs(s.ctx, "GAME01")
	s.Require().NoError(err)
	s.Equal(previous, beliefs)
}

func TestNew_DefaultsToMemory(t *testing.T) {
	app, err := New(Config{})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	session, err := app.GameController.NewSession(context.Background(), model.StrategyHeuristic, model.PlayerX)
	require.NoError(t, err)
	assert.Len(t, string(session.ID), 12)
	assert.Equal(t, 0, app.QTable.Len())
}

func TestNew_InvalidStorage(t *testing.T) {
	_, err := New(Config{StorageType: "postgres"})
	assert.Error(t, err)

	_, err = New(Config{StorageType: StorageTypeRedis})
	assert.Error(t, err)

	_, err = New(Config{StorageType: StorageTypeSQLite})
	assert.Error(t, err)
}

func TestNew_Redis(t *testing.T) {
	mini := miniredis.RunT(t)
	redisCfg := redisstorage.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{StorageType: StorageTypeRedis, RedisConfig: &redisCfg, Logger: testutil.NopLogger()})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	session, err := app.GameController.NewSession(context.Background(), model.StrategyMinimax, model.PlayerX)
	require.NoError(t, err)
	assert.True(t, mini.Exists("ttt:session:"+string(session.ID)))
}

func TestNew_SQLiteSurvivesRestart(t *testing.T) {
	cfg := Config{StorageType: StorageTypeSQLite, SQLitePath: filepath.Join(t.TempDir(), "ttt.db")}

	app, err := New(cfg)
	require.NoError(t, err)
	session, err := app.GameController.NewSession(context.Background(), model.StrategyModeled, model.PlayerX)
	require.NoError(t, err)
	_, err = app.GameController.HumanMove(context.Background(), session.ID, 4)
	require.NoError(t, err)
	require.NoError(t, app.Close())

	restarted, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = restarted.Close() }()

	loaded, err := restarted.GameController.GetSession(context.Background(), session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PlayerX, loaded.Board.Get(4))
	require.NotNil(t, loaded.Beliefs)
	assert.True(t, loaded.Beliefs.IsNormalized(1e-6))
}

func TestNew_LoadsQTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qtable.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"_________": {"4": 1.0}, "X________": {"4": 0.5}}`), 0o600))

	app, err := New(Config{QTablePath: path})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()
	assert.Equal(t, 2, app.QTable.Len())

	board := model.NewBoard()
	move, found, err := app.GameController.Suggest(board, model.PlayerX, model.StrategyQLearning)
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, board.IsEmpty(move))
}

func TestNew_MissingQTable(t *testing.T) {
	_, err := New(Config{QTablePath: filepath.Join(t.TempDir(), "missing.json")})
	assert.Error(t, err)
}
