// Package game runs play sessions: a human alternating moves with a
// strategy, one delayed AI reply at a time, with scores and the
// opponent model carried across games.
package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/tictactoe-strategies/internal/dependencies/clock"
	"github.com/mcoot/tictactoe-strategies/internal/dependencies/random"
	"github.com/mcoot/tictactoe-strategies/internal/model"
	"github.com/mcoot/tictactoe-strategies/internal/services/outcome"
	"github.com/mcoot/tictactoe-strategies/internal/services/strategy"
	"github.com/mcoot/tictactoe-strategies/internal/storage"
)

const (
	// SessionIDAlphabet is the character set for generating session IDs
	SessionIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	// SessionIDLength is the length of generated session IDs
	SessionIDLength = 12

	// aiMoveTimeout bounds the storage work done by a delayed AI move
	aiMoveTimeout = 5 * time.Second
)

// Config holds session pacing and strategy tuning
type Config struct {
	// The AI replies after a uniformly random delay in [AIDelayMin, AIDelayMax]
	AIDelayMin time.Duration
	AIDelayMax time.Duration

	Strategy strategy.Config
}

// DefaultConfig returns the standard pacing and tuning
func DefaultConfig() Config {
	return Config{
		AIDelayMin: 300 * time.Millisecond,
		AIDelayMax: 500 * time.Millisecond,
		Strategy:   strategy.DefaultConfig(),
	}
}

// Publisher receives session events
type Publisher interface {
	Publish(event model.Event)
	RemoveHub(sessionID model.SessionID)
}

// runtime is the in-process state of a live session
type runtime struct {
	mu       sync.Mutex
	strategy strategy.Strategy
	timer    clock.Timer
}

func (rt *runtime) stopTimer() {
	if rt.timer != nil {
		rt.timer.Stop()
		rt.timer = nil
	}
}

// Controller manages play sessions
type Controller struct {
	storage   storage.Storage
	publisher Publisher
	qtable    *strategy.QTable
	cfg       Config
	clock     clock.Clock
	random    random.Random
	logger    *slog.Logger

	mu       sync.Mutex
	runtimes map[model.SessionID]*runtime
}

// NewController creates a new Controller. qtable is shared by every
// Q-learning session and may be nil.
func NewController(
	store storage.Storage,
	publisher Publisher,
	qtable *strategy.QTable,
	cfg Config,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Controller {
	if qtable == nil {
		qtable = strategy.NewQTable()
	}
	return &Controller{
		storage:   store,
		publisher: publisher,
		qtable:    qtable,
		cfg:       cfg,
		clock:     clk,
		random:    rnd,
		logger:    logger.With(slog.String("component", "game-controller")),
		runtimes:  make(map[model.SessionID]*runtime),
	}
}

// Config returns the controller's timing and strategy tuning
func (c *Controller) Config() Config {
	return c.cfg
}

func (c *Controller) newStrategy(kind model.StrategyKind) (strategy.Strategy, error) {
	return strategy.New(kind, strategy.Deps{
		Random: c.random,
		QTable: c.qtable,
		Config: c.cfg.Strategy,
	})
}

// NewSession starts a session against the given strategy. X always moves
// first, so an AI playing X is scheduled to move straight away.
func (c *Controller) NewSession(ctx context.Context, kind model.StrategyKind, human model.Player) (*model.Session, error) {
	if !human.IsValid() {
		return nil, fmt.Errorf("%w: human player must be X or O", model.ErrInvalidPlayer)
	}
	strat, err := c.newStrategy(kind)
	if err != nil {
		return nil, err
	}

	now := c.clock.Now()
	session := &model.Session{
		ID:          model.SessionID(c.random.String(SessionIDLength, SessionIDAlphabet)),
		Strategy:    kind,
		HumanPlayer: human,
		Board:       model.NewBoard(),
		ToMove:      model.PlayerX,
		Outcome:     model.InProgress(),
		GameNumber:  1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if modeler, ok := strat.(strategy.OpponentModeler); ok {
		beliefs := modeler.Beliefs()
		session.Beliefs = &beliefs
	}

	// Registered before the first AI move can be scheduled; the timer
	// callback blocks on rt.mu until the session is saved
	rt := &runtime{strategy: strat}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	c.mu.Lock()
	c.runtimes[session.ID] = rt
	c.mu.Unlock()

	events := []model.Event{c.event(session.ID, model.EventSessionCreated, sessionPayload(session))}
	if session.IsAITurn() {
		events = append(events, c.scheduleAIMove(rt, session))
	}

	if err := c.storage.SaveSession(ctx, session); err != nil {
		rt.stopTimer()
		c.forgetRuntime(session.ID, rt)
		c.logger.Error("failed to save session",
			slog.String("session_id", string(session.ID)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("session created",
		slog.String("session_id", string(session.ID)),
		slog.String("strategy", string(kind)),
		slog.String("human_player", human.String()),
	)
	c.publish(events)
	return session.Clone(), nil
}

// GetSession retrieves a session by ID. A pending AI move left by an
// earlier process is re-armed on first read.
func (c *Controller) GetSession(ctx context.Context, id model.SessionID) (*model.Session, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil || !session.AIPending {
		return session, err
	}
	if err := c.resumeRuntime(ctx, id); err != nil {
		return nil, err
	}
	return session, nil
}

// ListSessions returns all session summaries
func (c *Controller) ListSessions(ctx context.Context) ([]model.SessionSummary, error) {
	return c.storage.ListSessions(ctx)
}

// HumanMove applies the human's move and, unless the game ended,
// schedules the AI reply
func (c *Controller) HumanMove(ctx context.Context, id model.SessionID, cell int) (*model.Session, error) {
	return c.withSession(ctx, id, func(rt *runtime, session *model.Session) ([]model.Event, error) {
		switch {
		case session.IsOver():
			return nil, model.ErrGameOver
		case session.AIPending:
			return nil, model.ErrAIMovePending
		case session.ToMove != session.HumanPlayer:
			return nil, model.ErrNotPlayerTurn
		case !model.IsValidCell(cell):
			return nil, fmt.Errorf("%w: %d", model.ErrInvalidCell, cell)
		case !session.Board.IsEmpty(cell):
			return nil, fmt.Errorf("%w: %d", model.ErrCellOccupied, cell)
		}

		var events []model.Event
		if modeler, ok := rt.strategy.(strategy.OpponentModeler); ok {
			modeler.UpdateOpponentModel(cell, session.Board)
			beliefs := modeler.Beliefs()
			session.Beliefs = &beliefs
			c.logger.Debug("opponent model updated",
				slog.String("session_id", string(id)),
				slog.Int("move", cell),
				slog.String("most_likely", beliefs.MostLikely().String()),
			)
			events = append(events, c.event(id, model.EventBeliefsUpdated, model.BeliefsUpdatedPayload{
				ObservedCell: cell,
				Beliefs:      beliefs,
			}))
		}

		events = append(events, c.applyMove(session, cell, session.HumanPlayer, false)...)
		if session.IsAITurn() {
			events = append(events, c.scheduleAIMove(rt, session))
		}
		return events, nil
	})
}

// Reset starts the next game. The score and the opponent model carry
// over; any pending AI move from the previous game is discarded.
func (c *Controller) Reset(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.withSession(ctx, id, func(rt *runtime, session *model.Session) ([]model.Event, error) {
		rt.stopTimer()
		session.Generation++
		session.GameNumber++
		session.Board = model.NewBoard()
		session.ToMove = model.PlayerX
		session.Outcome = model.InProgress()
		session.Moves = nil
		session.AIPending = false

		c.logger.Info("game reset",
			slog.String("session_id", string(id)),
			slog.Int("game_number", session.GameNumber),
		)
		events := []model.Event{c.event(id, model.EventGameReset, sessionPayload(session))}
		if session.IsAITurn() {
			events = append(events, c.scheduleAIMove(rt, session))
		}
		return events, nil
	})
}

// ResetScores zeroes the session's tally
func (c *Controller) ResetScores(ctx context.Context, id model.SessionID) (*model.Session, error) {
	return c.withSession(ctx, id, func(rt *runtime, session *model.Session) ([]model.Event, error) {
		session.Score = model.Score{}
		return []model.Event{c.event(id, model.EventScoresReset, model.ScoresResetPayload{Score: session.Score})}, nil
	})
}

// Beliefs returns the opponent model of a modeled session
func (c *Controller) Beliefs(ctx context.Context, id model.SessionID) (model.BeliefDistribution, error) {
	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		return model.BeliefDistribution{}, err
	}
	if session.Beliefs == nil {
		return model.BeliefDistribution{}, fmt.Errorf("%w: %s", model.ErrNotModeled, session.Strategy)
	}
	return *session.Beliefs, nil
}

// DeleteSession removes a session and cancels its pending AI move
func (c *Controller) DeleteSession(ctx context.Context, id model.SessionID) error {
	if _, err := c.storage.GetSession(ctx, id); err != nil {
		return err
	}

	rt := c.runtime(id)
	rt.mu.Lock()
	rt.stopTimer()
	err := c.storage.DeleteSession(ctx, id)
	rt.mu.Unlock()
	c.forgetRuntime(id, rt)
	if err != nil {
		return err
	}

	if c.publisher != nil {
		c.publisher.RemoveHub(id)
	}
	c.logger.Info("session deleted", slog.String("session_id", string(id)))
	return nil
}

// Suggest computes a one-off move with a fresh strategy instance
func (c *Controller) Suggest(board model.Board, mover model.Player, kind model.StrategyKind) (int, bool, error) {
	if !mover.IsValid() {
		return 0, false, fmt.Errorf("%w: mover must be X or O", model.ErrInvalidPlayer)
	}
	strat, err := c.newStrategy(kind)
	if err != nil {
		return 0, false, err
	}
	move, ok := strat.FindMove(board, mover)
	return move, ok, nil
}

// withSession serializes fn against the session's other operations, then
// saves the session and publishes fn's events if fn succeeded
func (c *Controller) withSession(
	ctx context.Context,
	id model.SessionID,
	fn func(rt *runtime, session *model.Session) ([]model.Event, error),
) (*model.Session, error) {
	rt := c.runtime(id)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			c.forgetRuntime(id, rt)
		}
		return nil, err
	}
	var pending []model.Event
	if rt.strategy == nil {
		if pending, err = c.restoreRuntime(rt, session); err != nil {
			return nil, err
		}
	}

	events, err := fn(rt, session)
	if err != nil {
		if len(pending) > 0 {
			c.publish(pending)
		}
		return nil, err
	}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		// fn may have armed a timer or updated the opponent model for state
		// that was never stored; the next access rebuilds both from storage
		rt.stopTimer()
		rt.strategy = nil
		c.logger.Error("failed to save session",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	c.publish(append(pending, events...))
	return session.Clone(), nil
}

// resumeRuntime restores the runtime of a session with a pending AI move
// if this process has not done so yet
func (c *Controller) resumeRuntime(ctx context.Context, id model.SessionID) error {
	rt := c.runtime(id)
	rt.mu.Lock()
	defer rt.mu.Unlock()
	if rt.strategy != nil {
		return nil
	}

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrSessionNotFound) {
			c.forgetRuntime(id, rt)
		}
		return err
	}
	pending, err := c.restoreRuntime(rt, session)
	if err != nil {
		return err
	}
	c.publish(pending)
	return nil
}

// restoreRuntime rebuilds the strategy of a session this process has not
// seen yet, such as after a restart with persistent storage
func (c *Controller) restoreRuntime(rt *runtime, session *model.Session) ([]model.Event, error) {
	if err := c.rebuildStrategy(rt, session); err != nil {
		return nil, err
	}

	c.logger.Info("session runtime restored",
		slog.String("session_id", string(session.ID)),
		slog.Bool("ai_pending", session.AIPending),
	)
	if session.AIPending {
		return []model.Event{c.scheduleAIMove(rt, session)}, nil
	}
	return nil, nil
}

// rebuildStrategy creates the session's strategy with its stored opponent model
func (c *Controller) rebuildStrategy(rt *runtime, session *model.Session) error {
	strat, err := c.newStrategy(session.Strategy)
	if err != nil {
		return err
	}
	if modeler, ok := strat.(strategy.OpponentModeler); ok && session.Beliefs != nil {
		modeler.RestoreBeliefs(*session.Beliefs)
	}
	rt.strategy = strat
	return nil
}

// applyMove places player's token and settles the game if it ended
func (c *Controller) applyMove(session *model.Session, cell int, player model.Player, byAI bool) []model.Event {
	now := c.clock.Now()
	session.Board.Set(cell, player)
	session.Moves = append(session.Moves, model.MoveRecord{Cell: cell, Player: player, ByAI: byAI, At: now})
	session.ToMove = player.Next()
	session.Outcome = outcome.Detect(session.Board)

	events := []model.Event{c.event(session.ID, model.EventMoveApplied, model.MoveAppliedPayload{
		Cell:   cell,
		Player: player,
		ByAI:   byAI,
		Board:  session.Board,
	})}

	if session.IsOver() {
		session.RecordResult()
		c.logger.Info("game over",
			slog.String("session_id", string(session.ID)),
			slog.String("status", string(session.Outcome.Status)),
			slog.String("winner", session.Outcome.Winner.String()),
			slog.Int("game_number", session.GameNumber),
		)
		events = append(events, c.event(session.ID, model.EventGameOver, model.GameOverPayload{
			Outcome: session.Outcome,
			Score:   session.Score,
		}))
	}
	return events
}

// scheduleAIMove marks the AI reply pending and arms a timer carrying the
// current generation. Callers must hold rt.mu.
func (c *Controller) scheduleAIMove(rt *runtime, session *model.Session) model.Event {
	delay := c.aiDelay()
	id, generation := session.ID, session.Generation

	session.AIPending = true
	rt.stopTimer()
	rt.timer = c.clock.AfterFunc(delay, func() {
		c.runAIMove(id, generation)
	})
	return c.event(id, model.EventAIThinking, model.AIThinkingPayload{Delay: delay})
}

func (c *Controller) aiDelay() time.Duration {
	span := c.cfg.AIDelayMax - c.cfg.AIDelayMin
	if span <= 0 {
		return max(c.cfg.AIDelayMin, 0)
	}
	return c.cfg.AIDelayMin + time.Duration(c.random.Intn(int(span/time.Millisecond)+1))*time.Millisecond
}

// runAIMove is the delayed AI reply. A reply whose generation no longer
// matches the session belongs to an earlier game and is discarded.
func (c *Controller) runAIMove(id model.SessionID, generation uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), aiMoveTimeout)
	defer cancel()

	c.mu.Lock()
	rt, ok := c.runtimes[id]
	c.mu.Unlock()
	if !ok {
		c.logger.Debug("ai move for unknown session dropped", slog.String("session_id", string(id)))
		return
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	session, err := c.storage.GetSession(ctx, id)
	if err != nil {
		c.logger.Warn("ai move could not load session",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		return
	}
	if session.Generation != generation || !session.AIPending {
		c.logger.Info("stale ai move discarded",
			slog.String("session_id", string(id)),
			slog.Uint64("generation", generation),
			slog.Uint64("current_generation", session.Generation),
		)
		c.publish([]model.Event{c.event(id, model.EventAIMoveDropped, model.AIMoveDroppedPayload{Generation: generation})})
		return
	}

	if rt.strategy == nil {
		if err := c.rebuildStrategy(rt, session); err != nil {
			c.logger.Error("ai move could not rebuild strategy",
				slog.String("session_id", string(id)),
				slog.String("error", err.Error()),
			)
			return
		}
	}

	rt.timer = nil
	session.AIPending = false
	var events []model.Event
	if move, found := rt.strategy.FindMove(session.Board, session.AIPlayer()); found {
		c.logger.Debug("ai moved",
			slog.String("session_id", string(id)),
			slog.String("strategy", string(session.Strategy)),
			slog.Int("move", move),
		)
		events = c.applyMove(session, move, session.AIPlayer(), true)
	}

	session.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveSession(ctx, session); err != nil {
		c.logger.Error("failed to save ai move",
			slog.String("session_id", string(id)),
			slog.String("error", err.Error()),
		)
		// The stored session is still pending; the next access re-arms it
		rt.strategy = nil
		return
	}
	c.publish(events)
}

// runtime returns the session's runtime, creating an empty one if needed
func (c *Controller) runtime(id model.SessionID) *runtime {
	c.mu.Lock()
	defer c.mu.Unlock()
	rt, ok := c.runtimes[id]
	if !ok {
		rt = &runtime{}
		c.runtimes[id] = rt
	}
	return rt
}

func (c *Controller) forgetRuntime(id model.SessionID, rt *runtime) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.runtimes[id] == rt {
		delete(c.runtimes, id)
	}
}

func (c *Controller) event(id model.SessionID, t model.EventType, payload any) model.Event {
	return model.Event{Type: t, Timestamp: c.clock.Now(), SessionID: id, Payload: payload}
}

func (c *Controller) publish(events []model.Event) {
	if c.publisher == nil {
		return
	}
	for _, e := range events {
		c.publisher.Publish(e)
	}
}

func sessionPayload(session *model.Session) model.SessionPayload {
	return model.SessionPayload{
		Strategy:    session.Strategy,
		HumanPlayer: session.HumanPlayer,
		GameNumber:  session.GameNumber,
		Board:       session.Board,
	}
}
