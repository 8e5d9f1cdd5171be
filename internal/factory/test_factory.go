package factory

import (
	"time"

	"github.com/mcoot/tictactoe-strategies/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-strategies/internal/services/game"
	"github.com/mcoot/tictactoe-strategies/internal/services/strategy"
	"github.com/mcoot/tictactoe-strategies/internal/storage/memory"
	"github.com/mcoot/tictactoe-strategies/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// TestGameConfig keeps searches small so tests stay fast
func TestGameConfig() game.Config {
	cfg := game.DefaultConfig()
	cfg.Strategy.RolloutPlayouts = 50
	cfg.Strategy.ModeledPlayouts = 50
	return cfg
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, strategy.NewQTable(), TestGameConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// AdvancePastAIDelay fires any pending AI reply
func (t *TestApp) AdvancePastAIDelay() {
	t.MockClock.Advance(t.GameController.Config().AIDelayMax)
}
