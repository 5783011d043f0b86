package factory

import (
	"time"

	"github.com/mcoot/solaropoly/internal/dependencies/mocks"
	"github.com/mcoot/solaropoly/internal/storage/memory"
	"github.com/mcoot/solaropoly/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// QueueRoll queues one throw of two dice
func (t *TestApp) QueueRoll(a, b int) {
	t.MockRandom.QueueRoll(a, b)
}
