package factory

import (
	"time"

	"github.com/conclave-gg/conclave/internal/dependencies/mocks"
	"github.com/conclave-gg/conclave/internal/lobby"
	"github.com/conclave-gg/conclave/internal/storage/memory"
	"github.com/conclave-gg/conclave/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Queue a string on MockRandom before each CreateLobby so codes stay unique.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, lobby.DefaultManagerConfig(), testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
