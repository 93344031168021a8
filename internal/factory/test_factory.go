package factory

import (
	"log/slog"
	"time"

	"github.com/dadportal/dinojump-go/internal/dependencies/mocks"
	"github.com/dadportal/dinojump-go/internal/services/guardian"
	"github.com/dadportal/dinojump-go/internal/services/ledger"
	"github.com/dadportal/dinojump-go/internal/storage/memory"
	"github.com/dadportal/dinojump-go/internal/testutil"
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
	return NewTestAppWithConfig(ledger.DefaultConfig(), guardian.DefaultConfig(), testutil.NopLogger())
}

// NewTestAppWithConfig creates a TestApp with explicit service configuration
func NewTestAppWithConfig(ledgerCfg ledger.Config, guardianCfg guardian.Config, logger *slog.Logger) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, ledgerCfg, guardianCfg, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
