package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/dadportal/dinojump-go/internal/dependencies/mocks"
	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/storage/memory"
	"github.com/dadportal/dinojump-go/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, Config{
		FallbackDefaults: Defaults{DailyLimit: 3, Difficulty: model.DifficultyEasy},
	}, testutil.NopLogger())
	s.ctx = context.Background()
}

// LoadProfile tests

func (s *ServiceSuite) TestLoadProfileReturnsDefaultsForNewPlayer() {
	profile, err := s.service.LoadProfile(s.ctx, "kiddo")
	s.Require().NoError(err)

	s.Equal(model.PlayerID("kiddo"), profile.PlayerID)
	s.Equal(3, profile.DailyLimit)
	s.Equal(model.DifficultyEasy, profile.Difficulty)
	s.Equal(0, profile.AttemptsToday)
	s.Equal(0, profile.HighScore)
	s.Equal("2024-01-01", profile.LastPlayDate)
}

func (s *ServiceSuite) TestLoadProfileUsesPerPlayerDefaults() {
	service := New(s.storage, s.clock, Config{
		PlayerDefaults: map[model.PlayerID]Defaults{
			"older-kid": {DailyLimit: 20, Difficulty: model.DifficultyHard},
		},
		FallbackDefaults: Defaults{DailyLimit: 3, Difficulty: model.DifficultyEasy},
	}, testutil.NopLogger())

	profile, err := service.LoadProfile(s.ctx, "older-kid")
	s.Require().NoError(err)
	s.Equal(20, profile.DailyLimit)
	s.Equal(model.DifficultyHard, profile.Difficulty)

	other, err := service.LoadProfile(s.ctx, "younger-kid")
	s.Require().NoError(err)
	s.Equal(3, other.DailyLimit)
}

func (s *ServiceSuite) TestLoadProfileRollsOverAttemptsOnNewDay() {
	_, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().NoError(err)

	s.clock.Advance(24 * time.Hour)

	profile, err := s.service.LoadProfile(s.ctx, "kiddo")
	s.Require().NoError(err)
	s.Equal(0, profile.AttemptsToday)
	s.Equal("2024-01-02", profile.LastPlayDate)
}

func (s *ServiceSuite) TestRolloverPreservesHighScore() {
	_, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().NoError(err)
	_, err = s.service.RecordScore(s.ctx, "kiddo", 42)
	s.Require().NoError(err)

	s.clock.Advance(24 * time.Hour)

	profile, err := s.service.LoadProfile(s.ctx, "kiddo")
	s.Require().NoError(err)
	s.Equal(42, profile.HighScore)
	s.Equal(0, profile.AttemptsToday)
}

func (s *ServiceSuite) TestRolloverIsNotPersistedUntilNextMutation() {
	_, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().NoError(err)

	s.clock.Advance(24 * time.Hour)

	// Reading applies the rollover in the returned value only
	_, err = s.service.LoadProfile(s.ctx, "kiddo")
	s.Require().NoError(err)

	stored, err := s.storage.GetProfile(s.ctx, "kiddo")
	s.Require().NoError(err)
	s.Equal("2024-01-01", stored.LastPlayDate)
	s.Equal(1, stored.AttemptsToday)
}

// BeginRun tests

func (s *ServiceSuite) TestBeginRunConsumesOneAttempt() {
	ticket, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().NoError(err)

	s.NotEmpty(ticket.RunID)
	s.Equal(1, ticket.Profile.AttemptsToday)
	s.Equal(2, ticket.Profile.RemainingPlays())
}

func (s *ServiceSuite) TestBeginRunFailsWhenLimitReached() {
	for i := 0; i < 3; i++ {
		_, err := s.service.BeginRun(s.ctx, "kiddo")
		s.Require().NoError(err)
	}

	_, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().ErrorIs(err, model.ErrDailyLimitReached)

	// The failed attempt consumes nothing
	profile, err := s.service.LoadProfile(s.ctx, "kiddo")
	s.Require().NoError(err)
	s.Equal(3, profile.AttemptsToday)
}

func (s *ServiceSuite) TestBeginRunAllowedAgainAfterMidnight() {
	for i := 0; i < 3; i++ {
		_, err := s.service.BeginRun(s.ctx, "kiddo")
		s.Require().NoError(err)
	}
	_, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().ErrorIs(err, model.ErrDailyLimitReached)

	// 12:00 on Jan 1 -> 00:00 on Jan 2
	s.clock.Advance(12 * time.Hour)

	ticket, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().NoError(err)
	s.Equal(1, ticket.Profile.AttemptsToday)
	s.Equal("2024-01-02", ticket.Profile.LastPlayDate)
}

func (s *ServiceSuite) TestBeginRunWithZeroLimitAlwaysFails() {
	zero := 0
	_, err := s.service.UpdateSettings(s.ctx, "kiddo", SettingsUpdate{DailyLimit: &zero})
	s.Require().NoError(err)

	_, err = s.service.BeginRun(s.ctx, "kiddo")
	s.Require().ErrorIs(err, model.ErrDailyLimitReached)
}

func (s *ServiceSuite) TestBeginRunIssuesDistinctRunIDs() {
	first, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().NoError(err)
	second, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().NoError(err)

	s.NotEqual(first.RunID, second.RunID)
}

// RecordScore tests

func (s *ServiceSuite) TestRecordScoreUpdatesHighScore() {
	profile, err := s.service.RecordScore(s.ctx, "kiddo", 17)
	s.Require().NoError(err)
	s.Equal(17, profile.HighScore)
}

func (s *ServiceSuite) TestRecordScoreKeepsHighScoreMonotone() {
	_, err := s.service.RecordScore(s.ctx, "kiddo", 17)
	s.Require().NoError(err)

	profile, err := s.service.RecordScore(s.ctx, "kiddo", 9)
	s.Require().NoError(err)
	s.Equal(17, profile.HighScore)

	profile, err = s.service.RecordScore(s.ctx, "kiddo", 17)
	s.Require().NoError(err)
	s.Equal(17, profile.HighScore)
}

// ResetAttempts tests

func (s *ServiceSuite) TestResetAttemptsRestoresFullBudget() {
	for i := 0; i < 3; i++ {
		_, err := s.service.BeginRun(s.ctx, "kiddo")
		s.Require().NoError(err)
	}

	profile, err := s.service.ResetAttempts(s.ctx, "kiddo")
	s.Require().NoError(err)
	s.Equal(0, profile.AttemptsToday)

	// And the reset is persisted
	ticket, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().NoError(err)
	s.Equal(1, ticket.Profile.AttemptsToday)
}

// UpdateSettings tests

func (s *ServiceSuite) TestUpdateSettingsAppliesPartialUpdate() {
	hard := model.DifficultyHard
	profile, err := s.service.UpdateSettings(s.ctx, "kiddo", SettingsUpdate{Difficulty: &hard})
	s.Require().NoError(err)

	s.Equal(model.DifficultyHard, profile.Difficulty)
	s.Equal(3, profile.DailyLimit)

	five := 5
	profile, err = s.service.UpdateSettings(s.ctx, "kiddo", SettingsUpdate{DailyLimit: &five})
	s.Require().NoError(err)
	s.Equal(5, profile.DailyLimit)
	s.Equal(model.DifficultyHard, profile.Difficulty)
}

func (s *ServiceSuite) TestUpdateSettingsRejectsInvalidValues() {
	negative := -1
	_, err := s.service.UpdateSettings(s.ctx, "kiddo", SettingsUpdate{DailyLimit: &negative})
	s.Require().ErrorIs(err, model.ErrInvalidDailyLimit)

	bogus := model.Difficulty("nightmare")
	_, err = s.service.UpdateSettings(s.ctx, "kiddo", SettingsUpdate{Difficulty: &bogus})
	s.Require().ErrorIs(err, model.ErrInvalidDifficulty)
}

func (s *ServiceSuite) TestUpdateSettingsDoesNotTouchAttemptsOrHighScore() {
	_, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().NoError(err)
	_, err = s.service.RecordScore(s.ctx, "kiddo", 30)
	s.Require().NoError(err)

	one := 1
	profile, err := s.service.UpdateSettings(s.ctx, "kiddo", SettingsUpdate{DailyLimit: &one})
	s.Require().NoError(err)
	s.Equal(1, profile.AttemptsToday)
	s.Equal(30, profile.HighScore)
}

// Full day in the life: play out the budget, parent resets, play again,
// new day starts fresh with the high score intact.

func (s *ServiceSuite) TestDayLifecycle() {
	for i := 0; i < 3; i++ {
		_, err := s.service.BeginRun(s.ctx, "kiddo")
		s.Require().NoError(err)
		_, err = s.service.RecordScore(s.ctx, "kiddo", 10*(i+1))
		s.Require().NoError(err)
	}
	_, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().ErrorIs(err, model.ErrDailyLimitReached)

	_, err = s.service.ResetAttempts(s.ctx, "kiddo")
	s.Require().NoError(err)

	ticket, err := s.service.BeginRun(s.ctx, "kiddo")
	s.Require().NoError(err)
	s.Equal(1, ticket.Profile.AttemptsToday)
	s.Equal(30, ticket.Profile.HighScore)

	s.clock.Advance(24 * time.Hour)

	profile, err := s.service.LoadProfile(s.ctx, "kiddo")
	s.Require().NoError(err)
	s.Equal(0, profile.AttemptsToday)
	s.Equal(30, profile.HighScore)
}
