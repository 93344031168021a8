package ledger

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dadportal/dinojump-go/internal/dependencies/clock"
	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/storage"
)

// Defaults are the initial settings for a player seen for the first time
type Defaults struct {
	DailyLimit int
	Difficulty model.Difficulty
}

// Config holds configuration for the ledger service
type Config struct {
	// PlayerDefaults overrides the fallback per player, so e.g. an older
	// kid can start on a harder difficulty with a bigger budget.
	PlayerDefaults map[model.PlayerID]Defaults

	// FallbackDefaults apply to any player without an explicit entry
	FallbackDefaults Defaults
}

// DefaultConfig returns default ledger configuration
func DefaultConfig() Config {
	return Config{
		FallbackDefaults: Defaults{
			DailyLimit: 10,
			Difficulty: model.DifficultyEasy,
		},
	}
}

// SettingsUpdate is a partial update to a profile's parental settings
type SettingsUpdate struct {
	DailyLimit *int
	Difficulty *model.Difficulty
}

// Service is the single source of truth for a player's daily play budget
// and best score
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger
}

// New creates a new ledger service
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.FallbackDefaults.DailyLimit == 0 && cfg.FallbackDefaults.Difficulty == "" {
		cfg.FallbackDefaults = DefaultConfig().FallbackDefaults
	}
	return &Service{
		storage: storage,
		clock:   clock,
		cfg:     cfg,
		logger:  logger,
	}
}

// today returns the current local calendar date as stored in profiles
func (s *Service) today() string {
	return s.clock.Now().Format("2006-01-02")
}

// defaultsFor returns the starting settings for the given player
func (s *Service) defaultsFor(id model.PlayerID) Defaults {
	if d, ok := s.cfg.PlayerDefaults[id]; ok {
		return d
	}
	return s.cfg.FallbackDefaults
}

// LoadProfile reads a player's profile, applying the lazy day rollover: if
// the stored lastPlayDate is not today, attemptsToday resets to 0. The
// rollover is not written back here; the next mutating operation persists
// it. A missing or unreadable record yields a fresh profile with that
// player's defaults.
func (s *Service) LoadProfile(ctx context.Context, id model.PlayerID) (*model.PlayerProfile, error) {
	profile, err := s.storage.GetProfile(ctx, id)
	if err != nil {
		if !errors.Is(err, model.ErrProfileNotFound) {
			return nil, err
		}
		defaults := s.defaultsFor(id)
		return &model.PlayerProfile{
			PlayerID:     id,
			DailyLimit:   defaults.DailyLimit,
			Difficulty:   defaults.Difficulty,
			LastPlayDate: s.today(),
		}, nil
	}

	if profile.LastPlayDate != s.today() {
		profile.AttemptsToday = 0
		profile.LastPlayDate = s.today()
	}
	return profile, nil
}

// CanStartRun reports whether the player has attempts left today
func (s *Service) CanStartRun(profile *model.PlayerProfile) bool {
	return profile.RemainingPlays() > 0
}

// BeginRun consumes one attempt and issues a run ticket. The attempt is
// charged here, at run start, deliberately: a run that is started and then
// abandoned still counts, which removes the incentive to reload mid-run.
// Fails with model.ErrDailyLimitReached when no attempts remain.
func (s *Service) BeginRun(ctx context.Context, id model.PlayerID) (*model.RunTicket, error) {
	profile, err := s.LoadProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.CanStartRun(profile) {
		return nil, model.ErrDailyLimitReached
	}

	profile.AttemptsToday++
	profile.LastPlayDate = s.today()

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	runID := model.RunID(uuid.NewString())

	s.logger.Info("run started",
		slog.String("player", string(id)),
		slog.String("run_id", string(runID)),
		slog.Int("attempts_today", profile.AttemptsToday),
		slog.Int("daily_limit", profile.DailyLimit),
	)

	return &model.RunTicket{RunID: runID, Profile: profile}, nil
}

// RecordScore records a completed run's final score, keeping the high score
// monotone: an equal or lower score is a no-op.
func (s *Service) RecordScore(ctx context.Context, id model.PlayerID, finalScore int) (*model.PlayerProfile, error) {
	profile, err := s.LoadProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if finalScore <= profile.HighScore {
		return profile, nil
	}

	profile.HighScore = finalScore
	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("new high score",
		slog.String("player", string(id)),
		slog.Int("high_score", finalScore),
	)

	return profile, nil
}

// ResetAttempts zeroes today's attempt count. Callers must hold a verified
// guardian session.
func (s *Service) ResetAttempts(ctx context.Context, id model.PlayerID) (*model.PlayerProfile, error) {
	profile, err := s.LoadProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.AttemptsToday = 0
	profile.LastPlayDate = s.today()

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("attempts reset", slog.String("player", string(id)))
	return profile, nil
}

// UpdateSettings applies a partial settings update. Callers must hold a
// verified guardian session.
func (s *Service) UpdateSettings(ctx context.Context, id model.PlayerID, update SettingsUpdate) (*model.PlayerProfile, error) {
	profile, err := s.LoadProfile(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.DailyLimit != nil {
		if *update.DailyLimit < 0 {
			return nil, model.ErrInvalidDailyLimit
		}
		profile.DailyLimit = *update.DailyLimit
	}
	if update.Difficulty != nil {
		if !update.Difficulty.IsValid() {
			return nil, model.ErrInvalidDifficulty
		}
		profile.Difficulty = *update.Difficulty
	}

	if err := s.storage.SaveProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("settings updated",
		slog.String("player", string(id)),
		slog.Int("daily_limit", profile.DailyLimit),
		slog.String("difficulty", string(profile.Difficulty)),
	)

	return profile, nil
}
