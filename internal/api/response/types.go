package response

import (
	"time"

	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/services/guardian"
)

// Profile represents a player profile in API responses
type Profile struct {
	PlayerID       string `json:"player_id"`
	DailyLimit     int    `json:"daily_limit"`
	Difficulty     string `json:"difficulty"`
	AttemptsToday  int    `json:"attempts_today"`
	LastPlayDate   string `json:"last_play_date"`
	HighScore      int    `json:"high_score"`
	RemainingPlays int    `json:"remaining_plays"`
}

// ProfileFromModel converts a model.PlayerProfile to a response Profile
func ProfileFromModel(p *model.PlayerProfile) Profile {
	return Profile{
		PlayerID:       string(p.PlayerID),
		DailyLimit:     p.DailyLimit,
		Difficulty:     string(p.Difficulty),
		AttemptsToday:  p.AttemptsToday,
		LastPlayDate:   p.LastPlayDate,
		HighScore:      p.HighScore,
		RemainingPlays: p.RemainingPlays(),
	}
}

// BeginRun is the response for a successful run start
type BeginRun struct {
	RunID   string  `json:"run_id"`
	Profile Profile `json:"profile"`
}

// BeginRunFromTicket converts a model.RunTicket
func BeginRunFromTicket(t *model.RunTicket) BeginRun {
	return BeginRun{
		RunID:   string(t.RunID),
		Profile: ProfileFromModel(t.Profile),
	}
}

// GuardianVerify is the response for a successful PIN verification
type GuardianVerify struct {
	GuardianToken string    `json:"guardian_token"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// GuardianVerifyFromSession creates a GuardianVerify from a session
func GuardianVerifyFromSession(s *guardian.Session) GuardianVerify {
	return GuardianVerify{
		GuardianToken: s.Token,
		ExpiresAt:     s.ExpiresAt,
	}
}

// LockoutStatus reports whether the gate is locked out and for how long
type LockoutStatus struct {
	LockedOut         bool `json:"locked_out"`
	RetryAfterSeconds int  `json:"retry_after_seconds"`
}
