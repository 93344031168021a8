package model

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Difficulty selects the engine's speed and spawn-rate tuning
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is a known difficulty level
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// PlayerProfile is the per-player record of daily play budget and best score.
// JSON field names match the record the browser client keeps, so either side
// can read the other's writes.
type PlayerProfile struct {
	PlayerID      PlayerID   `json:"-"`
	DailyLimit    int        `json:"dailyLimit"`
	Difficulty    Difficulty `json:"difficulty"`
	AttemptsToday int        `json:"attemptsToday"`
	LastPlayDate  string     `json:"lastPlayDate"` // local date, "2006-01-02"
	HighScore     int        `json:"highScore"`
}

// RemainingPlays returns how many attempts are left today.
// May be negative if the daily limit was lowered below the attempts
// already consumed; the profile does not enforce the limit itself.
func (p *PlayerProfile) RemainingPlays() int {
	return p.DailyLimit - p.AttemptsToday
}
