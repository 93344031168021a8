package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Profile:
		o.printProfile(v)
	case BeginRunResult:
		o.printBeginRunResult(v)
	case VerifyResult:
		o.printVerifyResult(v)
	case LockoutStatus:
		o.printLockoutStatus(v)
	case SimulationResult:
		o.printSimulationResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Profile response type (matches API)
type Profile struct {
	PlayerID       string `json:"player_id"`
	DailyLimit     int    `json:"daily_limit"`
	Difficulty     string `json:"difficulty"`
	AttemptsToday  int    `json:"attempts_today"`
	LastPlayDate   string `json:"last_play_date"`
	HighScore      int    `json:"high_score"`
	RemainingPlays int    `json:"remaining_plays"`
}

// BeginRunResult response type
type BeginRunResult struct {
	RunID   string  `json:"run_id"`
	Profile Profile `json:"profile"`
}

// VerifyResult response type
type VerifyResult struct {
	GuardianToken string    `json:"guardian_token"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// LockoutStatus response type
type LockoutStatus struct {
	LockedOut         bool `json:"locked_out"`
	RetryAfterSeconds int  `json:"retry_after_seconds"`
}

// SimulationResult summarizes a local headless run
type SimulationResult struct {
	PlayerID   string `json:"player_id"`
	Difficulty string `json:"difficulty"`
	Ticks      int    `json:"ticks"`
	Score      int    `json:"score"`
	HighScore  int    `json:"high_score"`
	Jumps      int    `json:"jumps"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printProfile(p Profile) {
	fmt.Printf("Player: %s\n", p.PlayerID)
	fmt.Printf("Difficulty: %s\n", p.Difficulty)
	fmt.Printf("Daily Limit: %d\n", p.DailyLimit)
	fmt.Printf("Attempts Today: %d (%d remaining)\n", p.AttemptsToday, p.RemainingPlays)
	fmt.Printf("High Score: %d\n", p.HighScore)
	if p.LastPlayDate != "" {
		fmt.Printf("Last Play Date: %s\n", p.LastPlayDate)
	}
}

func (o *Output) printBeginRunResult(r BeginRunResult) {
	fmt.Printf("Run started: %s\n", r.RunID)
	o.printProfile(r.Profile)
}

func (o *Output) printVerifyResult(v VerifyResult) {
	fmt.Println("Guardian verified")
	fmt.Printf("Token: %s\n", v.GuardianToken)
	fmt.Printf("Expires: %s\n", v.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printLockoutStatus(s LockoutStatus) {
	if s.LockedOut {
		fmt.Printf("Locked out (retry in %ds)\n", s.RetryAfterSeconds)
	} else {
		fmt.Println("Not locked out")
	}
}

func (o *Output) printSimulationResult(s SimulationResult) {
	fmt.Printf("Player: %s\n", s.PlayerID)
	fmt.Printf("Difficulty: %s\n", s.Difficulty)
	fmt.Printf("Ticks: %d\n", s.Ticks)
	fmt.Printf("Jumps: %d\n", s.Jumps)
	fmt.Printf("Score: %d\n", s.Score)
	fmt.Printf("High Score: %d\n", s.HighScore)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
