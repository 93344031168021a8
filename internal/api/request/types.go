package request

// RecordScoreRequest is the request body for reporting a run's final score
type RecordScoreRequest struct {
	RunID string `json:"run_id,omitempty"`
	Score int    `json:"score"`
}

// VerifyRequest is the request body for verifying the guardian PIN
type VerifyRequest struct {
	PIN string `json:"pin"`
}

// UpdateSettingsRequest is the request body for a partial settings update
type UpdateSettingsRequest struct {
	DailyLimit *int    `json:"daily_limit,omitempty"`
	Difficulty *string `json:"difficulty,omitempty"`
}

// SetPINRequest is the request body for changing the parent PIN
type SetPINRequest struct {
	NewPIN     string `json:"new_pin"`
	ConfirmPIN string `json:"confirm_pin"`
}
