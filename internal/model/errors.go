package model

import "errors"

// Common errors used across the application
var (
	// Profile errors
	ErrProfileNotFound   = errors.New("profile not found")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrInvalidDailyLimit = errors.New("daily limit must be non-negative")

	// Ledger errors
	ErrDailyLimitReached = errors.New("daily play limit reached")

	// Guardian errors
	ErrPINMismatch = errors.New("wrong PIN")
	ErrLockedOut   = errors.New("guardian gate is locked out")
	ErrInvalidPIN  = errors.New("PIN must be exactly four digits")
	ErrPINNotSet   = errors.New("no parent PIN has been set")
)
