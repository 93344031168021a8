package guardian

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log/slog"
	"math"
	"regexp"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dadportal/dinojump-go/internal/dependencies/clock"
	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/storage"
)

// Errors
var (
	ErrInvalidSession = errors.New("invalid or expired guardian session")
	ErrPINsDontMatch  = errors.New("new PIN and confirmation do not match")
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// Session represents a verified guardian session. While it is valid the
// holder may edit parental settings and reset attempt counters.
type Session struct {
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Config holds configuration for the guardian gate
type Config struct {
	// PINLength bounds the entry buffer (digits)
	PINLength int
	// MaxFailures is the consecutive-failure count that trips a lockout
	MaxFailures int
	// LockoutDuration is how long the gate rejects all entry after tripping
	LockoutDuration time.Duration
	// DefaultPIN is accepted until a parent stores their own PIN. Injected
	// rather than compiled in so tests can use distinct fixtures.
	DefaultPIN string
	// SessionDuration bounds how long a verified session stays usable
	SessionDuration time.Duration
	// TriggerTaps and TriggerWindow define the hidden open gesture: this
	// many taps on the stats readout within a rolling window
	TriggerTaps   int
	TriggerWindow time.Duration
}

// DefaultConfig returns default guardian configuration
func DefaultConfig() Config {
	return Config{
		PINLength:       4,
		MaxFailures:     3,
		LockoutDuration: 2 * time.Minute,
		DefaultPIN:      "1234",
		SessionDuration: 10 * time.Minute,
		TriggerTaps:     7,
		TriggerWindow:   2 * time.Second,
	}
}

// Gate is the PIN-protected state machine in front of the parental
// settings. It deters a curious child, nothing more: three consecutive
// wrong PINs trip a timed lockout during which all entry is rejected.
type Gate struct {
	storage storage.Storage
	clock   clock.Clock
	cfg     Config
	logger  *slog.Logger

	mu             sync.Mutex
	buffer         string
	failedAttempts int
	sessions       map[string]*Session

	tapCount int
	lastTap  time.Time
}

// New creates a new guardian gate
func New(storage storage.Storage, clock clock.Clock, cfg Config, logger *slog.Logger) *Gate {
	def := DefaultConfig()
	if cfg.PINLength == 0 {
		cfg.PINLength = def.PINLength
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = def.MaxFailures
	}
	if cfg.LockoutDuration == 0 {
		cfg.LockoutDuration = def.LockoutDuration
	}
	if cfg.DefaultPIN == "" {
		cfg.DefaultPIN = def.DefaultPIN
	}
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = def.SessionDuration
	}
	if cfg.TriggerTaps == 0 {
		cfg.TriggerTaps = def.TriggerTaps
	}
	if cfg.TriggerWindow == 0 {
		cfg.TriggerWindow = def.TriggerWindow
	}
	return &Gate{
		storage:  storage,
		clock:    clock,
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// RecordTap registers one tap on the hidden trigger area and reports
// whether the gesture completed. Taps further apart than the window reset
// the count.
func (g *Gate) RecordTap() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock.Now()
	if now.Sub(g.lastTap) > g.cfg.TriggerWindow {
		g.tapCount = 0
	}
	g.tapCount++
	g.lastTap = now

	if g.tapCount >= g.cfg.TriggerTaps {
		g.tapCount = 0
		return true
	}
	return false
}

// SubmitDigit appends a digit to the PIN entry buffer. A non-digit or a
// full buffer is a no-op.
func (g *Gate) SubmitDigit(d byte) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if d < '0' || d > '9' {
		return g.buffer
	}
	if len(g.buffer) >= g.cfg.PINLength {
		return g.buffer
	}
	g.buffer += string(d)
	return g.buffer
}

// Backspace removes the last entered digit
func (g *Gate) Backspace() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.buffer) > 0 {
		g.buffer = g.buffer[:len(g.buffer)-1]
	}
	return g.buffer
}

// Buffer returns the digits entered so far
func (g *Gate) Buffer() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buffer
}

// VerifyBuffer verifies the entry buffer and clears it
func (g *Gate) VerifyBuffer(ctx context.Context) (*Session, error) {
	g.mu.Lock()
	pin := g.buffer
	g.buffer = ""
	g.mu.Unlock()
	return g.Verify(ctx, pin)
}

// Verify checks a PIN against the stored credential.
//
// While locked out every attempt is rejected with model.ErrLockedOut
// without consuming a failure. A wrong PIN returns model.ErrPINMismatch
// and counts toward the failure threshold; the attempt that reaches the
// threshold trips the lockout (persisted, so it survives a page reload),
// resets the counter and also reports model.ErrLockedOut.
func (g *Gate) Verify(ctx context.Context, pin string) (*Session, error) {
	now := g.clock.Now()

	locked, err := g.IsLockedOut(ctx)
	if err != nil {
		return nil, err
	}
	if locked {
		return nil, model.ErrLockedOut
	}

	ok, err := g.pinMatches(ctx, pin)
	if err != nil {
		return nil, err
	}

	g.mu.Lock()
	if !ok {
		g.failedAttempts++
		g.buffer = ""
		failures := g.failedAttempts
		tripped := failures >= g.cfg.MaxFailures
		if tripped {
			g.failedAttempts = 0
		}
		g.mu.Unlock()

		if tripped {
			until := now.Add(g.cfg.LockoutDuration)
			if err := g.storage.SaveLockout(ctx, until); err != nil {
				return nil, err
			}
			g.logger.Warn("guardian lockout tripped",
				slog.Time("until", until),
			)
			return nil, model.ErrLockedOut
		}

		g.logger.Info("guardian PIN rejected", slog.Int("failures", failures))
		return nil, model.ErrPINMismatch
	}

	g.failedAttempts = 0
	g.buffer = ""

	session := &Session{
		Token:     generateToken(),
		CreatedAt: now,
		ExpiresAt: now.Add(g.cfg.SessionDuration),
	}
	g.sessions[session.Token] = session
	g.mu.Unlock()

	g.logger.Info("guardian verified")
	return session, nil
}

// pinMatches compares the submitted PIN to the stored bcrypt hash, or to
// the configured default PIN before any PIN has been stored
func (g *Gate) pinMatches(ctx context.Context, pin string) (bool, error) {
	hash, err := g.storage.GetParentPIN(ctx)
	if err != nil {
		if errors.Is(err, model.ErrPINNotSet) {
			return subtle.ConstantTimeCompare([]byte(pin), []byte(g.cfg.DefaultPIN)) == 1, nil
		}
		return false, err
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil, nil
}

// IsLockedOut reports whether the gate currently rejects entry. The
// boundary is exclusive: the gate unlocks exactly at the stored deadline.
// An expired lockout record is cleared lazily here.
func (g *Gate) IsLockedOut(ctx context.Context) (bool, error) {
	now := g.clock.Now()

	until, err := g.storage.GetLockout(ctx)
	if err != nil {
		return false, err
	}
	if until.IsZero() {
		return false, nil
	}
	if !now.Before(until) {
		if err := g.storage.ClearLockout(ctx); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// Remaining returns how long the current lockout has left, rounded up to
// whole seconds for the countdown display. Zero when not locked out.
func (g *Gate) Remaining(ctx context.Context) (time.Duration, error) {
	now := g.clock.Now()

	until, err := g.storage.GetLockout(ctx)
	if err != nil {
		return 0, err
	}
	if until.IsZero() || !now.Before(until) {
		return 0, nil
	}
	remaining := until.Sub(now)
	return time.Duration(math.Ceil(remaining.Seconds())) * time.Second, nil
}

// Tick is the coarse once-a-second recheck the countdown UI drives; it
// clears an expired lockout
func (g *Gate) Tick(ctx context.Context) error {
	_, err := g.IsLockedOut(ctx)
	return err
}

// ValidateSession checks a guardian session token
func (g *Gate) ValidateSession(token string) (*Session, error) {
	g.mu.Lock()
	session, ok := g.sessions[token]
	g.mu.Unlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if g.clock.Now().After(session.ExpiresAt) {
		g.mu.Lock()
		delete(g.sessions, token)
		g.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// ChangePIN stores a new parent PIN for a verified session. The PIN must
// be exactly four digits and the confirmation must match.
func (g *Gate) ChangePIN(ctx context.Context, token, newPIN, confirmPIN string) error {
	if _, err := g.ValidateSession(token); err != nil {
		return err
	}

	if !pinPattern.MatchString(newPIN) {
		return model.ErrInvalidPIN
	}
	if newPIN != confirmPIN {
		return ErrPINsDontMatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPIN), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := g.storage.SaveParentPIN(ctx, string(hash)); err != nil {
		return err
	}

	g.logger.Info("parent PIN changed")
	return nil
}

// Close ends a guardian session, returning the gate to its locked state
// with a cleared entry buffer
func (g *Gate) Close(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.sessions, token)
	g.buffer = ""
	g.failedAttempts = 0
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (g *Gate) CleanExpiredSessions() {
	now := g.clock.Now()
	g.mu.Lock()
	defer g.mu.Unlock()

	for token, session := range g.sessions {
		if now.After(session.ExpiresAt) {
			delete(g.sessions, token)
		}
	}
}

// generateToken generates a random session token
func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return "guard_" + base64.RawURLEncoding.EncodeToString(b)
}
