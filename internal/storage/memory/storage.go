package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	profiles     map[model.PlayerID]*model.PlayerProfile
	parentPIN    string
	hasPIN       bool
	lockoutUntil time.Time
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		profiles: make(map[model.PlayerID]*model.PlayerProfile),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *profile
	s.profiles[profile.PlayerID] = &copied
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, id model.PlayerID) (*model.PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	copied := *profile
	return &copied, nil
}

func (s *Storage) DeleteProfile(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, id)
	return nil
}

// Parent PIN operations

func (s *Storage) SaveParentPIN(ctx context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parentPIN = hash
	s.hasPIN = true
	return nil
}

func (s *Storage) GetParentPIN(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasPIN {
		return "", model.ErrPINNotSet
	}
	return s.parentPIN, nil
}

// Lockout operations

func (s *Storage) SaveLockout(ctx context.Context, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockoutUntil = until
	return nil
}

func (s *Storage) GetLockout(ctx context.Context) (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lockoutUntil, nil
}

func (s *Storage) ClearLockout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lockoutUntil = time.Time{}
	return nil
}
