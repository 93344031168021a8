package storage

import (
	"context"
	"time"

	"github.com/dadportal/dinojump-go/internal/model"
)

// Storage defines the interface for data persistence.
// It is a thin string-keyed record store: one record per player profile,
// one for the parent PIN credential, one for the guardian lockout deadline.
type Storage interface {
	// Profile operations
	SaveProfile(ctx context.Context, profile *model.PlayerProfile) error
	GetProfile(ctx context.Context, id model.PlayerID) (*model.PlayerProfile, error)
	DeleteProfile(ctx context.Context, id model.PlayerID) error

	// Parent PIN operations. The stored value is a bcrypt hash, never the
	// PIN itself. GetParentPIN returns model.ErrPINNotSet when no PIN has
	// been stored yet.
	SaveParentPIN(ctx context.Context, hash string) error
	GetParentPIN(ctx context.Context) (string, error)

	// Guardian lockout operations. GetLockout returns the zero time when
	// no lockout is recorded.
	SaveLockout(ctx context.Context, until time.Time) error
	GetLockout(ctx context.Context) (time.Time, error)
	ClearLockout(ctx context.Context) error
}
