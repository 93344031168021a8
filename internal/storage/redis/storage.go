package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dadportal/dinojump-go/internal/model"
	"github.com/dadportal/dinojump-go/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.PlayerProfile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, profileKey(profile.PlayerID), data, 0).Err()
}

func (s *Storage) GetProfile(ctx context.Context, id model.PlayerID) (*model.PlayerProfile, error) {
	data, err := s.client.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	var profile model.PlayerProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		// Corrupt stored data fails closed: treat as absent so the
		// ledger falls back to defaults instead of surfacing a parse
		// error to the player.
		return nil, model.ErrProfileNotFound
	}
	profile.PlayerID = id
	return &profile, nil
}

func (s *Storage) DeleteProfile(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, profileKey(id)).Err()
}

// Parent PIN operations

func (s *Storage) SaveParentPIN(ctx context.Context, hash string) error {
	return s.client.Set(ctx, parentPINKey(), hash, 0).Err()
}

func (s *Storage) GetParentPIN(ctx context.Context) (string, error) {
	hash, err := s.client.Get(ctx, parentPINKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrPINNotSet
		}
		return "", err
	}
	return hash, nil
}

// Lockout operations

func (s *Storage) SaveLockout(ctx context.Context, until time.Time) error {
	return s.client.Set(ctx, lockoutKey(), strconv.FormatInt(until.Unix(), 10), 0).Err()
}

func (s *Storage) GetLockout(ctx context.Context) (time.Time, error) {
	val, err := s.client.Get(ctx, lockoutKey()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, err
	}

	unix, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// Corrupt timestamp fails closed to "not locked out"
		return time.Time{}, nil
	}
	return time.Unix(unix, 0), nil
}

func (s *Storage) ClearLockout(ctx context.Context) error {
	return s.client.Del(ctx, lockoutKey()).Err()
}
