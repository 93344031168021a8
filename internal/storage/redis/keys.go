package redis

import (
	"fmt"

	"github.com/dadportal/dinojump-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "dinojump"

// profileKey returns the Redis key for a PlayerProfile
func profileKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, id)
}

// parentPINKey returns the Redis key for the parent PIN hash
func parentPINKey() string {
	return fmt.Sprintf("%s:parent_pin", keyPrefix)
}

// lockoutKey returns the Redis key for the guardian lockout deadline
func lockoutKey() string {
	return fmt.Sprintf("%s:lockout", keyPrefix)
}
