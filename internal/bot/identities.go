package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

// Identity is one entry of the CPU player pool.
type Identity struct {
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Difficulty  string `json:"difficulty"` // "easy" or "standard"
	AvatarIndex int    `json:"avatar_index"`
}

// botIDPrefix marks generated CPU user IDs so seat occupants can be told
// apart without a lookup.
const botIDPrefix = "cpu-"

var (
	identities   []Identity
	identityByID map[string]Identity
	loadOnce     sync.Once
	loadErr      error
)

// defaultIdentities covers tables when no identity file is deployed.
var defaultIdentities = []Identity{
	{UserID: "cpu-ruth", Username: "ruth", DisplayName: "Ruth", Difficulty: "standard", AvatarIndex: 1},
	{UserID: "cpu-amos", Username: "amos", DisplayName: "Amos", Difficulty: "standard", AvatarIndex: 2},
	{UserID: "cpu-clara", Username: "clara", DisplayName: "Clara", Difficulty: "standard", AvatarIndex: 3},
	{UserID: "cpu-henry", Username: "henry", DisplayName: "Henry", Difficulty: "easy", AvatarIndex: 4},
}

// LoadIdentities loads the CPU identity pool from the given path. A missing
// or malformed file leaves the built-in pool in place.
func LoadIdentities(path string) error {
	loadOnce.Do(func() {
		rebuildIndex(defaultIdentities)

		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read bot identities: %w", err)
			return
		}

		var loaded []Identity
		if err := json.Unmarshal(data, &loaded); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal bot identities: %w", err)
			return
		}
		if len(loaded) > 0 {
			rebuildIndex(loaded)
		}
	})
	return loadErr
}

func rebuildIndex(pool []Identity) {
	identities = pool
	identityByID = make(map[string]Identity, len(pool))
	for _, identity := range pool {
		if identity.UserID != "" {
			identityByID[identity.UserID] = identity
		}
	}
}

// GetIdentity returns an identity for a CPU seat by index (mod pool size).
func GetIdentity(index int) Identity {
	if len(identities) == 0 {
		return Identity{
			UserID:      fmt.Sprintf("%s%d", botIDPrefix, index),
			DisplayName: fmt.Sprintf("CPU %d", index),
			Difficulty:  "standard",
		}
	}
	return identities[index%len(identities)]
}

// GetIdentityConfig returns the configuration for a CPU user ID.
func GetIdentityConfig(userID string) (Identity, bool) {
	if identityByID == nil {
		rebuildIndex(defaultIdentities)
	}
	identity, ok := identityByID[userID]
	if !ok {
		return Identity{UserID: userID, DisplayName: userID, Difficulty: "standard"}, false
	}
	return identity, true
}

// DisplayName returns the display name for a CPU user ID, or "" for unknowns.
func DisplayName(userID string) string {
	if identityByID == nil {
		return ""
	}
	return identityByID[userID].DisplayName
}

// IsBot reports whether the user ID belongs to the CPU pool.
func IsBot(userID string) bool {
	if strings.HasPrefix(userID, botIDPrefix) {
		return true
	}
	if identityByID == nil {
		return false
	}
	_, ok := identityByID[userID]
	return ok
}
