package bot

import (
	"fmt"
	"math/rand"
	"time"
)

// NewBrain creates a strategy for the given level.
func NewBrain(level Level) (Brain, error) {
	switch level {
	case LevelRookie:
		return &RookieBrain{RNG: rand.New(rand.NewSource(time.Now().UnixNano()))}, nil
	case LevelStandard:
		return &StandardBrain{Tuning: DefaultTuning}, nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}

// NewAgent builds an agent for a bot identity, picking the strategy from the
// identity's difficulty.
func NewAgent(userID string) (*Agent, error) {
	identity, _ := GetIdentityConfig(userID)
	brain, err := NewBrain(LevelFromDifficulty(identity.Difficulty))
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:       userID,
		Name:     identity.DisplayName,
		Strategy: brain,
	}, nil
}
