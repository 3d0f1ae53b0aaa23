package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

type StakeTier struct {
	ID        string `json:"id"`
	BaseStake int64  `json:"base_stake"`
}

type GameConfig struct {
	TargetScore int         `json:"target_score"`
	DefaultTier string      `json:"default_tier"`
	Tiers       []StakeTier `json:"tiers"`
	// CpuTurnDelaySeconds paces CPU seats so their turns read as deliberate.
	CpuTurnDelaySeconds int `json:"cpu_turn_delay_seconds"`
	// TrickRevealDelaySeconds keeps a resolved trick on the table before it
	// is cleared.
	TrickRevealDelaySeconds int `json:"trick_reveal_delay_seconds"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding a bot to a short-handed lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	// SnapshotCollection names the storage collection game snapshots are
	// written to.
	SnapshotCollection string `json:"snapshot_collection"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// GetTargetScore returns the configured winning score, defaulting to 10.
func GetTargetScore() int {
	if cfg == nil || cfg.TargetScore <= 0 {
		return 10
	}
	return cfg.TargetScore
}

// GetCpuTurnDelaySeconds returns the CPU pacing delay, defaulting to 1.
func GetCpuTurnDelaySeconds() int {
	if cfg == nil || cfg.CpuTurnDelaySeconds <= 0 {
		return 1
	}
	return cfg.CpuTurnDelaySeconds
}

// GetTrickRevealDelaySeconds returns the trick reveal pause, defaulting to 2.
func GetTrickRevealDelaySeconds() int {
	if cfg == nil || cfg.TrickRevealDelaySeconds <= 0 {
		return 2
	}
	return cfg.TrickRevealDelaySeconds
}

// GetBotAutoFillDelaySeconds returns the lobby auto-fill delay, defaulting to 5.
func GetBotAutoFillDelaySeconds() int {
	if cfg == nil || cfg.BotAutoFillDelaySeconds <= 0 {
		return 5
	}
	return cfg.BotAutoFillDelaySeconds
}

// GetSnapshotCollection returns the snapshot storage collection name.
func GetSnapshotCollection() string {
	if cfg == nil || cfg.SnapshotCollection == "" {
		return "euchre_games"
	}
	return cfg.SnapshotCollection
}

// GetBaseStake returns the base stake for a given tier ID, or the default if not found.
func GetBaseStake(tierID string) int64 {
	if cfg == nil {
		return 100 // Safe default
	}

	target := tierID
	if target == "" {
		target = cfg.DefaultTier
	}

	for _, tier := range cfg.Tiers {
		if tier.ID == target {
			return tier.BaseStake
		}
	}

	// Fallback to default tier if specific ID not found
	for _, tier := range cfg.Tiers {
		if tier.ID == cfg.DefaultTier {
			return tier.BaseStake
		}
	}

	return 100
}
