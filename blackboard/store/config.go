package store

import (
	"fmt"
	"runtime"
)

// MaxShardCount caps the number of shards per table.
const MaxShardCount = 1024

// HashStrategy selects how keys are spread across shards.
type HashStrategy string

const (
	// HashXXHash hashes keys with xxhash64. It is the default.
	HashXXHash HashStrategy = "xxhash"
	// HashFNV hashes keys with an allocation-free FNV-1a.
	HashFNV HashStrategy = "fnv"
)

// Config holds Blackboard tuning knobs. The zero value is a valid configuration.
type Config struct {
	// ShardCount sets the number of shards per table.
	// If <= 0, defaults to runtime.NumCPU().
	// If > MaxShardCount, capped at MaxShardCount.
	ShardCount int
	// HashStrategy selects the shard hash function. Empty means HashXXHash.
	HashStrategy HashStrategy
	// TrackStats enables hit/miss/write counters reported by Stats().
	TrackStats bool
}

// GetShardCount returns the effective shard count.
// If the shard count is not set, it defaults to runtime.NumCPU().
// If the shard count is greater than MaxShardCount, it is capped at MaxShardCount.
func (cfg *Config) GetShardCount() int {
	var shards int
	if cfg != nil {
		shards = cfg.ShardCount
	}

	if shards <= 0 {
		shards = max(1, runtime.NumCPU())
	}

	if shards > MaxShardCount {
		shards = MaxShardCount
	}

	return shards
}

// GetHashStrategy returns the effective hash strategy.
func (cfg *Config) GetHashStrategy() HashStrategy {
	if cfg == nil || cfg.HashStrategy == "" {
		return HashXXHash
	}

	return cfg.HashStrategy
}

// Validate rejects values that GetShardCount would otherwise silently clamp
// and hash strategies this package does not know.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return nil
	}

	if cfg.ShardCount < 0 || cfg.ShardCount > MaxShardCount {
		return fmt.Errorf("%w: %d; must be between 0 (automatic) and %d",
			ErrInvalidShardCount, cfg.ShardCount, MaxShardCount)
	}

	switch cfg.GetHashStrategy() {
	case HashXXHash, HashFNV:
	default:
		return fmt.Errorf("%w: %q; valid values are: %q, %q",
			ErrInvalidHashStrategy, cfg.HashStrategy, HashXXHash, HashFNV)
	}

	return nil
}
