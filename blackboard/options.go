package blackboard

import (
	"fmt"

	"github.com/oshokin/blackboard/blackboard/store"
)

// Options controls how the process-wide store is created.
// The zero value selects the defaults.
type Options struct {
	// ShardCount sets the number of shards per table.
	// If <= 0, defaults to runtime.NumCPU() (automatic).
	ShardCount int `yaml:"shardCount"`

	// HashStrategy selects the shard hash: "xxhash" (default) or "fnv".
	HashStrategy string `yaml:"hashStrategy"`

	// TrackStats enables hit/miss/write counters, at the cost of an atomic
	// add on every access.
	TrackStats bool `yaml:"trackStats"`
}

// Validate checks the options without creating a store.
func (o Options) Validate() error {
	cfg := o.toConfig()

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrOptionsInvalid, err)
	}

	return nil
}

// Equal checks if two Options describe the same store layout.
// Shard counts are compared after defaulting, so an automatic count equals
// an explicit runtime.NumCPU().
func (o Options) Equal(other Options) bool {
	return o.shardCount() == other.shardCount() &&
		o.hashStrategy() == other.hashStrategy() &&
		o.TrackStats == other.TrackStats
}

// toConfig converts Options into a store-level Config.
func (o Options) toConfig() *store.Config {
	return &store.Config{
		ShardCount:   o.ShardCount,
		HashStrategy: store.HashStrategy(o.HashStrategy),
		TrackStats:   o.TrackStats,
	}
}

// shardCount resolves the shard count the store would actually use.
func (o Options) shardCount() int {
	return o.toConfig().GetShardCount()
}

// hashStrategy resolves the empty strategy to the default one.
func (o Options) hashStrategy() store.HashStrategy {
	return o.toConfig().GetHashStrategy()
}
