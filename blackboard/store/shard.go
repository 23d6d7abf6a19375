package store

import (
	"sync"
	"sync/atomic"

	xxhash "github.com/cespare/xxhash/v2"
)

type (
	// slot holds the current value of one key. The pointer is swapped as a
	// whole on every write, so a reader sees either the old or the new value.
	slot[T any] struct {
		value atomic.Pointer[T]
	}

	// shard is one lock domain of a table.
	shard[T any] struct {
		// slots maps keys to their slot. Slots are never removed, only
		// dropped wholesale by reset.
		slots map[string]*slot[T]
		// hits, misses and writes are maintained only when stats are tracked.
		hits   atomic.Uint64
		misses atomic.Uint64
		writes atomic.Uint64
		// mu guards the slots map, not the values inside the slots.
		mu sync.RWMutex
	}

	// table is a sharded key → value mapping for one entry kind.
	table[T any] struct {
		shards     []*shard[T]
		shardCount int
		hashFn     shardHashFunc
		trackStats bool
	}

	// shardHashFunc is the function to use to hash the key to a shard.
	shardHashFunc func(string) uint64
)

// 64-bit FNV-1a parameters.
const (
	// fnv1aOffset64 is the standard 64-bit FNV-1a offset basis.
	fnv1aOffset64 = 14695981039346656037
	// fnv1aPrime64 is the standard 64-bit FNV-1a prime.
	fnv1aPrime64 = 1099511628211
)

// selectShardHashFunc selects the function to use to hash the key to a shard.
func selectShardHashFunc(strategy HashStrategy) shardHashFunc {
	switch strategy {
	case HashFNV:
		return fnvShardHash
	case HashXXHash:
		return xxhashShardHash
	default:
		return xxhashShardHash
	}
}

// xxhashShardHash hashes the key with xxhash.
func xxhashShardHash(key string) uint64 {
	return xxhash.Sum64String(key)
}

// fnvShardHash hashes the key with FNV-1a.
func fnvShardHash(key string) uint64 {
	hash := uint64(fnv1aOffset64)

	for i := 0; i < len(key); i++ {
		hash ^= uint64(key[i])
		hash *= fnv1aPrime64
	}

	return hash
}

// newTable allocates a table with the shard layout described by cfg.
func newTable[T any](cfg *Config) *table[T] {
	shardCount := cfg.GetShardCount()

	t := &table[T]{
		shards:     make([]*shard[T], shardCount),
		shardCount: shardCount,
		hashFn:     selectShardHashFunc(cfg.GetHashStrategy()),
		trackStats: cfg != nil && cfg.TrackStats,
	}

	for i := range t.shards {
		t.shards[i] = &shard[T]{slots: make(map[string]*slot[T])}
	}

	return t
}

// shardFor returns the shard owning key.
func (t *table[T]) shardFor(key string) *shard[T] {
	if t.shardCount == 1 {
		return t.shards[0]
	}

	//nolint:gosec // shardCount is always >= 1, see newTable.
	return t.shards[int(t.hashFn(key)%uint64(t.shardCount))]
}

// load returns the current value of key and whether it was ever written.
// It never allocates.
func (t *table[T]) load(key string) (T, bool) {
	sh := t.shardFor(key)

	sh.mu.RLock()
	sl, ok := sh.slots[key]
	sh.mu.RUnlock()

	if !ok {
		if t.trackStats {
			sh.misses.Add(1)
		}

		var zero T

		return zero, false
	}

	if t.trackStats {
		sh.hits.Add(1)
	}

	// Slots are published with a value already stored, so Load is never nil.
	return *sl.value.Load(), true
}

// store publishes value under key.
func (t *table[T]) store(key string, value T) {
	published := &value
	sh := t.shardFor(key)

	if t.trackStats {
		sh.writes.Add(1)
	}

	// Overwrites only need the read lock: the slot itself is atomic.
	sh.mu.RLock()
	sl, ok := sh.slots[key]

	if ok {
		sl.value.Store(published)
	}

	sh.mu.RUnlock()

	if ok {
		return
	}

	sh.mu.Lock()
	defer sh.mu.Unlock()

	// Another writer may have inserted the key between the two locks.
	if sl, ok = sh.slots[key]; ok {
		sl.value.Store(published)

		return
	}

	sl = new(slot[T])
	sl.value.Store(published)
	sh.slots[key] = sl
}

// lockAllShardReaders locks all the shard readers.
func (t *table[T]) lockAllShardReaders() {
	for i := 0; i < t.shardCount; i++ {
		t.shards[i].mu.RLock()
	}
}

// unlockAllShardReaders unlocks all the shard readers in reverse lock order.
func (t *table[T]) unlockAllShardReaders() {
	for i := t.shardCount - 1; i >= 0; i-- {
		t.shards[i].mu.RUnlock()
	}
}

// size returns the number of keys in the table.
func (t *table[T]) size() int {
	t.lockAllShardReaders()
	defer t.unlockAllShardReaders()

	var total int
	for _, sh := range t.shards {
		total += len(sh.slots)
	}

	return total
}

// each calls fn for every key with its current value. The key set is taken
// under all shard read locks; each value is loaded atomically, but values of
// different keys are not a consistent multi-key snapshot.
func (t *table[T]) each(fn func(key string, value T)) {
	t.lockAllShardReaders()
	defer t.unlockAllShardReaders()

	for _, sh := range t.shards {
		for key, sl := range sh.slots {
			fn(key, *sl.value.Load())
		}
	}
}

// reset drops every key and zeroes the counters.
func (t *table[T]) reset() {
	for _, sh := range t.shards {
		sh.mu.Lock()
		clear(sh.slots)
		sh.hits.Store(0)
		sh.misses.Store(0)
		sh.writes.Store(0)
		sh.mu.Unlock()
	}
}

// stats sums the per-shard counters.
func (t *table[T]) stats() KindStats {
	var ks KindStats

	for _, sh := range t.shards {
		sh.mu.RLock()
		ks.Entries += len(sh.slots)
		sh.mu.RUnlock()

		ks.Hits += sh.hits.Load()
		ks.Misses += sh.misses.Load()
		ks.Writes += sh.writes.Load()
	}

	return ks
}
