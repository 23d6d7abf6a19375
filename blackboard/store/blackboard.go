package store

import (
	"fmt"
	"sort"
)

// Blackboard is the live-parameter store: three independent tables keyed by
// string, one per value kind. The same key used with two kinds names two
// unrelated entries; values are never coerced between kinds.
//
// All methods are safe for concurrent use. Get* never blocks on a writer for
// longer than a map lookup and never allocates. Set* never fails.
//
// Every method panics with a *KeyError if key is not valid UTF-8.
type Blackboard struct {
	ints   *table[int32]
	floats *table[float32]
	vec3s  *table[Vec3]
	cfg    Config
}

// Entry is one key with its current value, as returned by Entries.
type Entry struct {
	// Kind is the table the entry lives in.
	Kind Kind
	// Key is the entry key.
	Key string
	// Value is an int32, float32 or Vec3 depending on Kind.
	Value any
}

// New creates an empty Blackboard. A nil cfg selects the defaults.
//
// cfg is not validated here; out-of-range shard counts are clamped.
// Use Config.Validate to reject them instead.
func New(cfg *Config) *Blackboard {
	bb := &Blackboard{
		ints:   newTable[int32](cfg),
		floats: newTable[float32](cfg),
		vec3s:  newTable[Vec3](cfg),
	}

	if cfg != nil {
		bb.cfg = *cfg
	}

	bb.cfg.ShardCount = cfg.GetShardCount()
	bb.cfg.HashStrategy = cfg.GetHashStrategy()

	return bb
}

// Config returns the effective configuration, with defaults resolved.
func (bb *Blackboard) Config() Config {
	return bb.cfg
}

// GetInt returns the value of the int entry for key, or def if it was never set.
func (bb *Blackboard) GetInt(key string, def int32) int32 {
	if v, ok := bb.LookupInt(key); ok {
		return v
	}

	return def
}

// SetInt inserts or overwrites the int entry for key.
func (bb *Blackboard) SetInt(key string, value int32) {
	mustValidKey(key)
	bb.ints.store(key, value)
}

// LookupInt returns the int entry for key and whether it exists.
func (bb *Blackboard) LookupInt(key string) (int32, bool) {
	mustValidKey(key)

	return bb.ints.load(key)
}

// GetFloat returns the value of the float entry for key, or def if it was never set.
func (bb *Blackboard) GetFloat(key string, def float32) float32 {
	if v, ok := bb.LookupFloat(key); ok {
		return v
	}

	return def
}

// SetFloat inserts or overwrites the float entry for key.
// NaN and infinities are stored as given.
func (bb *Blackboard) SetFloat(key string, value float32) {
	mustValidKey(key)
	bb.floats.store(key, value)
}

// LookupFloat returns the float entry for key and whether it exists.
func (bb *Blackboard) LookupFloat(key string) (float32, bool) {
	mustValidKey(key)

	return bb.floats.load(key)
}

// GetVec3 returns the value of the vec3 entry for key, or def if it was never set.
// The three components always come from the same SetVec3 call.
func (bb *Blackboard) GetVec3(key string, def Vec3) Vec3 {
	if v, ok := bb.LookupVec3(key); ok {
		return v
	}

	return def
}

// SetVec3 inserts or overwrites the vec3 entry for key as one unit.
func (bb *Blackboard) SetVec3(key string, value Vec3) {
	mustValidKey(key)
	bb.vec3s.store(key, value)
}

// LookupVec3 returns the vec3 entry for key and whether it exists.
func (bb *Blackboard) LookupVec3(key string) (Vec3, bool) {
	mustValidKey(key)

	return bb.vec3s.load(key)
}

// Len returns the number of keys in the table for kind.
func (bb *Blackboard) Len(kind Kind) (int, error) {
	switch kind {
	case KindInt:
		return bb.ints.size(), nil
	case KindFloat:
		return bb.floats.size(), nil
	case KindVec3:
		return bb.vec3s.size(), nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}
}

// Entries lists the table for kind ordered by key.
//
// Each value is read atomically, but the listing as a whole is not a
// consistent snapshot across keys: a concurrent writer may be reflected for
// one key and not yet for another.
func (bb *Blackboard) Entries(kind Kind) ([]Entry, error) {
	var entries []Entry

	switch kind {
	case KindInt:
		bb.ints.each(func(key string, value int32) {
			entries = append(entries, Entry{Kind: kind, Key: key, Value: value})
		})
	case KindFloat:
		bb.floats.each(func(key string, value float32) {
			entries = append(entries, Entry{Kind: kind, Key: key, Value: value})
		})
	case KindVec3:
		bb.vec3s.each(func(key string, value Vec3) {
			entries = append(entries, Entry{Kind: kind, Key: key, Value: value})
		})
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidKind, kind)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Key < entries[j].Key
	})

	return entries, nil
}

// Reset drops every entry of every kind and zeroes the counters.
//
// Reset exists for tests and tooling. Readers running concurrently with it
// may still observe values written before the call.
func (bb *Blackboard) Reset() {
	bb.ints.reset()
	bb.floats.reset()
	bb.vec3s.reset()
}
