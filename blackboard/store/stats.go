package store

// KindStats holds counters for one table.
//
// Hits, Misses and Writes stay zero unless Config.TrackStats is set.
type KindStats struct {
	Entries int
	Hits    uint64
	Misses  uint64
	Writes  uint64
}

// Stats holds counters for all three tables.
type Stats struct {
	Int   KindStats
	Float KindStats
	Vec3  KindStats
}

// For returns the counters of one kind. Unknown kinds yield zero counters.
func (s Stats) For(kind Kind) KindStats {
	switch kind {
	case KindInt:
		return s.Int
	case KindFloat:
		return s.Float
	case KindVec3:
		return s.Vec3
	default:
		return KindStats{}
	}
}

// Stats returns the current counters. Counters of different shards are read
// one after the other, so the totals are approximate under concurrent use.
func (bb *Blackboard) Stats() Stats {
	return Stats{
		Int:   bb.ints.stats(),
		Float: bb.floats.stats(),
		Vec3:  bb.vec3s.stats(),
	}
}
