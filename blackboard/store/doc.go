// Package store provides the in-memory live-parameter table behind the
// blackboard: three independent, string-keyed tables holding int32, float32
// and three-component float32 vector values.
//
// A Blackboard is safe for concurrent use by multiple goroutines. It is tuned
// for a few human-speed writers and many per-frame readers:
//
//   - reads never allocate and only take a shard read lock;
//   - writes to an existing key only take a shard read lock and publish the
//     value atomically, so they never stall readers of the same shard;
//   - the first write of a key takes the shard write lock once to insert it.
//
// A read of a key that was never written returns the caller's default. The
// default is not memoized, so the table only ever contains written values.
package store
