// Package blackboard provides the process-wide live-parameter store shared by
// a control surface (writer) and a real-time renderer (reader).
//
// High-level behavior:
//   - The first call to Default(), or to any package-level accessor, lazily
//     creates a single store for the whole process. It lives until the process
//     exits; there is no teardown.
//   - Configure() may be called before first use to tune the store. Once the
//     store exists its configuration is fixed; a conflicting Configure() call is
//     rejected instead of silently ignored.
//   - Reads of keys that were never written return the caller's default.
//     Nothing is ever reported as "not found".
//   - Keys that are not valid UTF-8 are a caller bug: accessors panic.
//
// Producers that need several values to be seen together (for example a light
// direction computed from two angles) must publish the combined value under a
// single key. The store does not provide multi-key atomicity.
package blackboard
