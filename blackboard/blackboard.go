package blackboard

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/oshokin/blackboard/blackboard/store"
)

// Vec3 is the three-component vector value kind.
type Vec3 = store.Vec3

// rootBoard owns the process-wide store.
type rootBoard struct {
	// board is nil until first use. Readers load it without locking.
	board atomic.Pointer[store.Blackboard]

	// opts holds the options the store was (or will be) created with.
	opts Options

	// mu serializes creation and configuration.
	mu sync.Mutex
}

//nolint:gochecknoglobals // the blackboard is a process-wide singleton by definition.
var root rootBoard

// testInitBarrier is a test hook invoked the moment a goroutine enters the
// store-creation path. It lets tests line up concurrent first accesses
// (nil in non-test builds).
//
//nolint:gochecknoglobals // this is a test hook.
var (
	testInitBarrier   func()
	testInitBarrierMu sync.RWMutex
)

// Default returns the process-wide store, creating it on first use.
func Default() *store.Blackboard {
	if bb := root.board.Load(); bb != nil {
		return bb
	}

	return root.getOrCreate()
}

// Configure sets the options of the process-wide store and creates it.
//
// If the store already exists, Configure succeeds only when opts are equal to
// the options it was created with; otherwise an *Error named
// OptionsConflictError is returned and the store is left untouched.
func Configure(opts Options) error {
	if err := opts.Validate(); err != nil {
		return classifyError(err)
	}

	root.mu.Lock()
	defer root.mu.Unlock()

	if root.board.Load() != nil {
		if root.opts.Equal(opts) {
			return nil
		}

		return classifyError(fmt.Errorf(
			"%w: shardCount=%d hashStrategy=%q trackStats=%t",
			ErrOptionsConflict, root.opts.ShardCount, root.opts.HashStrategy, root.opts.TrackStats,
		))
	}

	root.opts = opts
	root.createLocked()

	return nil
}

// CurrentOptions returns the options the process-wide store uses.
func CurrentOptions() Options {
	root.mu.Lock()
	defer root.mu.Unlock()

	return root.opts
}

// getOrCreate creates the store with the current options unless another
// goroutine got there first.
func (r *rootBoard) getOrCreate() *store.Blackboard {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bb := r.board.Load(); bb != nil {
		return bb
	}

	return r.createLocked()
}

// createLocked builds and publishes the store. Caller must hold r.mu.
func (r *rootBoard) createLocked() *store.Blackboard {
	// Test hook: allows test code to synchronize concurrent first accesses.
	// Production code sees nil and skips this entirely.
	testInitBarrierMu.RLock()

	barrier := testInitBarrier

	testInitBarrierMu.RUnlock()

	if barrier != nil {
		barrier()
	}

	bb := store.New(r.opts.toConfig())
	r.board.Store(bb)

	return bb
}

// GetInt returns the int entry for key from the process-wide store, or def.
func GetInt(key string, def int32) int32 {
	return Default().GetInt(key, def)
}

// SetInt sets the int entry for key in the process-wide store.
func SetInt(key string, value int32) {
	Default().SetInt(key, value)
}

// GetBool reads an int entry as a boolean: any non-zero value is true.
func GetBool(key string, def bool) bool {
	return Default().GetInt(key, boolToInt(def)) != 0
}

// SetBool stores a boolean as the int entry 1 or 0.
func SetBool(key string, value bool) {
	Default().SetInt(key, boolToInt(value))
}

// GetFloat returns the float entry for key from the process-wide store, or def.
func GetFloat(key string, def float32) float32 {
	return Default().GetFloat(key, def)
}

// SetFloat sets the float entry for key in the process-wide store.
func SetFloat(key string, value float32) {
	Default().SetFloat(key, value)
}

// GetVec3 returns the vec3 entry for key from the process-wide store, or def.
func GetVec3(key string, def Vec3) Vec3 {
	return Default().GetVec3(key, def)
}

// SetVec3 sets the vec3 entry for key in the process-wide store.
func SetVec3(key string, value Vec3) {
	Default().SetVec3(key, value)
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}

	return 0
}

// ValidateKey reports whether key can be used with the blackboard, as an
// *Error named InvalidKeyError. Boundary code that must not panic (foreign
// callers, user input) checks keys with it before calling the accessors.
func ValidateKey(key string) error {
	return classifyError(store.ValidateKey(key))
}
