package params

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/blackboard/blackboard/store"
)

// recordingWriter counts writes per key on top of a real store.
type recordingWriter struct {
	*store.Blackboard

	mu     sync.Mutex
	writes map[string]int
}

func newRecordingWriter() *recordingWriter {
	return &recordingWriter{Blackboard: store.New(nil), writes: make(map[string]int)}
}

func (w *recordingWriter) record(key string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.writes[key]++
}

func (w *recordingWriter) SetInt(key string, value int32) {
	w.record(key)
	w.Blackboard.SetInt(key, value)
}

func (w *recordingWriter) SetFloat(key string, value float32) {
	w.record(key)
	w.Blackboard.SetFloat(key, value)
}

func (w *recordingWriter) SetVec3(key string, value store.Vec3) {
	w.record(key)
	w.Blackboard.SetVec3(key, value)
}

func TestLightKeys(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "light_v_0", LightDirectionKey(0))
	assert.Equal(t, "light_intensity_9", LightIntensityKey(9))
	assert.Equal(t, "light_raytraced_3", LightRaytracedKey(3))
	assert.Equal(t, "light_v_12", LightDirectionKey(12), "out-of-range indexes still follow the naming")
	assert.Equal(t, "light_raytraced_-1", LightRaytracedKey(-1))
}

func TestReadFrame_Defaults(t *testing.T) {
	t.Parallel()

	frame := ReadFrame(store.New(nil))

	assert.False(t, frame.Converge)
	assert.EqualValues(t, DefaultAORaysPerFrame, frame.AORaysPerFrame)
	assert.InDelta(t, DefaultAOMaxDistance, frame.AOMaxDistance, 0)
	assert.EqualValues(t, 0, frame.NumLights)
	assert.Empty(t, frame.ActiveLights())

	for i, light := range frame.Lights {
		assert.Equalf(t, DefaultLightDirection, light.Direction, "light %d direction", i)
		assert.Equalf(t, DefaultLightIntensity, light.Intensity, "light %d intensity", i)
		assert.Truef(t, light.Raytraced, "light %d raytraced", i)
	}
}

func TestReadFrame_PublishedValues(t *testing.T) {
	t.Parallel()

	bb := store.New(nil)

	bb.SetInt(KeyConverge, 1)
	bb.SetInt(KeyAORaysPerFrame, 4)
	bb.SetFloat(KeyAOMaxDistance, 25)
	bb.SetInt(KeyNumLights, 2)
	bb.SetVec3(LightDirectionKey(1), store.Vec3{0, 3, 4})
	bb.SetVec3(LightIntensityKey(1), store.Vec3{2, 2, 0})
	bb.SetInt(LightRaytracedKey(1), 0)

	frame := ReadFrame(bb)

	assert.True(t, frame.Converge)
	assert.EqualValues(t, 4, frame.AORaysPerFrame)
	assert.InDelta(t, 25.0, frame.AOMaxDistance, 0)
	require.Len(t, frame.ActiveLights(), 2)

	light := frame.Lights[1]
	assert.InDeltaSlice(t, []float32{0, 0.6, 0.8}, light.Direction[:], 1e-6, "direction must be normalized")
	assert.Equal(t, store.Vec3{2, 2, 0}, light.Intensity)
	assert.False(t, light.Raytraced)
}

func TestReadFrame_ZeroDirectionStaysZero(t *testing.T) {
	t.Parallel()

	bb := store.New(nil)
	bb.SetVec3(LightDirectionKey(0), store.Vec3{})

	assert.Equal(t, store.Vec3{}, ReadFrame(bb).Lights[0].Direction)
}

func TestFrame_ActiveLightsClamped(t *testing.T) {
	t.Parallel()

	f := Frame{NumLights: 99}
	assert.Len(t, f.ActiveLights(), MaxLights)

	f.NumLights = -3
	assert.Empty(t, f.ActiveLights())
}

func TestReadFrameInto_DoesNotAllocate(t *testing.T) {
	bb := store.New(nil)
	NewPublisher(bb).PublishDefaults()

	var frame Frame

	allocs := testing.AllocsPerRun(200, func() {
		ReadFrameInto(bb, &frame)
	})

	assert.Zero(t, allocs, "the per-frame read must not allocate")
}

func TestAccumulator(t *testing.T) {
	t.Parallel()

	var (
		acc       Accumulator
		converged = Frame{Converge: true}
		live      = Frame{}
	)

	assert.EqualValues(t, 0, acc.Next(&converged))
	assert.EqualValues(t, 1, acc.Next(&converged))
	assert.EqualValues(t, 2, acc.Next(&converged))
	assert.EqualValues(t, 0, acc.Next(&live), "turning convergence off restarts accumulation")
	assert.EqualValues(t, 0, acc.Next(&live))
	assert.EqualValues(t, 1, acc.Next(&converged))
}

func TestDirection(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		phi, theta float64
		expect     []float32
	}{
		{name: "zenith", phi: 0, theta: 0, expect: []float32{0, 0, 1}},
		{name: "x axis", phi: 0, theta: math.Pi / 2, expect: []float32{1, 0, 0}},
		{name: "y axis", phi: math.Pi / 2, theta: math.Pi / 2, expect: []float32{0, 1, 0}},
		{name: "nadir", phi: 1, theta: math.Pi, expect: []float32{0, 0, -1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			v := Direction(tc.phi, tc.theta)
			assert.InDeltaSlice(t, tc.expect, v[:], 1e-6)
			assert.InDelta(t, 1.0, v.Length(), 1e-6)
		})
	}
}

func TestPublisher_PublishDefaultsMatchesRendererDefaults(t *testing.T) {
	t.Parallel()

	bb := store.New(nil)
	NewPublisher(bb).PublishDefaults()

	assert.Equal(t, ReadFrame(store.New(nil)), ReadFrame(bb),
		"publishing the initial control values must not change what the renderer sees")

	n, err := bb.Len(store.KindVec3)
	require.NoError(t, err)
	assert.Equal(t, 2*MaxLights, n)
}

func TestPublisher_GlobalControlsClamp(t *testing.T) {
	t.Parallel()

	bb := store.New(nil)
	p := NewPublisher(bb)

	assert.Equal(t, MaxAORaysPerFrame, p.SetAORaysPerFrame(1000))
	assert.Equal(t, 0, p.SetAORaysPerFrame(-1))
	assert.InDelta(t, MaxAOMaxDistance, p.SetAOMaxDistance(250), 0)
	assert.InDelta(t, 0.0, p.SetAOMaxDistance(float32(math.NaN())), 0)
	assert.Equal(t, MaxLights, p.SetNumLights(11))
	assert.Equal(t, 3, p.SetNumLights(3))

	p.SetConverge(true)

	assert.EqualValues(t, 0, bb.GetInt(KeyAORaysPerFrame, -1))
	assert.InDelta(t, 0.0, bb.GetFloat(KeyAOMaxDistance, -1), 0)
	assert.EqualValues(t, 3, bb.GetInt(KeyNumLights, -1))
	assert.EqualValues(t, 1, bb.GetInt(KeyConverge, -1))

	p.SetConverge(false)
	assert.EqualValues(t, 0, bb.GetInt(KeyConverge, -1))
}

func TestPublisher_LightDirectionIsOneWrite(t *testing.T) {
	t.Parallel()

	w := newRecordingWriter()
	p := NewPublisher(w)

	require.NoError(t, p.SetLightAngles(2, math.Pi/2, math.Pi/2))
	assert.Equal(t, 1, w.writes[LightDirectionKey(2)], "both angles must be published as one vector")

	got := w.GetVec3(LightDirectionKey(2), store.Vec3{})
	assert.InDeltaSlice(t, []float32{0, 1, 0}, got[:], 1e-6)

	// Changing one angle keeps the other.
	require.NoError(t, p.SetLightPhi(2, 0))
	got = w.GetVec3(LightDirectionKey(2), store.Vec3{})
	assert.InDeltaSlice(t, []float32{1, 0, 0}, got[:], 1e-6)

	require.NoError(t, p.SetLightTheta(2, 0))
	got = w.GetVec3(LightDirectionKey(2), store.Vec3{})
	assert.InDeltaSlice(t, []float32{0, 0, 1}, got[:], 1e-6)

	// Angles are clamped to the control ranges.
	require.NoError(t, p.SetLightTheta(2, 10))
	got = w.GetVec3(LightDirectionKey(2), store.Vec3{})
	assert.InDeltaSlice(t, []float32{0, 0, -1}, got[:], 1e-6)

	assert.Equal(t, 4, w.writes[LightDirectionKey(2)])
}

func TestPublisher_LightIntensityIsColorTimesBrightness(t *testing.T) {
	t.Parallel()

	w := newRecordingWriter()
	p := NewPublisher(w)

	require.NoError(t, p.SetLightColor(0, 1, 0.5, 0.25))
	assert.Equal(t, store.Vec3{1, 0.5, 0.25}, w.GetVec3(LightIntensityKey(0), store.Vec3{}))

	require.NoError(t, p.SetLightBrightness(0, 4))
	assert.Equal(t, store.Vec3{4, 2, 1}, w.GetVec3(LightIntensityKey(0), store.Vec3{}))

	require.NoError(t, p.SetLightColor(0, 2, -1, 0.5))
	assert.Equal(t, store.Vec3{4, 0, 2}, w.GetVec3(LightIntensityKey(0), store.Vec3{}), "channels clamp to [0, 1]")

	require.NoError(t, p.SetLightBrightness(0, 50))
	assert.Equal(t, store.Vec3{10, 0, 5}, w.GetVec3(LightIntensityKey(0), store.Vec3{}))

	assert.Equal(t, 4, w.writes[LightIntensityKey(0)])
}

func TestPublisher_LightIndexOutOfRange(t *testing.T) {
	t.Parallel()

	w := newRecordingWriter()
	p := NewPublisher(w)

	require.ErrorIs(t, p.SetLightAngles(MaxLights, 0, 0), ErrLightIndex)
	require.ErrorIs(t, p.SetLightPhi(-1, 0), ErrLightIndex)
	require.ErrorIs(t, p.SetLightTheta(MaxLights, 0), ErrLightIndex)
	require.ErrorIs(t, p.SetLightColor(-1, 1, 1, 1), ErrLightIndex)
	require.ErrorIs(t, p.SetLightBrightness(99, 1), ErrLightIndex)
	require.ErrorIs(t, p.SetLightRaytraced(10, true), ErrLightIndex)

	assert.Empty(t, w.writes, "rejected edits must not write")
}

func TestPublisher_ConcurrentEditsNeverMixLights(t *testing.T) {
	t.Parallel()

	const edits = 2000

	bb := store.New(nil)
	p := NewPublisher(bb)

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		for i := range edits {
			_ = p.SetLightBrightness(0, float32(i%10))
		}
	}()

	go func() {
		defer wg.Done()

		for range edits {
			frame := ReadFrame(bb)
			intensity := frame.Lights[0].Intensity
			assert.Equal(t, intensity[0], intensity[1])
			assert.Equal(t, intensity[1], intensity[2])
		}
	}()

	wg.Wait()
}
