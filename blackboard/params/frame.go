package params

import "github.com/oshokin/blackboard/blackboard/store"

// Reader is the read side of the blackboard.
type Reader interface {
	GetInt(key string, def int32) int32
	GetFloat(key string, def float32) float32
	GetVec3(key string, def store.Vec3) store.Vec3
}

// Light is the per-frame state of one light slot.
type Light struct {
	// Direction is normalized; a published zero vector stays zero.
	Direction store.Vec3
	Intensity store.Vec3
	Raytraced bool
}

// Frame is every render parameter as read at the start of one frame.
//
// Each field is read atomically, but fields are independent: two values
// published by the control surface between the reads may land in different
// frames.
type Frame struct {
	Converge       bool
	AORaysPerFrame int32
	AOMaxDistance  float32
	NumLights      int32
	Lights         [MaxLights]Light
}

// ReadFrame reads all render parameters, substituting the renderer defaults
// for keys that were never published.
func ReadFrame(r Reader) Frame {
	var f Frame

	ReadFrameInto(r, &f)

	return f
}

// ReadFrameInto is ReadFrame filling an existing Frame. It does not allocate.
func ReadFrameInto(r Reader, f *Frame) {
	f.NumLights = r.GetInt(KeyNumLights, DefaultNumLights)
	f.AOMaxDistance = r.GetFloat(KeyAOMaxDistance, DefaultAOMaxDistance)

	for i := range f.Lights {
		keys := &lightKeys[i]

		f.Lights[i] = Light{
			Direction: r.GetVec3(keys.direction, DefaultLightDirection).Normalized(),
			Intensity: r.GetVec3(keys.intensity, DefaultLightIntensity),
			Raytraced: r.GetInt(keys.raytraced, boolToInt(DefaultLightRaytraced)) != 0,
		}
	}

	f.Converge = r.GetInt(KeyConverge, boolToInt(DefaultConverge)) != 0
	f.AORaysPerFrame = r.GetInt(KeyAORaysPerFrame, DefaultAORaysPerFrame)
}

// ActiveLights returns the first NumLights lights, clamped to [0, MaxLights].
// The returned slice aliases f.
func (f *Frame) ActiveLights() []Light {
	n := min(max(int(f.NumLights), 0), MaxLights)

	return f.Lights[:n]
}

// Accumulator counts progressively accumulated frames.
// The zero value is ready to use. It is not safe for concurrent use.
type Accumulator struct {
	frame int32
}

// Next returns the accumulation index for f and advances the counter.
// Whenever convergence is off the index restarts from zero.
func (a *Accumulator) Next(f *Frame) int32 {
	if !f.Converge {
		a.frame = 0
	}

	index := a.frame
	a.frame++

	return index
}

func boolToInt(b bool) int32 {
	if b {
		return 1
	}

	return 0
}
