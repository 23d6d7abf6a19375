package params

import (
	"fmt"
	"math"
	"sync"

	"github.com/oshokin/blackboard/blackboard/store"
)

// Writer is the write side of the blackboard.
type Writer interface {
	SetInt(key string, value int32)
	SetFloat(key string, value float32)
	SetVec3(key string, value store.Vec3)
}

// Angle ranges of the light direction controls.
const (
	MinPhi   = -2 * math.Pi
	MaxPhi   = 2 * math.Pi
	MinTheta = 0
	MaxTheta = math.Pi
)

// lightState is the control-side state of one light. Only derived values
// reach the blackboard.
type lightState struct {
	phi, theta float64
	color      [3]float32
	brightness float32
}

// Publisher is the control-surface side of the render parameters.
//
// It keeps the raw control values (angles, color channels, brightness) and
// publishes only the derived values the renderer consumes, each as a single
// entry, so the renderer never combines values from different edits.
// A Publisher is safe for concurrent use.
type Publisher struct {
	w      Writer
	lights [MaxLights]lightState
	mu     sync.Mutex
}

// NewPublisher returns a Publisher writing to w, with every light in its
// initial control state (phi = theta = 0, white, brightness 1).
// Nothing is written until a setter or PublishDefaults is called.
func NewPublisher(w Writer) *Publisher {
	p := &Publisher{w: w}

	for i := range p.lights {
		p.lights[i] = lightState{color: [3]float32{1, 1, 1}, brightness: 1}
	}

	return p
}

// PublishDefaults writes the initial value of every control, the way the
// control panel does when it opens.
func (p *Publisher) PublishDefaults() {
	p.SetConverge(DefaultConverge)
	p.SetAORaysPerFrame(DefaultAORaysPerFrame)
	p.SetAOMaxDistance(DefaultAOMaxDistance)
	p.SetNumLights(DefaultNumLights)

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.lights {
		p.writeDirectionLocked(i)
		p.writeIntensityLocked(i)
		p.w.SetInt(LightRaytracedKey(i), boolToInt(DefaultLightRaytraced))
	}
}

// SetConverge toggles progressive accumulation.
func (p *Publisher) SetConverge(on bool) {
	p.w.SetInt(KeyConverge, boolToInt(on))
}

// SetAORaysPerFrame publishes n clamped to [0, MaxAORaysPerFrame] and returns the published value.
func (p *Publisher) SetAORaysPerFrame(n int) int {
	n = min(max(n, 0), MaxAORaysPerFrame)
	p.w.SetInt(KeyAORaysPerFrame, int32(n))

	return n
}

// SetAOMaxDistance publishes d clamped to [0, MaxAOMaxDistance] and returns the published value.
func (p *Publisher) SetAOMaxDistance(d float32) float32 {
	d = clampFloat32(d, 0, MaxAOMaxDistance)
	p.w.SetFloat(KeyAOMaxDistance, d)

	return d
}

// SetNumLights publishes n clamped to [0, MaxLights] and returns the published value.
func (p *Publisher) SetNumLights(n int) int {
	n = min(max(n, 0), MaxLights)
	p.w.SetInt(KeyNumLights, int32(n))

	return n
}

// SetLightAngles sets both spherical angles of light i and publishes the
// resulting direction as one vector.
func (p *Publisher) SetLightAngles(i int, phi, theta float64) error {
	return p.updateLight(i, func(l *lightState) {
		l.phi = clampFloat64(phi, MinPhi, MaxPhi)
		l.theta = clampFloat64(theta, MinTheta, MaxTheta)
	}, p.writeDirectionLocked)
}

// SetLightPhi sets the azimuth of light i, keeping its polar angle.
func (p *Publisher) SetLightPhi(i int, phi float64) error {
	return p.updateLight(i, func(l *lightState) {
		l.phi = clampFloat64(phi, MinPhi, MaxPhi)
	}, p.writeDirectionLocked)
}

// SetLightTheta sets the polar angle of light i, keeping its azimuth.
func (p *Publisher) SetLightTheta(i int, theta float64) error {
	return p.updateLight(i, func(l *lightState) {
		l.theta = clampFloat64(theta, MinTheta, MaxTheta)
	}, p.writeDirectionLocked)
}

// SetLightColor sets the color channels of light i, each clamped to [0, 1],
// and publishes color × brightness.
func (p *Publisher) SetLightColor(i int, r, g, b float32) error {
	return p.updateLight(i, func(l *lightState) {
		l.color = [3]float32{clampFloat32(r, 0, 1), clampFloat32(g, 0, 1), clampFloat32(b, 0, 1)}
	}, p.writeIntensityLocked)
}

// SetLightBrightness sets the brightness of light i, clamped to
// [0, MaxBrightness], and publishes color × brightness.
func (p *Publisher) SetLightBrightness(i int, brightness float32) error {
	return p.updateLight(i, func(l *lightState) {
		l.brightness = clampFloat32(brightness, 0, MaxBrightness)
	}, p.writeIntensityLocked)
}

// SetLightRaytraced toggles ray-traced shadows of light i.
func (p *Publisher) SetLightRaytraced(i int, on bool) error {
	if !validLight(i) {
		return fmt.Errorf("%w: %d", ErrLightIndex, i)
	}

	p.w.SetInt(LightRaytracedKey(i), boolToInt(on))

	return nil
}

// updateLight applies edit to light i and publishes the derived value while
// still holding the lock, so concurrent edits publish in edit order.
func (p *Publisher) updateLight(i int, edit func(*lightState), publish func(int)) error {
	if !validLight(i) {
		return fmt.Errorf("%w: %d", ErrLightIndex, i)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	edit(&p.lights[i])
	publish(i)

	return nil
}

// writeDirectionLocked publishes the direction of light i. Caller must hold p.mu.
func (p *Publisher) writeDirectionLocked(i int) {
	l := &p.lights[i]
	p.w.SetVec3(LightDirectionKey(i), Direction(l.phi, l.theta))
}

// writeIntensityLocked publishes the intensity of light i. Caller must hold p.mu.
func (p *Publisher) writeIntensityLocked(i int) {
	l := &p.lights[i]
	p.w.SetVec3(LightIntensityKey(i), store.Vec3(l.color).Scale(l.brightness))
}

// Direction converts spherical angles to a unit vector:
// (cos φ sin θ, sin φ sin θ, cos θ).
func Direction(phi, theta float64) store.Vec3 {
	sinTheta := math.Sin(theta)

	return store.Vec3{
		float32(math.Cos(phi) * sinTheta),
		float32(math.Sin(phi) * sinTheta),
		float32(math.Cos(theta)),
	}
}

func clampFloat32(v, lo, hi float32) float32 {
	if math.IsNaN(float64(v)) {
		return lo
	}

	return min(max(v, lo), hi)
}

func clampFloat64(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}

	return min(max(v, lo), hi)
}
