package params

import (
	"strconv"

	"github.com/oshokin/blackboard/blackboard/store"
)

// Global parameter keys.
const (
	// KeyConverge enables progressive accumulation (bool as 0/1).
	KeyConverge = "converge"
	// KeyAORaysPerFrame is the number of ambient-occlusion rays per pixel per frame.
	KeyAORaysPerFrame = "aoRaysPerFrame"
	// KeyAOMaxDistance is the ambient-occlusion ray length.
	KeyAOMaxDistance = "ao_maxdist"
	// KeyNumLights is the number of active lights.
	KeyNumLights = "numLights"
)

// Per-light key prefixes; the light index is appended in decimal.
const (
	lightDirectionPrefix = "light_v_"
	lightIntensityPrefix = "light_intensity_"
	lightRaytracedPrefix = "light_raytraced_"
)

// MaxLights is the number of light slots the renderer reads every frame.
const MaxLights = 10

// Value ranges enforced by the Publisher.
const (
	MaxAORaysPerFrame = 100
	MaxAOMaxDistance  = 100
	MaxBrightness     = 10
)

// Defaults the renderer falls back to for keys that were never published.
const (
	DefaultConverge       = false
	DefaultAORaysPerFrame = 1
	DefaultAOMaxDistance  = 100
	DefaultNumLights      = 0
	DefaultLightRaytraced = true
)

//nolint:gochecknoglobals // immutable defaults.
var (
	// DefaultLightDirection points straight up the z axis.
	DefaultLightDirection = store.Vec3{0, 0, 1}
	// DefaultLightIntensity is white at unit brightness.
	DefaultLightIntensity = store.Vec3{1, 1, 1}
)

// lightKeySet holds the precomputed keys of one light slot, so the render
// loop never builds strings.
type lightKeySet struct {
	direction string
	intensity string
	raytraced string
}

//nolint:gochecknoglobals // filled once by init and read-only afterwards.
var lightKeys [MaxLights]lightKeySet

func init() {
	for i := range lightKeys {
		suffix := strconv.Itoa(i)

		lightKeys[i] = lightKeySet{
			direction: lightDirectionPrefix + suffix,
			intensity: lightIntensityPrefix + suffix,
			raytraced: lightRaytracedPrefix + suffix,
		}
	}
}

// LightDirectionKey returns the vec3 key of the direction of light i.
func LightDirectionKey(i int) string {
	if validLight(i) {
		return lightKeys[i].direction
	}

	return lightDirectionPrefix + strconv.Itoa(i)
}

// LightIntensityKey returns the vec3 key of the color × brightness of light i.
func LightIntensityKey(i int) string {
	if validLight(i) {
		return lightKeys[i].intensity
	}

	return lightIntensityPrefix + strconv.Itoa(i)
}

// LightRaytracedKey returns the int key telling whether light i casts ray-traced shadows.
func LightRaytracedKey(i int) string {
	if validLight(i) {
		return lightKeys[i].raytraced
	}

	return lightRaytracedPrefix + strconv.Itoa(i)
}

func validLight(i int) bool {
	return i >= 0 && i < MaxLights
}
