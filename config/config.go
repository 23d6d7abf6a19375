// Package config provides YAML presets for the blackboard tooling.
//
// A preset carries the store options and the initial values a control
// surface publishes when it starts. Example:
//
//	store:
//	  shardCount: 4
//	  trackStats: true
//
//	render:
//	  converge: true
//	  aoRaysPerFrame: 2
//	  aoMaxDistance: 50
//	  numLights: 2
//	  lights:
//	    - index: 0
//	      phi: 0.5
//	      theta: 1.0
//	      color: [1, 0.9, 0.8]
//	      brightness: 2
//
//	ints:
//	  debugView: 1
//	vec3s:
//	  sky_color: [0.3, 0.4, 0.7]
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/blackboard/blackboard"
	"github.com/oshokin/blackboard/blackboard/params"
	"github.com/oshokin/blackboard/blackboard/store"
)

// ErrInvalidPreset is returned when a preset fails validation.
var ErrInvalidPreset = errors.New("invalid preset")

// Preset is the root of a preset file.
type Preset struct {
	// Store configures the process-wide store.
	Store blackboard.Options `yaml:"store"`

	// Render holds the render parameters, published through params.Publisher
	// so derived values (directions, intensities) are computed the same way
	// the control surface computes them.
	Render RenderConfig `yaml:"render"`

	// Ints, Floats and Vec3s are raw entries written as-is.
	Ints   map[string]int32     `yaml:"ints"`
	Floats map[string]float32   `yaml:"floats"`
	Vec3s  map[string][]float32 `yaml:"vec3s"`
}

// RenderConfig holds render parameters. Unset fields keep their defaults.
type RenderConfig struct {
	Converge       *bool         `yaml:"converge"`
	AORaysPerFrame *int          `yaml:"aoRaysPerFrame"`
	AOMaxDistance  *float32      `yaml:"aoMaxDistance"`
	NumLights      *int          `yaml:"numLights"`
	Lights         []LightConfig `yaml:"lights"`
}

// LightConfig holds the control values of one light slot.
type LightConfig struct {
	// Index is the light slot, in [0, params.MaxLights).
	Index int `yaml:"index"`

	// Phi and Theta are the spherical angles of the light direction, in radians.
	Phi   *float64 `yaml:"phi"`
	Theta *float64 `yaml:"theta"`

	// Color is the RGB color, each channel in [0, 1].
	Color []float32 `yaml:"color"`

	// Brightness scales Color, in [0, params.MaxBrightness].
	Brightness *float32 `yaml:"brightness"`

	Raytraced *bool `yaml:"raytraced"`
}

// Load reads and parses a preset file.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset %q: %w", path, err)
	}

	return Parse(data)
}

// Parse parses and validates a preset document. An empty document is a
// valid preset that only publishes defaults.
func Parse(data []byte) (*Preset, error) {
	preset := new(Preset)

	if err := yaml.Unmarshal(data, preset); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPreset, err)
	}

	if err := preset.Validate(); err != nil {
		return nil, err
	}

	return preset, nil
}

// Validate checks store options, light indexes, vector lengths and keys.
func (p *Preset) Validate() error {
	if err := p.Store.Validate(); err != nil {
		return fmt.Errorf("%w: store: %w", ErrInvalidPreset, err)
	}

	seen := make(map[int]bool, len(p.Render.Lights))

	for _, light := range p.Render.Lights {
		if light.Index < 0 || light.Index >= params.MaxLights {
			return fmt.Errorf("%w: light index %d must be between 0 and %d",
				ErrInvalidPreset, light.Index, params.MaxLights-1)
		}

		if seen[light.Index] {
			return fmt.Errorf("%w: light %d is listed twice", ErrInvalidPreset, light.Index)
		}

		seen[light.Index] = true

		if light.Color != nil && len(light.Color) != 3 {
			return fmt.Errorf("%w: light %d color must have 3 channels, got %d",
				ErrInvalidPreset, light.Index, len(light.Color))
		}
	}

	for _, key := range sortedKeys(p.Vec3s) {
		if len(p.Vec3s[key]) != 3 {
			return fmt.Errorf("%w: vec3 %q must have 3 components, got %d",
				ErrInvalidPreset, key, len(p.Vec3s[key]))
		}
	}

	for _, keys := range [][]string{sortedKeys(p.Ints), sortedKeys(p.Floats), sortedKeys(p.Vec3s)} {
		for _, key := range keys {
			if err := store.ValidateKey(key); err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidPreset, err)
			}
		}
	}

	return nil
}

// Apply publishes the preset: first every render default, then the render
// overrides, then the raw entries in key order.
func (p *Preset) Apply(w params.Writer) error {
	pub := params.NewPublisher(w)
	pub.PublishDefaults()

	render := p.Render

	if render.Converge != nil {
		pub.SetConverge(*render.Converge)
	}

	if render.AORaysPerFrame != nil {
		pub.SetAORaysPerFrame(*render.AORaysPerFrame)
	}

	if render.AOMaxDistance != nil {
		pub.SetAOMaxDistance(*render.AOMaxDistance)
	}

	if render.NumLights != nil {
		pub.SetNumLights(*render.NumLights)
	}

	for _, light := range render.Lights {
		if err := applyLight(pub, light); err != nil {
			return err
		}
	}

	for _, key := range sortedKeys(p.Ints) {
		w.SetInt(key, p.Ints[key])
	}

	for _, key := range sortedKeys(p.Floats) {
		w.SetFloat(key, p.Floats[key])
	}

	for _, key := range sortedKeys(p.Vec3s) {
		v := p.Vec3s[key]
		w.SetVec3(key, store.Vec3{v[0], v[1], v[2]})
	}

	return nil
}

// applyLight publishes the overrides of one light slot.
func applyLight(pub *params.Publisher, light LightConfig) error {
	if light.Phi != nil && light.Theta != nil {
		if err := pub.SetLightAngles(light.Index, *light.Phi, *light.Theta); err != nil {
			return err
		}
	} else if light.Phi != nil {
		if err := pub.SetLightPhi(light.Index, *light.Phi); err != nil {
			return err
		}
	} else if light.Theta != nil {
		if err := pub.SetLightTheta(light.Index, *light.Theta); err != nil {
			return err
		}
	}

	if light.Color != nil {
		if err := pub.SetLightColor(light.Index, light.Color[0], light.Color[1], light.Color[2]); err != nil {
			return err
		}
	}

	if light.Brightness != nil {
		if err := pub.SetLightBrightness(light.Index, *light.Brightness); err != nil {
			return err
		}
	}

	if light.Raytraced != nil {
		if err := pub.SetLightRaytraced(light.Index, *light.Raytraced); err != nil {
			return err
		}
	}

	return nil
}

// sortedKeys returns the keys of m in ascending order for deterministic output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
