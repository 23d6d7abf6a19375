package params

import "errors"

// ErrLightIndex is returned for light indexes outside [0, MaxLights).
var ErrLightIndex = errors.New("light index out of range")
