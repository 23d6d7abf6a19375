package store

import "math"

// Vec3 is a three-component float32 vector. It is stored and loaded as one unit.
type Vec3 [3]float32

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	x, y, z := float64(v[0]), float64(v[1]), float64(v[2])

	return float32(math.Sqrt(x*x + y*y + z*z))
}

// Normalized returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec3) Normalized() Vec3 {
	length := v.Length()
	if length == 0 {
		return v
	}

	return v.Scale(1 / length)
}

// Scale returns v with every component multiplied by s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}
