// Package math provides the small set of interpolation and quantization
// helpers the animation resampler and mesh flattener share. Vector and
// quaternion types come from mgl32.
package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// UnitScale is the identity value for a scale track.
var UnitScale = mgl32.Vec3{1, 1, 1}

// Vec3FromArray converts a glTF [3]float32 into a Vec3.
func Vec3FromArray(a [3]float32) mgl32.Vec3 {
	return mgl32.Vec3{a[0], a[1], a[2]}
}

// LerpVec3 performs linear interpolation between two 3D vectors.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// LerpScalar performs linear interpolation between two scalars.
func LerpScalar(a, b, t float32) float32 {
	return a + t*(b-a)
}
