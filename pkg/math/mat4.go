package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mat4FromFloat64 converts a column-major glTF node matrix into an mgl32.Mat4.
func Mat4FromFloat64(m [16]float64) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

// ComposeTRS builds a local transform as translation * rotation * scale,
// the order glTF applies node properties in.
func ComposeTRS(translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(translation[0], translation[1], translation[2])
	r := rotation.Normalize().Mat4()
	s := mgl32.Scale3D(scale[0], scale[1], scale[2])
	return t.Mul4(r).Mul4(s)
}

// TransformPoint applies m to a position, including translation and the
// perspective divide.
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	v := m.Mul4x1(p.Vec4(1))
	if v[3] == 0 || v[3] == 1 {
		return v.Vec3()
	}
	return v.Vec3().Mul(1 / v[3])
}

// TransformVector applies m to a direction, ignoring translation.
func TransformVector(m mgl32.Mat4, d mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(d.Vec4(0)).Vec3()
}
