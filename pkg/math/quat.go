package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

// QuatFromXYZW converts a glTF rotation, stored as X, Y, Z, W where W is the
// scalar part, into an mgl32 quaternion.
func QuatFromXYZW(q [4]float32) mgl32.Quat {
	return mgl32.Quat{W: q[3], V: mgl32.Vec3{q[0], q[1], q[2]}}
}

// QuatToXYZW converts a quaternion back into glTF component order.
func QuatToXYZW(q mgl32.Quat) [4]float32 {
	return [4]float32{q.V[0], q.V[1], q.V[2], q.W}
}

// SlerpQuat performs spherical linear interpolation along the shortest path.
// t should be in range [0, 1].
func SlerpQuat(a, b mgl32.Quat, t float32) mgl32.Quat {
	return mgl32.QuatSlerp(a, b, t)
}
