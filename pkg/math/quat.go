package math

import "github.com/chewxy/math32"

// Quat represents a quaternion for 3D rotations.
// Components are stored as X, Y, Z, W where W is the scalar part, which is
// also the order they are serialized in.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns an identity quaternion (no rotation).
func QuatIdentity() Quat {
	return Quat{X: 0, Y: 0, Z: 0, W: 1}
}

// QuatFromAxisAngle creates a quaternion from axis-angle rotation.
// axis should be normalized, angle is in radians.
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	s := math32.Sin(angle / 2)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math32.Cos(angle / 2),
	}
}

// QuatFromEulerXYZ builds the rotation for Euler angles (radians) applied
// in X, then Y, then Z order, the host's default rotation mode.
func QuatFromEulerXYZ(x, y, z float32) Quat {
	qx := QuatFromAxisAngle(Vec3{1, 0, 0}, x)
	qy := QuatFromAxisAngle(Vec3{0, 1, 0}, y)
	qz := QuatFromAxisAngle(Vec3{0, 0, 1}, z)
	return qz.Mul(qy).Mul(qx)
}

// Mul multiplies two quaternions (combines rotations).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// IsFinite reports whether every component is neither NaN nor infinite.
func (q Quat) IsFinite() bool {
	return isFinite(q.X) && isFinite(q.Y) && isFinite(q.Z) && isFinite(q.W)
}
