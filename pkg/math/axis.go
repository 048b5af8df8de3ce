package math

// ToEngine maps a host-space position into the runtime's axis convention:
// host (x, y, z) becomes (x, z, -y), then the result is multiplied by scale.
func ToEngine(v Vec3, scale float32) Vec3 {
	return DirectionToEngine(v).Scale(scale)
}

// DirectionToEngine applies the same axis swap as ToEngine without scaling.
// The mapping is a proper rotation, so unit normals stay unit length and
// triangle winding is preserved.
func DirectionToEngine(v Vec3) Vec3 {
	return Vec3{v.X, v.Z, -v.Y}
}
