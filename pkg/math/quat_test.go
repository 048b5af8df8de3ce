package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatFromEulerXYZ(t *testing.T) {
	tests := []struct {
		name    string
		x, y, z float32
		want    Quat
	}{
		{"zero", 0, 0, 0, QuatIdentity()},
		{"x only", math.Pi / 2, 0, 0, QuatFromAxisAngle(Vec3{1, 0, 0}, math.Pi/2)},
		{"y only", 0, math.Pi / 2, 0, QuatFromAxisAngle(Vec3{0, 1, 0}, math.Pi/2)},
		{"z only", 0, 0, math.Pi, QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromEulerXYZ(tt.x, tt.y, tt.z)
			if !quatNear(got, tt.want, 1e-5) {
				t.Errorf("QuatFromEulerXYZ(%v, %v, %v) = %v, want %v", tt.x, tt.y, tt.z, got, tt.want)
			}
		})
	}
}

func TestQuatFromEulerXYZ_Order(t *testing.T) {
	// X is applied first, so the combined rotation is Rz * Rx.
	got := QuatFromEulerXYZ(math.Pi/2, 0, math.Pi/2)
	want := QuatFromAxisAngle(Vec3{0, 0, 1}, math.Pi/2).Mul(QuatFromAxisAngle(Vec3{1, 0, 0}, math.Pi/2))
	if !quatNear(got, want, 1e-5) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestQuatMulIdentity(t *testing.T) {
	q := QuatFromAxisAngle(Vec3{0, 1, 0}, 0.7)
	if got := q.Mul(QuatIdentity()); !quatNear(got, q, 1e-6) {
		t.Errorf("q * identity = %v, want %v", got, q)
	}
}

func TestQuatIsFinite(t *testing.T) {
	if !QuatIdentity().IsFinite() {
		t.Error("identity should be finite")
	}
	if (Quat{W: float32(math.NaN())}).IsFinite() {
		t.Error("NaN component should not be finite")
	}
}

func quatNear(a, b Quat, eps float64) bool {
	return math.Abs(float64(a.X-b.X)) < eps &&
		math.Abs(float64(a.Y-b.Y)) < eps &&
		math.Abs(float64(a.Z-b.Z)) < eps &&
		math.Abs(float64(a.W-b.W)) < eps
}
