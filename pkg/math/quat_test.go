package math

import (
	"math"
	"testing"
)

func TestQuatIdentityToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()
	id := Identity()
	for i := 0; i < 16; i++ {
		if absf(m[i]-id[i]) > 0.0001 {
			t.Fatalf("identity quaternion should give identity matrix, element %d: got %f", i, m[i])
		}
	}
}

func TestQuatAxisAngleMatchesMatrix(t *testing.T) {
	axis := Vec3{0, 1, 0}
	angle := float32(math.Pi / 3)

	qm := QuatFromAxisAngle(axis, angle).ToMat4()
	rm := RotateAxis(axis, angle)

	for i := 0; i < 16; i++ {
		if absf(qm[i]-rm[i]) > 0.0001 {
			t.Fatalf("quaternion and matrix rotation disagree, element %d: %f vs %f", i, qm[i], rm[i])
		}
	}
}

func TestQuatMulComposes(t *testing.T) {
	axis := Vec3{0, 0, 1}
	a := QuatFromAxisAngle(axis, 0.3)
	b := QuatFromAxisAngle(axis, 0.4)

	got := a.Mul(b).ToMat4()
	want := QuatFromAxisAngle(axis, 0.7).ToMat4()

	for i := 0; i < 16; i++ {
		if absf(got[i]-want[i]) > 0.0001 {
			t.Fatalf("composed rotation mismatch, element %d: %f vs %f", i, got[i], want[i])
		}
	}
}

func TestQuatNormalizeDegenerate(t *testing.T) {
	q := Quat{}
	if q.Normalize() != QuatIdentity() {
		t.Error("normalizing zero quaternion should return identity")
	}
}
