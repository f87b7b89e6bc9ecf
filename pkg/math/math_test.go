package math

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{1, 0, 0}.Cross(Vec3{0, 1, 0})
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 2, -4}
	b := Vec3{10, 4, 4}

	if got := a.Lerp(b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	if got, want := a.Lerp(b, 0.5), (Vec3{5, 3, 0}); got != want {
		t.Errorf("Lerp(0.5) = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	if l := (Vec3{3, 4, 12}).Normalize().Length(); !approx(l, 1) {
		t.Errorf("Normalize().Length() = %v, want 1", l)
	}
	if got := (Vec3{}).Normalize(); got != (Vec3{}) {
		t.Errorf("zero vector normalized to %v", got)
	}
}

func TestTranslateAndScale(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformVec3(Vec3{1, 2, 3})
	want := Vec3{12, 24, 36}
	if got != want {
		t.Errorf("TransformVec3 = %v, want %v", got, want)
	}
}

func TestPerspective(t *testing.T) {
	m := Perspective(Radians(45), 1, 0.1, 100)
	if m[11] != -1 {
		t.Errorf("Perspective [11] should be -1, got %f", m[11])
	}
	if m[15] != 0 {
		t.Errorf("Perspective [15] should be 0, got %f", m[15])
	}
	wantF := float32(1 / math.Tan(math.Pi/8))
	if !approx(m[5], wantF) {
		t.Errorf("Perspective [5] = %f, want %f", m[5], wantF)
	}
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{3, 4, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})
	got := m.TransformVec3(eye)
	if !approx(got.X, 0) || !approx(got.Y, 0) || !approx(got.Z, 0) {
		t.Errorf("eye in view space = %v, want origin", got)
	}
}

func TestQuatRotation(t *testing.T) {
	// 90 degrees about +Y
	q := Quat{Y: float32(math.Sin(math.Pi / 4)), W: float32(math.Cos(math.Pi / 4))}
	got := q.ToMat4().TransformVec3(Vec3{1, 0, 0})
	if !approx(got.X, 0) || !approx(got.Y, 0) || !approx(got.Z, -1) {
		t.Errorf("90deg Y rotation of +X = %v, want (0, 0, -1)", got)
	}
	if id := QuatIdentity().ToMat4(); id != Identity() {
		t.Errorf("identity quaternion matrix = %v", id)
	}
}

func TestTRSMirrorDeterminant(t *testing.T) {
	m := TRS(Vec3{1, 2, 3}, QuatIdentity(), Vec3{-1, 1, 1})
	if d := m.Determinant3(); d >= 0 {
		t.Errorf("mirrored transform determinant = %f, want negative", d)
	}
}

func TestBox3(t *testing.T) {
	b := EmptyBox()
	if !b.IsEmpty() {
		t.Fatal("EmptyBox should be empty")
	}
	if s := b.Size(); s != (Vec3{}) {
		t.Errorf("empty box size = %v, want zero", s)
	}

	b = b.ExpandByPoint(Vec3{-1, 0, -2}).ExpandByPoint(Vec3{1, 4, 2})
	if s := b.Size(); s != (Vec3{2, 4, 4}) {
		t.Errorf("Size() = %v, want (2, 4, 4)", s)
	}
}

func TestRadians(t *testing.T) {
	if !approx(Radians(180), math.Pi) {
		t.Errorf("Radians(180) = %f", Radians(180))
	}
}
