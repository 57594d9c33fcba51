package math3d

import (
	"testing"
)

func BenchmarkMat4MulVec4(b *testing.B) {
	m := TRS(V3(0, -2, -10), [4]float64{0, 0.3826834, 0, 0.9238795}, V3(1, 1, 1))
	v := Point(V3(1, 2, 3))

	for b.Loop() {
		_ = m.MulVec4(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := TRS(V3(1, 2, 3), [4]float64{0, 0.3826834, 0, 0.9238795}, V3(2, 2, 2))

	for b.Loop() {
		_ = m.Inverse()
	}
}

func BenchmarkFloorClamp(b *testing.B) {
	for b.Loop() {
		_ = FloorClamp(17.25, 0, 15)
	}
}

func BenchmarkViewProjection(b *testing.B) {
	view := Translate(V3(0, 0, -10))
	proj := Perspective(Radians(60), 1.333, 0.1, 100.0)

	for b.Loop() {
		_ = proj.Mul(view)
	}
}
