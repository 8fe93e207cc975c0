package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}

func BenchmarkVec3MirrorAbout(b *testing.B) {
	l := V3(1, 2, 3).Normalize()
	n := V3(0, 1, 0)

	for b.Loop() {
		_ = l.MirrorAbout(n)
	}
}

func BenchmarkBaryCoords(b *testing.B) {
	a, c, d := V2(0, 0), V2(4, 0), V2(0, 4)
	p := V2(1, 1)

	for b.Loop() {
		_, _, _ = BaryCoords(a, c, d, p)
	}
}
