// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"testing"
)

func BenchmarkTransform(b *testing.B) {
	var proj, view, mvp M4
	proj.Perspective(Rad(75), 4.0/3, 0.1, 2000)
	view.Translate(0, 0, -3)
	mvp.Mul(&proj, &view)
	p := V3{0.5, -0.5, 0.5}
	var v V4
	b.Run("V4.Mul", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			v = Point(&p)
			v.Mul(&mvp, &v)
		}
	})
	b.Run("bMulValue", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			v = bMulValue(mvp, Point(&p))
		}
	})
	b.Log(v)
}

// m and v passed on the stack.
func bMulValue(m M4, v V4) (u V4) {
	for i := range m {
		for j := range u {
			u[j] += m[i][j] * v[i]
		}
	}
	return
}

func BenchmarkTRS(b *testing.B) {
	var m, r, s M4
	var q Q
	b.Run("Euler+RotateQ", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			q.Euler(0.1, 0.2, 0.3)
			r.RotateQ(&q)
			s.Scale(1, 2, 1)
			m.Translate(-2, 0, 0)
			m.Mul(&m, &r)
			m.Mul(&m, &s)
		}
	})
	b.Run("Invert", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			r.Invert(&m)
		}
	})
	b.Log(m, r)
}
