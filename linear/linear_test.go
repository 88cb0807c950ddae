// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"math"
	"testing"
)

func TestV3(t *testing.T) {
	var u V3
	v := V3{0.5, -0.5, 2}
	w := V3{-0.5, 1, 2}

	if u.Add(&v, &w); u != (V3{0, 0.5, 4}) {
		t.Fatalf("V3.Add\nhave %v\nwant [0 0.5 4]", u)
	}
	if u.Sub(&v, &w); u != (V3{1, -1.5, 0}) {
		t.Fatalf("V3.Sub\nhave %v\nwant [1 -1.5 0]", u)
	}
	if u.Scale(2, &v); u != (V3{1, -1, 4}) {
		t.Fatalf("V3.Scale\nhave %v\nwant [1 -1 4]", u)
	}
	if d := v.Dot(&w); d != 3.25 {
		t.Fatalf("V3.Dot\nhave %v\nwant 3.25", d)
	}
	if l := (&V3{3, 0, 4}).Len(); l != 5 {
		t.Fatalf("V3.Len\nhave %v\nwant 5", l)
	}
	if u.Norm(&V3{0, -3, 0}); u != (V3{0, -1, 0}) {
		t.Fatalf("V3.Norm\nhave %v\nwant [0 -1 0]", u)
	}
	if u.Min(&v, &w); u != (V3{-0.5, -0.5, 2}) {
		t.Fatalf("V3.Min\nhave %v\nwant [-0.5 -0.5 2]", u)
	}
	if u.Max(&v, &w); u != (V3{0.5, 1, 2}) {
		t.Fatalf("V3.Max\nhave %v\nwant [0.5 1 2]", u)
	}

	// Face axes of a box: cyclic order gives outward normals.
	x, y, z := V3{1}, V3{1: 1}, V3{2: 1}
	if u.Cross(&x, &y); u != z {
		t.Fatalf("V3.Cross\nhave %v\nwant %v", u, z)
	}
	if u.Cross(&y, &z); u != x {
		t.Fatalf("V3.Cross\nhave %v\nwant %v", u, x)
	}
	if x.Cross(&z, &x); x != y {
		t.Fatalf("V3.Cross (aliased)\nhave %v\nwant %v", x, y)
	}
}

func TestV4(t *testing.T) {
	p := V3{1, 2, 3}
	v := Point(&p)
	if v != (V4{1, 2, 3, 1}) {
		t.Fatalf("Point\nhave %v\nwant [1 2 3 1]", v)
	}
	var u V4
	w := V4{3, 2, 1, 1}
	if u.Lerp(&v, &w, 0.25); u != (V4{1.5, 2, 2.5, 1}) {
		t.Fatalf("V4.Lerp\nhave %v\nwant [1.5 2 2.5 1]", u)
	}
	var m M4
	m.Scale(2, 3, 4)
	m[3] = V4{-1, -1, -1, 1}
	if v.Mul(&m, &v); v != (V4{1, 5, 11, 1}) {
		t.Fatalf("V4.Mul (aliased)\nhave %v\nwant [1 5 11 1]", v)
	}
	if d := float32(180); !near(Rad(d), math.Pi) {
		t.Fatalf("Rad\nhave %v\nwant %v", Rad(d), math.Pi)
	}
}

func TestM(t *testing.T) {
	var a, b M4
	a.Translate(1, 2, 3)
	b.Scale(2, 2, 2)
	a.Mul(&a, &b)
	if a != (M4{{2}, {1: 2}, {2: 2}, {1, 2, 3, 1}}) {
		t.Fatalf("M4.Mul (aliased)\nhave %v", a)
	}
	var l M3
	l.Upper(&a)
	if l != (M3{{2}, {1: 2}, {2: 2}}) {
		t.Fatalf("M3.Upper\nhave %v", l)
	}
	if d := l.Det(); d != 8 {
		t.Fatalf("M3.Det\nhave %v\nwant 8", d)
	}

	// Swapping two axes or negating one mirrors.
	m := M3{{2, 0, 0}, {0, 0, 3}, {0, 1, 0}}
	if d := m.Det(); d != -6 {
		t.Fatalf("M3.Det\nhave %v\nwant -6", d)
	}
	b.Scale(1, -1, 1)
	if l.Upper(&b); l.Det() != -1 {
		t.Fatalf("M3.Det (Scale(1, -1, 1))\nhave %v\nwant -1", l.Det())
	}
	var q Q
	q.Euler(Rad(30), Rad(-45), Rad(60))
	b.RotateQ(&q)
	if l.Upper(&b); !near(l.Det(), 1) {
		t.Fatalf("M3.Det (rotation)\nhave %v\nwant 1", l.Det())
	}
}

func TestQ(t *testing.T) {
	var q, p, r Q
	q.Rotate(Rad(90), &V3{2: 1})
	p.Rotate(Rad(-90), &V3{2: 1})
	if r.Mul(&q, &p); !near(r.R, 1) || !near(r.V.Len(), 0) {
		t.Fatalf("Q.Mul\nhave %v\nwant {[0 0 0] 1}", r)
	}
	var m M4
	m.RotateQ(&q)
	v := V4{1, 0, 0, 1}
	if v.Mul(&m, &v); !near(v[0], 0) || !near(v[1], 1) {
		t.Fatalf("M4.RotateQ\nhave %v\nwant [0 1 0 1]", v)
	}
	if q.Mul(&q, &q); !near(q.R, 0) || !near(q.V[2], 1) {
		t.Fatalf("Q.Mul (aliased)\nhave %v\nwant {[0 0 1] 0}", q)
	}
	// The axis need not be a unit vector.
	p.Rotate(Rad(90), &V3{2: 4})
	r.Rotate(Rad(90), &V3{2: 1})
	if !near(p.R, r.R) || !near(p.V[2], r.V[2]) || !near(p.V.Len(), r.V.Len()) {
		t.Fatalf("Q.Rotate\nhave %v\nwant %v", p, r)
	}
}

func TestTRS(t *testing.T) {
	var x, r, s M4
	var q Q

	x.Translate(-1, -2, -3)
	q.Rotate(0, &V3{1})
	r.RotateQ(&q)
	s.Scale(5, 5, 5)
	x.Mul(&x, &r)
	x.Mul(&x, &s)
	if x != (M4{{5}, {1: 5}, {2: 5}, {-1, -2, -3, 1}}) {
		t.Fatalf("T*R*S\nhave %v\nwant %v", x, M4{{5}, {1: 5}, {2: 5}, {-1, -2, -3, 1}})
	}
	v := V4{1, 1, 1, 1}
	v.Mul(&x, &v)
	if v != (V4{4, 3, 2, 1}) {
		t.Fatalf("TRS*v\nhave %v\nwant %v", v, V4{4, 3, 2, 1})
	}
}

func near(a, b float32) bool { return math.Abs(float64(a-b)) < 1e-5 }

func TestPerspective(t *testing.T) {
	var p M4
	p.Perspective(Rad(90), 2, 1, 10)
	if !near(p[0][0], 0.5) || !near(p[1][1], 1) {
		t.Fatalf("M4.Perspective\nhave %v\nwant [0][0]=0.5 [1][1]=1", p)
	}
	if p[2][3] != -1 || p[3][3] != 0 {
		t.Fatalf("M4.Perspective\nhave %v\nwant [2][3]=-1 [3][3]=0", p)
	}
	for _, c := range [...]struct {
		z, ndc float32
	}{{-1, -1}, {-10, 1}} {
		v := V4{0, 0, c.z, 1}
		v.Mul(&p, &v)
		if d := v[2] / v[3]; !near(d, c.ndc) {
			t.Fatalf("M4.Perspective: depth at z=%v\nhave %v\nwant %v", c.z, d, c.ndc)
		}
	}
}

func TestEuler(t *testing.T) {
	var q Q
	var m M4
	q.Euler(0, Rad(90), 0)
	m.RotateQ(&q)
	v := V4{1, 0, 0, 1}
	v.Mul(&m, &v)
	if !near(v[0], 0) || !near(v[1], 0) || !near(v[2], -1) {
		t.Fatalf("Q.Euler\nhave %v\nwant [0 0 -1 1]", v)
	}
	q.Euler(0, 0, 0)
	if q != (Q{R: 1}) {
		t.Fatalf("Q.Euler\nhave %v\nwant {[0 0 0] 1}", q)
	}
}

func TestInvertAlias(t *testing.T) {
	var m, n, p M4
	m.Translate(2, -3, 4)
	n = m
	m.Invert(&m)
	p.Mul(&n, &m)
	var i M4
	i.I()
	if p != i {
		t.Fatalf("M4.Invert (aliased)\nhave %v\nwant %v", p, i)
	}
}
