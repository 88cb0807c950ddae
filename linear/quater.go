// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package linear

import (
	"github.com/chewxy/math32"
)

// Q is a quaternion of float32.
type Q struct {
	V V3
	R float32
}

// I makes q an identity quaternion.
func (q *Q) I() { *q = Q{R: 1} }

// Mul sets q to contain l ⋅ r.
func (q *Q) Mul(l, r *Q) {
	var v, w V3
	v.Scale(r.R, &l.V)
	w.Scale(l.R, &r.V)
	v.Add(&v, &w)
	w.Cross(&l.V, &r.V)
	d := l.V.Dot(&r.V)
	q.V.Add(&v, &w)
	q.R = l.R*r.R - d
}

// Rotate sets q to contain a rotation of angle radians
// about axis.
// axis must not be the zero vector.
func (q *Q) Rotate(angle float32, axis *V3) {
	s, c := math32.Sincos(angle * 0.5)
	q.V.Norm(axis)
	q.V.Scale(s, &q.V)
	q.R = c
}

// Euler sets q to contain the rotation described by the
// given Euler angles, in radians, applied in XYZ order
// (i.e., q = qx ⋅ qy ⋅ qz).
func (q *Q) Euler(x, y, z float32) {
	var qx, qy, qz Q
	qx.Rotate(x, &V3{1, 0, 0})
	qy.Rotate(y, &V3{0, 1, 0})
	qz.Rotate(z, &V3{0, 0, 1})
	q.Mul(&qx, &qy)
	q.Mul(q, &qz)
}
