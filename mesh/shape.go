// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"image/color"

	"github.com/gviegas/sceneframe/linear"
)

// boxFaces lists, for each face of a box, the axes spanning
// the face (u, v) and the axis/sign of its normal (w).
// (u, v, w) is always a cyclic permutation of (x, y, z),
// so u × v points along +w.
var boxFaces = [6]struct {
	u, v, w int
	dir     float32
}{
	{1, 2, 0, 1},  // +X
	{1, 2, 0, -1}, // -X
	{2, 0, 1, 1},  // +Y
	{2, 0, 1, -1}, // -Y
	{0, 1, 2, 1},  // +Z
	{0, 1, 2, -1}, // -Z
}

// NewBox creates a box geometry centered on the origin.
// The sizes are not validated.
func NewBox(width, height, depth float32) *Mesh {
	half := linear.V3{width / 2, height / 2, depth / 2}
	pos := make([]linear.V3, 0, 24)
	idx := make([]uint16, 0, 36)
	for _, f := range boxFaces {
		// Corners in (u, v) order: (-,-), (+,-), (+,+), (-,+).
		// Flipping u for negative faces keeps the winding
		// counter-clockwise from outside.
		su := f.dir
		base := uint16(len(pos))
		for _, c := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			var p linear.V3
			p[f.u] = c[0] * su * half[f.u]
			p[f.v] = c[1] * half[f.v]
			p[f.w] = f.dir * half[f.w]
			pos = append(pos, p)
		}
		idx = append(idx, base, base+1, base+2, base, base+2, base+3)
	}
	m, err := New(&Data{Topology: Triangle, Positions: pos, Indices: idx})
	if err != nil {
		panic(err)
	}
	return m
}

// Axis colors of NewAxes.
var (
	AxisX = color.RGBA{R: 0xff, A: 0xff}
	AxisY = color.RGBA{G: 0xff, A: 0xff}
	AxisZ = color.RGBA{B: 0xff, A: 0xff}
)

// NewAxes creates a line geometry with one segment of the
// given size per axis, starting at the origin.
// The X axis is red, the Y axis is green and the Z axis
// is blue.
func NewAxes(size float32) *Mesh {
	m, err := New(&Data{
		Topology: Line,
		Positions: []linear.V3{
			{}, {size, 0, 0},
			{}, {0, size, 0},
			{}, {0, 0, size},
		},
		Colors: []color.RGBA{
			AxisX, AxisX,
			AxisY, AxisY,
			AxisZ, AxisZ,
		},
	})
	if err != nil {
		panic(err)
	}
	return m
}
