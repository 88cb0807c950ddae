// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package mesh implements the geometry representation used
// by the renderer.
package mesh

import (
	"errors"
	"image/color"

	"github.com/gviegas/sceneframe/linear"
)

const prefix = "mesh: "

// Topology specifies how vertices are assembled into
// primitives.
type Topology int

// Topologies.
const (
	Triangle Topology = iota
	Line
)

// String implements fmt.Stringer.
func (t Topology) String() string {
	switch t {
	case Triangle:
		return "Triangle"
	case Line:
		return "Line"
	default:
		return "[!] invalid Topology value"
	}
}

// Data describes the geometry of a mesh.
// Colors is optional; if set, it must have one element
// per position. Indices is optional; if not set,
// positions are assembled in order.
type Data struct {
	Topology  Topology
	Positions []linear.V3
	Colors    []color.RGBA
	Indices   []uint16
}

// Mesh is immutable geometry.
type Mesh struct {
	topo   Topology
	pos    []linear.V3
	col    []color.RGBA
	idx    []uint16
	bounds Box
}

// New creates a new mesh.
// The contents of data are copied.
func New(data *Data) (m *Mesh, err error) {
	var reason string
	switch {
	case data == nil:
		reason = "nil data"
	case len(data.Positions) == 0:
		reason = "no position data"
	case len(data.Colors) != 0 && len(data.Colors) != len(data.Positions):
		reason = "color count mismatch"
	default:
		cnt := len(data.Positions)
		if x := len(data.Indices); x > 0 {
			cnt = x
			for _, i := range data.Indices {
				if int(i) >= len(data.Positions) {
					reason = "index out of bounds"
					goto invalidData
				}
			}
		}
		switch data.Topology {
		case Triangle:
			if cnt%3 != 0 {
				reason = "invalid count for Triangle"
				goto invalidData
			}
		case Line:
			if cnt&1 != 0 {
				reason = "invalid count for Line"
				goto invalidData
			}
		default:
			reason = "invalid Topology value"
			goto invalidData
		}
		goto validData
	}
invalidData:
	err = errors.New(prefix + reason)
	return
validData:
	m = &Mesh{
		topo: data.Topology,
		pos:  append([]linear.V3(nil), data.Positions...),
		col:  append([]color.RGBA(nil), data.Colors...),
		idx:  append([]uint16(nil), data.Indices...),
	}
	m.bounds = boundsOf(m.pos)
	return
}

// Topology returns the topology of m.
func (m *Mesh) Topology() Topology { return m.topo }

// Len returns the number of vertices assembled into
// primitives (i.e., the index count if m is indexed,
// the position count otherwise).
func (m *Mesh) Len() int {
	if len(m.idx) > 0 {
		return len(m.idx)
	}
	return len(m.pos)
}

// Vertex returns the position of the nth assembled vertex
// and its color. ok is false if m has no vertex colors.
func (m *Mesh) Vertex(n int) (p linear.V3, c color.RGBA, ok bool) {
	i := n
	if len(m.idx) > 0 {
		i = int(m.idx[n])
	}
	p = m.pos[i]
	if len(m.col) > 0 {
		c, ok = m.col[i], true
	}
	return
}

// Bounds returns the local bounding box of m.
func (m *Mesh) Bounds() Box { return m.bounds }

// Box is an axis-aligned bounding box.
type Box struct {
	Min linear.V3
	Max linear.V3
}

// Size returns the extent of b along each axis.
func (b Box) Size() (s linear.V3) {
	s.Sub(&b.Max, &b.Min)
	return
}

// Transform returns the bounding box of b's eight corners
// transformed by m.
func (b Box) Transform(m *linear.M4) Box {
	var pts [8]linear.V3
	for i := range pts {
		c := b.Min
		for j := range c {
			if i&(1<<j) != 0 {
				c[j] = b.Max[j]
			}
		}
		v := linear.Point(&c)
		v.Mul(m, &v)
		pts[i] = linear.V3{v[0] / v[3], v[1] / v[3], v[2] / v[3]}
	}
	return boundsOf(pts[:])
}

func boundsOf(pts []linear.V3) Box {
	b := Box{Min: pts[0], Max: pts[0]}
	for i := 1; i < len(pts); i++ {
		b.Min.Min(&b.Min, &pts[i])
		b.Max.Max(&b.Max, &pts[i])
	}
	return b
}
