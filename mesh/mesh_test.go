// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package mesh

import (
	"image/color"
	"strings"
	"testing"

	"github.com/gviegas/sceneframe/linear"
)

func TestNew(t *testing.T) {
	pos := []linear.V3{{}, {1}, {0, 1}, {1, 1}}
	cases := []struct {
		data   *Data
		reason string
	}{
		{nil, "nil data"},
		{&Data{}, "no position data"},
		{&Data{Positions: pos, Colors: []color.RGBA{{}}}, "color count mismatch"},
		{&Data{Positions: pos, Indices: []uint16{0, 1, 4}}, "index out of bounds"},
		{&Data{Positions: pos}, "invalid count for Triangle"},
		{&Data{Topology: Line, Positions: pos[:3]}, "invalid count for Line"},
		{&Data{Topology: 7, Positions: pos[:2]}, "invalid Topology value"},
	}
	for _, c := range cases {
		m, err := New(c.data)
		if m != nil || err == nil {
			t.Fatalf("New: %s\nhave %v, %v\nwant nil, non-nil", c.reason, m, err)
		}
		if !strings.HasPrefix(err.Error(), prefix) || !strings.HasSuffix(err.Error(), c.reason) {
			t.Fatalf("New: error\nhave %q\nwant %q", err, prefix+c.reason)
		}
	}

	data := &Data{Positions: pos, Indices: []uint16{0, 1, 2, 2, 1, 3}}
	m, err := New(data)
	if err != nil {
		t.Fatalf("New failed:\n%#v", err)
	}
	data.Positions[0] = linear.V3{9, 9, 9}
	if p, _, _ := m.Vertex(0); p != (linear.V3{}) {
		t.Fatalf("Mesh.Vertex: data not copied\nhave %v\nwant [0 0 0]", p)
	}
	if n := m.Len(); n != 6 {
		t.Fatalf("Mesh.Len\nhave %d\nwant 6", n)
	}
	if p, _, ok := m.Vertex(5); p != (linear.V3{1, 1}) || ok {
		t.Fatalf("Mesh.Vertex(5)\nhave %v, %t\nwant [1 1 0], false", p, ok)
	}
}

func TestBox(t *testing.T) {
	m := NewBox(1, 2, 3)
	if m.Topology() != Triangle || m.Len() != 36 {
		t.Fatalf("NewBox\nhave %v, %d\nwant Triangle, 36", m.Topology(), m.Len())
	}
	b := m.Bounds()
	if b.Min != (linear.V3{-0.5, -1, -1.5}) || b.Max != (linear.V3{0.5, 1, 1.5}) {
		t.Fatalf("Mesh.Bounds\nhave %v\nwant {[-0.5 -1 -1.5] [0.5 1 1.5]}", b)
	}
	// Every triangle must face away from the center.
	for i := 0; i < m.Len(); i += 3 {
		p0, _, _ := m.Vertex(i)
		p1, _, _ := m.Vertex(i + 1)
		p2, _, _ := m.Vertex(i + 2)
		var e1, e2, n, c linear.V3
		e1.Sub(&p1, &p0)
		e2.Sub(&p2, &p0)
		n.Cross(&e1, &e2)
		c.Add(&p0, &p1)
		c.Add(&c, &p2)
		if n.Dot(&c) <= 0 {
			t.Fatalf("NewBox: triangle %d faces inward\nhave %v %v %v", i/3, p0, p1, p2)
		}
	}
}

func TestAxes(t *testing.T) {
	m := NewAxes(1)
	if m.Topology() != Line || m.Len() != 6 {
		t.Fatalf("NewAxes\nhave %v, %d\nwant Line, 6", m.Topology(), m.Len())
	}
	want := [3]color.RGBA{AxisX, AxisY, AxisZ}
	for i := 0; i < 3; i++ {
		p, c, ok := m.Vertex(2*i + 1)
		if !ok || c != want[i] || p[i] != 1 {
			t.Fatalf("NewAxes: axis %d\nhave %v, %v, %t\nwant %v", i, p, c, ok, want[i])
		}
	}
}

func TestBoxTransform(t *testing.T) {
	var m linear.M4
	m.Scale(1, 2, 1)
	b := NewBox(1, 1, 1).Bounds().Transform(&m)
	if s := b.Size(); s != (linear.V3{1, 2, 1}) {
		t.Fatalf("Box.Transform: size\nhave %v\nwant [1 2 1]", s)
	}
}
