// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package scene provides functionality for creating
// scene graphs.
package scene

import (
	"github.com/gviegas/sceneframe/linear"
	"github.com/gviegas/sceneframe/material"
	"github.com/gviegas/sceneframe/mesh"
	"github.com/gviegas/sceneframe/node"
)

// Object is anything that can be placed in a scene graph.
type Object interface {
	// Node returns the object's node.
	// It must not return nil.
	Node() *node.Node
}

// Add inserts each child, in order, as an immediate
// descendant of parent.
// Adding a child that already has a parent moves it.
func Add(parent Object, children ...Object) {
	p := parent.Node()
	for _, c := range children {
		p.Insert(c.Node())
	}
}

// Scene is the root of a scene graph.
type Scene struct {
	node node.Node

	// Background is the color the renderer clears
	// the frame to.
	// Default is black.
	Background material.RGB
}

// New creates an empty scene.
func New() *Scene { return new(Scene).Init() }

// Init initializes a scene.
func (s *Scene) Init() *Scene {
	s.node.Init()
	s.node.Payload = s
	s.Background = material.RGB{}
	return s
}

// Node implements Object.
func (s *Scene) Node() *node.Node { return &s.node }

// Add inserts children into s.
func (s *Scene) Add(children ...Object) { Add(s, children...) }

// Len returns the number of immediate descendants of s.
func (s *Scene) Len() int { return s.node.Len() }

// Find returns the first descendant of s whose node is
// called name, or nil if there is none.
// Shallower objects are found first.
func (s *Scene) Find(name string) (obj Object) {
	s.node.Until(func(nd *node.Node) bool {
		if nd.Name != name {
			return true
		}
		obj, _ = nd.Payload.(Object)
		return obj == nil
	})
	return
}

// Count returns the number of descendants of s.
func (s *Scene) Count() (n int) {
	s.node.ForEach(func(*node.Node) { n++ })
	return
}

// Objects returns the number of immediate descendants of s
// that are not cameras.
func (s *Scene) Objects() (n int) {
	for _, c := range s.node.Children() {
		if _, ok := c.Payload.(*Camera); !ok {
			n++
		}
	}
	return
}

// Group is a pure container whose transform applies to
// all of its descendants.
type Group struct {
	node node.Node
}

// NewGroup creates an empty group.
func NewGroup() *Group {
	g := new(Group)
	g.node.Init()
	g.node.Payload = g
	return g
}

// Node implements Object.
func (g *Group) Node() *node.Node { return &g.node }

// Add inserts children into g.
func (g *Group) Add(children ...Object) { Add(g, children...) }

// Mesh pairs geometry with a material.
type Mesh struct {
	node node.Node
	geom *mesh.Mesh
	mat  *material.Material
}

// NewMesh creates a new mesh object.
func NewMesh(geom *mesh.Mesh, mat *material.Material) *Mesh {
	m := &Mesh{geom: geom, mat: mat}
	m.node.Init()
	m.node.Payload = m
	return m
}

// Node implements Object.
func (m *Mesh) Node() *node.Node { return &m.node }

// Geometry returns m's geometry.
func (m *Mesh) Geometry() *mesh.Mesh { return m.geom }

// Material returns m's material.
func (m *Mesh) Material() *material.Material { return m.mat }

// MakeBoxMesh creates a box of the given size drawn with a
// flat color.
// The size is not validated.
func MakeBoxMesh(size linear.V3, color material.RGB) *Mesh {
	geom := mesh.NewBox(size[0], size[1], size[2])
	mat := material.Must(material.NewBasic(material.Basic{Color: color}))
	return NewMesh(geom, mat)
}

// NewAxesHelper creates a mesh that shows the X (red),
// Y (green) and Z (blue) axes as lines of the given size.
func NewAxesHelper(size float32) *Mesh {
	mat := material.Must(material.NewBasic(material.Basic{VertexColors: true}))
	m := NewMesh(mesh.NewAxes(size), mat)
	m.node.Name = "AxesHelper"
	return m
}

// Drawable is a mesh found in a scene graph, along with
// its resolved world transform.
type Drawable struct {
	Mesh  *Mesh
	World linear.M4
}

// Meshes returns the meshes of s and their world transforms,
// in depth-first order.
func (s *Scene) Meshes() (d []Drawable) {
	s.node.Walk(func(nd *node.Node, world *linear.M4) {
		if m, ok := nd.Payload.(*Mesh); ok {
			d = append(d, Drawable{m, *world})
		}
	})
	return
}

// WorldBounds returns the world-space bounding box of m.
func WorldBounds(m *Mesh) mesh.Box {
	w := m.node.World()
	return m.geom.Bounds().Transform(&w)
}
