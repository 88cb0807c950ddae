// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package node provides the elements of the scene graph.
package node

import (
	"github.com/gviegas/sceneframe/linear"
)

// Transform is a node's local transform.
// Rotation is given as Euler angles in radians,
// applied in XYZ order.
type Transform struct {
	Position linear.V3
	Rotation linear.V3
	Scale    linear.V3
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Scale: linear.V3{1, 1, 1}}
}

// M4 computes the T ⋅ R ⋅ S matrix of t.
func (t *Transform) M4() (m linear.M4) {
	var r, s linear.M4
	var q linear.Q
	m.Translate(t.Position[0], t.Position[1], t.Position[2])
	q.Euler(t.Rotation[0], t.Rotation[1], t.Rotation[2])
	r.RotateQ(&q)
	s.Scale(t.Scale[0], t.Scale[1], t.Scale[2])
	m.Mul(&m, &r)
	m.Mul(&m, &s)
	return
}

// Node represents a single node in a scene graph.
// Nodes have at most one immediate ancestor and
// an arbitrary number of immediate descendants.
type Node struct {
	next *Node
	prev *Node
	sub  *Node

	Transform

	// Name for the node.
	// It is not used by node code.
	Name string

	// Payload is the object that owns the node.
	// It is not used by node code.
	Payload any
}

// New creates an initialized node.
func New() *Node { return new(Node).Init() }

// Init initializes node n.
// It resets n's transform to the identity.
func (n *Node) Init() *Node {
	n.Transform = Identity()
	return n
}

// Insert inserts node sub as the last immediate
// descendant of node n.
// sub must be either a descendant of n or part of
// an unrelated graph - it must not be an ancestor
// of node n.
func (n *Node) Insert(sub *Node) {
	sub.Remove()
	if n.sub == nil {
		n.sub = sub
		sub.prev = n
		return
	}
	last := n.sub
	for last.next != nil {
		last = last.next
	}
	last.next = sub
	sub.prev = last
}

// Remove removes node n from its immediate ancestor.
func (n *Node) Remove() {
	// Note that Node.prev is only nil when the node
	// has no ancestors, since the prev field of the
	// first immediate descendant is set to refer to
	// its immediate ancestor.
	if n.prev != nil {
		if n.prev.sub == n {
			n.prev.sub = n.next
		} else {
			n.prev.next = n.next
		}
		if n.next != nil {
			n.next.prev = n.prev
		}
		n.prev = nil
		n.next = nil
	}
}

// Parent returns the immediate ancestor of n,
// or nil if n is a root.
func (n *Node) Parent() *Node {
	x := n
	for x.prev != nil && x.prev.sub != x {
		x = x.prev
	}
	return x.prev
}

// Len returns the number of immediate descendants of n.
func (n *Node) Len() (cnt int) {
	for x := n.sub; x != nil; x = x.next {
		cnt++
	}
	return
}

// Children returns the immediate descendants of n
// in insertion order.
func (n *Node) Children() []*Node {
	var s []*Node
	for x := n.sub; x != nil; x = x.next {
		s = append(s, x)
	}
	return s
}

// Local returns the local transform of n.
func (n *Node) Local() linear.M4 { return n.Transform.M4() }

// World returns the world transform of n, which is the
// composition of the local transforms of n and all of
// its ancestors.
func (n *Node) World() linear.M4 {
	m := n.Local()
	for x := n.Parent(); x != nil; x = x.Parent() {
		l := x.Local()
		m.Mul(&l, &m)
	}
	return m
}

// ForEach calls f for each descendant of node n.
// Ancestors are processed first.
// The scene graph must not be changed until this
// method returns.
func (n *Node) ForEach(f func(*Node)) {
	n.Until(func(nd *Node) bool {
		f(nd)
		return true
	})
}

// Until calls f for each descendant of node n.
// Ancestors are processed first. If f returns false,
// Until returns immediately.
// The scene graph must not be changed until this
// method returns.
func (n *Node) Until(f func(*Node) bool) {
	if n.sub == nil {
		return
	}
	que := []*Node{n.sub}
	for len(que) > 0 {
		for nd := que[0]; nd != nil; nd = nd.next {
			if !f(nd) {
				return
			}
			if sub := nd.sub; sub != nil {
				que = append(que, sub)
			}
		}
		que = que[1:]
	}
}

// Walk calls f for each descendant of node n, depth-first,
// passing the descendant's world transform. The world
// transform of n itself is taken into account.
// The scene graph must not be changed until this
// method returns.
func (n *Node) Walk(f func(nd *Node, world *linear.M4)) {
	w := n.World()
	n.walk(&w, f)
}

func (n *Node) walk(world *linear.M4, f func(*Node, *linear.M4)) {
	for nd := n.sub; nd != nil; nd = nd.next {
		var w linear.M4
		l := nd.Local()
		w.Mul(world, &l)
		f(nd, &w)
		nd.walk(&w, f)
	}
}
