// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"errors"
)

func newErr(reason string) error {
	return errors.New("gltf: " + reason)
}

func inRange(idx *int64, n int) bool { return idx == nil || (*idx >= 0 && *idx < int64(n)) }

// Check checks that f is valid glTF.
// Only the subset of the format that Export produces
// is checked thoroughly.
func (f *GLTF) Check() error {
	if f.Asset.Version != "2.0" {
		return newErr("invalid GLTF.Asset.Version value")
	}
	if !inRange(f.Scene, len(f.Scenes)) {
		return newErr("invalid GLTF.Scene index")
	}
	for i := range f.Scenes {
		for _, n := range f.Scenes[i].Nodes {
			if !inRange(&n, len(f.Nodes)) {
				return newErr("invalid Scene.Nodes index")
			}
		}
	}
	for i := range f.Nodes {
		if err := f.Nodes[i].Check(f); err != nil {
			return err
		}
	}
	if err := f.checkHierarchy(); err != nil {
		return err
	}
	for i := range f.Meshes {
		if err := f.Meshes[i].Check(f); err != nil {
			return err
		}
	}
	for i := range f.Cameras {
		if err := f.Cameras[i].Check(); err != nil {
			return err
		}
	}
	for i := range f.BufferViews {
		v := &f.BufferViews[i]
		if v.Buffer < 0 || v.Buffer >= int64(len(f.Buffers)) {
			return newErr("invalid BufferView.Buffer index")
		}
		if v.ByteOffset < 0 || v.ByteLength < 1 || v.ByteOffset+v.ByteLength > f.Buffers[v.Buffer].ByteLength {
			return newErr("invalid BufferView range")
		}
	}
	for i := range f.Accessors {
		if err := f.Accessors[i].Check(f); err != nil {
			return err
		}
	}
	return nil
}

// checkHierarchy checks that the nodes form disjoint trees
// whose roots are the only nodes listed in scenes.
// Node.Check must have been called for every node.
func (f *GLTF) checkHierarchy() error {
	parent := make([]int64, len(f.Nodes))
	for i := range parent {
		parent[i] = -1
	}
	for i := range f.Nodes {
		for _, c := range f.Nodes[i].Children {
			if parent[c] != -1 {
				return newErr("node is a child of more than one node")
			}
			parent[c] = int64(i)
		}
	}
	for i := range f.Nodes {
		n := int64(i)
		for steps := 0; parent[n] != -1; steps++ {
			if steps == len(f.Nodes) {
				return newErr("cycle in node hierarchy")
			}
			n = parent[n]
		}
	}
	for i := range f.Scenes {
		for _, n := range f.Scenes[i].Nodes {
			if parent[n] != -1 {
				return newErr("Scene.Nodes element is not a root node")
			}
		}
	}
	return nil
}

// Check checks that n is valid glTF.nodes' element.
func (n *Node) Check(gltf *GLTF) error {
	if !inRange(n.Mesh, len(gltf.Meshes)) {
		return newErr("invalid Node.Mesh index")
	}
	if !inRange(n.Camera, len(gltf.Cameras)) {
		return newErr("invalid Node.Camera index")
	}
	for _, c := range n.Children {
		if !inRange(&c, len(gltf.Nodes)) || &gltf.Nodes[c] == n {
			return newErr("invalid Node.Children index")
		}
	}
	return nil
}

// Check checks that m is valid glTF.meshes' element.
func (m *Mesh) Check(gltf *GLTF) error {
	if len(m.Primitives) == 0 {
		return newErr("invalid Mesh.Primitives length")
	}
	for i := range m.Primitives {
		p := &m.Primitives[i]
		pos, ok := p.Attributes["POSITION"]
		if !ok {
			return newErr("missing Primitive.Attributes POSITION")
		}
		if !inRange(&pos, len(gltf.Accessors)) {
			return newErr("invalid Primitive.Attributes index")
		}
		for _, a := range p.Attributes {
			if !inRange(&a, len(gltf.Accessors)) {
				return newErr("invalid Primitive.Attributes index")
			}
			if gltf.Accessors[a].Count != gltf.Accessors[pos].Count {
				return newErr("mismatched Primitive.Attributes count")
			}
		}
		if !inRange(p.Indices, len(gltf.Accessors)) {
			return newErr("invalid Primitive.Indices index")
		}
		if !inRange(p.Material, len(gltf.Materials)) {
			return newErr("invalid Primitive.Material index")
		}
		if p.Mode != nil && (*p.Mode < POINTS || *p.Mode > TRIANGLE_FAN) {
			return newErr("invalid Primitive.Mode value")
		}
	}
	return nil
}

// Check checks that c is valid glTF.cameras' element.
func (c *Camera) Check() error {
	if c.Type != Tperspective || c.Perspective == nil {
		return newErr("invalid Camera.Type value")
	}
	p := c.Perspective
	switch {
	case p.YFOV <= 0:
		return newErr("invalid Perspective.YFOV value")
	case p.Znear <= 0:
		return newErr("invalid Perspective.Znear value")
	case p.Zfar != 0 && p.Zfar <= p.Znear:
		return newErr("invalid Perspective.Zfar value")
	case p.AspectRatio < 0:
		return newErr("invalid Perspective.AspectRatio value")
	}
	return nil
}

// Check checks that a is valid glTF.accessors' element.
func (a *Accessor) Check(gltf *GLTF) error {
	if !inRange(a.BufferView, len(gltf.BufferViews)) {
		return newErr("invalid Accessor.BufferView index")
	}
	if a.ByteOffset < 0 {
		return newErr("invalid Accessor.BufferOffset value")
	}
	var csize int64
	switch a.ComponentType {
	case BYTE, UNSIGNED_BYTE:
		csize = 1
	case SHORT, UNSIGNED_SHORT:
		csize = 2
	case UNSIGNED_INT, FLOAT:
		csize = 4
	default:
		return newErr("invalid Accessor.ComponentType value")
	}
	if a.Count < 1 {
		return newErr("invalid Accessor.Count value")
	}
	var ncomp int64
	switch a.Type {
	case SCALAR:
		ncomp = 1
	case VEC2:
		ncomp = 2
	case VEC3:
		ncomp = 3
	case VEC4, MAT2:
		ncomp = 4
	case MAT3:
		ncomp = 9
	case MAT4:
		ncomp = 16
	default:
		return newErr("invalid Accessor.Type value")
	}
	if (a.Max != nil && int64(len(a.Max)) != ncomp) || (a.Min != nil && int64(len(a.Min)) != ncomp) {
		return newErr("invalid Accessor.Max/Min length")
	}
	if a.BufferView != nil {
		v := &gltf.BufferViews[*a.BufferView]
		if a.ByteOffset+a.Count*ncomp*csize > v.ByteLength {
			return newErr("Accessor out of BufferView bounds")
		}
	}
	return nil
}
