// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package gltf

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"math"

	"github.com/gviegas/sceneframe/linear"
	"github.com/gviegas/sceneframe/material"
	"github.com/gviegas/sceneframe/mesh"
	"github.com/gviegas/sceneframe/node"
	"github.com/gviegas/sceneframe/scene"
)

// Generator is the asset.generator of exported files.
const Generator = "sceneframe"

const dataURI = "data:application/octet-stream;base64,"

// exporter accumulates glTF objects and binary data.
type exporter struct {
	f      GLTF
	bin    bytes.Buffer
	geom   map[*mesh.Mesh]Primitive
	mat    map[*material.Material]int64
	meshes map[meshKey]int64
}

type meshKey struct {
	geom *mesh.Mesh
	mat  *material.Material
}

// Export converts the scene graph of s into glTF.
// Geometry is returned separately in bin, which the
// exported Buffer refers to. Use Embed to store bin in
// the GLTF itself or EncodeGLB to write both into a
// single GLB blob.
func Export(s *scene.Scene) (f *GLTF, bin []byte, err error) {
	e := &exporter{
		geom:   make(map[*mesh.Mesh]Primitive),
		mat:    make(map[*material.Material]int64),
		meshes: make(map[meshKey]int64),
	}
	e.f.Asset.Version = "2.0"
	e.f.Asset.Generator = Generator
	var roots []int64
	for _, nd := range s.Node().Children() {
		roots = append(roots, e.node(nd))
	}
	e.f.Scenes = []Scene{{Nodes: roots}}
	e.f.Scene = new(int64)
	if len(e.mat) > 0 {
		e.f.ExtensionsUsed = []string{KHRMaterialsUnlit}
	}
	if e.bin.Len() > 0 {
		e.f.Buffers = []Buffer{{ByteLength: int64(e.bin.Len())}}
	}
	if err = e.f.Check(); err != nil {
		return nil, nil, err
	}
	return &e.f, e.bin.Bytes(), nil
}

// Embed sets f's buffer to a data URI holding bin.
func Embed(f *GLTF, bin []byte) {
	if len(f.Buffers) == 0 {
		return
	}
	f.Buffers[0].URI = dataURI + base64.StdEncoding.EncodeToString(bin)
}

// node exports nd and its descendants, returning the
// index of nd.
func (e *exporter) node(nd *node.Node) int64 {
	idx := int64(len(e.f.Nodes))
	e.f.Nodes = append(e.f.Nodes, Node{Name: nd.Name})
	n := transformOf(nd)
	switch x := nd.Payload.(type) {
	case *scene.Mesh:
		m := e.mesh(x)
		n.Mesh = &m
	case *scene.Camera:
		c := e.camera(x)
		n.Camera = &c
	}
	for _, sub := range nd.Children() {
		n.Children = append(n.Children, e.node(sub))
	}
	e.f.Nodes[idx] = n
	return idx
}

func transformOf(nd *node.Node) (n Node) {
	n.Name = nd.Name
	if p := nd.Position; p != (linear.V3{}) {
		n.Translation = (*[3]float32)(&p)
	}
	if r := nd.Rotation; r != (linear.V3{}) {
		var q linear.Q
		q.Euler(r[0], r[1], r[2])
		n.Rotation = &[4]float32{q.V[0], q.V[1], q.V[2], q.R}
	}
	if s := nd.Scale; s != (linear.V3{1, 1, 1}) {
		n.Scale = (*[3]float32)(&s)
	}
	return
}

func (e *exporter) camera(c *scene.Camera) int64 {
	e.f.Cameras = append(e.f.Cameras, Camera{
		Type: Tperspective,
		Name: c.Node().Name,
		Perspective: &Perspective{
			AspectRatio: c.Aspect(),
			YFOV:        linear.Rad(c.FOV()),
			Znear:       c.Near(),
			Zfar:        c.Far(),
		},
	})
	return int64(len(e.f.Cameras) - 1)
}

func (e *exporter) mesh(m *scene.Mesh) int64 {
	key := meshKey{m.Geometry(), m.Material()}
	if i, ok := e.meshes[key]; ok {
		return i
	}
	prim := e.geometry(key.geom)
	mt := e.material(key.mat)
	prim.Material = &mt
	e.f.Meshes = append(e.f.Meshes, Mesh{Primitives: []Primitive{prim}})
	i := int64(len(e.f.Meshes) - 1)
	e.meshes[key] = i
	return i
}

func (e *exporter) material(m *material.Material) int64 {
	if i, ok := e.mat[m]; ok {
		return i
	}
	c := m.Color().Factor()
	metal, rough := float32(0), float32(1)
	mat := Material{
		PBRMetallicRoughness: &PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{c[0], c[1], c[2], 1},
			MetallicFactor:  &metal,
			RoughnessFactor: &rough,
		},
		Extensions: map[string]any{KHRMaterialsUnlit: struct{}{}},
	}
	if m.VertexColors() {
		// COLOR_0 is multiplied by the base color.
		mat.PBRMetallicRoughness.BaseColorFactor = nil
	}
	e.f.Materials = append(e.f.Materials, mat)
	i := int64(len(e.f.Materials) - 1)
	e.mat[m] = i
	return i
}

// geometry writes the data of g into the binary buffer
// once and returns a material-less primitive for it.
func (e *exporter) geometry(g *mesh.Mesh) Primitive {
	if p, ok := e.geom[g]; ok {
		return p
	}
	n := g.Len()
	pos := make([]float32, 0, 3*n)
	col := make([]uint8, 0, 4*n)
	hasCol := false
	for i := 0; i < n; i++ {
		p, c, ok := g.Vertex(i)
		pos = append(pos, p[:]...)
		col = append(col, c.R, c.G, c.B, c.A)
		hasCol = hasCol || ok
	}
	b := g.Bounds()
	attr := map[string]int64{
		"POSITION": e.accessor(pos, FLOAT, VEC3, int64(n), b.Min[:], b.Max[:]),
	}
	if hasCol {
		a := e.accessor(col, UNSIGNED_BYTE, VEC4, int64(n), nil, nil)
		e.f.Accessors[a].Normalized = true
		attr["COLOR_0"] = a
	}
	mode := int64(TRIANGLES)
	if g.Topology() == mesh.Line {
		mode = LINES
	}
	// Vertices are written unindexed, in assembly order.
	p := Primitive{Attributes: attr, Mode: &mode}
	e.geom[g] = p
	return p
}

// accessor appends data to the binary buffer and creates
// a buffer view and an accessor for it.
func (e *exporter) accessor(data any, ctype int64, typ string, count int64, min, max []float32) int64 {
	for e.bin.Len()%4 != 0 {
		e.bin.WriteByte(0)
	}
	off := int64(e.bin.Len())
	binary.Write(&e.bin, binary.LittleEndian, data)
	view := int64(len(e.f.BufferViews))
	e.f.BufferViews = append(e.f.BufferViews, BufferView{
		ByteOffset: off,
		ByteLength: int64(e.bin.Len()) - off,
		Target:     ARRAY_BUFFER,
	})
	e.f.Accessors = append(e.f.Accessors, Accessor{
		BufferView:    &view,
		ComponentType: ctype,
		Count:         count,
		Type:          typ,
		Min:           finite(min),
		Max:           finite(max),
	})
	return int64(len(e.f.Accessors) - 1)
}

func finite(v []float32) []float32 {
	for _, x := range v {
		if math.IsNaN(float64(x)) || math.IsInf(float64(x), 0) {
			return nil
		}
	}
	return v
}
