// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gviegas/sceneframe/linear"
	"github.com/gviegas/sceneframe/material"
	"github.com/gviegas/sceneframe/scene"
	"github.com/gviegas/sceneframe/surface"
)

var (
	red   = color.RGBA{0xff, 0, 0, 0xff}
	green = color.RGBA{0, 0xff, 0, 0xff}
	blue  = color.RGBA{0, 0, 0xff, 0xff}
	black = color.RGBA{0, 0, 0, 0xff}
)

// redCube builds the scene of a single red cube seen from
// z = 3.
func redCube(t *testing.T) (*scene.Scene, *scene.Camera) {
	s := scene.New()
	s.Add(scene.MakeBoxMesh(linear.V3{1, 1, 1}, material.Hex(0xff0000)))
	aspect, err := scene.Aspect(800, 600)
	require.NoError(t, err)
	cam, err := scene.NewPerspective(75, aspect)
	require.NoError(t, err)
	cam.Node().Position[2] = 3
	s.Add(cam)
	return s, cam
}

func newRenderer(t *testing.T, cfg *Config, width, height int) (*Renderer, *surface.Image) {
	surf := surface.NewImage("test")
	r, err := New(surf, cfg)
	require.NoError(t, err)
	require.NoError(t, r.SetSize(width, height))
	return r, surf
}

func TestNew(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, surface.ErrSurfaceUnavailable)

	_, err = New(surface.NewImage("x"), &Config{Supersample: MaxSupersample + 1})
	assert.Error(t, err)

	r, err := New(surface.NewImage("x"), &Config{})
	require.NoError(t, err)
	assert.Equal(t, 1, r.cfg.Supersample)
	assert.NotNil(t, r.cfg.Logger)

	assert.Error(t, r.SetSize(0, 600))
	assert.Error(t, r.SetSize(800, -1))

	s, cam := redCube(t)
	assert.Error(t, r.Render(s, cam), "Render before SetSize")
	assert.Nil(t, r.Frame())
	require.NoError(t, r.SetSize(8, 6))
	assert.Error(t, r.Render(nil, cam))
	assert.Error(t, r.Render(s, nil))
}

func TestRedCube(t *testing.T) {
	r, surf := newRenderer(t, nil, 800, 600)
	s, cam := redCube(t)
	require.NoError(t, r.Render(s, cam))

	frame := surf.Frame()
	require.NotNil(t, frame)
	assert.Equal(t, image.Rect(0, 0, 800, 600), frame.Bounds())

	// Centered red square, flat color everywhere inside.
	for _, p := range []image.Point{{400, 300}, {340, 240}, {460, 360}, {340, 360}, {460, 240}} {
		assert.Equal(t, red, frame.RGBAAt(p.X, p.Y), "inside at %v", p)
	}
	for _, p := range []image.Point{{0, 0}, {799, 599}, {400, 100}, {400, 500}, {200, 300}, {600, 300}} {
		assert.Equal(t, black, frame.RGBAAt(p.X, p.Y), "outside at %v", p)
	}

	// Symmetric about the center of the frame.
	var left, right int
	for x := 0; x < 400; x++ {
		if frame.RGBAAt(x, 300) == red {
			left++
		}
		if frame.RGBAAt(799-x, 300) == red {
			right++
		}
	}
	assert.InDelta(t, left, right, 1)

	st := r.Stats()
	assert.Equal(t, 1, st.Meshes)
	assert.Equal(t, 2, st.Triangles, "only the front face is visible")
	assert.Equal(t, 0, st.Lines)
	assert.Same(t, r.Frame(), r.target)
}

func TestIdempotent(t *testing.T) {
	r, surf := newRenderer(t, nil, 160, 120)
	s, cam := redCube(t)
	cam.Node().Rotation[1] = 0.3
	s.Node().Children()[0].Rotation = linear.V3{0.4, 0.7, 0}

	require.NoError(t, r.Render(s, cam))
	first := append([]byte(nil), surf.Frame().Pix...)
	require.NoError(t, r.Render(s, cam))
	assert.True(t, bytes.Equal(first, surf.Frame().Pix), "frames differ")
}

func TestCulling(t *testing.T) {
	s, cam := redCube(t)
	// Put the camera inside the cube: every face is
	// seen from the back.
	cam.Node().Position[2] = 0

	r, surf := newRenderer(t, nil, 80, 60)
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, black, surf.Frame().RGBAAt(40, 30))
	assert.Zero(t, r.Stats().Triangles)

	r, surf = newRenderer(t, &Config{DisableCulling: true}, 80, 60)
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, red, surf.Frame().RGBAAt(40, 30))
}

func TestMirroredCulling(t *testing.T) {
	r, surf := newRenderer(t, nil, 80, 60)
	s, cam := redCube(t)
	require.NoError(t, r.Render(s, cam))
	want := r.Stats()

	for _, scale := range []linear.V3{{1, -1, 1}, {-1, 1, 1}, {-1, -1, -1}, {-1, -1, 1}} {
		s, cam := redCube(t)
		s.Node().Children()[0].Scale = scale
		require.NoError(t, r.Render(s, cam))
		assert.Equal(t, red, surf.Frame().RGBAAt(40, 30), "scale %v", scale)
		assert.Equal(t, 2, r.Stats().Triangles, "scale %v", scale)
		assert.Equal(t, want.Culled, r.Stats().Culled, "scale %v", scale)
	}
}

func TestDepth(t *testing.T) {
	s, cam := redCube(t)
	near := scene.MakeBoxMesh(linear.V3{0.5, 0.5, 0.5}, material.Hex(0x0000ff))
	near.Node().Position[2] = 1
	far := scene.MakeBoxMesh(linear.V3{4, 4, 0.1}, material.Hex(0x00ff00))
	far.Node().Position[2] = -2
	// Insertion order must not matter.
	s.Add(near, far)

	r, surf := newRenderer(t, nil, 200, 150)
	require.NoError(t, r.Render(s, cam))
	frame := surf.Frame()
	assert.Equal(t, blue, frame.RGBAAt(100, 75))
	assert.Equal(t, green, frame.RGBAAt(66, 75))
	assert.Equal(t, red, frame.RGBAAt(84, 75))
}

func TestGroupScale(t *testing.T) {
	height := func(scale float32) (n int) {
		s, cam := redCube(t)
		cube := s.Node().Children()[0]
		g := scene.NewGroup()
		s.Add(g)
		g.Node().Insert(cube)
		g.Node().Scale[1] = scale
		cam.Node().Position[2] = 6

		r, surf := newRenderer(t, nil, 200, 150)
		require.NoError(t, r.Render(s, cam))
		for y := 0; y < 150; y++ {
			if surf.Frame().RGBAAt(100, y) == red {
				n++
			}
		}
		return
	}
	h1, h2 := height(1), height(2)
	assert.Greater(t, h2, h1)
	assert.InDelta(t, 2*h1, h2, 12)
}

func TestAxesHelper(t *testing.T) {
	s := scene.New()
	s.Add(scene.NewAxesHelper(1))
	cam, err := scene.NewPerspective(75, 1)
	require.NoError(t, err)
	cam.Node().Position = linear.V3{0.2, 0.2, 3}

	r, surf := newRenderer(t, nil, 100, 100)
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, 3, r.Stats().Lines)

	var seen [3]bool
	frame := surf.Frame()
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			switch frame.RGBAAt(x, y) {
			case red:
				seen[0] = true
			case green:
				seen[1] = true
			case blue:
				seen[2] = true
			}
		}
	}
	assert.Equal(t, [3]bool{true, true, true}, seen)
}

func TestSupersample(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Supersample = 2
	cfg.Logger = zap.NewExample()
	r, surf := newRenderer(t, &cfg, 80, 60)
	s, cam := redCube(t)
	require.NoError(t, r.Render(s, cam))
	frame := surf.Frame()
	assert.Equal(t, image.Rect(0, 0, 80, 60), frame.Bounds())
	c := frame.RGBAAt(40, 30)
	assert.InDelta(t, 0xff, c.R, 1)
	assert.InDelta(t, 0, c.G, 1)
	assert.Equal(t, black, frame.RGBAAt(0, 0))
}

func TestWireframe(t *testing.T) {
	s := scene.New()
	mat := material.Must(material.NewBasic(material.Basic{Color: material.Hex(0xff0000), Wireframe: true}))
	box := scene.MakeBoxMesh(linear.V3{1, 1, 1}, material.Hex(0xff0000))
	s.Add(scene.NewMesh(box.Geometry(), mat))
	cam, err := scene.NewPerspective(75, 4.0/3)
	require.NoError(t, err)
	cam.Node().Position[2] = 3

	r, surf := newRenderer(t, nil, 160, 120)
	require.NoError(t, r.Render(s, cam))
	assert.Equal(t, 36, r.Stats().Lines)
	assert.Equal(t, black, surf.Frame().RGBAAt(0, 0))
}
