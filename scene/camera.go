// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package scene

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gviegas/sceneframe/linear"
	"github.com/gviegas/sceneframe/node"
)

// ErrInvalidProjection means that camera parameters do not
// describe a valid projection.
var ErrInvalidProjection = errors.New("scene: invalid projection")

// Default clipping planes of NewPerspective.
const (
	DefaultNear = 0.1
	DefaultFar  = 2000
)

// Aspect returns width/height.
// It fails with ErrInvalidProjection if height is zero
// or if either dimension is negative.
func Aspect(width, height int) (float32, error) {
	if height == 0 || width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: aspect of %dx%d", ErrInvalidProjection, width, height)
	}
	return float32(width) / float32(height), nil
}

// Camera is a perspective camera.
// Its projection parameters are fixed at creation.
type Camera struct {
	node   node.Node
	fov    float32
	aspect float32
	near   float32
	far    float32
	proj   linear.M4
}

// NewPerspective creates a perspective camera.
// fov is the vertical field of view in degrees and must be
// in the (0, 180) interval. aspect is the width/height
// ratio of the output and must be positive and finite.
func NewPerspective(fov, aspect float32) (*Camera, error) {
	return NewPerspectiveClip(fov, aspect, DefaultNear, DefaultFar)
}

// NewPerspectiveClip is like NewPerspective but with
// explicit clipping planes, which must satisfy
// 0 < near < far.
func NewPerspectiveClip(fov, aspect, near, far float32) (*Camera, error) {
	switch {
	case !(fov > 0 && fov < 180):
		return nil, fmt.Errorf("%w: fov %v", ErrInvalidProjection, fov)
	case !(aspect > 0) || math32.IsInf(aspect, 0):
		return nil, fmt.Errorf("%w: aspect %v", ErrInvalidProjection, aspect)
	case !(near > 0 && near < far) || math32.IsInf(far, 0):
		return nil, fmt.Errorf("%w: near %v, far %v", ErrInvalidProjection, near, far)
	}
	c := &Camera{fov: fov, aspect: aspect, near: near, far: far}
	c.node.Init()
	c.node.Payload = c
	c.node.Name = "PerspectiveCamera"
	c.proj.Perspective(linear.Rad(fov), aspect, near, far)
	return c, nil
}

// Node implements Object.
func (c *Camera) Node() *node.Node { return &c.node }

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float32 { return c.fov }

// Aspect returns the aspect ratio.
func (c *Camera) Aspect() float32 { return c.aspect }

// Near returns the near clipping plane distance.
func (c *Camera) Near() float32 { return c.near }

// Far returns the far clipping plane distance.
func (c *Camera) Far() float32 { return c.far }

// Projection returns the projection matrix.
func (c *Camera) Projection() linear.M4 { return c.proj }

// View returns the view matrix, which is the inverse of
// the camera's world transform.
func (c *Camera) View() (v linear.M4) {
	w := c.node.World()
	v.Invert(&w)
	return
}

// ViewProjection returns Projection ⋅ View.
func (c *Camera) ViewProjection() (m linear.M4) {
	v := c.View()
	m.Mul(&c.proj, &v)
	return
}
