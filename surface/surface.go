// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package surface provides the output targets that
// renderers draw into.
package surface

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"
)

// ErrSurfaceUnavailable means that an output surface could
// not be found or bound.
var ErrSurfaceUnavailable = errors.New("surface: unavailable")

// Surface is a drawable output target.
type Surface interface {
	// Name identifies the surface.
	Name() string

	// Bind prepares the surface to receive frames of the
	// given size and returns an image to draw into.
	Bind(width, height int) (draw.Image, error)

	// Present delivers a finished frame.
	Present(frame image.Image) error
}

func unavailable(name, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrSurfaceUnavailable, name, reason)
}

func checkSize(name string, width, height int) error {
	if width <= 0 || height <= 0 {
		return unavailable(name, fmt.Sprintf("invalid size %dx%d", width, height))
	}
	return nil
}

var reg = struct {
	sync.Mutex
	m map[string]Surface
}{m: make(map[string]Surface)}

// Register makes s available through Lookup under selector.
// Registering a selector again replaces the previous surface.
func Register(selector string, s Surface) {
	reg.Lock()
	defer reg.Unlock()
	if s == nil {
		delete(reg.m, selector)
		return
	}
	reg.m[selector] = s
}

// Lookup returns the surface registered under selector.
// It fails with ErrSurfaceUnavailable if there is none.
func Lookup(selector string) (Surface, error) {
	reg.Lock()
	defer reg.Unlock()
	s, ok := reg.m[selector]
	if !ok {
		return nil, unavailable(selector, "not registered")
	}
	return s, nil
}

// Image is an in-memory surface.
type Image struct {
	name  string
	img   *image.RGBA
	frame *image.RGBA
}

// NewImage creates a new in-memory surface.
func NewImage(name string) *Image { return &Image{name: name} }

// Name implements Surface.
func (s *Image) Name() string { return s.name }

// Bind implements Surface.
func (s *Image) Bind(width, height int) (draw.Image, error) {
	if err := checkSize(s.name, width, height); err != nil {
		return nil, err
	}
	r := image.Rect(0, 0, width, height)
	if s.img == nil || s.img.Rect != r {
		s.img = image.NewRGBA(r)
	}
	return s.img, nil
}

// Present implements Surface.
// The frame is copied.
func (s *Image) Present(frame image.Image) error {
	b := frame.Bounds()
	if s.frame == nil || s.frame.Rect != b {
		s.frame = image.NewRGBA(b)
	}
	draw.Draw(s.frame, b, frame, b.Min, draw.Src)
	return nil
}

// Frame returns the last presented frame, or nil if
// no frame was presented yet.
func (s *Image) Frame() *image.RGBA { return s.frame }
