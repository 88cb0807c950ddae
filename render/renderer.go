// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package render implements single-frame software rendering
// of scene graphs.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"time"

	"github.com/disintegration/gift"
	"go.uber.org/zap"

	"github.com/gviegas/sceneframe/scene"
	"github.com/gviegas/sceneframe/surface"
)

func newRendErr(s string) error { return errors.New("renderer: " + s) }

// MaxSupersample is the maximum value of Config.Supersample.
const MaxSupersample = 4

// Config is used to configure a Renderer.
type Config struct {
	// Number of samples per pixel along each axis.
	// Frames are rendered at this multiple of the
	// output size and then downsampled.
	//
	// Default is 1.
	Supersample int

	// Draw back-facing triangles.
	//
	// Default is false.
	DisableCulling bool

	// Logger for the renderer.
	//
	// Default is a no-op logger.
	Logger *zap.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Supersample:    1,
		DisableCulling: false,
		Logger:         zap.NewNop(),
	}
}

// Stats describes what the last call to Render drew.
type Stats struct {
	Meshes    int
	Triangles int
	Culled    int
	Lines     int
	Elapsed   time.Duration
}

// Renderer draws scenes into a surface.
type Renderer struct {
	cfg    Config
	surf   surface.Surface
	target draw.Image
	width  int
	height int

	rt       raster
	stats    Stats
	rendered bool
}

// New creates a new renderer that draws into s.
// If cfg is nil, DefaultConfig is used.
// It fails with surface.ErrSurfaceUnavailable if s is nil.
func New(s surface.Surface, cfg *Config) (*Renderer, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: nil surface in call to render.New", surface.ErrSurfaceUnavailable)
	}
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
		if c.Supersample == 0 {
			c.Supersample = 1
		}
		if c.Logger == nil {
			c.Logger = zap.NewNop()
		}
	}
	if c.Supersample < 1 || c.Supersample > MaxSupersample {
		return nil, newRendErr(fmt.Sprintf("invalid Config.Supersample value %d", c.Supersample))
	}
	return &Renderer{cfg: c, surf: s}, nil
}

// SetSize binds the surface with the given pixel size.
func (r *Renderer) SetSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return newRendErr(fmt.Sprintf("invalid size %dx%d", width, height))
	}
	img, err := r.surf.Bind(width, height)
	if err != nil {
		return err
	}
	r.target = img
	r.width, r.height = width, height
	r.cfg.Logger.Debug("surface bound",
		zap.String("surface", r.surf.Name()),
		zap.Int("width", width),
		zap.Int("height", height))
	return nil
}

// Size returns the pixel size set by SetSize.
func (r *Renderer) Size() (width, height int) { return r.width, r.height }

// Surface returns the surface r draws into.
func (r *Renderer) Surface() surface.Surface { return r.surf }

// Render draws one frame of s as seen by cam and presents
// it to the surface.
// cam need not be part of s, although it usually is.
func (r *Renderer) Render(s *scene.Scene, cam *scene.Camera) error {
	switch {
	case r.target == nil:
		return newRendErr("Render called before SetSize")
	case s == nil:
		return newRendErr("nil scene in call to Render")
	case cam == nil:
		return newRendErr("nil camera in call to Render")
	}
	start := time.Now()
	ss := r.cfg.Supersample
	r.rt.reset(r.width*ss, r.height*ss, s.Background.Opaque())
	r.rt.cull = !r.cfg.DisableCulling

	vp := cam.ViewProjection()
	var st Stats
	for _, d := range s.Meshes() {
		st.Meshes++
		r.rt.drawMesh(&vp, &d, &st)
	}

	b := r.target.Bounds()
	if ss > 1 {
		g := gift.New(gift.Resize(r.width, r.height, gift.LinearResampling))
		g.Draw(r.target, r.rt.color)
	} else {
		draw.Draw(r.target, b, r.rt.color, image.Point{}, draw.Src)
	}
	if err := r.surf.Present(r.target); err != nil {
		r.cfg.Logger.Error("present failed", zap.String("surface", r.surf.Name()), zap.Error(err))
		return err
	}
	st.Elapsed = time.Since(start)
	r.stats = st
	r.rendered = true
	r.cfg.Logger.Info("frame rendered",
		zap.String("surface", r.surf.Name()),
		zap.Int("meshes", st.Meshes),
		zap.Int("triangles", st.Triangles),
		zap.Int("culled", st.Culled),
		zap.Int("lines", st.Lines),
		zap.Duration("elapsed", st.Elapsed))
	return nil
}

// Frame returns the image that the last call to Render
// presented, or nil if Render was not called yet.
func (r *Renderer) Frame() image.Image {
	if !r.rendered {
		return nil
	}
	return r.target
}

// Stats returns statistics of the last call to Render.
func (r *Renderer) Stats() Stats { return r.stats }
