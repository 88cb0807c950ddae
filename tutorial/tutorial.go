// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package tutorial assembles the tutorial scenes and
// renders them.
package tutorial

import (
	"context"

	"go.uber.org/zap"

	"github.com/gviegas/sceneframe/config"
	"github.com/gviegas/sceneframe/logging"
	"github.com/gviegas/sceneframe/render"
	"github.com/gviegas/sceneframe/scene"
	"github.com/gviegas/sceneframe/surface"
)

// Context owns everything a tutorial scene needs to
// produce its frame.
type Context struct {
	Config   config.Config
	Scene    *scene.Scene
	Camera   *scene.Camera
	Renderer *render.Renderer
	Surface  surface.Surface
	Logger   *zap.Logger
}

// Object returns the object of the scene called name,
// or nil if there is none.
func (c *Context) Object(name string) scene.Object { return c.Scene.Find(name) }

// Mesh returns the mesh of the scene called name, or nil.
func (c *Context) Mesh(name string) *scene.Mesh {
	m, _ := c.Object(name).(*scene.Mesh)
	return m
}

// newContext validates cfg and creates the camera and the
// renderer. The camera is not added to the scene yet.
func newContext(ctx context.Context, name string, cfg config.Config, s surface.Surface) (*Context, error) {
	log, _ := logging.SubFrom(ctx, name)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Context{
		Config:  cfg,
		Scene:   scene.New(),
		Surface: s,
		Logger:  log,
	}
	c.Scene.Background = cfg.Background

	aspect, err := scene.Aspect(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	c.Camera, err = scene.NewPerspective(cfg.FOV, aspect)
	if err != nil {
		return nil, err
	}
	c.Camera.Node().Position[2] = cfg.CameraZ
	c.Camera.Node().Name = "camera"

	rc := cfg.Render()
	rc.Logger = log
	if c.Renderer, err = render.New(s, &rc); err != nil {
		return nil, err
	}
	if err = c.Renderer.SetSize(cfg.Width, cfg.Height); err != nil {
		return nil, err
	}
	return c, nil
}

// FirstScene builds a scene holding a single box in front
// of the camera.
func FirstScene(ctx context.Context, cfg config.Config, s surface.Surface) (*Context, error) {
	c, err := newContext(ctx, "firstscene", cfg, s)
	if err != nil {
		return nil, err
	}
	mesh := scene.MakeBoxMesh(cfg.BoxSize, cfg.Color)
	mesh.Node().Name = "mesh"
	c.Scene.Add(mesh)
	c.Scene.Add(c.Camera)
	c.Logger.Debug("scene assembled", zap.Int("objects", c.Scene.Objects()),
		zap.Int("nodes", c.Scene.Count()))
	return c, nil
}

// TransformObjects builds a scene holding an axes helper
// and a group of three boxes whose Y scale is changed
// as a whole.
func TransformObjects(ctx context.Context, cfg config.Config, s surface.Surface) (*Context, error) {
	c, err := newContext(ctx, "transform", cfg, s)
	if err != nil {
		return nil, err
	}
	axes := scene.NewAxesHelper(cfg.AxesSize)
	axes.Node().Name = "axesHelper"
	c.Scene.Add(axes)

	group := scene.NewGroup()
	group.Node().Name = "group"
	c.Scene.Add(group)

	cubes := make([]scene.Object, len(cfg.Cubes))
	for i, cc := range cfg.Cubes {
		cube := scene.MakeBoxMesh(cfg.BoxSize, cc.Color)
		cube.Node().Position[0] = cc.X
		cube.Node().Name = cubeName(i)
		cubes[i] = cube
	}
	group.Add(cubes...)
	group.Node().Scale[1] = cfg.GroupScaleY

	c.Scene.Add(c.Camera)
	c.Logger.Debug("scene assembled", zap.Int("objects", c.Scene.Objects()),
		zap.Int("nodes", c.Scene.Count()))
	return c, nil
}

func cubeName(i int) string { return "cube" + string(rune('1'+i)) }

// Render draws the single frame of the scene into the
// surface.
func (c *Context) Render() error {
	if err := c.Renderer.Render(c.Scene, c.Camera); err != nil {
		c.Logger.Error("render failed", zap.Error(err))
		return err
	}
	return nil
}

// Stats returns what the last call to Render drew.
func (c *Context) Stats() render.Stats { return c.Renderer.Stats() }
