// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package config defines the parameters of the tutorial
// scenes.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gviegas/sceneframe/linear"
	"github.com/gviegas/sceneframe/material"
	"github.com/gviegas/sceneframe/render"
	"github.com/gviegas/sceneframe/scene"
)

const prefix = "config: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// Cube describes one of the cubes of the transform scene.
type Cube struct {
	Color material.RGB `yaml:"color"`
	X     float32      `yaml:"x"`
}

// Config is used to configure the tutorial scenes.
// The zero value is not valid; start from DefaultConfig.
type Config struct {
	// Output size in pixels.
	// The camera aspect ratio is computed from it once.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Vertical field of view in degrees.
	FOV float32 `yaml:"fov"`

	// Camera position along the Z axis.
	CameraZ float32 `yaml:"camera_z"`

	// Size of every box.
	BoxSize linear.V3 `yaml:"box_size,flow"`

	// Color of the cube of the first scene.
	Color material.RGB `yaml:"color"`

	// Cubes of the transform scene, in insertion order.
	Cubes [3]Cube `yaml:"cubes"`

	// Y scale of the group holding Cubes.
	GroupScaleY float32 `yaml:"group_scale_y"`

	// Length of the axes helper lines.
	AxesSize float32 `yaml:"axes_size"`

	Background material.RGB `yaml:"background"`

	// See render.Config.
	Supersample    int  `yaml:"supersample"`
	DisableCulling bool `yaml:"disable_culling"`
}

// DefaultConfig returns the configuration of the original
// tutorial scenes.
func DefaultConfig() Config {
	return Config{
		Width:   800,
		Height:  600,
		FOV:     75,
		CameraZ: 3,
		BoxSize: linear.V3{1, 1, 1},
		Color:   material.Hex(0xff0000),
		Cubes: [3]Cube{
			{Color: material.Hex(0xff0000), X: 0},
			{Color: material.Hex(0x00ff00), X: -2},
			{Color: material.Hex(0x0000ff), X: 2},
		},
		GroupScaleY: 2,
		AxesSize:    1,
		Background:  material.Hex(0x000000),
		Supersample: 1,
	}
}

// Validate checks that c describes renderable scenes.
// Invalid size or fov values fail with
// scene.ErrInvalidProjection.
func (c *Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf(prefix+"%w: size %dx%d", scene.ErrInvalidProjection, c.Width, c.Height)
	case !(c.FOV > 0 && c.FOV < 180):
		return fmt.Errorf(prefix+"%w: fov %v", scene.ErrInvalidProjection, c.FOV)
	case c.BoxSize[0] <= 0 || c.BoxSize[1] <= 0 || c.BoxSize[2] <= 0:
		return newErr(fmt.Sprintf("invalid box size %v", c.BoxSize))
	case c.GroupScaleY == 0:
		return newErr("group_scale_y must not be zero")
	case c.AxesSize <= 0:
		return newErr(fmt.Sprintf("invalid axes size %v", c.AxesSize))
	case c.Supersample < 1 || c.Supersample > render.MaxSupersample:
		return newErr(fmt.Sprintf("invalid supersample %d", c.Supersample))
	}
	return nil
}

// Render returns the renderer configuration of c.
func (c *Config) Render() render.Config {
	rc := render.DefaultConfig()
	rc.Supersample = c.Supersample
	rc.DisableCulling = c.DisableCulling
	return rc
}

// Decode reads YAML from r over the defaults.
// Unknown fields are an error.
func Decode(r io.Reader) (Config, error) {
	c := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf(prefix+"%w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads the YAML file at path over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes c to w as YAML.
func (c *Config) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
