// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package material implements the flat (unlit) material
// model used by the renderer.
package material

import (
	"errors"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

const prefix = "material: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// RGB is an opaque 24-bit color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the RGB color of a 0xRRGGBB value.
// Bits above the 24th are ignored.
func Hex(x uint32) RGB {
	return RGB{uint8(x >> 16), uint8(x >> 8), uint8(x)}
}

// Hex returns c as a 0xRRGGBB value.
func (c RGB) Hex() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// RGBA implements color.Color.
func (c RGB) RGBA() (r, g, b, a uint32) {
	return c.Opaque().RGBA()
}

// Opaque returns c as a fully opaque color.RGBA.
func (c RGB) Opaque() color.RGBA {
	return color.RGBA{c.R, c.G, c.B, 0xff}
}

// Factor returns c as normalized [R, G, B] floats.
func (c RGB) Factor() [3]float32 {
	return [3]float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// ParseColor parses a color given either as a hex string
// ("#ff0000", "0xff0000" or "ff0000") or as a CSS color
// name ("red").
func ParseColor(s string) (RGB, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return RGB{c.R, c.G, c.B}, nil
	}
	h := strings.TrimPrefix(s, "0x")
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return RGB{}, newErr("invalid color " + `"` + s + `"`)
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGB) UnmarshalText(b []byte) error {
	x, err := ParseColor(string(b))
	if err != nil {
		return err
	}
	*c = x
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c RGB) MarshalText() ([]byte, error) {
	const digits = "0123456789abcdef"
	b := []byte("#000000")
	for i, v := range [3]uint8{c.R, c.G, c.B} {
		b[1+2*i] = digits[v>>4]
		b[2+2*i] = digits[v&15]
	}
	return b, nil
}

// Basic describes a flat material.
// Geometry is drawn with Color regardless of lighting
// and orientation.
type Basic struct {
	// Color of the surface.
	Color RGB

	// Use the geometry's per-vertex colors instead
	// of Color, when present.
	VertexColors bool

	// Draw triangle edges only.
	Wireframe bool
}

// Material is an immutable material.
type Material struct {
	basic Basic
}

// NewBasic creates a new flat material.
func NewBasic(b Basic) (*Material, error) {
	if b.Wireframe && b.VertexColors {
		return nil, newErr("wireframe with vertex colors not supported")
	}
	return &Material{basic: b}, nil
}

// Must is a helper that wraps a call to a function
// returning (*Material, error) and panics if the
// error is non-nil.
func Must(m *Material, err error) *Material {
	if err != nil {
		panic(err)
	}
	return m
}

// Color returns the flat color of m.
func (m *Material) Color() RGB { return m.basic.Color }

// VertexColors returns whether m uses per-vertex colors.
func (m *Material) VertexColors() bool { return m.basic.VertexColors }

// Wireframe returns whether m draws edges only.
func (m *Material) Wireframe() bool { return m.basic.Wireframe }

// Basic returns the description m was created from.
func (m *Material) Basic() Basic { return m.basic }
