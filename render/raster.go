// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package render

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"

	"github.com/gviegas/sceneframe/linear"
	"github.com/gviegas/sceneframe/mesh"
	"github.com/gviegas/sceneframe/scene"
)

// raster is a color buffer paired with a depth buffer.
type raster struct {
	color *image.RGBA
	depth []float32
	w, h  int
	cull  bool
}

// reset resizes rt if needed and clears it.
func (rt *raster) reset(width, height int, bg color.RGBA) {
	if rt.color == nil || rt.w != width || rt.h != height {
		rt.color = image.NewRGBA(image.Rect(0, 0, width, height))
		rt.depth = make([]float32, width*height)
		rt.w, rt.h = width, height
	}
	pix := rt.color.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
	// Depth values past the far plane are never written.
	rt.depth[0] = math32.Inf(1)
	for i := 1; i < len(rt.depth); i *= 2 {
		copy(rt.depth[i:], rt.depth[:i])
	}
}

// vertex is a clip-space vertex.
type vertex struct {
	pos linear.V4
	col [4]float32
}

// screen is a vertex after perspective division and
// viewport transform.
type screen struct {
	x, y, z float32
	col     [4]float32
}

func colorOf(c color.RGBA) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// drawMesh draws d with the view-projection vp.
func (rt *raster) drawMesh(vp *linear.M4, d *scene.Drawable, st *Stats) {
	var mvp linear.M4
	mvp.Mul(vp, &d.World)
	// A mirroring transform reverses the winding order.
	var m3 linear.M3
	m3.Upper(&d.World)
	mirror := m3.Det() < 0
	geom := d.Mesh.Geometry()
	mat := d.Mesh.Material()
	flat := colorOf(mat.Color().Opaque())

	load := func(n int) vertex {
		p, c, ok := geom.Vertex(n)
		v := vertex{pos: linear.Point(&p), col: flat}
		v.pos.Mul(&mvp, &v.pos)
		if ok && mat.VertexColors() {
			v.col = colorOf(c)
		}
		return v
	}

	switch geom.Topology() {
	case mesh.Triangle:
		for i := 0; i+2 < geom.Len(); i += 3 {
			tri := [3]vertex{load(i), load(i + 1), load(i + 2)}
			if mat.Wireframe() {
				for j := range tri {
					rt.line(tri[j], tri[(j+1)%3])
				}
				st.Lines += 3
				continue
			}
			if mirror {
				tri[1], tri[2] = tri[2], tri[1]
			}
			drawn, culled := rt.triangle(tri)
			st.Triangles += drawn
			st.Culled += culled
		}
	case mesh.Line:
		for i := 0; i+1 < geom.Len(); i += 2 {
			if rt.line(load(i), load(i+1)) {
				st.Lines++
			}
		}
	}
}

// nearDist returns the signed distance of v to the near
// plane (non-negative when inside).
func nearDist(v *vertex) float32 { return v.pos[2] + v.pos[3] }

func lerp(a, b *vertex, t float32) (v vertex) {
	v.pos.Lerp(&a.pos, &b.pos, t)
	for i := range v.col {
		v.col[i] = a.col[i] + (b.col[i]-a.col[i])*t
	}
	return
}

// clipNear clips a polygon against the near plane.
func clipNear(in []vertex, out []vertex) []vertex {
	out = out[:0]
	for i := range in {
		a, b := &in[i], &in[(i+1)%len(in)]
		da, db := nearDist(a), nearDist(b)
		if da >= 0 {
			out = append(out, *a)
		}
		if (da >= 0) != (db >= 0) {
			out = append(out, lerp(a, b, da/(da-db)))
		}
	}
	return out
}

// project maps a clip-space vertex to the raster.
func (rt *raster) project(v *vertex) screen {
	iw := 1 / v.pos[3]
	return screen{
		x:   (v.pos[0]*iw + 1) * 0.5 * float32(rt.w),
		y:   (1 - v.pos[1]*iw) * 0.5 * float32(rt.h),
		z:   v.pos[2] * iw,
		col: v.col,
	}
}

// edge returns twice the signed area of (a, b, p).
func edge(a, b *screen, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// triangle draws a clip-space triangle.
// It returns the number of triangles drawn and culled
// after clipping.
func (rt *raster) triangle(tri [3]vertex) (drawn, culled int) {
	var buf [4]vertex
	poly := clipNear(tri[:], buf[:0])
	if len(poly) < 3 {
		return
	}
	var sv [4]screen
	for i := range poly {
		sv[i] = rt.project(&poly[i])
	}
	for i := 1; i+1 < len(poly); i++ {
		a, b, c := sv[0], sv[i], sv[i+1]
		area := edge(&a, &b, c.x, c.y)
		// The Y flip of the viewport transform turns
		// counter-clockwise (front-facing) triangles
		// into negative areas.
		switch {
		case area == 0:
			continue
		case area > 0:
			if rt.cull {
				culled++
				continue
			}
		default:
			b, c = c, b
			area = -area
		}
		rt.fill(&a, &b, &c, area)
		drawn++
	}
	return
}

// fill rasterizes a screen-space triangle of positive area.
// Pixel centers exactly on an edge are covered.
func (rt *raster) fill(a, b, c *screen, area float32) {
	x0 := clampi(int(math32.Floor(min3(a.x, b.x, c.x))), 0, rt.w)
	x1 := clampi(int(math32.Ceil(max3(a.x, b.x, c.x))), 0, rt.w)
	y0 := clampi(int(math32.Floor(min3(a.y, b.y, c.y))), 0, rt.h)
	y1 := clampi(int(math32.Ceil(max3(a.y, b.y, c.y))), 0, rt.h)
	inv := 1 / area
	for y := y0; y < y1; y++ {
		py := float32(y) + 0.5
		for x := x0; x < x1; x++ {
			px := float32(x) + 0.5
			w0 := edge(b, c, px, py)
			w1 := edge(c, a, px, py)
			w2 := edge(a, b, px, py)
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}
			w0, w1, w2 = w0*inv, w1*inv, w2*inv
			z := w0*a.z + w1*b.z + w2*c.z
			var col [4]float32
			for i := range col {
				col[i] = w0*a.col[i] + w1*b.col[i] + w2*c.col[i]
			}
			rt.plot(x, y, z, &col)
		}
	}
}

// line draws a clip-space line segment.
// It returns whether any part of it survived clipping.
func (rt *raster) line(a, b vertex) bool {
	da, db := nearDist(&a), nearDist(&b)
	switch {
	case da < 0 && db < 0:
		return false
	case da < 0:
		a = lerp(&a, &b, da/(da-db))
	case db < 0:
		b = lerp(&b, &a, db/(db-da))
	}
	sa, sb := rt.project(&a), rt.project(&b)
	dx, dy := sb.x-sa.x, sb.y-sa.y
	n := int(math32.Ceil(math32.Max(math32.Abs(dx), math32.Abs(dy))))
	if n == 0 {
		n = 1
	}
	// Lines are drawn over coplanar triangles.
	const bias = 1e-4
	for i := 0; i <= n; i++ {
		t := float32(i) / float32(n)
		x := int(math32.Floor(sa.x + dx*t))
		y := int(math32.Floor(sa.y + dy*t))
		z := sa.z + (sb.z-sa.z)*t - bias
		var col [4]float32
		for j := range col {
			col[j] = sa.col[j] + (sb.col[j]-sa.col[j])*t
		}
		if x >= 0 && x < rt.w && y >= 0 && y < rt.h {
			rt.plot(x, y, z, &col)
		}
	}
	return true
}

// plot writes a fragment if it passes the depth test.
func (rt *raster) plot(x, y int, z float32, col *[4]float32) {
	if z < -1 || z > 1 {
		return
	}
	i := y*rt.w + x
	if z >= rt.depth[i] {
		return
	}
	rt.depth[i] = z
	o := rt.color.PixOffset(x, y)
	p := rt.color.Pix[o : o+4 : o+4]
	for j := range p {
		p[j] = uint8(clampf(col[j]+0.5, 0, 255))
	}
}

func min3(a, b, c float32) float32 { return math32.Min(a, math32.Min(b, c)) }
func max3(a, b, c float32) float32 { return math32.Max(a, math32.Max(b, c)) }

func clampi(x, lo, hi int) int {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}

func clampf(x, lo, hi float32) float32 {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}
