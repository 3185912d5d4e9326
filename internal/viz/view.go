package viz

import (
	"math"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/maze"
)

const (
	wallHalfHeight = 0.5
	nearPlane      = 0.05
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

type Edge struct {
	Start, End Vec3
}

// Wireframe is a deduplicated set of world-space edges.
type Wireframe struct {
	Edges []Edge
	seen  map[Edge]struct{}
}

func NewWireframe() *Wireframe {
	return &Wireframe{Edges: make([]Edge, 0), seen: make(map[Edge]struct{})}
}

func (w *Wireframe) AddEdge(s, e Vec3) {
	if _, ok := w.seen[Edge{e, s}]; ok {
		return
	}
	edge := Edge{s, e}
	if _, ok := w.seen[edge]; ok {
		return
	}
	w.seen[edge] = struct{}{}
	w.Edges = append(w.Edges, edge)
}

// SceneWireframe outlines every wall panel of the scene plus the start and
// end markers. Panels are unit squares standing on the floor at y = -0.5.
func SceneWireframe(scene *maze.Scene) *Wireframe {
	w := NewWireframe()
	for _, cell := range scene.Cells() {
		for _, side := range maze.Sides {
			if !cell.Walls.Has(side) {
				continue
			}
			x0, z0, x1, z1 := side.Edge(cell.Position)
			b0 := Vec3{x0, -wallHalfHeight, z0}
			b1 := Vec3{x1, -wallHalfHeight, z1}
			t0 := Vec3{x0, wallHalfHeight, z0}
			t1 := Vec3{x1, wallHalfHeight, z1}
			w.AddEdge(b0, b1)
			w.AddEdge(t0, t1)
			w.AddEdge(b0, t0)
			w.AddEdge(b1, t1)
		}
		if cell.HasMarker() {
			addMarker(w, cell)
		}
	}
	return w
}

// addMarker draws a pyramid on the start cell and a diamond on the end cell.
func addMarker(w *Wireframe, cell maze.CellDescriptor) {
	c := Vec3{float64(cell.Row), 0, float64(cell.Col)}
	const r = 0.15
	ring := []Vec3{{r, 0, 0}, {0, 0, r}, {-r, 0, 0}, {0, 0, -r}}

	switch cell.Marker {
	case maze.MarkerStart:
		base := c.Add(Vec3{0, -wallHalfHeight, 0})
		apex := c.Add(Vec3{0, -0.1, 0})
		for i, p := range ring {
			q := ring[(i+1)%len(ring)]
			w.AddEdge(base.Add(p), base.Add(q))
			w.AddEdge(base.Add(p), apex)
		}
	case maze.MarkerEnd:
		mid := c.Add(Vec3{0, -0.25, 0})
		top := mid.Add(Vec3{0, r, 0})
		bottom := mid.Add(Vec3{0, -r, 0})
		for i, p := range ring {
			q := ring[(i+1)%len(ring)]
			w.AddEdge(mid.Add(p), mid.Add(q))
			w.AddEdge(mid.Add(p), top)
			w.AddEdge(mid.Add(p), bottom)
		}
	}
}

// Eye is a first-person viewpoint on the floor plane at height 0.
type Eye struct {
	X, Z    float64
	Heading float64
	FOV     float64 // vertical, degrees
}

func EyeFor(st camera.State, fov float64) Eye {
	return Eye{X: st.X, Z: st.Z, Heading: st.Heading, FOV: fov}
}

// toView returns p in eye space: lateral to the right, up, and depth along
// the view direction.
func (e Eye) toView(p Vec3) Vec3 {
	dx, dz := p.X-e.X, p.Z-e.Z
	sin, cos := math.Sincos(e.Heading)
	return Vec3{
		X: -dx*cos + dz*sin,
		Y: p.Y,
		Z: dx*sin + dz*cos,
	}
}

func (e Eye) focal(h int) float64 {
	fov := e.FOV
	if fov <= 0 || fov >= 180 {
		fov = 75
	}
	return float64(h) / 2 / math.Tan(fov*math.Pi/360)
}

// Project maps a world point to sub-pixel coordinates on a w x h raster.
// ok is false for points at or behind the near plane.
func (e Eye) Project(p Vec3, w, h int) (sx, sy float64, ok bool) {
	v := e.toView(p)
	if v.Z < nearPlane {
		return 0, 0, false
	}
	return e.screen(v, w, h), e.screenY(v, h), true
}

func (e Eye) screen(v Vec3, w, h int) float64 {
	return float64(w)/2 + e.focal(h)*v.X/v.Z
}

func (e Eye) screenY(v Vec3, h int) float64 {
	return float64(h)/2 - e.focal(h)*v.Y/v.Z
}

// RenderView draws the wireframe as seen from eye. Edges are clipped against
// the near plane and the raster bounds.
func RenderView(c *Canvas, w *Wireframe, eye Eye) {
	if c == nil || w == nil {
		return
	}
	pw, ph := c.PixelWidth(), c.PixelHeight()

	for _, edge := range w.Edges {
		a, b := eye.toView(edge.Start), eye.toView(edge.End)
		if a.Z < nearPlane && b.Z < nearPlane {
			continue
		}
		if a.Z < nearPlane {
			a = clipNear(b, a)
		} else if b.Z < nearPlane {
			b = clipNear(a, b)
		}

		x0, y0 := eye.screen(a, pw, ph), eye.screenY(a, ph)
		x1, y1 := eye.screen(b, pw, ph), eye.screenY(b, ph)
		x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, 0, 0, float64(pw-1), float64(ph-1))
		if !ok {
			continue
		}
		c.DrawLine(int(math.Round(x0)), int(math.Round(y0)), int(math.Round(x1)), int(math.Round(y1)))
	}
}

// clipNear moves out, which lies behind the near plane, along the segment
// toward in until it sits on the plane.
func clipNear(in, out Vec3) Vec3 {
	t := (in.Z - nearPlane) / (in.Z - out.Z)
	return in.Add(out.Sub(in).Scale(t))
}

// clipSegment is Liang-Barsky clipping against an axis-aligned box.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}

	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q[i] / p[i]
		if p[i] < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, r)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}
