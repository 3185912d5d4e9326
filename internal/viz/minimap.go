package viz

import (
	"math"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/maze"
)

// Minimap draws the maze from above with row 0 at the bottom, matching the
// way the layout file reads top to bottom.
type Minimap struct {
	scene  *maze.Scene
	scale  float64
	ox, oy float64
}

func NewMinimap(scene *maze.Scene, c *Canvas) *Minimap {
	m := &Minimap{scene: scene}
	m.Fit(c)
	return m
}

// Fit picks the largest whole scale at which the maze fits the canvas and
// centers it.
func (m *Minimap) Fit(c *Canvas) {
	pw, ph := float64(c.PixelWidth()), float64(c.PixelHeight())
	cols, rows := float64(m.scene.Cols), float64(m.scene.Rows)
	m.scale = math.Max(1, math.Floor(math.Min((pw-1)/cols, (ph-1)/rows)))
	m.ox = math.Floor((pw - cols*m.scale) / 2)
	m.oy = math.Floor((ph - rows*m.scale) / 2)
}

// ToPixel maps a world position to canvas sub-pixels.
func (m *Minimap) ToPixel(x, z float64) (int, int) {
	px := m.ox + (z+0.5)*m.scale
	py := m.oy + (float64(m.scene.Rows)-0.5-x)*m.scale
	return int(math.Round(px)), int(math.Round(py))
}

func (m *Minimap) Draw(c *Canvas, st camera.State) {
	for _, cell := range m.scene.Cells() {
		for _, side := range maze.Sides {
			if !cell.Walls.Has(side) {
				continue
			}
			x0, z0, x1, z1 := side.Edge(cell.Position)
			ax, ay := m.ToPixel(x0, z0)
			bx, by := m.ToPixel(x1, z1)
			c.DrawLine(ax, ay, bx, by)
		}
		if cell.HasMarker() {
			cx, cy := m.ToPixel(float64(cell.Row), float64(cell.Col))
			r := int(math.Max(1, m.scale/4))
			if cell.Marker == maze.MarkerStart {
				c.DrawRect(cx-r, cy-r, cx+r, cy+r)
			} else {
				c.DrawLine(cx-r, cy, cx, cy-r)
				c.DrawLine(cx, cy-r, cx+r, cy)
				c.DrawLine(cx+r, cy, cx, cy+r)
				c.DrawLine(cx, cy+r, cx-r, cy)
			}
		}
	}

	px, py := m.ToPixel(st.X, st.Z)
	look := st.LookAt()
	lx, ly := m.ToPixel(st.X+(look.X-st.X)*0.6, st.Z+(look.Z-st.Z)*0.6)
	c.Set(px, py)
	c.DrawLine(px, py, lx, ly)
}
