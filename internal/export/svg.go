package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/maze"
	"github.com/san-kum/mazesim/internal/viz"
)

const (
	background  = "#0a0a0a"
	wallColor   = "#d9734e"
	startColor  = "#ffd23f"
	endColor    = "#3fd26b"
	traceColor  = "#00ccff"
	svgHeaderFm = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`
)

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeaderFm, width, height, width, height, background)
	fmt.Fprintf(&sb, "<g fill=\"%s\">\n", wallColor)

	r := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// MazeToSVG draws the maze from above, row 0 at the bottom, with the start
// and end markers and an optional camera trace. cell is the size of one grid
// cell in pixels.
func MazeToSVG(scene *maze.Scene, trace []camera.State, cell float64) string {
	if scene == nil {
		return ""
	}
	if cell <= 0 {
		cell = 24
	}

	pad := cell / 2
	width := float64(scene.Cols)*cell + 2*pad
	height := float64(scene.Rows)*cell + 2*pad
	px := func(z float64) float64 { return pad + (z+0.5)*cell }
	py := func(x float64) float64 { return pad + (float64(scene.Rows)-0.5-x)*cell }

	var sb strings.Builder
	fmt.Fprintf(&sb, svgHeaderFm, width, height, width, height, background)

	fmt.Fprintf(&sb, "<g stroke=\"%s\" stroke-width=\"%.1f\" stroke-linecap=\"square\">\n", wallColor, cell/8)
	seen := make(map[[4]float64]struct{})
	for _, c := range scene.Cells() {
		for _, side := range maze.Sides {
			if !c.Walls.Has(side) {
				continue
			}
			x0, z0, x1, z1 := side.Edge(c.Position)
			key := [4]float64{x0, z0, x1, z1}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			fmt.Fprintf(&sb, "<line x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"/>\n", px(z0), py(x0), px(z1), py(x1))
		}
	}
	sb.WriteString("</g>\n")

	for _, c := range scene.Cells() {
		cx, cy := px(float64(c.Col)), py(float64(c.Row))
		switch c.Marker {
		case maze.MarkerStart:
			r := cell / 4
			fmt.Fprintf(&sb, "<polygon fill=\"%s\" points=\"%.1f,%.1f %.1f,%.1f %.1f,%.1f\"/>\n",
				startColor, cx, cy-r, cx+r, cy+r, cx-r, cy+r)
		case maze.MarkerEnd:
			fmt.Fprintf(&sb, "<circle fill=\"none\" stroke=\"%s\" stroke-width=\"%.1f\" cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
				endColor, cell/10, cx, cy, cell/4)
		}
	}

	if len(trace) > 1 {
		fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", traceColor)
		for i, st := range trace {
			if i > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", px(st.Z), py(st.X))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
