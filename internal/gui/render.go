package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/mazesim/internal/maze"
)

const (
	wallHeight    = 1.0
	wallThickness = 0.05
)

func (a *App) drawScene() {
	scene := a.Session.Scene()

	// floor and ceiling span the whole grid
	cx, cz := float32(scene.Rows-1)/2, float32(scene.Cols-1)/2
	size := rl.NewVector2(float32(scene.Rows), float32(scene.Cols))
	rl.DrawPlane(rl.NewVector3(cx, -wallHeight/2, cz), size, ColFloor)
	rl.DrawPlane(rl.NewVector3(cx, wallHeight/2, cz), size, ColCeiling)

	for _, cell := range a.cells {
		for _, side := range maze.Sides {
			if cell.Walls.Has(side) {
				drawWall(cell.Position, side)
			}
		}
		if cell.HasMarker() {
			drawMarker(cell)
		}
	}
}

// drawWall draws the panel between a cell and its neighbor on side s as a thin
// box centered on their shared edge.
func drawWall(p maze.Position, s maze.Side) {
	dr, dc := s.Offset()
	center := rl.NewVector3(float32(p.Row)+float32(dr)/2, 0, float32(p.Col)+float32(dc)/2)

	w, l := float32(1), float32(wallThickness)
	if dr != 0 {
		w, l = wallThickness, 1
	}
	rl.DrawCube(center, w, wallHeight, l, ColWall)
	rl.DrawCubeWires(center, w, wallHeight, l, ColWallEdg)
}

// drawMarker draws a yellow cone on the start cell and a green sphere on the
// end cell, both resting on the floor.
func drawMarker(cell maze.CellDescriptor) {
	base := rl.NewVector3(float32(cell.Row), -wallHeight/2, float32(cell.Col))
	switch cell.Marker {
	case maze.MarkerStart:
		rl.DrawCylinder(base, 0, 0.15, 0.4, 16, ColStart)
	case maze.MarkerEnd:
		base.Y += 0.2
		rl.DrawSphere(base, 0.2, ColEnd)
	}
}
