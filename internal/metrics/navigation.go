package metrics

import (
	"math"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/maze"
	"github.com/san-kum/mazesim/internal/sim"
)

// PathLength sums the distance travelled on the floor plane. Each simulation
// step moves the camera by exactly its forward speed, so the total counts the
// first step and ignores the jump back to the origin on a reset.
type PathLength struct {
	name string
	sum  float64
}

func NewPathLength() *PathLength {
	return &PathLength{name: "path_length"}
}

func (p *PathLength) Name() string { return p.name }

func (p *PathLength) Observe(s camera.State, step int64) {
	p.sum += math.Abs(s.ForwardSpeed)
}

func (p *PathLength) Value() float64 { return p.sum }

func (p *PathLength) Reset() { p.sum = 0 }

// Turning sums the absolute heading change in radians, one turn rate per step.
type Turning struct {
	name string
	sum  float64
}

func NewTurning() *Turning {
	return &Turning{name: "turning"}
}

func (t *Turning) Name() string { return t.name }

func (t *Turning) Observe(s camera.State, step int64) {
	t.sum += math.Abs(s.TurnRate)
}

func (t *Turning) Value() float64 { return t.sum }

func (t *Turning) Reset() { t.sum = 0 }

// CellsVisited counts the distinct open cells the camera has stood in.
// Positions over walls or outside the maze are not counted.
type CellsVisited struct {
	name    string
	scene   *maze.Scene
	visited map[maze.Position]struct{}
}

func NewCellsVisited(scene *maze.Scene) *CellsVisited {
	return &CellsVisited{name: "cells_visited", scene: scene, visited: make(map[maze.Position]struct{})}
}

func (c *CellsVisited) Name() string { return c.name }

func (c *CellsVisited) Observe(s camera.State, step int64) {
	cell := sim.CellAt(s.Position())
	if c.scene.IsOpen(cell) {
		c.visited[cell] = struct{}{}
	}
}

func (c *CellsVisited) Value() float64 { return float64(len(c.visited)) }

func (c *CellsVisited) Reset() {
	c.visited = make(map[maze.Position]struct{})
}

// ReachedEnd is 1 once the camera has entered the end cell, 0 otherwise.
type ReachedEnd struct {
	name    string
	end     maze.Position
	hasEnd  bool
	reached bool
	step    int64
}

func NewReachedEnd(scene *maze.Scene) *ReachedEnd {
	end, ok := scene.End()
	return &ReachedEnd{name: "reached_end", end: end, hasEnd: ok}
}

func (r *ReachedEnd) Name() string { return r.name }

func (r *ReachedEnd) Observe(s camera.State, step int64) {
	if r.reached || !r.hasEnd {
		return
	}
	if sim.CellAt(s.Position()) == r.end {
		r.reached, r.step = true, step
	}
}

func (r *ReachedEnd) Value() float64 {
	if r.reached {
		return 1
	}
	return 0
}

// Step is the simulation step at which the end was first reached.
func (r *ReachedEnd) Step() (int64, bool) { return r.step, r.reached }

func (r *ReachedEnd) Reset() {
	r.reached = false
	r.step = 0
}

// Standard returns the metrics recorded for every stored run.
func Standard(scene *maze.Scene) []sim.Metric {
	return []sim.Metric{
		NewPathLength(),
		NewTurning(),
		NewCellsVisited(scene),
		NewReachedEnd(scene),
	}
}
