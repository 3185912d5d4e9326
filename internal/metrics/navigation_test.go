package metrics

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/clock"
	"github.com/san-kum/mazesim/internal/maze"
	"github.com/san-kum/mazesim/internal/sim"
)

func testScene(t *testing.T) *maze.Scene {
	t.Helper()
	g, err := maze.Parse(strings.NewReader("3\n3\nxxx\nxox\nsxe\n"))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	s, err := maze.Build(g)
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return s
}

func TestPathLength(t *testing.T) {
	m := NewPathLength()
	m.Observe(camera.State{Z: 0.03, ForwardSpeed: 0.03}, 1)
	m.Observe(camera.State{Z: 0, ForwardSpeed: -0.03}, 2)
	m.Observe(camera.State{Z: 0}, 3)

	if math.Abs(m.Value()-0.06) > 1e-12 {
		t.Errorf("expected 0.06, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestTurning(t *testing.T) {
	m := NewTurning()
	for i, r := range []float64{0.05, 0.05, -0.05, 0} {
		m.Observe(camera.State{TurnRate: r}, int64(i))
	}
	if math.Abs(m.Value()-0.15) > 1e-12 {
		t.Errorf("expected 0.15, got %f", m.Value())
	}
}

func runWithMetrics(t *testing.T, frames []sim.Frame) (*sim.Result, *PathLength, *Turning) {
	t.Helper()
	s, err := sim.New(testScene(t), sim.DefaultConfig())
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	path, turn := NewPathLength(), NewTurning()
	s.AddMetric(path)
	s.AddMetric(turn)

	res, err := s.Run(context.Background(), frames)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return res, path, turn
}

func TestMetricsCountFirstStep(t *testing.T) {
	frame := sim.Frame{Intent: camera.Intent{Forward: true, Left: true}, Delta: clock.DefaultStepInterval}
	res, path, turn := runWithMetrics(t, []sim.Frame{frame})

	if res.StepsTaken < 1 {
		t.Fatalf("expected at least one step, got %d", res.StepsTaken)
	}
	steps := float64(res.StepsTaken)
	if math.Abs(path.Value()-steps*camera.DefaultMoveSpeed) > 1e-12 {
		t.Errorf("path_length = %f, want %f", path.Value(), steps*camera.DefaultMoveSpeed)
	}
	if math.Abs(turn.Value()-steps*camera.DefaultTurnRate) > 1e-12 {
		t.Errorf("turning = %f, want %f", turn.Value(), steps*camera.DefaultTurnRate)
	}
	if res.Metrics["path_length"] != path.Value() {
		t.Errorf("result reports %f", res.Metrics["path_length"])
	}
}

func TestPathLengthIgnoresResetJump(t *testing.T) {
	walk := sim.Frame{Intent: camera.Intent{Forward: true}, Delta: clock.DefaultStepInterval}
	frames := make([]sim.Frame, 0, 51)
	for i := 0; i < 50; i++ {
		frames = append(frames, walk)
	}
	back := walk
	back.Reset = true
	frames = append(frames, back)

	res, path, turn := runWithMetrics(t, frames)

	want := float64(res.StepsTaken) * camera.DefaultMoveSpeed
	if math.Abs(path.Value()-want) > 1e-9 {
		t.Errorf("path_length = %f, want %f walked", path.Value(), want)
	}
	if turn.Value() != 0 {
		t.Errorf("turning = %f, want 0", turn.Value())
	}
}

func TestCellsVisited(t *testing.T) {
	m := NewCellsVisited(testScene(t))

	m.Observe(camera.State{X: 0, Z: 0}, 1)
	m.Observe(camera.State{X: 0.2, Z: 0.4}, 2)
	m.Observe(camera.State{X: 0, Z: 0.6}, 3)
	m.Observe(camera.State{X: 1, Z: 1}, 4) // wall
	m.Observe(camera.State{X: -3, Z: 0}, 5)

	if m.Value() != 2 {
		t.Errorf("expected 2 cells, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestReachedEnd(t *testing.T) {
	m := NewReachedEnd(testScene(t))

	m.Observe(camera.State{X: 0, Z: 1}, 10)
	if m.Value() != 0 {
		t.Fatal("end should not be reached yet")
	}

	m.Observe(camera.State{X: 0.1, Z: 1.8}, 11)
	m.Observe(camera.State{X: 0, Z: 0}, 12)
	if m.Value() != 1 {
		t.Fatal("expected end reached")
	}
	if step, ok := m.Step(); !ok || step != 11 {
		t.Errorf("expected first reach at step 11, got %d", step)
	}
}

func TestReachedEndWithoutEnd(t *testing.T) {
	g, err := maze.Parse(strings.NewReader("1\n2\nsx\n"))
	if err != nil {
		t.Fatal(err)
	}
	s, err := maze.Build(g)
	if err != nil {
		t.Fatal(err)
	}

	m := NewReachedEnd(s)
	m.Observe(camera.State{}, 1)
	if m.Value() != 0 {
		t.Error("maze without end can never be finished")
	}
}

func TestStandardNames(t *testing.T) {
	names := map[string]bool{}
	for _, m := range Standard(testScene(t)) {
		names[m.Name()] = true
	}
	for _, want := range []string{"path_length", "turning", "cells_visited", "reached_end"} {
		if !names[want] {
			t.Errorf("missing metric %s", want)
		}
	}
}
