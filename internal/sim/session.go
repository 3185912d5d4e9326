package sim

import (
	"context"
	"math"
	"time"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/clock"
	"github.com/san-kum/mazesim/internal/maze"
)

// Session ties a loaded scene to a camera controller and a frame clock.
//
// Within a frame, all camera steps complete before Step returns, so a
// renderer that draws after Step always sees a settled pose.
type Session struct {
	scene     *maze.Scene
	ctrl      *camera.Controller
	acc       *clock.Accumulator
	wall      time.Time
	elapsed   time.Duration
	intent    camera.Intent
	metrics   []Metric
	observers []Observer
}

// Load reads the maze at path, builds its scene and starts a session at the
// start marker.
func Load(path string, cfg Config, opts ...maze.Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	scene, err := maze.LoadScene(path, opts...)
	if err != nil {
		return nil, err
	}
	return New(scene, cfg)
}

func New(scene *maze.Scene, cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		scene:     scene,
		ctrl:      camera.NewController(cfg.Camera),
		acc:       clock.New(cfg.StepInterval, cfg.MaxCatchUp, time.Time{}),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
	s.ctrl.Init(StartPoint(scene))
	return s, nil
}

// StartPoint maps the scene's start cell to camera coordinates.
func StartPoint(scene *maze.Scene) camera.Point {
	p := scene.Start()
	return camera.Point{X: float64(p.Row), Z: float64(p.Col)}
}

// CellAt returns the grid cell containing a camera position. Cells are unit
// squares centered on integer coordinates.
func CellAt(p camera.Point) maze.Position {
	return maze.Position{Row: int(math.Floor(p.X + 0.5)), Col: int(math.Floor(p.Z + 0.5))}
}

func (s *Session) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Session) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Session) Scene() *maze.Scene              { return s.scene }
func (s *Session) Camera() camera.State            { return s.ctrl.State() }
func (s *Session) Intent() camera.Intent           { return s.intent }
func (s *Session) SimulationTime() int64           { return s.acc.SimulationTime() }
func (s *Session) Elapsed() time.Duration          { return s.elapsed }
func (s *Session) Accumulator() *clock.Accumulator { return s.acc }

// Step applies intent, advances the wall clock by delta and runs the number of
// simulation steps the accumulator grants. It returns the resulting pose.
func (s *Session) Step(intent camera.Intent, delta time.Duration) camera.State {
	s.apply(intent)

	s.wall = s.wall.Add(delta)
	s.elapsed += delta
	n := s.acc.Poll(s.wall)

	base := s.acc.SimulationTime() - int64(n)
	for i := 1; i <= n; i++ {
		st := s.ctrl.Step()
		step := base + int64(i)
		for _, m := range s.metrics {
			m.Observe(st, step)
		}
		for _, o := range s.observers {
			o.OnStep(st, step)
		}
	}
	return s.ctrl.State()
}

// apply forwards only the signals that changed since the previous frame, in
// the order forward, backward, left, right. Two presses arriving in the same
// snapshot therefore resolve to backward and right.
func (s *Session) apply(in camera.Intent) {
	prev := s.intent
	if in.Forward != prev.Forward {
		s.ctrl.MoveForward(in.Forward)
	}
	if in.Backward != prev.Backward {
		s.ctrl.MoveBackward(in.Backward)
	}
	if in.Left != prev.Left {
		s.ctrl.TurnLeft(in.Left)
	}
	if in.Right != prev.Right {
		s.ctrl.TurnRight(in.Right)
	}
	s.intent = in
}

// Reset puts the camera back on the start cell facing heading 0. Held
// movement keeps applying afterwards.
func (s *Session) Reset() camera.State {
	return s.ctrl.Reset()
}

// InCell reports which grid cell the camera stands in.
func (s *Session) InCell() maze.Position {
	return CellAt(s.ctrl.State().Position())
}

// AtEnd reports whether the camera stands in the end cell.
func (s *Session) AtEnd() bool {
	end, ok := s.scene.End()
	return ok && s.InCell() == end
}

// Run plays frames in order and records the pose after each one. Metrics are
// reset first and their final values reported in the result.
func (s *Session) Run(ctx context.Context, frames []Frame) (*Result, error) {
	result := &Result{
		States:  make([]camera.State, 0, len(frames)+1),
		Times:   make([]time.Duration, 0, len(frames)+1),
		Steps:   make([]int, 0, len(frames)+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.States = append(result.States, s.ctrl.State())
	result.Times = append(result.Times, s.elapsed)
	result.Steps = append(result.Steps, 0)

	for i, f := range frames {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if f.Delta < 0 {
			return result, SimError{Frame: i, Time: s.elapsed, Message: "negative frame delta"}
		}

		if f.Reset {
			s.Reset()
		}

		before := s.acc.SimulationTime()
		st := s.Step(f.Intent, f.Delta)
		n := int(s.acc.SimulationTime() - before)

		result.States = append(result.States, st)
		result.Times = append(result.Times, s.elapsed)
		result.Steps = append(result.Steps, n)
		result.StepsTaken += int64(n)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
