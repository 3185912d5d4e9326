package sim

import (
	"fmt"
	"time"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/clock"
)

// Metric accumulates a scalar over the steps of a session.
type Metric interface {
	Name() string
	Observe(s camera.State, step int64)
	Value() float64
	Reset()
}

// Observer is notified after every simulation step.
type Observer interface {
	OnStep(s camera.State, step int64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s camera.State, step int64)

func (f ObserverFunc) OnStep(s camera.State, step int64) { f(s, step) }

type Config struct {
	StepInterval time.Duration
	MaxCatchUp   int
	Camera       camera.Params
}

func DefaultConfig() Config {
	return Config{
		StepInterval: clock.DefaultStepInterval,
		MaxCatchUp:   clock.DefaultMaxCatchUp,
		Camera:       camera.DefaultParams(),
	}
}

func (c Config) Validate() error {
	if c.StepInterval < 0 {
		return fmt.Errorf("step interval must not be negative, got %v", c.StepInterval)
	}
	if c.MaxCatchUp < 1 {
		return fmt.Errorf("max catch-up steps must be at least 1, got %d", c.MaxCatchUp)
	}
	return c.Camera.Validate()
}

// Frame is one displayed frame of a scripted run: the intent held during the
// frame and the wall-clock time it took. Reset returns the camera to the start
// before the frame is stepped.
type Frame struct {
	Intent camera.Intent
	Delta  time.Duration
	Reset  bool
}

// Result records a scripted run frame by frame.
type Result struct {
	States     []camera.State
	Times      []time.Duration
	Steps      []int
	Metrics    map[string]float64
	StepsTaken int64
}

// SimError reports a failed frame of a scripted run.
type SimError struct {
	Frame   int
	Time    time.Duration
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d (t=%v): %s", e.Frame, e.Time, e.Message)
}
