package camera

import (
	"fmt"
	"math"
)

const (
	DefaultMoveSpeed = 0.03 // world units per step
	DefaultTurnRate  = 0.05 // radians per step
)

// Point is a position on the floor plane. X follows grid rows, Z grid columns.
type Point struct {
	X, Z float64
}

// State is the camera pose and its current rates.
type State struct {
	X, Z         float64
	Heading      float64
	ForwardSpeed float64
	TurnRate     float64
}

// Position returns the planar position.
func (s State) Position() Point { return Point{X: s.X, Z: s.Z} }

// LookAt returns the point one unit ahead of the camera.
func (s State) LookAt() Point {
	return Point{X: s.X + math.Sin(s.Heading), Z: s.Z + math.Cos(s.Heading)}
}

// Moving reports whether either rate is non-zero.
func (s State) Moving() bool { return s.ForwardSpeed != 0 || s.TurnRate != 0 }

func (s State) String() string {
	return fmt.Sprintf("x=%.3f z=%.3f heading=%.3f speed=%.3f turn=%.3f", s.X, s.Z, s.Heading, s.ForwardSpeed, s.TurnRate)
}

// Intent is a snapshot of the four movement signals from the input layer.
type Intent struct {
	Forward  bool `yaml:"forward"`
	Backward bool `yaml:"backward"`
	Left     bool `yaml:"left"`
	Right    bool `yaml:"right"`
}

// Params are the per-step magnitudes applied when a signal is active.
type Params struct {
	MoveSpeed float64
	TurnRate  float64
}

func DefaultParams() Params {
	return Params{MoveSpeed: DefaultMoveSpeed, TurnRate: DefaultTurnRate}
}

// Validate rejects non-finite or negative magnitudes.
func (p Params) Validate() error {
	if math.IsNaN(p.MoveSpeed) || math.IsInf(p.MoveSpeed, 0) || p.MoveSpeed < 0 {
		return fmt.Errorf("move speed must be a non-negative number, got %v", p.MoveSpeed)
	}
	if math.IsNaN(p.TurnRate) || math.IsInf(p.TurnRate, 0) || p.TurnRate < 0 {
		return fmt.Errorf("turn rate must be a non-negative number, got %v", p.TurnRate)
	}
	return nil
}

type Controller struct {
	params Params
	origin Point
	state  State
}

func NewController(p Params) *Controller {
	return &Controller{params: p}
}

// Init sets the reset origin, typically the start cell of the scene, and
// places the camera there facing heading 0.
func (c *Controller) Init(origin Point) State {
	c.origin = origin
	c.state.X, c.state.Z = origin.X, origin.Z
	c.state.Heading = 0
	return c.state
}

func (c *Controller) Origin() Point  { return c.origin }
func (c *Controller) State() State   { return c.state }
func (c *Controller) Params() Params { return c.params }

func (c *Controller) MoveForward(on bool) {
	if on {
		c.state.ForwardSpeed = c.params.MoveSpeed
	} else {
		c.state.ForwardSpeed = 0
	}
}

func (c *Controller) MoveBackward(on bool) {
	if on {
		c.state.ForwardSpeed = -c.params.MoveSpeed
	} else {
		c.state.ForwardSpeed = 0
	}
}

func (c *Controller) TurnLeft(on bool) {
	if on {
		c.state.TurnRate = c.params.TurnRate
	} else {
		c.state.TurnRate = 0
	}
}

func (c *Controller) TurnRight(on bool) {
	if on {
		c.state.TurnRate = -c.params.TurnRate
	} else {
		c.state.TurnRate = 0
	}
}

// Step advances the camera by one simulation step. The heading is updated
// first and the position moves along the new heading.
func (c *Controller) Step() State {
	s := &c.state
	s.Heading += s.TurnRate
	s.X += s.ForwardSpeed * math.Sin(s.Heading)
	s.Z += s.ForwardSpeed * math.Cos(s.Heading)
	return *s
}

// Reset returns the camera to its origin with heading 0. Rates are kept, so a
// held key keeps acting after the reset.
func (c *Controller) Reset() State {
	c.state.X, c.state.Z = c.origin.X, c.origin.Z
	c.state.Heading = 0
	return c.state
}
