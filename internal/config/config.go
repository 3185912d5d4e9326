package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/maze"
	"github.com/san-kum/mazesim/internal/sim"
)

const (
	DefaultMaze           = "maze_layout_1"
	DefaultDataDir        = ".mazesim"
	DefaultStepIntervalMs = 16
	DefaultMaxCatchUp     = 10
	DefaultFPS            = 60
	DefaultFOV            = 75.0
	DefaultWidth          = 512
	DefaultHeight         = 512
)

type Config struct {
	Maze           string       `yaml:"maze"`
	DataDir        string       `yaml:"data_dir"`
	UnknownSymbols string       `yaml:"unknown_symbols"`
	Timing         TimingConfig `yaml:"timing"`
	Camera         CameraConfig `yaml:"camera"`
	Window         WindowConfig `yaml:"window"`
}

type TimingConfig struct {
	StepIntervalMs int `yaml:"step_interval_ms"`
	MaxCatchUp     int `yaml:"max_catch_up"`
	FPS            int `yaml:"fps"`
}

type CameraConfig struct {
	MoveSpeed float64 `yaml:"move_speed"`
	TurnRate  float64 `yaml:"turn_rate"`
	FOV       float64 `yaml:"fov"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Maze:           DefaultMaze,
		DataDir:        DefaultDataDir,
		UnknownSymbols: "reject",
		Timing: TimingConfig{
			StepIntervalMs: DefaultStepIntervalMs,
			MaxCatchUp:     DefaultMaxCatchUp,
			FPS:            DefaultFPS,
		},
		Camera: CameraConfig{
			MoveSpeed: camera.DefaultMoveSpeed,
			TurnRate:  camera.DefaultTurnRate,
			FOV:       DefaultFOV,
		},
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Timing.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.Timing.FPS)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("fov must be in (0, 180), got %v", c.Camera.FOV)
	}
	if _, err := maze.ParseUnknownPolicy(c.UnknownSymbols); err != nil {
		return err
	}
	return c.SimConfig().Validate()
}

// SimConfig converts the timing and camera sections for a session.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		StepInterval: time.Duration(c.Timing.StepIntervalMs) * time.Millisecond,
		MaxCatchUp:   c.Timing.MaxCatchUp,
		Camera: camera.Params{
			MoveSpeed: c.Camera.MoveSpeed,
			TurnRate:  c.Camera.TurnRate,
		},
	}
}

// MazeOptions converts the parser section. An invalid policy falls back to
// rejecting unknown symbols; Validate reports it.
func (c *Config) MazeOptions() []maze.Option {
	p, _ := maze.ParseUnknownPolicy(c.UnknownSymbols)
	return []maze.Option{maze.WithUnknownSymbols(p)}
}

// FrameInterval is the render period for the configured fps.
func (c *Config) FrameInterval() time.Duration {
	if c.Timing.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.Timing.FPS)
}
