package config

import (
	"fmt"
	"sort"
)

var Presets = map[string]*Config{
	// 60 steps per second, 0.03 units and 0.05 rad per step.
	"classic": {
		Timing: TimingConfig{StepIntervalMs: 16, MaxCatchUp: 10, FPS: 60},
		Camera: CameraConfig{MoveSpeed: 0.03, TurnRate: 0.05},
	},
	"smooth": {
		Timing: TimingConfig{StepIntervalMs: 8, MaxCatchUp: 20, FPS: 120},
		Camera: CameraConfig{MoveSpeed: 0.015, TurnRate: 0.025},
	},
	"brisk": {
		Timing: TimingConfig{StepIntervalMs: 16, MaxCatchUp: 10, FPS: 60},
		Camera: CameraConfig{MoveSpeed: 0.06, TurnRate: 0.08},
	},
	"uncapped": {
		Timing: TimingConfig{StepIntervalMs: 0, MaxCatchUp: 1, FPS: 60},
		Camera: CameraConfig{MoveSpeed: 0.03, TurnRate: 0.05},
	},
}

// GetPreset returns the defaults with the preset's timing and speeds applied,
// or nil for an unknown name.
func GetPreset(name string) *Config {
	cfg := DefaultConfig()
	if err := cfg.ApplyPreset(name); err != nil {
		return nil
	}
	return cfg
}

// ApplyPreset overlays the preset's timing and speeds on c. Everything else,
// such as the maze, data directory, FOV and window, is left as it is.
func (c *Config) ApplyPreset(name string) error {
	p, ok := Presets[name]
	if !ok {
		return fmt.Errorf("unknown preset: %s (available: %v)", name, ListPresets())
	}
	c.Timing = p.Timing
	c.Camera.MoveSpeed = p.Camera.MoveSpeed
	c.Camera.TurnRate = p.Camera.TurnRate
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
