package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mazesim/internal/maze"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultMaze, cfg.Maze)

	sc := cfg.SimConfig()
	assert.Equal(t, 16*time.Millisecond, sc.StepInterval)
	assert.Equal(t, 10, sc.MaxCatchUp)
	assert.Equal(t, 0.03, sc.Camera.MoveSpeed)
	assert.Equal(t, 0.05, sc.Camera.TurnRate)
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maze: mazes/big.txt\ntiming:\n  fps: 30\n  step_interval_ms: 16\n  max_catch_up: 5\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mazes/big.txt", cfg.Maze)
	assert.Equal(t, 30, cfg.Timing.FPS)
	assert.Equal(t, 5, cfg.Timing.MaxCatchUp)
	assert.Equal(t, DefaultFOV, cfg.Camera.FOV)
	assert.Equal(t, time.Second/30, cfg.FrameInterval())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	cfg := DefaultConfig()
	cfg.UnknownSymbols = "wall"
	require.NoError(t, Save(path, cfg))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero fps", func(c *Config) { c.Timing.FPS = 0 }},
		{"negative interval", func(c *Config) { c.Timing.StepIntervalMs = -1 }},
		{"no catch-up", func(c *Config) { c.Timing.MaxCatchUp = 0 }},
		{"negative speed", func(c *Config) { c.Camera.MoveSpeed = -0.1 }},
		{"wide fov", func(c *Config) { c.Camera.FOV = 200 }},
		{"bad symbol policy", func(c *Config) { c.UnknownSymbols = "ignore" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestMazeOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.UnknownSymbols = "wall"

	path := filepath.Join(t.TempDir(), "m.txt")
	require.NoError(t, os.WriteFile(path, []byte("1\n3\ns?e\n"), 0644))

	g, err := maze.Load(path, cfg.MazeOptions()...)
	require.NoError(t, err)
	assert.Equal(t, maze.Wall, g.At(0, 1))
}

func TestPresets(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		require.NotNil(t, cfg, name)
		assert.NoError(t, cfg.Validate(), name)
	}

	assert.Nil(t, GetPreset("nonexistent"))
	assert.Equal(t, 0, GetPreset("uncapped").Timing.StepIntervalMs)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvPreset, "brisk")
	t.Setenv(EnvMaze, "env-maze.txt")
	t.Setenv(EnvData, "")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "env-maze.txt", cfg.Maze)
	assert.Equal(t, DefaultDataDir, cfg.DataDir)
	assert.Equal(t, 0.06, cfg.Camera.MoveSpeed)

	t.Setenv(EnvPreset, "warp")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestResolvePresetOverFile(t *testing.T) {
	t.Setenv(EnvPreset, "")
	t.Setenv(EnvMaze, "")
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("maze: corridor\ncamera:\n  fov: 60\n  move_speed: 0.5\n"), 0644))

	cfg, err := Resolve(path, "brisk")
	require.NoError(t, err)
	assert.Equal(t, "corridor", cfg.Maze)
	assert.Equal(t, 60.0, cfg.Camera.FOV)
	assert.Equal(t, 0.06, cfg.Camera.MoveSpeed)
	assert.Equal(t, 0.08, cfg.Camera.TurnRate)

	t.Setenv(EnvPreset, "smooth")
	cfg, err = Resolve(path, "")
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Timing.StepIntervalMs)
	assert.Equal(t, 60.0, cfg.Camera.FOV)

	cfg, err = Resolve(path, "brisk")
	require.NoError(t, err)
	assert.Equal(t, 0.06, cfg.Camera.MoveSpeed, "flag wins over the environment")

	_, err = Resolve(path, "warp")
	assert.ErrorContains(t, err, "--preset")
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MAZESIM_DATA=from-dotenv\n"), 0644))
	t.Setenv(EnvData, "")
	os.Unsetenv(EnvData)

	LoadDotEnv(path)
	assert.Equal(t, "from-dotenv", os.Getenv(EnvData))
}
