package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	EnvMaze   = "MAZESIM_MAZE"
	EnvData   = "MAZESIM_DATA"
	EnvPreset = "MAZESIM_PRESET"
)

// LoadDotEnv reads .env files into the process environment when present.
// Variables already set are not overwritten.
func LoadDotEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		log.Printf("[CONFIG] [WARN] could not load .env: %v", err)
	}
}

// FromEnv returns the configuration selected by the environment: a preset if
// MAZESIM_PRESET is set, the defaults otherwise, with maze and data directory
// overrides applied.
func FromEnv() (*Config, error) {
	return Resolve("", "")
}

// Resolve layers the configuration: the file at path (or the defaults when
// path is empty), then the environment's maze and data directory, then the
// named preset on top. An empty preset falls back to MAZESIM_PRESET.
func Resolve(path, preset string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	ApplyEnv(cfg)

	source := "--preset"
	if preset == "" {
		preset, source = os.Getenv(EnvPreset), EnvPreset
	}
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}
	}
	return cfg, nil
}

// ApplyEnv overrides the maze path and data directory from the environment.
func ApplyEnv(cfg *Config) {
	cfg.Maze = getEnvWithDefault(EnvMaze, cfg.Maze)
	cfg.DataDir = getEnvWithDefault(EnvData, cfg.DataDir)
}

func getEnvWithDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
