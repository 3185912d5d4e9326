package automation

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/config"
	"github.com/san-kum/mazesim/internal/metrics"
	"github.com/san-kum/mazesim/internal/script"
	"github.com/san-kum/mazesim/internal/sim"
)

// Scenario is a batch of scripted walks run one after another.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep walks one maze with one script. Preset and the speed fields
// override the base configuration for this step only.
type ScenarioStep struct {
	Maze      string  `yaml:"maze"`
	Script    string  `yaml:"script"`
	Preset    string  `yaml:"preset"`
	MoveSpeed float64 `yaml:"move_speed"`
	TurnRate  float64 `yaml:"turn_rate"`
	SaveAs    string  `yaml:"save_as"`
}

// StepResult pairs a scenario step with its run and the configuration it
// ran under.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file. Relative maze and script
// paths are taken relative to the scenario file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for i := range scenario.Steps {
		scenario.Steps[i].Maze = relativeTo(dir, scenario.Steps[i].Maze)
		scenario.Steps[i].Script = relativeTo(dir, scenario.Steps[i].Script)
	}
	return &scenario, nil
}

func relativeTo(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (st ScenarioStep) config(base *config.Config) (*config.Config, error) {
	cfg := *base
	if st.Preset != "" {
		p := config.GetPreset(st.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q", st.Preset)
		}
		cfg.Timing = p.Timing
		cfg.Camera.MoveSpeed = p.Camera.MoveSpeed
		cfg.Camera.TurnRate = p.Camera.TurnRate
	}
	if st.MoveSpeed > 0 {
		cfg.Camera.MoveSpeed = st.MoveSpeed
	}
	if st.TurnRate > 0 {
		cfg.Camera.TurnRate = st.TurnRate
	}
	if st.Maze != "" {
		cfg.Maze = st.Maze
	}
	return &cfg, cfg.Validate()
}

// newSession loads the maze with the standard navigation metrics attached.
func newSession(cfg *config.Config) (*sim.Session, error) {
	s, err := sim.Load(cfg.Maze, cfg.SimConfig(), cfg.MazeOptions()...)
	if err != nil {
		return nil, err
	}
	for _, m := range metrics.Standard(s.Scene()) {
		s.AddMetric(m)
	}
	return s, nil
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Printf("[AUTO] [INFO] step %d/%d: %s with %s", i+1, len(scenario.Steps), step.Maze, step.Script)

		cfg, err := step.config(base)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		sc, err := script.Load(step.Script)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		frames, err := sc.Frames()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		s, err := newSession(cfg)
		if err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := s.Run(ctx, frames)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
	}

	return results, nil
}

// ParameterSweep replays one script at evenly spaced values of a camera
// parameter, "move_speed" or "turn_rate".
type ParameterSweep struct {
	Maze      string
	Frames    []sim.Frame
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	FinalState camera.State
	Metrics    map[string]float64
}

// RunSweep runs every sweep value as its own session, concurrently.
func RunSweep(ctx context.Context, sweep *ParameterSweep, base *config.Config) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if sweep.ParamName != "move_speed" && sweep.ParamName != "turn_rate" {
		return nil, fmt.Errorf("cannot sweep %q (want move_speed or turn_rate)", sweep.ParamName)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	values := make([]float64, sweep.NumSteps)
	sessions := make([]*sim.Session, sweep.NumSteps)
	for i := range values {
		values[i] = sweep.ParamMin + float64(i)*paramStep

		cfg := *base
		cfg.Maze = sweep.Maze
		if sweep.ParamName == "move_speed" {
			cfg.Camera.MoveSpeed = values[i]
		} else {
			cfg.Camera.TurnRate = values[i]
		}

		s, err := newSession(&cfg)
		if err != nil {
			return nil, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, values[i], err)
		}
		sessions[i] = s
	}

	runs, err := sim.NewEnsemble(sessions...).Run(ctx, sweep.Frames)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, len(runs))
	for i, r := range runs {
		results[i] = SweepResult{
			ParamValue: values[i],
			FinalState: r.States[len(r.States)-1],
			Metrics:    r.Metrics,
		}
		log.Printf("[AUTO] [INFO] sweep %d/%d: %s=%.4f path=%.3f", i+1, len(runs), sweep.ParamName, values[i], r.Metrics["path_length"])
	}
	return results, nil
}

// MonteCarloConfig describes random walks: each trial holds a random
// movement for a random number of frames, segment after segment.
type MonteCarloConfig struct {
	Maze       string
	NumTrials  int
	Segments   int
	MaxHold    int
	FrameDelta time.Duration
	Seed       int64
}

func (mc *MonteCarloConfig) Validate() error {
	if mc.NumTrials < 1 {
		return fmt.Errorf("monte carlo needs at least one trial, got %d", mc.NumTrials)
	}
	if mc.Segments < 1 {
		return fmt.Errorf("monte carlo needs at least one segment, got %d", mc.Segments)
	}
	if mc.MaxHold < 1 {
		return fmt.Errorf("max hold must be at least one frame, got %d", mc.MaxHold)
	}
	return nil
}

type MonteCarloResult struct {
	TrialID    int
	FinalState camera.State
	Reached    bool
	Metrics    map[string]float64
}

// RandomFrames draws a random walk of segments, each holding one of the
// movement combinations for 1..maxHold frames.
func RandomFrames(rng *rand.Rand, segments, maxHold int, delta time.Duration) []sim.Frame {
	if maxHold < 1 {
		maxHold = 1
	}
	if segments < 0 {
		segments = 0
	}
	frames := make([]sim.Frame, 0, segments*maxHold)
	for i := 0; i < segments; i++ {
		in := camera.Intent{
			Forward: rng.Intn(3) > 0,
			Left:    rng.Intn(4) == 0,
		}
		if !in.Left {
			in.Right = rng.Intn(3) == 0
		}
		n := 1 + rng.Intn(maxHold)
		for j := 0; j < n; j++ {
			frames = append(frames, sim.Frame{Intent: in, Delta: delta})
		}
	}
	return frames
}

// RunMonteCarlo executes independent random walks through the maze and
// reports which reached the end.
func RunMonteCarlo(ctx context.Context, mc *MonteCarloConfig, base *config.Config) ([]MonteCarloResult, error) {
	if err := mc.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(mc.Seed))
	if mc.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	delta := mc.FrameDelta
	if delta <= 0 {
		delta = time.Duration(base.Timing.StepIntervalMs) * time.Millisecond
	}

	cfg := *base
	cfg.Maze = mc.Maze

	results := make([]MonteCarloResult, 0, mc.NumTrials)
	for trial := 0; trial < mc.NumTrials; trial++ {
		s, err := newSession(&cfg)
		if err != nil {
			return nil, err
		}

		r, err := s.Run(ctx, RandomFrames(rng, mc.Segments, mc.MaxHold, delta))
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		results = append(results, MonteCarloResult{
			TrialID:    trial,
			FinalState: r.States[len(r.States)-1],
			Reached:    r.Metrics["reached_end"] == 1,
			Metrics:    r.Metrics,
		})
	}
	return results, nil
}
