package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/sim"
)

const (
	metadataFile   = "metadata.json"
	trajectoryFile = "trajectory.csv"
)

var trajectoryHeader = []string{"time_ms", "step", "x", "z", "heading", "speed", "turn"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID             string             `json:"id"`
	Maze           string             `json:"maze"`
	MazePath       string             `json:"maze_path"`
	Script         string             `json:"script"`
	Preset         string             `json:"preset,omitempty"`
	Label          string             `json:"label,omitempty"`
	Timestamp      time.Time          `json:"timestamp"`
	StepIntervalMs int                `json:"step_interval_ms"`
	MaxCatchUp     int                `json:"max_catch_up"`
	MoveSpeed      float64            `json:"move_speed"`
	TurnRate       float64            `json:"turn_rate"`
	Frames         int                `json:"frames"`
	StepsTaken     int64              `json:"steps_taken"`
	Metrics        map[string]float64 `json:"metrics"`
}

// Trajectory is a recorded run read back from disk.
type Trajectory struct {
	Times  []time.Duration
	Steps  []int
	States []camera.State
}

func (t *Trajectory) Len() int { return len(t.States) }

// Save writes the run under a fresh id and returns it. ID, Timestamp, Frames,
// StepsTaken and Metrics in meta are filled from the result.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	name := meta.Maze
	if name == "" {
		name = "run"
	}
	runID := fmt.Sprintf("%s_%s", name, uuid.New().String()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Frames = len(result.States)
	meta.StepsTaken = result.StepsTaken
	meta.Metrics = result.Metrics

	err := writeFile(filepath.Join(runDir, metadataFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err == nil {
		err = writeFile(filepath.Join(runDir, trajectoryFile), func(w io.Writer) error {
			return WriteTrajectory(w, result)
		})
	}
	if err != nil {
		os.RemoveAll(runDir)
		return "", fmt.Errorf("save run %s: %w", runID, err)
	}
	return runID, nil
}

// writeFile creates path, fills it with write and reports the first error,
// including the one from Close.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadTrajectory(runID string) (*Trajectory, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, trajectoryFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(trajectoryHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	traj := &Trajectory{}
	if len(records) < 2 {
		return traj, nil
	}

	for i, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%s: row %d column %s: %w", trajectoryFile, i+1, trajectoryHeader[j], err)
			}
			vals[j] = v
		}

		traj.Times = append(traj.Times, time.Duration(math.Round(vals[0]*float64(time.Millisecond))))
		traj.Steps = append(traj.Steps, int(vals[1]))
		traj.States = append(traj.States, camera.State{
			X:            vals[2],
			Z:            vals[3],
			Heading:      vals[4],
			ForwardSpeed: vals[5],
			TurnRate:     vals[6],
		})
	}
	return traj, nil
}
