// Package script reads intent scripts used for deterministic headless runs.
//
// A script is a YAML list of segments. Each segment holds a set of movement
// signals for a number of frames:
//
//	name: to-the-end
//	delta_ms: 16
//	segments:
//	  - hold: [forward]
//	    frames: 67
//	  - hold: [left]
//	    frames: 31
//	    delta_ms: 33
//	  - reset: true
package script

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/sim"
)

const DefaultDeltaMs = 16

type Script struct {
	Name     string    `yaml:"name"`
	DeltaMs  int       `yaml:"delta_ms"`
	Segments []Segment `yaml:"segments"`
}

type Segment struct {
	Hold    []string `yaml:"hold"`
	Frames  int      `yaml:"frames"`
	DeltaMs int      `yaml:"delta_ms,omitempty"`
	Reset   bool     `yaml:"reset,omitempty"`
}

func Load(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

func Read(r io.Reader) (*Script, error) {
	s := &Script{DeltaMs: DefaultDeltaMs}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil {
		if err == io.EOF {
			return s, nil
		}
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return s, nil
}

func Save(path string, s *Script) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseIntent maps signal names to an intent. Accepted names are forward,
// backward, left and right (or up, down).
func ParseIntent(names []string) (camera.Intent, error) {
	var in camera.Intent
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "forward", "up":
			in.Forward = true
		case "backward", "back", "down":
			in.Backward = true
		case "left":
			in.Left = true
		case "right":
			in.Right = true
		default:
			return camera.Intent{}, fmt.Errorf("unknown signal %q", n)
		}
	}
	return in, nil
}

// Frames expands the script into one sim.Frame per displayed frame. A reset
// segment with no frames still yields a single frame carrying the reset.
func (s *Script) Frames() ([]sim.Frame, error) {
	if s.DeltaMs < 0 {
		return nil, fmt.Errorf("delta_ms must not be negative, got %d", s.DeltaMs)
	}

	frames := make([]sim.Frame, 0)
	for i, seg := range s.Segments {
		in, err := ParseIntent(seg.Hold)
		if err != nil {
			return nil, fmt.Errorf("segment %d: %w", i, err)
		}
		if seg.Frames < 0 {
			return nil, fmt.Errorf("segment %d: frames must not be negative, got %d", i, seg.Frames)
		}

		ms := s.DeltaMs
		if seg.DeltaMs != 0 {
			ms = seg.DeltaMs
		}
		if ms < 0 {
			return nil, fmt.Errorf("segment %d: delta_ms must not be negative, got %d", i, ms)
		}
		delta := time.Duration(ms) * time.Millisecond

		n := seg.Frames
		if n == 0 && seg.Reset {
			n = 1
		}
		for k := 0; k < n; k++ {
			frames = append(frames, sim.Frame{Intent: in, Delta: delta, Reset: seg.Reset && k == 0})
		}
	}
	return frames, nil
}

// TotalFrames is the number of frames the script expands to.
func (s *Script) TotalFrames() int {
	n := 0
	for _, seg := range s.Segments {
		if seg.Frames == 0 && seg.Reset {
			n++
			continue
		}
		n += seg.Frames
	}
	return n
}
