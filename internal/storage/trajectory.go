package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/san-kum/mazesim/internal/sim"
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// WriteTrajectory writes one CSV row per recorded frame.
func WriteTrajectory(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trajectoryHeader); err != nil {
		return err
	}

	for i, st := range result.States {
		var t time.Duration
		if i < len(result.Times) {
			t = result.Times[i]
		}
		steps := 0
		if i < len(result.Steps) {
			steps = result.Steps[i]
		}

		row := []string{
			strconv.FormatFloat(millis(t), 'f', 3, 64),
			strconv.Itoa(steps),
			formatFloat(st.X),
			formatFloat(st.Z),
			formatFloat(st.Heading),
			formatFloat(st.ForwardSpeed),
			formatFloat(st.TurnRate),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type ExportData struct {
	Maze       string             `json:"maze"`
	Script     string             `json:"script"`
	Frames     int                `json:"frames"`
	StepsTaken int64              `json:"steps_taken"`
	TimesMs    []float64          `json:"times_ms"`
	Steps      []int              `json:"steps"`
	States     []ExportState      `json:"states"`
	Metrics    map[string]float64 `json:"metrics"`
}

type ExportState struct {
	X       float64 `json:"x"`
	Z       float64 `json:"z"`
	Heading float64 `json:"heading"`
	Speed   float64 `json:"speed"`
	Turn    float64 `json:"turn"`
}

// ExportJSON writes the whole run as a single indented JSON document.
func ExportJSON(w io.Writer, mazeName, scriptName string, result *sim.Result) error {
	data := ExportData{
		Maze:       mazeName,
		Script:     scriptName,
		Frames:     len(result.States),
		StepsTaken: result.StepsTaken,
		TimesMs:    make([]float64, len(result.Times)),
		Steps:      result.Steps,
		States:     make([]ExportState, len(result.States)),
		Metrics:    result.Metrics,
	}

	for i, t := range result.Times {
		data.TimesMs[i] = millis(t)
	}
	for i, st := range result.States {
		data.States[i] = ExportState{
			X:       st.X,
			Z:       st.Z,
			Heading: st.Heading,
			Speed:   st.ForwardSpeed,
			Turn:    st.TurnRate,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
