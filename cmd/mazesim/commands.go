package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/mazesim/internal/camera"
	"github.com/san-kum/mazesim/internal/export"
	"github.com/san-kum/mazesim/internal/gui"
	"github.com/san-kum/mazesim/internal/maze"
	"github.com/san-kum/mazesim/internal/metrics"
	"github.com/san-kum/mazesim/internal/script"
	"github.com/san-kum/mazesim/internal/sim"
	"github.com/san-kum/mazesim/internal/storage"
	"github.com/san-kum/mazesim/internal/viz"
)

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	s, path, err := openSession(cfg, args)
	if err != nil {
		return err
	}

	gui.Run(s, gui.Options{
		Title:  mazeTitle(path),
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		FPS:    cfg.Timing.FPS,
		FOV:    cfg.Camera.FOV,
	})
	return nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// the alternate screen owns stdout, so logs go to a file or nowhere
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "mazesim")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	s, path, err := openSession(cfg, args)
	if err != nil {
		return err
	}
	return viz.Run(viz.NewModel(s, mazeTitle(path), cfg.Camera.FOV, cfg.FrameInterval()))
}

func inspectMaze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scene, g, path, err := openScene(cfg, args)
	if err != nil {
		return err
	}

	fmt.Printf("maze: %s\n", path)
	fmt.Printf("size: %d rows x %d cols\n", scene.Rows, scene.Cols)
	fmt.Printf("start: %s\n", scene.Start())
	if end, ok := scene.End(); ok {
		fmt.Printf("end: %s\n", end)
	} else {
		fmt.Println("end: none")
	}
	fmt.Printf("open cells: %d\n\n", scene.Len())
	fmt.Print(g.Format())
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ROW\tCOL\tWALLS\tSOLID\tMARKER")
	for _, c := range scene.Cells() {
		fmt.Fprintf(w, "%d\t%d\t%s\t%d\t%s\n", c.Row, c.Col, c.Walls, c.Walls.Count(), c.Marker)
	}
	return w.Flush()
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sc, err := script.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load script: %w", err)
	}
	frames, err := sc.Frames()
	if err != nil {
		return err
	}

	names := mazeNames
	if len(names) == 0 {
		names = []string{cfg.Maze}
	}

	sessions := make([]*sim.Session, len(names))
	paths := make([]string, len(names))
	for i, name := range names {
		s, path, err := openSession(cfg, []string{name})
		if err != nil {
			return err
		}
		for _, m := range metrics.Standard(s.Scene()) {
			s.AddMetric(m)
		}
		sessions[i], paths[i] = s, path
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("[RUN] [INFO] playing %q: %d frames through %d maze(s)", sc.Name, len(frames), len(sessions))
	results, err := sim.NewEnsemble(sessions...).Run(ctx, frames)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MAZE\tSTEPS\tPATH\tTURNING\tCELLS\tEND\tRUN")
	for i, res := range results {
		runID := "-"
		if !noSave {
			runID, err = st.Save(storage.RunMetadata{
				Maze:           mazeTitle(paths[i]),
				MazePath:       paths[i],
				Script:         sc.Name,
				Preset:         preset,
				StepIntervalMs: cfg.Timing.StepIntervalMs,
				MaxCatchUp:     cfg.Timing.MaxCatchUp,
				MoveSpeed:      cfg.Camera.MoveSpeed,
				TurnRate:       cfg.Camera.TurnRate,
			}, res)
			if err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.3f\t%.0f\t%s\t%s\n",
			mazeTitle(paths[i]),
			res.StepsTaken,
			res.Metrics["path_length"],
			res.Metrics["turning"],
			res.Metrics["cells_visited"],
			yesNo(res.Metrics["reached_end"] == 1),
			runID,
		)
	}
	return w.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	runs, err := storage.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMAZE\tSCRIPT\tTIME\tFRAMES\tSTEPS\tEND")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.Maze,
			run.Script,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.StepsTaken,
			yesNo(run.Metrics["reached_end"] == 1),
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *storage.Trajectory, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	st := storage.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, traj, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("maze: %s\n", meta.Maze)
	fmt.Printf("frames: %d\n\n", traj.Len())

	series := []struct {
		caption string
		value   func(camera.State) float64
	}{
		{"x (row axis)", func(s camera.State) float64 { return s.X }},
		{"z (column axis)", func(s camera.State) float64 { return s.Z }},
		{"heading (rad)", func(s camera.State) float64 { return s.Heading }},
	}

	for _, ser := range series {
		data := make([]float64, traj.Len())
		for i, s := range traj.States {
			data[i] = ser.value(s)
		}
		fmt.Println(asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption(ser.caption)))
		fmt.Println()
	}
	return nil
}

// output returns the --out file or stdout.
func output() (io.WriteCloser, error) {
	if outFile == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outFile)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func resultFromTrajectory(meta *storage.RunMetadata, traj *storage.Trajectory) *sim.Result {
	return &sim.Result{
		States:     traj.States,
		Times:      traj.Times,
		Steps:      traj.Steps,
		Metrics:    meta.Metrics,
		StepsTaken: meta.StepsTaken,
	}
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()
	return storage.ExportJSON(w, meta.Maze, meta.Script, resultFromTrajectory(meta, traj))
}

func exportCSV(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()
	return storage.WriteTrajectory(w, resultFromTrajectory(meta, traj))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, traj, err := loadRun(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scene, err := maze.LoadScene(meta.MazePath, cfg.MazeOptions()...)
	if err != nil {
		return err
	}

	var svg string
	switch svgMode {
	case "map":
		svg = export.MazeToSVG(scene, traj.States, cellSize)
	case "view":
		if traj.Len() == 0 {
			return fmt.Errorf("no frames in run %s", meta.ID)
		}
		c := viz.NewCanvas(80, 30)
		viz.RenderView(c, viz.SceneWireframe(scene), viz.EyeFor(traj.States[traj.Len()-1], cfg.Camera.FOV))
		svg = export.CanvasToSVG(c, cellSize/8)
	default:
		return fmt.Errorf("unknown svg mode %q (want map or view)", svgMode)
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()
	_, err = io.WriteString(w, svg)
	return err
}
