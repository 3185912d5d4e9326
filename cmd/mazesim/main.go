package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/mazesim/internal/config"
	"github.com/san-kum/mazesim/internal/maze"
	"github.com/san-kum/mazesim/internal/sim"
)

var (
	dataDir    string
	configFile string
	preset     string
	mazeNames  []string
	noSave     bool
	logFile    string
	outFile    string
	svgMode    string
	cellSize   float64
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	segments   int
	maxHold    int
	seed       int64
)

// main registers the commands and runs the root command. With no subcommand
// it opens the windowed viewer on the configured maze.
func main() {
	config.LoadDotEnv()

	rootCmd := &cobra.Command{
		Use:   "mazesim",
		Short: "first-person maze walkthrough",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	viewCmd := &cobra.Command{
		Use:   "view [maze]",
		Short: "walk a maze in a 3d window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui [maze]",
		Short: "walk a maze in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&logFile, "log", "", "write debug log to file")

	inspectCmd := &cobra.Command{
		Use:   "inspect [maze]",
		Short: "print the parsed grid and its cell descriptors",
		Args:  cobra.MaximumNArgs(1),
		RunE:  inspectMaze,
	}

	runCmd := &cobra.Command{
		Use:   "run [script]",
		Short: "play a scripted walk through one or more mazes",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	runCmd.Flags().StringSliceVar(&mazeNames, "maze", nil, "maze to walk (repeatable)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run trajectory as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgMode, "mode", "map", "map (top-down with trace) or view (final first-person frame)")
	exportSVGCmd.Flags().Float64Var(&cellSize, "cell", 24, "pixels per cell (map) or per dot (view)")

	for _, c := range []*cobra.Command{exportCmd, exportCSVCmd, exportSVGCmd} {
		c.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list timing presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("available presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s step=%dms catch-up=%d speed=%.3f turn=%.3f fps=%d\n",
					name, p.Timing.StepIntervalMs, p.Timing.MaxCatchUp, p.Camera.MoveSpeed, p.Camera.TurnRate, p.Timing.FPS)
			}
		},
	}

	batchCmd := &cobra.Command{
		Use:   "batch [scenario]",
		Short: "run every step of a scenario file and store the runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [script]",
		Short: "replay a script across a range of camera speeds",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", "move_speed", "move_speed or turn_rate")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.01, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.06, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")

	exploreCmd := &cobra.Command{
		Use:   "explore [maze]",
		Short: "random walks through a maze",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExplore,
	}
	exploreCmd.Flags().IntVar(&trials, "trials", 20, "number of walks")
	exploreCmd.Flags().IntVar(&segments, "segments", 40, "random segments per walk")
	exploreCmd.Flags().IntVar(&maxHold, "hold", 60, "maximum frames per segment")
	exploreCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one)")

	sweepCmd.Flags().StringSliceVar(&mazeNames, "maze", nil, "maze to walk")

	rootCmd.AddCommand(viewCmd, tuiCmd, inspectCmd, runCmd, batchCmd, sweepCmd, exploreCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers --config, the environment and --preset, then --data.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(configFile, preset)
	if err != nil {
		return nil, err
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	cfg.Maze = resolveMaze(cfg.Maze)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveMaze finds a layout file by path, or by name under mazes/.
func resolveMaze(name string) string {
	if _, err := os.Stat(name); err == nil {
		return name
	}
	candidate := filepath.Join("mazes", name)
	if filepath.Ext(candidate) == "" {
		candidate += ".txt"
	}
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return name
}

func mazeTitle(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// openSession loads the maze named by args, or the configured one.
func openSession(cfg *config.Config, args []string) (*sim.Session, string, error) {
	name := cfg.Maze
	if len(args) > 0 {
		name = args[0]
	}
	path := resolveMaze(name)

	s, err := sim.Load(path, cfg.SimConfig(), cfg.MazeOptions()...)
	if err != nil {
		return nil, "", err
	}
	scene := s.Scene()
	log.Printf("[MAZE] [INFO] loaded %s: %dx%d, %d open cells, start %s", path, scene.Rows, scene.Cols, scene.Len(), scene.Start())
	if _, ok := scene.End(); !ok {
		log.Printf("[MAZE] [WARN] %s has no end marker", path)
	}
	return s, path, nil
}

func openScene(cfg *config.Config, args []string) (*maze.Scene, *maze.Grid, string, error) {
	name := cfg.Maze
	if len(args) > 0 {
		name = args[0]
	}
	path := resolveMaze(name)

	g, err := maze.Load(path, cfg.MazeOptions()...)
	if err != nil {
		return nil, nil, "", err
	}
	scene, err := maze.Build(g)
	if err != nil {
		return nil, nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return scene, g, path, nil
}
