package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/mazesim/internal/automation"
	"github.com/san-kum/mazesim/internal/script"
	"github.com/san-kum/mazesim/internal/storage"
)

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunScenario(ctx, sc, cfg)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tMAZE\tLABEL\tSTEPS\tPATH\tEND\tRUN")
	for i, r := range results {
		runID, err := st.Save(storage.RunMetadata{
			Maze:           mazeTitle(r.Config.Maze),
			MazePath:       r.Config.Maze,
			Script:         r.Step.Script,
			Preset:         r.Step.Preset,
			Label:          r.Step.SaveAs,
			StepIntervalMs: r.Config.Timing.StepIntervalMs,
			MaxCatchUp:     r.Config.Timing.MaxCatchUp,
			MoveSpeed:      r.Config.Camera.MoveSpeed,
			TurnRate:       r.Config.Camera.TurnRate,
		}, r.Result)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%.3f\t%s\t%s\n",
			i+1,
			mazeTitle(r.Config.Maze),
			r.Step.SaveAs,
			r.Result.StepsTaken,
			r.Result.Metrics["path_length"],
			yesNo(r.Result.Metrics["reached_end"] == 1),
			runID,
		)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
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

	name := cfg.Maze
	if len(mazeNames) > 0 {
		name = mazeNames[0]
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Maze:      resolveMaze(name),
		Frames:    frames,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tX\tZ\tPATH\tCELLS\tEND\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.2f\t%.2f\t%.3f\t%.0f\t%s\n",
			r.ParamValue, r.FinalState.X, r.FinalState.Z,
			r.Metrics["path_length"], r.Metrics["cells_visited"],
			yesNo(r.Metrics["reached_end"] == 1))
	}
	return w.Flush()
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	name := cfg.Maze
	if len(args) > 0 {
		name = args[0]
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Maze:      resolveMaze(name),
		NumTrials: trials,
		Segments:  segments,
		MaxHold:   maxHold,
		Seed:      seed,
	}, cfg)
	if err != nil {
		return err
	}

	reached := 0
	cells := 0.0
	for _, r := range results {
		if r.Reached {
			reached++
		}
		cells += r.Metrics["cells_visited"]
	}

	fmt.Printf("walks: %d\n", len(results))
	if len(results) > 0 {
		fmt.Printf("reached end: %d (%.0f%%)\n", reached, 100*float64(reached)/float64(len(results)))
		fmt.Printf("mean cells visited: %.1f\n", cells/float64(len(results)))
	}
	return nil
}
