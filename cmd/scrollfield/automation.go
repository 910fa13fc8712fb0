package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/scrollfield/internal/automation"
	"github.com/san-kum/scrollfield/internal/storage"
)

var (
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func newScenarioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the traces and snapshots listed in a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, _, err := setup(cmd)
			if err != nil {
				return err
			}
			defer log.Sync()

			sc, err := automation.LoadScenario(args[0])
			if err != nil {
				return err
			}
			st := storage.New(dataDir)
			if err := st.Init(); err != nil {
				return err
			}

			runs, err := automation.RunScenario(context.Background(), sc, cfg, st, log)
			for _, run := range runs {
				fmt.Printf("saved run: %s (%s, %d frames)\n", run.ID, run.Kind, run.Frames)
			}
			return err
		},
	}
}

func newSweepCmd() *cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "trace one wheel script across a range of a smoothing parameter",
		Example: `  scrollfield sweep --param ease_factor --min 0.05 --max 0.3 --steps 6
  scrollfield sweep --engine spring --param damping --min 0.2 --max 1.2`,
		RunE: runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepParam, "param", automation.ParamEaseFactor, "parameter (ease_factor, frequency, damping)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.05, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.3, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")
	sweepCmd.Flags().StringVar(&wheel, "wheel", "5:400", "wheel events as frame:delta pairs")
	sweepCmd.Flags().IntVar(&frames, "frames", 0, "frames per trace (default: last event + 2s)")
	return sweepCmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, log, _, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	w, err := automation.ParseWheel(wheel)
	if err != nil {
		return err
	}
	results, err := automation.RunSweep(context.Background(), &automation.ParameterSweep{
		Params:    cfg.Smoothing,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Wheel:     w,
		Frames:    frames,
		FPS:       cfg.Window.FPS,
	}, log)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tSETTLE\tOVERSHOOT\tMEAN SPEED\n", sweepParam)
	for _, r := range results {
		settle := "-"
		if v := r.Metrics["settle_time"]; v >= 0 {
			settle = fmt.Sprintf("%.3fs", v)
		}
		fmt.Fprintf(tw, "%.4f\t%s\t%.2f\t%.2f\n",
			r.ParamValue, settle, r.Metrics["overshoot"], r.Metrics["mean_speed"])
	}
	return tw.Flush()
}
