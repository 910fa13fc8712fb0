package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/scrollfield/internal/automation"
	"github.com/san-kum/scrollfield/internal/metrics"
	"github.com/san-kum/scrollfield/internal/smoothing"
	"github.com/san-kum/scrollfield/internal/storage"
)

var (
	wheel     string
	frames    int
	startY    float64
	maxScroll float64
	saveRun   bool
)

func newTraceCmd() *cobra.Command {
	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "run the smoothing engine against scripted wheel input and plot it",
		Example: `  scrollfield trace --wheel 5:400,45:-250
  scrollfield trace --engine spring --wheel 0:1200 --save`,
		RunE: runTrace,
	}
	traceCmd.Flags().StringVar(&wheel, "wheel", "5:400", "wheel events as frame:delta pairs")
	traceCmd.Flags().IntVar(&frames, "frames", 0, "frames to run (default: last event + 2s)")
	traceCmd.Flags().Float64Var(&startY, "start", 0, "initial scroll position")
	traceCmd.Flags().Float64Var(&maxScroll, "max", automation.DefaultMaxScroll, "maximum scroll position")
	traceCmd.Flags().BoolVar(&saveRun, "save", false, "record the run under --data")
	return traceCmd
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, log, _, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	w, err := automation.ParseWheel(wheel)
	if err != nil {
		return err
	}
	opts := automation.TraceOptions{
		Wheel:  w,
		Frames: frames,
		Start:  startY,
		Max:    maxScroll,
		Preset: preset,
	}
	ctx := context.Background()

	if saveRun {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta, err := automation.RecordTrace(ctx, cfg, opts, st, log)
		if err != nil {
			return err
		}
		samples, err := st.LoadSamples(meta.ID)
		if err != nil {
			return err
		}
		printTrace(samples, meta.Smoothing)
		printMetrics(meta.Metrics)
		fmt.Printf("\nsaved run: %s\n", meta.ID)
		return nil
	}

	n := frames
	if n <= 0 {
		n = w.Last() + 1 + 2*cfg.Window.FPS
	}
	mod, err := smoothing.Load(ctx, cfg.Smoothing)
	if err != nil {
		return err
	}
	samples, err := automation.Trace(mod, w, n, startY, maxScroll, cfg.Window.FPS, log)
	if err != nil {
		return err
	}
	printTrace(samples, string(cfg.Smoothing.Kind))
	printMetrics(metrics.Evaluate(samples, metrics.Default()...))
	return nil
}

func printTrace(samples []metrics.Sample, caption string) {
	if len(samples) == 0 {
		fmt.Println("no samples")
		return
	}
	target := make([]float64, len(samples))
	current := make([]float64, len(samples))
	velocity := make([]float64, len(samples))
	for i, s := range samples {
		target[i], current[i], velocity[i] = s.Target, s.Current, s.Velocity
	}

	fmt.Println(asciigraph.PlotMany([][]float64{target, current},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Default, asciigraph.Cyan),
		asciigraph.Caption(caption+": target, current (px)"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(velocity,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("velocity (px/frame)"),
	))
	fmt.Println()
}

func printMetrics(results map[string]float64) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("%-12s %10.3f\n", name, results[name])
	}
}
