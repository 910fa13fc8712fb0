package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/scrollfield/internal/export"
	"github.com/san-kum/scrollfield/internal/metrics"
	"github.com/san-kum/scrollfield/internal/storage"
)

var svgPath string

func newRunsCmds() []*cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run-id]",
		Short: "plot the scroll trace of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "export a run as json, or its trace as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgPath, "svg", "", "write the trace as svg to this path")

	return []*cobra.Command{listCmd, plotCmd, exportCmd}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tTIME\tFRAMES\tSMOOTHING\tPRESET\tSETTLE")

	for _, run := range runs {
		settle := "-"
		if v, ok := run.Metrics["settle_time"]; ok && v >= 0 {
			settle = fmt.Sprintf("%.2fs", v)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			run.ID,
			run.Kind,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Smoothing,
			run.Preset,
			settle,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("samples: %d\n\n", len(samples))

	printTrace(samples, meta.Smoothing)
	printSkips(samples)
	printMetrics(meta.Metrics)
	return nil
}

// printSkips marks frames whose document writes were skipped.
func printSkips(samples []metrics.Sample) {
	marks := make([]float64, len(samples))
	found := false
	for i, s := range samples {
		if s.Skipped {
			marks[i] = 1
			found = true
		}
	}
	if !found {
		return
	}
	fmt.Println(asciigraph.Plot(marks,
		asciigraph.Height(2),
		asciigraph.Width(80),
		asciigraph.Caption("skipped document writes"),
	))
	fmt.Println()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if svgPath == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}

	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	f, err := os.Create(svgPath)
	if err != nil {
		return err
	}
	if err := export.WriteTraceSVG(f, samples, 800, 300); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgPath)
	return nil
}
