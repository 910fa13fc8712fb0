package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/scrollfield/internal/automation"
	"github.com/san-kum/scrollfield/internal/storage"
)

var (
	snapWheel  string
	snapFrames int
	snapStart  float64
	every      int
	dpr        float64
)

func newSnapshotCmd() *cobra.Command {
	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render the page offscreen and save PNG frames",
		Example: `  scrollfield snapshot --wheel 0:600,60:600 --frames 180 --every 30
  scrollfield snapshot --preset ink --start 1200 --frames 1`,
		RunE: runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&snapWheel, "wheel", "", "wheel events as frame:delta pairs")
	snapshotCmd.Flags().IntVar(&snapFrames, "frames", 120, "frames to render")
	snapshotCmd.Flags().IntVar(&every, "every", 30, "save every n-th frame (the last frame is always saved)")
	snapshotCmd.Flags().Float64Var(&snapStart, "start", 0, "restored scroll position")
	snapshotCmd.Flags().Float64Var(&dpr, "dpr", 1, "device pixel ratio")
	return snapshotCmd
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, log, _, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	w, err := automation.ParseWheel(snapWheel)
	if err != nil {
		return err
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	meta, err := automation.Snapshot(context.Background(), cfg, automation.SnapshotOptions{
		Wheel:  w,
		Frames: snapFrames,
		Every:  every,
		Start:  snapStart,
		DPR:    dpr,
		Preset: preset,
	}, st, log)
	if err != nil {
		return err
	}

	fmt.Printf("saved run: %s (%d frames, %d images)\n", meta.ID, meta.Frames, len(meta.Images))
	fmt.Printf("images: %s\n", st.Dir(meta.ID))
	printMetrics(meta.Metrics)
	return nil
}
