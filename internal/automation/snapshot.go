package automation

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/config"
	"github.com/san-kum/scrollfield/internal/frame"
	"github.com/san-kum/scrollfield/internal/logging"
	"github.com/san-kum/scrollfield/internal/metrics"
	"github.com/san-kum/scrollfield/internal/pipeline"
	"github.com/san-kum/scrollfield/internal/render/softdevice"
	"github.com/san-kum/scrollfield/internal/scroll"
	"github.com/san-kum/scrollfield/internal/session"
	"github.com/san-kum/scrollfield/internal/storage"
)

// LoadTimeout bounds the module loads before the first snapshot frame.
const LoadTimeout = 10 * time.Second

type SnapshotOptions struct {
	Wheel  Wheel
	Frames int
	// Every saves every n-th frame. The last frame is always saved.
	Every int
	// Start is the restored scroll position.
	Start  float64
	DPR    float64
	Preset string
}

// Snapshot drives the pipeline on software surfaces with a manual frame
// queue, so every frame is deterministic: frame i is dispatched at i/fps.
// Scroll is restored from and persisted to a private memory store.
func Snapshot(ctx context.Context, cfg *config.Config, o SnapshotOptions, st *storage.Store, log *zap.Logger) (*storage.RunMetadata, error) {
	log = logging.OrNop(log)
	if o.Frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", o.Frames)
	}
	if o.Every <= 0 {
		o.Every = o.Frames
	}
	if o.DPR <= 0 {
		o.DPR = 1
	}

	store := session.NewMemoryStore()
	if o.Start > 0 {
		if err := store.Set(scroll.StorageKey, strconv.FormatFloat(o.Start, 'f', -1, 64)); err != nil {
			return nil, err
		}
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	below := softdevice.New(int(float64(w)*o.DPR), int(float64(h)*o.DPR))
	defer below.Close()
	above := softdevice.New(int(float64(w)*o.DPR), int(float64(h)*o.DPR))
	defer above.Close()

	queue := frame.NewQueue()
	mods := pipeline.NewModules(cfg)
	pipe, err := pipeline.New(cfg, pipeline.Options{
		Platform: queue,
		Below:    below,
		Above:    above,
		Store:    store,
		Modules:  &mods,
		Viewport: [2]float64{float64(w), float64(h)},
		DPR:      o.DPR,
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	sched := pipe.Scheduler
	if err := sched.Start(); err != nil {
		return nil, err
	}
	defer sched.Stop()

	// finish both loads up front so frame 0 is the first rendered frame
	loadCtx, cancel := context.WithTimeout(ctx, LoadTimeout)
	defer cancel()
	if _, err := mods.Smoothing.Get(loadCtx); err != nil {
		return nil, err
	}
	if _, err := mods.Particles.Get(loadCtx); err != nil {
		return nil, err
	}

	runID, runDir, err := st.Create("snapshot")
	if err != nil {
		return nil, err
	}

	comp := softdevice.NewCompositor()
	step := time.Second / time.Duration(cfg.Window.FPS)
	samples := make([]metrics.Sample, 0, o.Frames)
	var images []string
	skipped := 0

	for i := 0; i < o.Frames; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, d := range o.Wheel[i] {
			pipe.Controller.Wheel(d)
		}
		queue.Dispatch(time.Duration(i) * step)
		pipe.Doc.Flush()
		if sched.State() == frame.Stopped {
			if err := sched.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("frame loop stopped at frame %d", i)
		}

		v, stats := sched.View(), sched.Stats()
		samples = append(samples, metrics.Sample{
			Time:     float64(i) * step.Seconds(),
			Target:   v.Target,
			Current:  v.Current,
			Velocity: v.Velocity,
			Skipped:  stats.SkippedDOM > skipped,
		})
		skipped = stats.SkippedDOM

		if i%o.Every != 0 && i != o.Frames-1 {
			continue
		}
		if err := below.Flush(); err != nil {
			return nil, err
		}
		if err := above.Flush(); err != nil {
			return nil, err
		}
		name := fmt.Sprintf("frame_%04d.png", i)
		if err := writePNG(filepath.Join(runDir, name), comp, pipe, below, above); err != nil {
			return nil, err
		}
		images = append(images, name)
		log.Debug("frame saved", zap.Int("frame", i), zap.Float64("current", v.Current))
	}

	meta := storage.RunMetadata{
		ID:        runID,
		Kind:      "snapshot",
		Preset:    o.Preset,
		Timestamp: time.Now(),
		Frames:    len(samples),
		Particles: cfg.Particles.Count,
		Smoothing: string(cfg.Smoothing.Kind),
		Images:    images,
	}
	if err := st.Save(meta, samples); err != nil {
		return nil, err
	}
	return st.Load(runID)
}

func writePNG(path string, comp *softdevice.Compositor, pipe *pipeline.Pipeline, below, above *softdevice.Device) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := comp.EncodePNG(f, pipe.Doc, below, above); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
