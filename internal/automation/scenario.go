package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/scrollfield/internal/config"
	"github.com/san-kum/scrollfield/internal/logging"
	"github.com/san-kum/scrollfield/internal/smoothing"
	"github.com/san-kum/scrollfield/internal/storage"
)

const (
	KindTrace    = "trace"
	KindSnapshot = "snapshot"

	DefaultMaxScroll = 3000.0
)

var ErrUnknownKind = errors.New("automation: unknown step kind")

// Scenario is a scripted sequence of recorded runs.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run. Preset and Engine are applied over the base config in
// that order.
type Step struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Preset string `yaml:"preset"`
	Engine string `yaml:"engine"`
	Wheel  string `yaml:"wheel"`
	Frames int    `yaml:"frames"`
	// Start is the initial (trace) or restored (snapshot) scroll position.
	Start float64 `yaml:"start"`
	// Max bounds a trace. Snapshots take the bound from the page.
	Max   float64 `yaml:"max"`
	Every int     `yaml:"every"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("%s: scenario has no steps", path)
	}
	return &sc, nil
}

// config resolves the step's config over base.
func (s Step) config(base *config.Config) (*config.Config, error) {
	cfg := base.Clone()
	if s.Preset != "" && !cfg.Apply(s.Preset) {
		return nil, fmt.Errorf("unknown preset %q", s.Preset)
	}
	if s.Engine != "" {
		cfg.Smoothing.Kind = smoothing.Kind(s.Engine)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RunScenario executes the steps in order, saving each run to st. It stops
// at the first failing step and returns the runs saved so far.
func RunScenario(ctx context.Context, sc *Scenario, base *config.Config, st *storage.Store, log *zap.Logger) ([]storage.RunMetadata, error) {
	log = logging.OrNop(log).Named("automation")
	runs := make([]storage.RunMetadata, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		log.Info("running step",
			zap.Int("step", i+1),
			zap.Int("of", len(sc.Steps)),
			zap.String("name", step.Name),
			zap.String("kind", step.Kind))

		meta, err := runStep(ctx, step, base, st, log)
		if err != nil {
			return runs, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
		runs = append(runs, *meta)
	}

	return runs, nil
}

func runStep(ctx context.Context, step Step, base *config.Config, st *storage.Store, log *zap.Logger) (*storage.RunMetadata, error) {
	cfg, err := step.config(base)
	if err != nil {
		return nil, err
	}
	wheel, err := ParseWheel(step.Wheel)
	if err != nil {
		return nil, err
	}

	switch step.Kind {
	case KindSnapshot:
		return Snapshot(ctx, cfg, SnapshotOptions{
			Wheel:  wheel,
			Frames: step.Frames,
			Every:  step.Every,
			Start:  step.Start,
			Preset: step.Preset,
		}, st, log)
	case KindTrace, "":
		return RecordTrace(ctx, cfg, TraceOptions{
			Wheel:  wheel,
			Frames: step.Frames,
			Start:  step.Start,
			Max:    step.Max,
			Preset: step.Preset,
		}, st, log)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, step.Kind)
}

type TraceOptions struct {
	Wheel Wheel
	// Frames defaults to two seconds past the last wheel event.
	Frames int
	Start  float64
	Max    float64
	Preset string
}

// RecordTrace loads the configured smoothing engine, traces it and saves
// the run to st.
func RecordTrace(ctx context.Context, cfg *config.Config, o TraceOptions, st *storage.Store, log *zap.Logger) (*storage.RunMetadata, error) {
	n := o.Frames
	if n <= 0 {
		n = o.Wheel.Last() + 1 + 2*cfg.Window.FPS
	}
	if o.Max <= 0 {
		o.Max = DefaultMaxScroll
	}

	mod, err := smoothing.Load(ctx, cfg.Smoothing)
	if err != nil {
		return nil, err
	}
	samples, err := Trace(mod, o.Wheel, n, o.Start, o.Max, cfg.Window.FPS, log)
	if err != nil {
		return nil, err
	}

	runID, _, err := st.Create(KindTrace)
	if err != nil {
		return nil, err
	}
	err = st.Save(storage.RunMetadata{
		ID:        runID,
		Kind:      KindTrace,
		Preset:    o.Preset,
		Timestamp: time.Now(),
		Smoothing: string(cfg.Smoothing.Kind),
	}, samples)
	if err != nil {
		return nil, err
	}
	return st.Load(runID)
}
