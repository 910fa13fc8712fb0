package automation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/logging"
	"github.com/san-kum/scrollfield/internal/metrics"
	"github.com/san-kum/scrollfield/internal/smoothing"
)

// Sweepable smoothing parameters.
const (
	ParamEaseFactor = "ease_factor"
	ParamFrequency  = "frequency"
	ParamDamping    = "damping"
)

// ParameterSweep traces one wheel script once per value of a smoothing
// parameter spread evenly over [Min, Max].
type ParameterSweep struct {
	Params    smoothing.Params
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int

	Wheel     Wheel
	Frames    int
	FPS       int
	MaxScroll float64
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

func setParam(p *smoothing.Params, name string, v float64) error {
	switch name {
	case ParamEaseFactor:
		p.EaseFactor = v
	case ParamFrequency:
		p.Frequency = v
	case ParamDamping:
		p.Damping = v
	default:
		return fmt.Errorf("unknown smoothing parameter %q", name)
	}
	return nil
}

// RunSweep returns one result per step. A value the engine rejects fails
// the whole sweep.
func RunSweep(ctx context.Context, sweep *ParameterSweep, log *zap.Logger) ([]SweepResult, error) {
	log = logging.OrNop(log).Named("automation")
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	maxScroll := sweep.MaxScroll
	if maxScroll <= 0 {
		maxScroll = DefaultMaxScroll
	}
	n := sweep.Frames
	if n <= 0 {
		n = sweep.Wheel.Last() + 1 + 2*max(sweep.FPS, 1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		paramVal := sweep.ParamMin + float64(i)*paramStep
		p := sweep.Params
		if err := setParam(&p, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		mod, err := smoothing.Load(ctx, p)
		if err != nil {
			return results, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}
		samples, err := Trace(mod, sweep.Wheel, n, 0, maxScroll, sweep.FPS, log)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    metrics.Evaluate(samples, metrics.Default()...),
		})
		log.Debug("sweep step",
			zap.Int("step", i+1),
			zap.String("param", sweep.ParamName),
			zap.Float64("value", paramVal))
	}

	return results, nil
}
