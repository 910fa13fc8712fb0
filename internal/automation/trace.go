package automation

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/metrics"
	"github.com/san-kum/scrollfield/internal/smoothing"
)

// Trace drives one smoothing handle the way the frame loop does: wheel
// deltas move a clamped target, then the engine ticks once per frame.
func Trace(mod *smoothing.Module, w Wheel, n int, start, max float64, fps int, log *zap.Logger) ([]metrics.Sample, error) {
	if n <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", n)
	}
	if fps <= 0 {
		fps = 60
	}
	ad := smoothing.NewAdapter(mod, log)
	defer ad.Dispose()

	target := math.Min(math.Max(start, 0), max)
	if !ad.Seed(target, max) {
		return nil, fmt.Errorf("seed smoothing at %.1f", target)
	}

	samples := make([]metrics.Sample, 0, n)
	for i := 0; i < n; i++ {
		for _, d := range w[i] {
			target = math.Min(math.Max(target+d, 0), max)
		}
		cur, vel, ok := ad.Frame(target, max)
		if !ok {
			return samples, fmt.Errorf("smoothing stopped at frame %d", i)
		}
		samples = append(samples, metrics.Sample{
			Time:     float64(i) / float64(fps),
			Target:   target,
			Current:  cur,
			Velocity: vel,
		})
	}
	return samples, nil
}
