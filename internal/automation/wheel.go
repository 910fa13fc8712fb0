package automation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Wheel maps a frame index to the wheel deltas delivered before that frame
// is dispatched.
type Wheel map[int][]float64

// ParseWheel reads "frame:delta" pairs separated by commas, e.g.
// "0:400,30:-200". A frame may appear more than once.
func ParseWheel(s string) (Wheel, error) {
	w := Wheel{}
	s = strings.TrimSpace(s)
	if s == "" {
		return w, nil
	}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		frameStr, deltaStr, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("invalid wheel event %q: expected frame:delta", part)
		}
		frame, err := strconv.Atoi(strings.TrimSpace(frameStr))
		if err != nil || frame < 0 {
			return nil, fmt.Errorf("invalid frame in %q", part)
		}
		delta, err := strconv.ParseFloat(strings.TrimSpace(deltaStr), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid delta in %q: %w", part, err)
		}
		w[frame] = append(w[frame], delta)
	}
	return w, nil
}

// Last is the highest frame with an event, or -1.
func (w Wheel) Last() int {
	frames := make([]int, 0, len(w))
	for f := range w {
		frames = append(frames, f)
	}
	if len(frames) == 0 {
		return -1
	}
	sort.Ints(frames)
	return frames[len(frames)-1]
}
