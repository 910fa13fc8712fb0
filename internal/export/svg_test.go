package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/san-kum/scrollfield/internal/metrics"
)

func TestTraceToSVG(t *testing.T) {
	samples := []metrics.Sample{
		{Time: 0, Target: 400, Current: 48},
		{Time: 0.5, Target: 400, Current: 300},
		{Time: 1, Target: 400, Current: 400},
	}

	svg := TraceToSVG(samples, 200, 100)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("expected a complete svg document, got %q", svg)
	}
	if n := strings.Count(svg, "<path"); n != 2 {
		t.Errorf("expected 2 paths, got %d", n)
	}
	if !strings.Contains(svg, TargetStroke) || !strings.Contains(svg, CurrentStroke) {
		t.Errorf("expected both stroke colors in %q", svg)
	}
	// first point of the current path: x at 10% padding, y near the top
	if !strings.Contains(svg, `stroke="`+CurrentStroke+`" stroke-width="1.5" d="M16.7,`) {
		t.Errorf("expected current path to start at x=16.7, got %q", svg)
	}
}

func TestTraceToSVGTooShort(t *testing.T) {
	if svg := TraceToSVG([]metrics.Sample{{}}, 10, 10); svg != "" {
		t.Errorf("expected empty svg, got %q", svg)
	}
	var buf bytes.Buffer
	if err := WriteTraceSVG(&buf, nil, 10, 10); err == nil {
		t.Error("expected error for no samples")
	}
}
