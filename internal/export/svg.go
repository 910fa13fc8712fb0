package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/scrollfield/internal/metrics"
)

const (
	TargetStroke  = "#5a5a64"
	CurrentStroke = "#b4b4c8"
)

type point struct{ X, Y float64 }

type bounds struct {
	minX, maxX, minY, maxY float64
}

// padded returns the bounds of all series with 10% padding on each axis.
func padded(series ...[]point) bounds {
	b := bounds{minX: series[0][0].X, maxX: series[0][0].X, minY: series[0][0].Y, maxY: series[0][0].Y}
	for _, pts := range series {
		for _, p := range pts {
			b.minX, b.maxX = min(b.minX, p.X), max(b.maxX, p.X)
			b.minY, b.maxY = min(b.minY, p.Y), max(b.maxY, p.Y)
		}
	}

	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	b.minX -= rangeX * 0.1
	b.maxX += rangeX * 0.1
	b.minY -= rangeY * 0.1
	b.maxY += rangeY * 0.1
	return b
}

func writePath(sb *strings.Builder, pts []point, b bounds, width, height int, stroke string) {
	rangeX := b.maxX - b.minX
	rangeY := b.maxY - b.minY

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke))
	for i, p := range pts {
		x := (p.X - b.minX) / rangeX * float64(width)
		// scroll grows downward, like the page
		y := (p.Y - b.minY) / rangeY * float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}

// TraceToSVG draws the target and smoothed position of a run against time.
// It returns "" for fewer than two samples.
func TraceToSVG(samples []metrics.Sample, width, height int) string {
	if len(samples) < 2 {
		return ""
	}

	target := make([]point, len(samples))
	current := make([]point, len(samples))
	for i, s := range samples {
		target[i] = point{s.Time, s.Target}
		current[i] = point{s.Time, s.Current}
	}
	b := padded(target, current)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#08080e"/>
`, width, height, width, height))

	writePath(&sb, target, b, width, height, TargetStroke)
	writePath(&sb, current, b, width, height, CurrentStroke)

	sb.WriteString("</svg>")
	return sb.String()
}

// WriteTraceSVG writes TraceToSVG to w.
func WriteTraceSVG(w io.Writer, samples []metrics.Sample, width, height int) error {
	svg := TraceToSVG(samples, width, height)
	if svg == "" {
		return fmt.Errorf("need at least 2 samples, got %d", len(samples))
	}
	_, err := io.WriteString(w, svg)
	return err
}
