package tui

import "github.com/san-kum/scrollfield/internal/render"

type program string

func (p program) Name() string { return string(p) }

// cellDevice keeps the most recent pass so the view can rasterize it into
// terminal cells. Shaders are not compiled.
type cellDevice struct {
	w, h   int
	points render.PointPass
	quads  render.QuadPass
	drawn  bool
}

func (d *cellDevice) Resize(w, h int)     { d.w, d.h = w, h }
func (d *cellDevice) Backing() (int, int) { return d.w, d.h }

func (d *cellDevice) Program(name, vertex, fragment string) (render.Program, error) {
	return program(name), nil
}

func (d *cellDevice) Clear() { d.drawn = false }

func (d *cellDevice) DrawPoints(p render.PointPass) {
	d.points.Positions = append(d.points.Positions[:0], p.Positions...)
	d.points.Speeds = append(d.points.Speeds[:0], p.Speeds...)
	d.points.Count = p.Count
	d.points.Resolution = p.Resolution
	d.drawn = true
}

func (d *cellDevice) DrawQuads(q render.QuadPass) {
	d.quads.Instances = append(d.quads.Instances[:0], q.Instances...)
	d.quads.Uniforms = q.Uniforms
	d.drawn = true
}

func (d *cellDevice) Flush() error { return nil }
