package softdevice

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"

	"github.com/san-kum/scrollfield/internal/render"
)

type program string

func (p program) Name() string { return string(p) }

type op func(c *gg.Context) error

// Device rasterizes passes on the CPU into a transparent gg canvas.
// Pass data is copied on submission; Flush paints it.
type Device struct {
	ctx  *gg.Context
	w, h int

	clear   bool
	pending []op
	err     error
}

func New(w, h int) *Device {
	w, h = max(w, 1), max(h, 1)
	return &Device{ctx: gg.NewContext(w, h), w: w, h: h}
}

func (d *Device) Resize(w, h int) {
	if err := d.ctx.Resize(w, h); err != nil {
		d.err = fmt.Errorf("softdevice: %w", err)
		return
	}
	d.w, d.h = w, h
}

func (d *Device) Backing() (int, int) { return d.w, d.h }

// Program accepts any non-empty source; patterns are evaluated on the CPU.
func (d *Device) Program(name, vertex, fragment string) (render.Program, error) {
	if vertex == "" || fragment == "" {
		return nil, &render.ShaderError{Program: name, Log: "empty source", Wrapped: render.ErrShaderCompile}
	}
	return program(name), nil
}

func (d *Device) Clear() {
	d.clear = true
	d.pending = d.pending[:0]
}

func (d *Device) DrawPoints(p render.PointPass) {
	pos := append([]float32(nil), p.Positions[:p.Count*2]...)
	speeds := append([]float32(nil), p.Speeds[:p.Count]...)
	sx, sy := d.scale(p.Resolution)

	mode := gg.BlendNormal
	if p.Blend == render.BlendAdditive {
		mode = gg.BlendScreen
	}

	d.pending = append(d.pending, func(c *gg.Context) error {
		c.PushLayer(mode, 1)
		defer c.PopLayer()
		for i, s := range speeds {
			x, y := float64(pos[i*2])*sx, float64(pos[i*2+1])*sy
			rad := render.PointSize(float64(s)) * sx / 2
			// outer halo, then the brighter core
			for _, ring := range [2]struct{ r, dist float64 }{{1, 0.35}, {0.5, 0.1}} {
				r, g, b, a := render.ParticleColor(float64(s), ring.dist)
				c.SetRGBA(r, g, b, math.Min(a, 1))
				c.DrawCircle(x, y, rad*ring.r)
				if err := c.Fill(); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (d *Device) DrawQuads(q render.QuadPass) {
	inst := append([]render.QuadInstance(nil), q.Instances...)
	u := q.Uniforms
	sx, sy := d.scale(u.Resolution)

	d.pending = append(d.pending, func(c *gg.Context) error {
		for _, in := range inst {
			x0 := float64(in.X) * sx
			y0 := float64(in.Y-u.Scroll) * sy
			w, h := float64(in.W)*sx, float64(in.H)*sy
			if w <= 0 || h <= 0 {
				continue
			}
			px0, px1 := clampInt(int(x0), d.w), clampInt(int(math.Ceil(x0+w)), d.w)
			py0, py1 := clampInt(int(y0), d.h), clampInt(int(math.Ceil(y0+h)), d.h)
			for py := py0; py < py1; py++ {
				v := (float64(py) + 0.5 - y0) / h
				for px := px0; px < px1; px++ {
					uu := (float64(px) + 0.5 - x0) / w
					r, g, b := render.Pattern(int(in.Variant), uu, v, float64(u.Phase))
					c.SetPixel(px, py, gg.RGBA2(r, g, b, 1))
				}
			}
		}
		return nil
	})
}

// Flush paints the frame's passes. Errors from Resize surface here.
func (d *Device) Flush() error {
	if d.err != nil {
		err := d.err
		d.err = nil
		return err
	}
	if d.clear {
		d.ctx.Clear()
		d.clear = false
	}
	for _, draw := range d.pending {
		if err := draw(d.ctx); err != nil {
			d.pending = d.pending[:0]
			return fmt.Errorf("softdevice: %w", err)
		}
	}
	d.pending = d.pending[:0]
	return nil
}

func (d *Device) Image() image.Image { return d.ctx.Image() }

func (d *Device) Close() error { return d.ctx.Close() }

// scale maps resolution-space coordinates to backing pixels.
func (d *Device) scale(res [2]float32) (float64, float64) {
	sx, sy := 1.0, 1.0
	if res[0] > 0 {
		sx = float64(d.w) / float64(res[0])
	}
	if res[1] > 0 {
		sy = float64(d.h) / float64(res[1])
	}
	return sx, sy
}

func clampInt(v, hi int) int {
	return min(max(v, 0), hi)
}
