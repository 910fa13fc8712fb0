package render

import "github.com/san-kum/scrollfield/internal/anchors"

// PhaseScale converts scroll pixels to pattern phase.
const PhaseScale = 0.002

// QuadRenderer draws a procedurally shaded quad over every anchor.
type QuadRenderer struct {
	dev    Device
	prog   Program
	vw, vh float64
	scale  float64
	last   QuadPass
}

func NewQuadRenderer(dev Device) (*QuadRenderer, error) {
	prog, err := dev.Program("quads", quadVertex, quadFragment)
	if err != nil {
		return nil, err
	}
	return &QuadRenderer{dev: dev, prog: prog, scale: PhaseScale}, nil
}

func (r *QuadRenderer) Resize(vw, vh, dpr float64) {
	r.vw, r.vh = vw, vh
	r.dev.Resize(BackingSize(vw, vh, dpr))
}

// SetPhaseScale overrides PhaseScale for subsequent draws. Non-positive
// values are ignored.
func (r *QuadRenderer) SetPhaseScale(s float64) {
	if s > 0 {
		r.scale = s
	}
}

// Params returns the instances and uniforms for one draw. It depends only
// on its arguments.
func Params(current float64, rects []anchors.Rect, vw, vh float64) QuadPass {
	return params(current, rects, vw, vh, PhaseScale)
}

func params(current float64, rects []anchors.Rect, vw, vh, scale float64) QuadPass {
	inst := make([]QuadInstance, len(rects))
	for i, rc := range rects {
		inst[i] = QuadInstance{
			X:       float32(rc.X),
			Y:       float32(rc.Y),
			W:       float32(rc.W),
			H:       float32(rc.H),
			Variant: int32(i % Variants),
		}
	}
	return QuadPass{
		Instances: inst,
		Uniforms: QuadUniforms{
			Resolution: [2]float32{float32(vw), float32(vh)},
			Scroll:     float32(current),
			Phase:      float32(current * scale),
		},
	}
}

// Draw clears the surface and draws one quad per rect at scroll current.
func (r *QuadRenderer) Draw(current float64, rects []anchors.Rect) {
	pass := params(current, rects, r.vw, r.vh, r.scale)
	pass.Program = r.prog
	r.last = pass
	r.dev.Clear()
	r.dev.DrawQuads(pass)
}

// Last returns the most recent pass.
func (r *QuadRenderer) Last() QuadPass { return r.last }
