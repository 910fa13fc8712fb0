package render

import (
	"errors"
	"math"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/scrollfield/internal/anchors"
)

func TestSpeeds(t *testing.T) {
	vel := []float32{3, 4, 0, 0, 30, 40, 0.5, 0}
	got := Speeds(vel, 4, nil)
	want := []float32{1, 0, 1, 0.1}
	for i := range want {
		if math.Abs(float64(got[i]-want[i])) > 1e-6 {
			t.Errorf("particle %d: expected speed %f, got %f", i, want[i], got[i])
		}
	}
}

func TestSpeedsReusesBuffer(t *testing.T) {
	buf := make([]float32, 0, 8)
	got := Speeds(make([]float32, 8), 4, buf)
	if &got[0] != &buf[:1][0] {
		t.Error("expected the destination buffer to be reused")
	}
}

func TestParticleDraw(t *testing.T) {
	g := NewWithT(t)
	rec := NewRecorder()
	r, err := NewParticleRenderer(rec, VariantGlow)
	g.Expect(err).NotTo(HaveOccurred())
	r.Resize(800, 600, 2)

	pos := []float32{1, 2, 3, 4, 99, 99}
	vel := []float32{5, 0, 0, 0, 1, 1}
	r.Draw(pos, vel, 2)

	w, h := rec.Backing()
	g.Expect(w).To(Equal(1600))
	g.Expect(h).To(Equal(1200))
	g.Expect(rec.Points).To(HaveLen(1))
	p := rec.Points[0]
	g.Expect(p.Count).To(Equal(2))
	g.Expect(p.Positions).To(Equal([]float32{1, 2, 3, 4}))
	g.Expect(p.Speeds).To(Equal([]float32{1, 0}))
	g.Expect(p.Resolution).To(Equal([2]float32{800, 600}))
	g.Expect(p.Blend).To(Equal(BlendAdditive))
	g.Expect(rec.Clears).To(Equal(1))
}

func TestParticleVariants(t *testing.T) {
	rec := NewRecorder()
	r, err := NewParticleRenderer(rec, VariantInk)
	if err != nil {
		t.Fatal(err)
	}
	r.Draw(nil, nil, 0)
	if rec.Points[0].Blend != BlendAlpha {
		t.Errorf("expected alpha blending for ink, got %v", rec.Points[0].Blend)
	}

	if _, err := NewParticleRenderer(rec, "neon"); err == nil {
		t.Error("expected error for unknown variant")
	}
}

func TestShaderFailureIsFatal(t *testing.T) {
	rec := NewRecorder()
	rec.FailProgram = "quads"
	rec.FailErr = ErrShaderLink

	_, err := NewQuadRenderer(rec)
	if !errors.Is(err, ErrShaderLink) {
		t.Fatalf("expected ErrShaderLink, got %v", err)
	}
	var se *ShaderError
	if !errors.As(err, &se) || se.Program != "quads" {
		t.Errorf("expected ShaderError for quads, got %v", err)
	}
}

func TestQuadParamsPure(t *testing.T) {
	g := NewWithT(t)
	rects := []anchors.Rect{
		{X: 10, Y: 100, W: 200, H: 50},
		{X: 10, Y: 300, W: 200, H: 80},
	}
	a := Params(420, rects, 1280, 720)
	b := Params(420, rects, 1280, 720)
	g.Expect(a).To(Equal(b))

	g.Expect(a.Uniforms.Scroll).To(Equal(float32(420)))
	g.Expect(a.Uniforms.Phase).To(BeNumerically("~", 0.84, 1e-6))
	g.Expect(a.Instances[1]).To(Equal(QuadInstance{X: 10, Y: 300, W: 200, H: 80, Variant: 1}))

	rects[0].X = 999
	g.Expect(a.Instances[0].X).To(Equal(float32(10)))
}

func TestQuadVariantCycles(t *testing.T) {
	rects := make([]anchors.Rect, 16)
	p := Params(0, rects, 1, 1)
	for i, inst := range p.Instances {
		if int(inst.Variant) != i%Variants {
			t.Errorf("slot %d: expected variant %d, got %d", i, i%Variants, inst.Variant)
		}
	}
}

func TestQuadDraw(t *testing.T) {
	rec := NewRecorder()
	r, err := NewQuadRenderer(rec)
	if err != nil {
		t.Fatal(err)
	}
	r.Resize(640, 480, 1)
	r.Draw(100, []anchors.Rect{{W: 10, H: 10}})

	if len(rec.Quads) != 1 || rec.Quads[0].Program.Name() != "quads" {
		t.Fatalf("expected one quad pass, got %v", rec)
	}
	if r.Last().Uniforms.Resolution != [2]float32{640, 480} {
		t.Errorf("unexpected resolution %v", r.Last().Uniforms.Resolution)
	}
}

func TestQuadPhaseScale(t *testing.T) {
	r, err := NewQuadRenderer(NewRecorder())
	if err != nil {
		t.Fatal(err)
	}
	r.SetPhaseScale(0.01)
	r.SetPhaseScale(-1)
	r.Draw(100, nil)

	if got := r.Last().Uniforms.Phase; !near(float64(got), 1) {
		t.Errorf("expected phase 1, got %f", got)
	}
}

func TestPatternInRange(t *testing.T) {
	for v := 0; v < Variants; v++ {
		for _, ph := range []float64{0, 0.7, 3.1, 12} {
			for u := 0.0; u <= 1; u += 0.125 {
				for w := 0.0; w <= 1; w += 0.125 {
					r, g, b := Pattern(v, u, w, ph)
					for _, c := range []float64{r, g, b} {
						if c < -1e-9 || c > 1+1e-9 || math.IsNaN(c) {
							t.Fatalf("%s(%f, %f, %f) out of range: %f", VariantName(v), u, w, ph, c)
						}
					}
				}
			}
		}
	}
}

func TestPatternDependsOnPhase(t *testing.T) {
	for v := 0; v < Variants; v++ {
		r0, g0, b0 := Pattern(v, 0.3, 0.6, 0)
		r1, g1, b1 := Pattern(v, 0.3, 0.6, 1.5)
		if r0 == r1 && g0 == g1 && b0 == b1 {
			t.Errorf("%s: expected colour to change with phase", VariantName(v))
		}
	}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParticleColor(t *testing.T) {
	r, g, b, a := ParticleColor(0, 0)
	if !near(r, 0.3) || !near(g, 0.4) || !near(b, 0.9) || !near(a, 0.4) {
		t.Errorf("expected cool colour at rest, got %f %f %f %f", r, g, b, a)
	}
	r, g, _, a = ParticleColor(1, 0)
	if !near(r, 1) || !near(g, 0.7) || !near(a, 1.2) {
		t.Errorf("expected hot colour at full speed, got %f %f %f", r, g, a)
	}
	if _, _, _, a := ParticleColor(1, 0.6); a != 0 {
		t.Errorf("expected transparent outside the sprite, got %f", a)
	}
	if PointSize(1) != 15 || PointSize(0) != 3 {
		t.Errorf("unexpected point sizes %f %f", PointSize(0), PointSize(1))
	}
}

func TestBackingSize(t *testing.T) {
	w, h := BackingSize(1280, 720, 1.5)
	if w != 1920 || h != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", w, h)
	}
	w, h = BackingSize(100, 50, 0)
	if w != 100 || h != 50 {
		t.Errorf("expected dpr 0 to mean 1, got %dx%d", w, h)
	}
}
