package softdevice

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/san-kum/scrollfield/internal/anchors"
	"github.com/san-kum/scrollfield/internal/dom"
	"github.com/san-kum/scrollfield/internal/render"
)

func rgbaAt(d *Device, x, y int) color.RGBA {
	return d.Image().At(x, y).(color.RGBA)
}

func closeTo(got uint8, want float64) bool {
	return math.Abs(float64(got)-want*255) <= 2
}

func TestQuadPixelsMatchPattern(t *testing.T) {
	dev := New(64, 64)
	r, err := render.NewQuadRenderer(dev)
	if err != nil {
		t.Fatal(err)
	}
	r.Resize(64, 64, 1)
	r.Draw(100, []anchors.Rect{{X: 8, Y: 108, W: 32, H: 16}})
	if err := dev.Flush(); err != nil {
		t.Fatal(err)
	}

	// pixel (20, 12) is inside the quad once scrolled by 100
	u := (20 + 0.5 - 8) / 32
	v := (12 + 0.5 - 8) / 16
	wr, wg, wb := render.Pattern(0, u, v, 100*render.PhaseScale)
	got := rgbaAt(dev, 20, 12)
	if !closeTo(got.R, wr) || !closeTo(got.G, wg) || !closeTo(got.B, wb) || got.A != 255 {
		t.Errorf("expected ~(%f, %f, %f), got %v", wr, wg, wb, got)
	}
	if out := rgbaAt(dev, 2, 2); out.A != 0 {
		t.Errorf("expected transparent outside the quad, got %v", out)
	}
}

func TestQuadScaledToBacking(t *testing.T) {
	dev := New(1, 1)
	r, _ := render.NewQuadRenderer(dev)
	r.Resize(32, 32, 2)
	r.Draw(0, []anchors.Rect{{X: 16, Y: 16, W: 16, H: 16}})
	_ = dev.Flush()

	if w, h := dev.Backing(); w != 64 || h != 64 {
		t.Fatalf("expected 64x64 backing, got %dx%d", w, h)
	}
	if rgbaAt(dev, 40, 40).A != 255 {
		t.Error("expected quad covering device pixel (40, 40)")
	}
	if rgbaAt(dev, 20, 20).A != 0 {
		t.Error("expected device pixel (20, 20) outside the quad")
	}
}

func TestPointsDrawAndClear(t *testing.T) {
	dev := New(32, 32)
	r, err := render.NewParticleRenderer(dev, render.VariantInk)
	if err != nil {
		t.Fatal(err)
	}
	r.Resize(32, 32, 1)

	pos := []float32{16, 16}
	vel := []float32{5, 0}
	r.Draw(pos, vel, 1)
	pos[0] = 0
	if err := dev.Flush(); err != nil {
		t.Fatal(err)
	}
	if rgbaAt(dev, 16, 16).A == 0 {
		t.Error("expected the particle at its submitted position")
	}

	r.Draw(nil, nil, 0)
	_ = dev.Flush()
	if rgbaAt(dev, 16, 16).A != 0 {
		t.Error("expected the next frame to clear the surface")
	}
}

func TestResizeErrorSurfacesOnFlush(t *testing.T) {
	dev := New(8, 8)
	dev.Resize(0, 8)
	if err := dev.Flush(); err == nil {
		t.Error("expected resize error on flush")
	}
	if w, _ := dev.Backing(); w != 8 {
		t.Errorf("expected backing kept at 8, got %d", w)
	}
}

func TestEmptyProgramRejected(t *testing.T) {
	_, err := New(1, 1).Program("x", "", "")
	if !errors.Is(err, render.ErrShaderCompile) {
		t.Errorf("expected ErrShaderCompile, got %v", err)
	}
}

func TestComposeEncodesPNG(t *testing.T) {
	doc := dom.NewDocument(64, 48, nil)
	p := doc.Root().Append(doc.CreateText("p", "hello"))
	p.SetStyle(dom.Style{FontSize: 13})
	doc.Flush()

	below, above := New(64, 48), New(64, 48)
	var buf bytes.Buffer
	if err := NewCompositor().EncodePNG(&buf, doc, below, above); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 64 || b.Dy() != 48 {
		t.Errorf("expected 64x48, got %v", b)
	}
}
