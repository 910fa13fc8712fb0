package gui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontPath    = "/usr/share/fonts/liberation/LiberationSans-Regular.ttf"
	fontBase    = 64
	textSpacing = 0
)

// loadFont loads Liberation Sans with bilinear filtering, falling back to
// raylib's built-in font. The bool reports whether the font must be
// unloaded.
func loadFont() (rl.Font, bool) {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault(), false
	}
	font := rl.LoadFontEx(fontPath, fontBase, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font, true
}

// fontMeasurer lays out document text with the same font it is painted
// with.
type fontMeasurer struct {
	font rl.Font
}

func (m fontMeasurer) Advance(s string, size float64) float64 {
	return float64(rl.MeasureTextEx(m.font, s, float32(size), textSpacing).X)
}

// DrawDocument paints the visible text of the document between the two
// GPU layers.
func (a *App) DrawDocument() {
	for _, run := range a.pipe.Doc.Runs() {
		col := rl.Fade(ColText, float32(run.Opacity))
		rl.DrawTextEx(a.Font, run.Text, rl.NewVector2(float32(run.X), float32(run.Y)), float32(run.Size), textSpacing, col)
	}
}

func (a *App) DrawHUD() {
	sched := a.pipe.Scheduler
	v, st := sched.View(), sched.Stats()
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())

	rl.DrawRectangle(0, h-28, w, 28, rl.Fade(ColBg, 0.8))
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 12, h-22, 14, ColAccent)
	a.drawText(fmt.Sprintf("%s  y %.0f / %.0f  target %.0f  v %+.1f  skipped %d",
		sched.State(), v.Current, v.Max, v.Target, v.Velocity, st.SkippedDOM), 90, h-22, 14, ColTextDim)
	a.drawText("[WHEEL/J/K] SCROLL  [F1] HUD  [Q] QUIT", w-300, h-22, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int32, size float32, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), size, 1, color)
}
