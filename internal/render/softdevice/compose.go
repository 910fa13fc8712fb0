package softdevice

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/san-kum/scrollfield/internal/dom"
)

const (
	glyphSize   = 13
	glyphAscent = 11
)

// Compositor stacks the particle layer, the document text and the quad
// layer into one image, the way a browser stacks the two canvases around
// the page.
type Compositor struct {
	Background gg.RGBA
	Text       color.Color

	glyphs map[string]*gg.ImageBuf
}

func NewCompositor() *Compositor {
	return &Compositor{
		Background: gg.RGBA2(0.03, 0.03, 0.06, 1),
		Text:       color.RGBA{R: 0xee, G: 0xee, B: 0xf4, A: 0xff},
		glyphs:     make(map[string]*gg.ImageBuf),
	}
}

// Compose draws below, then doc's visible text, then above onto a new
// context of below's size.
func (c *Compositor) Compose(doc *dom.Document, below, above *Device) *gg.Context {
	w, h := below.Backing()
	out := gg.NewContext(w, h)
	out.ClearWithColor(c.Background)
	out.DrawImage(gg.ImageBufFromImage(below.Image()), 0, 0)

	sx := float64(w) / doc.ViewportWidth()
	sy := float64(h) / doc.ViewportHeight()
	c.drawText(out, doc, sx, sy)

	if above != nil {
		out.DrawImage(gg.ImageBufFromImage(above.Image()), 0, 0)
	}
	return out
}

// EncodePNG composes a frame and writes it to wr.
func (c *Compositor) EncodePNG(wr io.Writer, doc *dom.Document, below, above *Device) error {
	out := c.Compose(doc, below, above)
	defer out.Close()
	return out.EncodePNG(wr)
}

func (c *Compositor) drawText(out *gg.Context, doc *dom.Document, sx, sy float64) {
	for _, run := range doc.Runs() {
		g := c.glyph(run.Text)
		gw, _ := g.Bounds()
		k := run.Size / glyphSize
		out.DrawImageEx(g, gg.DrawImageOptions{
			X:         run.X * sx,
			Y:         run.Y * sy,
			DstWidth:  float64(gw) * k * sx,
			DstHeight: glyphSize * k * sy,
			Opacity:   run.Opacity,
		})
	}
}

func (c *Compositor) glyph(s string) *gg.ImageBuf {
	if g, ok := c.glyphs[s]; ok {
		return g
	}
	face := basicfont.Face7x13
	adv := font.MeasureString(face, s).Ceil()
	img := image.NewRGBA(image.Rect(0, 0, max(adv, 1), glyphSize))
	dr := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c.Text),
		Face: face,
		Dot:  fixed.P(0, glyphAscent),
	}
	dr.DrawString(s)
	g := gg.ImageBufFromImage(img)
	c.glyphs[s] = g
	return g
}
