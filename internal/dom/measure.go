package dom

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// TextMeasurer reports the horizontal advance of s at a font size in pixels.
type TextMeasurer interface {
	Advance(s string, size float64) float64
}

// FaceMeasurer measures with a fixed-size font face and scales the result
// linearly to the requested size.
type FaceMeasurer struct {
	Face font.Face
	// Size is the pixel size the face was built at.
	Size float64
}

func NewBasicMeasurer() FaceMeasurer {
	return FaceMeasurer{Face: basicfont.Face7x13, Size: 13}
}

func (m FaceMeasurer) Advance(s string, size float64) float64 {
	adv := font.MeasureString(m.Face, s)
	px := float64(adv) / 64
	if m.Size <= 0 {
		return px
	}
	return px * size / m.Size
}
