package dom

// Run is one visible line of text ready to paint, in viewport pixels. Y is
// the top of the glyph box.
type Run struct {
	Text    string
	X, Y    float64
	Size    float64
	Opacity float64
}

// Runs returns the text runs that intersect the viewport, in document
// order, with transforms and inherited opacity applied. Invisible words are
// skipped. Runs does not force layout.
func (d *Document) Runs() []Run {
	var out []Run
	d.Walk(func(e *Element) bool {
		if e.kind != Text && e.kind != Word {
			return true
		}
		if e.kind == Text && len(e.children) > 0 {
			return true
		}
		op := e.EffectiveOpacity()
		if op <= 0 {
			return false
		}
		size := e.FontSize()
		lh := e.box.H
		if n := len(e.lines); e.kind == Text && n > 0 {
			lh = e.box.H / float64(n)
		}
		dy := e.Offset()
		for _, ln := range e.lines {
			top := ln.Y + dy + (lh-size)/2
			if top > d.vh || top+size < 0 {
				continue
			}
			out = append(out, Run{Text: ln.Text, X: ln.X, Y: top, Size: size, Opacity: op})
		}
		return true
	})
	return out
}
