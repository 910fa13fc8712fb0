package dom

import (
	"math"
	"strings"
)

const (
	defaultFontSize   = 16
	defaultLineHeight = 1.4
)

// Stats counts document traffic since the last ResetStats.
type Stats struct {
	Reads  int
	Writes int
	// ReadAfterWrite counts reads that directly follow a write in the same
	// frame. A frame that reads all geometry before writing scores zero.
	ReadAfterWrite int
	Layouts        int
	// ForcedLayouts counts layouts run synchronously by a read.
	ForcedLayouts int
}

type opKind int

const (
	opNone opKind = iota
	opRead
	opWrite
)

type observation struct {
	id   int
	el   *Element
	fn   func(*Element)
	last Rect
}

// Document owns the element tree, the viewport and layout state.
// It is not safe for concurrent use.
type Document struct {
	root     *Element
	measurer TextMeasurer

	vw, vh float64

	dirty bool
	gen   uint64

	stats  Stats
	lastOp opKind

	observers []*observation
	pending   []*observation
	nextObs   int

	locked  bool
	nativeY float64
}

func NewDocument(vw, vh float64, m TextMeasurer) *Document {
	if m == nil {
		m = NewBasicMeasurer()
	}
	d := &Document{measurer: m, vw: vw, vh: vh, dirty: true}
	d.root = d.CreateElement(Block, "main")
	return d
}

// Root is the scrolling content container; its TranslateY is the content
// transform.
func (d *Document) Root() *Element { return d.root }

func (d *Document) CreateElement(kind Kind, tag string) *Element {
	return &Element{doc: d, kind: kind, tag: tag, opacity: 1}
}

// CreateText builds a text element holding s.
func (d *Document) CreateText(tag, s string) *Element {
	e := d.CreateElement(Text, tag)
	e.text = s
	return e
}

// CreateWord builds an inline word element for a text parent.
func (d *Document) CreateWord(s string) *Element {
	e := d.CreateElement(Word, "span")
	e.text = s
	return e
}

func (d *Document) SetMeasurer(m TextMeasurer) {
	d.measurer = m
	d.invalidate()
}

// Generation increments every time layout runs.
func (d *Document) Generation() uint64 { return d.gen }

func (d *Document) Stats() Stats { return d.stats }

func (d *Document) ResetStats() {
	d.stats = Stats{}
	d.lastOp = opNone
}

// BeginFrame marks a frame boundary for read-after-write accounting.
func (d *Document) BeginFrame() { d.lastOp = opNone }

func (d *Document) ViewportWidth() float64  { return d.vw }
func (d *Document) ViewportHeight() float64 { return d.vh }

func (d *Document) SetViewport(w, h float64) {
	d.write()
	if w == d.vw && h == d.vh {
		return
	}
	d.vw, d.vh = w, h
	d.invalidate()
}

// ScrollHeight is the laid-out height of the content container.
func (d *Document) ScrollHeight() float64 {
	d.read()
	return d.root.box.H
}

// LockScroll disables native scrolling until restore is called.
func (d *Document) LockScroll() (restore func()) {
	prev := d.locked
	d.locked = true
	d.nativeY = 0
	return func() { d.locked = prev }
}

func (d *Document) ScrollLocked() bool { return d.locked }

// NativeScrollBy moves the native scroll offset unless scrolling is locked.
func (d *Document) NativeScrollBy(dy float64) {
	if d.locked {
		return
	}
	d.nativeY = math.Max(0, d.nativeY+dy)
}

func (d *Document) NativeScrollY() float64 { return d.nativeY }

// Observe registers fn to be called from Flush whenever the size of el
// changes. The returned func removes the observation.
func (d *Document) Observe(el *Element, fn func(*Element)) (unobserve func()) {
	d.nextObs++
	o := &observation{id: d.nextObs, el: el, fn: fn, last: el.box}
	d.observers = append(d.observers, o)
	return func() {
		for i, x := range d.observers {
			if x.id == o.id {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				break
			}
		}
		for i, x := range d.pending {
			if x.id == o.id {
				d.pending = append(d.pending[:i], d.pending[i+1:]...)
				break
			}
		}
	}
}

// Flush runs a pending layout and delivers size observations. Hosts call
// it once per frame after the frame's writes.
func (d *Document) Flush() {
	if d.dirty {
		d.layout()
	}
	pending := d.pending
	d.pending = nil
	for _, o := range pending {
		o.fn(o.el)
	}
}

// Walk visits elements depth first in document order. Returning false from
// fn skips the element's children.
func (d *Document) Walk(fn func(*Element) bool) {
	var visit func(*Element)
	visit = func(e *Element) {
		if !fn(e) {
			return
		}
		for _, c := range e.children {
			visit(c)
		}
	}
	visit(d.root)
}

// QueryAll returns elements carrying attr, in document order.
func (d *Document) QueryAll(attr string) []*Element {
	var out []*Element
	d.Walk(func(e *Element) bool {
		if _, ok := e.attrs[attr]; ok {
			out = append(out, e)
		}
		return true
	})
	return out
}

func (d *Document) invalidate() { d.dirty = true }

func (d *Document) read() {
	d.stats.Reads++
	if d.lastOp == opWrite {
		d.stats.ReadAfterWrite++
	}
	d.lastOp = opRead
	if d.dirty {
		d.stats.ForcedLayouts++
		d.layout()
	}
}

func (d *Document) write() {
	d.stats.Writes++
	d.lastOp = opWrite
}

func (d *Document) layout() {
	d.dirty = false
	d.gen++
	d.stats.Layouts++

	d.layoutBox(d.root, 0, 0, d.vw)

	for _, o := range d.observers {
		if o.el.box.W != o.last.W || o.el.box.H != o.last.H {
			o.last = o.el.box
			if !d.isPending(o) {
				d.pending = append(d.pending, o)
			}
		}
	}
}

func (d *Document) isPending(o *observation) bool {
	for _, p := range d.pending {
		if p == o {
			return true
		}
	}
	return false
}

// layoutBox places e at (x, y) with available width w and returns its
// border-box height.
func (d *Document) layoutBox(e *Element, x, y, w float64) float64 {
	if e.style.Width > 0 && e.style.Width < w {
		w = e.style.Width
	}
	switch e.kind {
	case Text:
		return d.layoutText(e, x, y, w)
	case Word:
		adv := d.measurer.Advance(e.text, e.FontSize())
		lh := e.FontSize() * e.lineHeight()
		e.box = Rect{X: x, Y: y, W: adv, H: lh}
		e.lines = []Line{{Text: e.text, X: x, Y: y}}
		return lh
	}

	pad := e.style.Padding
	cy := y + pad
	for _, c := range e.children {
		cy += c.style.MarginTop
		cy += d.layoutBox(c, x+pad, cy, w-2*pad)
		cy += c.style.MarginBottom
	}
	h := math.Max(cy+pad-y, e.style.MinHeight)
	if e.style.Height > 0 {
		h = e.style.Height
	}
	e.box = Rect{X: x, Y: y, W: w, H: h}
	return h
}

// layoutText flows words left to right, wrapping at w. Word children are
// positioned individually; plain text is broken into lines.
func (d *Document) layoutText(e *Element, x, y, w float64) float64 {
	size := e.FontSize()
	lh := size * e.lineHeight()
	space := d.measurer.Advance(" ", size)

	e.lines = e.lines[:0]
	cx, cy := x, y
	used := false

	if len(e.children) > 0 {
		for _, c := range e.children {
			adv := d.measurer.Advance(c.text, c.FontSize())
			if used && cx+adv > x+w {
				cx, cy = x, cy+lh
			}
			c.box = Rect{X: cx, Y: cy, W: adv, H: lh}
			c.lines = []Line{{Text: c.text, X: cx, Y: cy}}
			cx += adv + space
			used = true
		}
	} else {
		var line []string
		lineX := x
		for _, word := range strings.Fields(e.text) {
			adv := d.measurer.Advance(word, size)
			if used && cx+adv > x+w {
				e.lines = append(e.lines, Line{Text: strings.Join(line, " "), X: lineX, Y: cy})
				line = line[:0]
				cx, cy = x, cy+lh
			}
			line = append(line, word)
			cx += adv + space
			used = true
		}
		if len(line) > 0 {
			e.lines = append(e.lines, Line{Text: strings.Join(line, " "), X: lineX, Y: cy})
		}
	}

	h := 0.0
	if used {
		h = cy + lh - y
	}
	if e.style.Height > 0 {
		h = e.style.Height
	}
	e.box = Rect{X: x, Y: y, W: w, H: h}
	return h
}
