package dom

import (
	"strconv"
	"strings"
)

type Kind int

const (
	Block Kind = iota
	Text
	Word
	Placeholder
)

func (k Kind) String() string {
	switch k {
	case Block:
		return "block"
	case Text:
		return "text"
	case Word:
		return "word"
	case Placeholder:
		return "placeholder"
	}
	return "unknown"
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Bottom() float64 { return r.Y + r.H }

// Line is one laid-out run of text in content coordinates; Y is the top of
// the line box.
type Line struct {
	Text string
	X, Y float64
}

// Style holds the layout inputs of an element. Zero values mean "auto"
// for Width and Height and "inherit" for FontSize.
type Style struct {
	Width        float64
	Height       float64
	MinHeight    float64
	Padding      float64
	MarginTop    float64
	MarginBottom float64
	FontSize     float64
	LineHeight   float64
}

type Element struct {
	doc      *Document
	kind     Kind
	tag      string
	text     string
	attrs    map[string]string
	parent   *Element
	children []*Element

	style      Style
	opacity    float64
	translateY float64

	box   Rect
	lines []Line
}

func (e *Element) Kind() Kind           { return e.kind }
func (e *Element) Tag() string          { return e.tag }
func (e *Element) Text() string         { return e.text }
func (e *Element) Parent() *Element     { return e.parent }
func (e *Element) Children() []*Element { return e.children }
func (e *Element) Document() *Document  { return e.doc }
func (e *Element) Opacity() float64     { return e.opacity }
func (e *Element) TranslateY() float64  { return e.translateY }
func (e *Element) Style() Style         { return e.style }

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetAttr(name, value string) {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
}

// Append adds child as the last child of e and returns child.
func (e *Element) Append(child *Element) *Element {
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	e.doc.invalidate()
	return child
}

func (e *Element) remove(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// FontSize resolves the inherited font size.
func (e *Element) FontSize() float64 {
	for p := e; p != nil; p = p.parent {
		if p.style.FontSize > 0 {
			return p.style.FontSize
		}
	}
	return defaultFontSize
}

func (e *Element) lineHeight() float64 {
	for p := e; p != nil; p = p.parent {
		if p.style.LineHeight > 0 {
			return p.style.LineHeight
		}
	}
	return defaultLineHeight
}

// Lines returns the laid-out text runs of a text or word element. It does
// not trigger layout.
func (e *Element) Lines() []Line { return e.lines }

// Box returns the last laid-out box without triggering layout or counting
// as a read. Painters use it after the frame's writes are done.
func (e *Element) Box() Rect { return e.box }

// EffectiveOpacity multiplies the opacity of e and its ancestors.
func (e *Element) EffectiveOpacity() float64 {
	o := 1.0
	for p := e; p != nil; p = p.parent {
		o *= p.opacity
	}
	return o
}

// Offset sums the translateY of e and its ancestors.
func (e *Element) Offset() float64 {
	dy := 0.0
	for p := e; p != nil; p = p.parent {
		dy += p.translateY
	}
	return dy
}

// Reads.

// OffsetRect returns the layout box relative to the content container,
// ignoring transforms.
func (e *Element) OffsetRect() Rect {
	e.doc.read()
	return e.box
}

// BoundingClientRect returns the box in viewport coordinates, including
// the translateY of e and its ancestors.
func (e *Element) BoundingClientRect() Rect {
	e.doc.read()
	r := e.box
	r.Y += e.Offset()
	return r
}

// Writes.

func (e *Element) SetOpacity(v float64) {
	e.doc.write()
	e.opacity = v
}

func (e *Element) SetTranslateY(v float64) {
	e.doc.write()
	e.translateY = v
}

func (e *Element) SetHeight(v float64) {
	e.doc.write()
	if e.style.Height != v {
		e.style.Height = v
		e.doc.invalidate()
	}
}

func (e *Element) SetStyle(s Style) {
	e.doc.write()
	e.style = s
	e.doc.invalidate()
}

func (e *Element) SetText(s string) {
	e.doc.write()
	if e.text != s {
		e.text = s
		e.doc.invalidate()
	}
}

func (e *Element) String() string {
	var b strings.Builder
	b.WriteString(e.kind.String())
	if e.tag != "" {
		b.WriteString("<" + e.tag + ">")
	}
	if e.text != "" {
		b.WriteString(" " + strconv.Quote(e.text))
	}
	return b.String()
}
