package anchors

import (
	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/dom"
	"github.com/san-kum/scrollfield/internal/logging"
)

// Rect is a placeholder box in content pixels, relative to the content
// container. The index in the measured list is the slot id.
type Rect struct {
	X, Y, W, H float64
}

// Measurer keeps the anchor rectangles of a fixed, ordered set of
// placeholders up to date. Measurement is event driven: on Mount, on
// viewport resize and when a placeholder changes size.
type Measurer struct {
	doc          *dom.Document
	placeholders []*dom.Element
	log          *zap.Logger

	rects     []Rect
	measures  int
	unobserve []func()
}

func NewMeasurer(doc *dom.Document, placeholders []*dom.Element, log *zap.Logger) *Measurer {
	return &Measurer{
		doc:          doc,
		placeholders: placeholders,
		log:          logging.OrNop(log).Named("anchors"),
	}
}

// Mount measures once and starts observing the placeholders.
func (m *Measurer) Mount() {
	m.Measure()
	for _, el := range m.placeholders {
		if el == nil {
			continue
		}
		m.unobserve = append(m.unobserve, m.doc.Observe(el, func(*dom.Element) { m.Measure() }))
	}
}

func (m *Measurer) Unmount() {
	for _, fn := range m.unobserve {
		fn()
	}
	m.unobserve = nil
}

// Resize re-measures after a viewport change.
func (m *Measurer) Resize() { m.Measure() }

// Measure reads every placeholder's offset box into a fresh list.
func (m *Measurer) Measure() {
	rects := make([]Rect, 0, len(m.placeholders))
	for _, el := range m.placeholders {
		if el == nil {
			continue
		}
		r := el.OffsetRect()
		rects = append(rects, Rect{X: r.X, Y: r.Y, W: r.W, H: r.H})
	}
	m.rects = rects
	m.measures++
	m.log.Debug("anchors measured", zap.Int("count", len(rects)))
}

// Rects returns the cached list. It never measures; callers must not
// modify the result.
func (m *Measurer) Rects() []Rect { return m.rects }

// Measures counts how many times the list was recomputed.
func (m *Measurer) Measures() int { return m.measures }
