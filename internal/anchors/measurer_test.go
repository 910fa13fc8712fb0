package anchors

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/scrollfield/internal/dom"
)

func setup(n int) (*dom.Document, []*dom.Element) {
	doc := dom.NewDocument(400, 300, nil)
	doc.Root().SetStyle(dom.Style{Padding: 10})
	var els []*dom.Element
	for i := 0; i < n; i++ {
		el := doc.Root().Append(doc.CreateElement(dom.Placeholder, "div"))
		el.SetStyle(dom.Style{Height: 50, MarginBottom: 20})
		els = append(els, el)
	}
	doc.Flush()
	return doc, els
}

func TestMountMeasures(t *testing.T) {
	g := NewWithT(t)
	doc, els := setup(3)
	m := NewMeasurer(doc, els, nil)
	m.Mount()

	g.Expect(m.Rects()).To(Equal([]Rect{
		{X: 10, Y: 10, W: 380, H: 50},
		{X: 10, Y: 80, W: 380, H: 50},
		{X: 10, Y: 150, W: 380, H: 50},
	}))
}

func TestRectsDoesNotMeasure(t *testing.T) {
	doc, els := setup(2)
	m := NewMeasurer(doc, els, nil)
	m.Mount()

	doc.ResetStats()
	for i := 0; i < 10; i++ {
		m.Rects()
	}
	if m.Measures() != 1 || doc.Stats().Reads != 0 {
		t.Errorf("expected no extra measurement, got %d measures and %d reads", m.Measures(), doc.Stats().Reads)
	}
}

func TestObservedSizeChange(t *testing.T) {
	doc, els := setup(2)
	m := NewMeasurer(doc, els, nil)
	m.Mount()
	doc.Flush()
	base := m.Measures()

	els[0].SetHeight(100)
	doc.Flush()

	if m.Measures() != base+1 {
		t.Fatalf("expected one re-measure, got %d", m.Measures()-base)
	}
	if got := m.Rects()[1].Y; got != 130 {
		t.Errorf("expected second anchor at y=130, got %f", got)
	}
}

func TestResizeRemeasures(t *testing.T) {
	doc, els := setup(1)
	m := NewMeasurer(doc, els, nil)
	m.Mount()

	doc.SetViewport(800, 600)
	m.Resize()
	if w := m.Rects()[0].W; w != 780 {
		t.Errorf("expected width 780 after resize, got %f", w)
	}
}

func TestTransformsIgnored(t *testing.T) {
	doc, els := setup(1)
	m := NewMeasurer(doc, els, nil)
	m.Mount()

	doc.Root().SetTranslateY(-500)
	m.Measure()
	if y := m.Rects()[0].Y; y != 10 {
		t.Errorf("expected content-space y 10, got %f", y)
	}
}

func TestUnmountStopsObserving(t *testing.T) {
	doc, els := setup(1)
	m := NewMeasurer(doc, els, nil)
	m.Mount()
	doc.Flush()
	m.Unmount()
	base := m.Measures()

	els[0].SetHeight(10)
	doc.Flush()
	if m.Measures() != base {
		t.Errorf("expected no measure after unmount, got %d", m.Measures()-base)
	}
}
