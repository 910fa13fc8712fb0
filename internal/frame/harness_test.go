package frame

import (
	"context"
	"time"

	. "github.com/onsi/gomega"

	"github.com/san-kum/scrollfield/internal/anchors"
	"github.com/san-kum/scrollfield/internal/dom"
	"github.com/san-kum/scrollfield/internal/loader"
	"github.com/san-kum/scrollfield/internal/page"
	"github.com/san-kum/scrollfield/internal/particles"
	"github.com/san-kum/scrollfield/internal/render"
	"github.com/san-kum/scrollfield/internal/reveal"
	"github.com/san-kum/scrollfield/internal/scroll"
	"github.com/san-kum/scrollfield/internal/session"
	"github.com/san-kum/scrollfield/internal/smoothing"
)

// leakyPlatform ignores cancellation so tests can deliver a callback after
// Stop.
type leakyPlatform struct {
	cbs []Callback
}

func (p *leakyPlatform) RequestFrame(cb Callback) ID {
	p.cbs = append(p.cbs, cb)
	return ID(len(p.cbs))
}

func (p *leakyPlatform) CancelFrame(ID) {}

type harness struct {
	queue    *Queue
	doc      *dom.Document
	page     *page.Page
	store    *session.MemoryStore
	ctrl     *scroll.Controller
	rec      *render.Recorder
	measurer *anchors.Measurer
	gate     chan struct{}
	smMemo   *loader.Memo[*smoothing.Module]
	pmMemo   *loader.Memo[*particles.Module]
	sched    *Scheduler
	ts       time.Duration
}

type harnessOpts struct {
	stored   string
	platform Platform
	loadErr  error
}

func newHarness(o harnessOpts) *harness {
	h := &harness{queue: NewQueue(), gate: make(chan struct{})}

	h.doc = dom.NewDocument(800, 600, nil)
	desc, err := page.Default()
	Expect(err).NotTo(HaveOccurred())
	h.page, err = page.Build(h.doc, desc)
	Expect(err).NotTo(HaveOccurred())

	h.store = session.NewMemoryStore()
	if o.stored != "" {
		Expect(h.store.Set(scroll.StorageKey, o.stored)).To(Succeed())
	}
	h.ctrl = scroll.NewController(h.doc, scroll.Options{Store: h.store})

	gate := h.gate
	h.smMemo = loader.New(func(ctx context.Context) (*smoothing.Module, error) {
		<-gate
		return smoothing.Load(ctx, smoothing.DefaultParams())
	})
	loadErr := o.loadErr
	h.pmMemo = loader.New(func(ctx context.Context) (*particles.Module, error) {
		<-gate
		if loadErr != nil {
			return nil, loadErr
		}
		return particles.Load(ctx, particles.DefaultParams())
	})

	h.rec = render.NewRecorder()
	points, err := render.NewParticleRenderer(h.rec, render.VariantGlow)
	Expect(err).NotTo(HaveOccurred())
	quads, err := render.NewQuadRenderer(h.rec)
	Expect(err).NotTo(HaveOccurred())

	h.measurer = anchors.NewMeasurer(h.doc, h.page.Placeholders, nil)

	platform := o.platform
	if platform == nil {
		platform = h.queue
	}
	h.sched, err = New(Deps{
		Platform:   platform,
		Doc:        h.doc,
		Controller: h.ctrl,
		Smoothing:  h.smMemo,
		Particles:  h.pmMemo,
		Reveal:     reveal.New(h.doc, reveal.DefaultParams(), nil),
		Anchors:    h.measurer,
		Points:     points,
		Quads:      quads,
		Count:      64,
	})
	Expect(err).NotTo(HaveOccurred())
	return h
}

// load releases the module loads and waits for both to finish.
func (h *harness) load() {
	close(h.gate)
	_, _ = h.smMemo.Get(context.Background())
	_, _ = h.pmMemo.Get(context.Background())
}

// tick dispatches one display refresh, dt after the previous one.
func (h *harness) tick(dt time.Duration) int {
	h.ts += dt
	n := h.queue.Dispatch(h.ts)
	h.doc.Flush()
	return n
}

// running starts the scheduler, loads the modules and runs the first frame.
func (h *harness) running() {
	Expect(h.sched.Start()).To(Succeed())
	h.load()
	h.tick(16 * time.Millisecond)
	Expect(h.sched.State()).To(Equal(Running))
}
