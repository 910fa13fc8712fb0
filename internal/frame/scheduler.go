package frame

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/anchors"
	"github.com/san-kum/scrollfield/internal/dom"
	"github.com/san-kum/scrollfield/internal/loader"
	"github.com/san-kum/scrollfield/internal/logging"
	"github.com/san-kum/scrollfield/internal/particles"
	"github.com/san-kum/scrollfield/internal/render"
	"github.com/san-kum/scrollfield/internal/reveal"
	"github.com/san-kum/scrollfield/internal/scroll"
	"github.com/san-kum/scrollfield/internal/smoothing"
)

const (
	// SkipThreshold is the scroll change in pixels below which document
	// writes are skipped when layout is unchanged.
	SkipThreshold = 0.5

	// NominalDt is used for the first frame, which has no previous timestamp.
	NominalDt = 1.0 / 60

	// PointerOffscreen is the pointer position before any pointer input.
	PointerOffscreen = -9999

	DefaultParticleCount = 1500
)

type State int

const (
	Uninitialized State = iota
	Initializing
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// View is the scroll state of one frame. It is written once per frame and
// handed to readers by value.
type View struct {
	Target   float64
	Max      float64
	Current  float64
	Velocity float64
}

type Stats struct {
	Frames     int
	InitFrames int
	SkippedDOM int
	LastDt     float64
}

type Deps struct {
	Platform   Platform
	Doc        *dom.Document
	Controller *scroll.Controller
	// Lock defaults to Doc.
	Lock scroll.Lock

	Smoothing *loader.Memo[*smoothing.Module]
	Particles *loader.Memo[*particles.Module]

	Reveal    *reveal.Animator
	Anchors   *anchors.Measurer
	Points    *render.ParticleRenderer
	Quads     *render.QuadRenderer
	Count     int
	Viewport  [2]float64
	PixelRate float64

	Logger *zap.Logger
}

func (d Deps) validate() error {
	switch {
	case d.Platform == nil:
		return fmt.Errorf("%w: platform", ErrMissingDependency)
	case d.Doc == nil:
		return fmt.Errorf("%w: document", ErrMissingDependency)
	case d.Controller == nil:
		return fmt.Errorf("%w: scroll controller", ErrMissingDependency)
	case d.Smoothing == nil || d.Particles == nil:
		return fmt.Errorf("%w: module loader", ErrMissingDependency)
	case d.Reveal == nil || d.Anchors == nil:
		return fmt.Errorf("%w: document consumers", ErrMissingDependency)
	case d.Points == nil || d.Quads == nil:
		return fmt.Errorf("%w: renderer", ErrMissingDependency)
	}
	return nil
}

// Scheduler owns the render loop. At most one callback is pending at any
// time and it is only requested at the end of the previous one.
// It is not safe for concurrent use.
type Scheduler struct {
	d   Deps
	log *zap.Logger

	state   State
	pending ID
	armed   bool

	smooth *smoothing.Adapter
	part   *particles.Adapter

	view     View
	lastTS   time.Duration
	hasTS    bool
	applied  bool
	appliedY float64
	gen      uint64

	px, py float64
	vw, vh float64
	dpr    float64

	mounted   bool
	unobserve func()
	stats     Stats
	err       error
}

func New(d Deps) (*Scheduler, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}
	if d.Lock == nil {
		d.Lock = d.Doc
	}
	if d.Count <= 0 {
		d.Count = DefaultParticleCount
	}
	if d.PixelRate <= 0 {
		d.PixelRate = 1
	}
	vw, vh := d.Viewport[0], d.Viewport[1]
	if vw <= 0 || vh <= 0 {
		vw, vh = d.Doc.ViewportWidth(), d.Doc.ViewportHeight()
	}
	return &Scheduler{
		d:   d,
		log: logging.OrNop(d.Logger).Named("frame"),
		px:  PointerOffscreen,
		py:  PointerOffscreen,
		vw:  vw,
		vh:  vh,
		dpr: d.PixelRate,
	}, nil
}

func (s *Scheduler) State() State { return s.state }
func (s *Scheduler) View() View   { return s.view }
func (s *Scheduler) Stats() Stats { return s.stats }

// Err reports why the scheduler stopped on its own, if it did.
func (s *Scheduler) Err() error { return s.err }

// Start mounts the scroll controller, applies the restored position before
// any module has loaded, kicks off both module loads and requests the first
// callback.
func (s *Scheduler) Start() error {
	switch s.state {
	case Stopped:
		return ErrStopped
	case Initializing, Running:
		return nil
	}

	s.resizeSurfaces()
	s.d.Controller.Mount(s.d.Lock)
	s.mounted = true
	// content growing or shrinking moves the scroll bound
	s.unobserve = s.d.Doc.Observe(s.d.Doc.Root(), func(*dom.Element) {
		s.d.Controller.RecomputeMax()
	})
	s.d.Doc.Root().SetTranslateY(-s.d.Controller.Target())
	s.d.Anchors.Mount()

	s.d.Smoothing.Start()
	s.d.Particles.Start()

	s.state = Initializing
	s.log.Debug("initializing", zap.Float64("target", s.d.Controller.Target()), zap.Float64("max", s.d.Controller.Max()))
	s.schedule()
	return nil
}

// Stop cancels the pending callback, persists scroll and releases module
// handles. It is idempotent.
func (s *Scheduler) Stop() {
	if s.armed {
		s.d.Platform.CancelFrame(s.pending)
		s.armed = false
	}
	if s.mounted {
		s.unobserve()
		s.unobserve = nil
		s.d.Anchors.Unmount()
		s.d.Controller.Unmount()
		s.mounted = false
	}
	s.dispose()
	if s.state != Stopped {
		s.log.Debug("stopped", zap.Int("frames", s.stats.Frames))
	}
	s.state = Stopped
}

func (s *Scheduler) dispose() {
	if s.smooth != nil {
		s.smooth.Dispose()
	}
	if s.part != nil {
		s.part.Dispose()
	}
}

// PointerMove records the pointer in viewport pixels.
func (s *Scheduler) PointerMove(x, y float64) { s.px, s.py = x, y }

// Resize updates every consumer of the viewport. The particle handle is
// kept and rescaled.
func (s *Scheduler) Resize(vw, vh, dpr float64) {
	if dpr <= 0 {
		dpr = 1
	}
	s.vw, s.vh, s.dpr = vw, vh, dpr
	s.resizeSurfaces()
	if s.state == Stopped {
		return
	}
	s.d.Controller.RecomputeMax()
	s.d.Anchors.Resize()
	if s.part != nil && !s.part.Resize(vw, vh) {
		s.halt()
	}
}

func (s *Scheduler) resizeSurfaces() {
	s.d.Doc.SetViewport(s.vw, s.vh)
	s.d.Points.Resize(s.vw, s.vh, s.dpr)
	s.d.Quads.Resize(s.vw, s.vh, s.dpr)
}

func (s *Scheduler) schedule() {
	s.pending = s.d.Platform.RequestFrame(s.onFrame)
	s.armed = true
}

func (s *Scheduler) onFrame(ts time.Duration) {
	s.armed = false
	switch s.state {
	case Stopped, Uninitialized:
		return
	case Initializing:
		s.stats.InitFrames++
		if !s.ready() {
			if s.state == Initializing {
				s.schedule()
			}
			return
		}
	}

	s.run(ts)
	if s.state == Running {
		s.schedule()
	}
}

// ready polls both loads and, once they are done, creates the handles and
// seeds smoothing at the restored target.
func (s *Scheduler) ready() bool {
	sm, smReady, err := s.d.Smoothing.Poll()
	if err != nil {
		s.fail(fmt.Errorf("load smoothing module: %w", err))
		return false
	}
	pm, pmReady, err := s.d.Particles.Poll()
	if err != nil {
		s.fail(fmt.Errorf("load particle module: %w", err))
		return false
	}
	if !smReady || !pmReady {
		return false
	}

	s.smooth = smoothing.NewAdapter(sm, s.d.Logger)
	if !s.smooth.Seed(s.d.Controller.Target(), s.d.Controller.Max()) {
		s.halt()
		return false
	}
	s.part = particles.NewAdapter(pm, s.d.Count, s.vw, s.vh, s.d.Logger)
	s.state = Running
	s.log.Info("running", zap.Int("particles", s.part.Count()), zap.Int("init_frames", s.stats.InitFrames))
	return true
}

func (s *Scheduler) run(ts time.Duration) {
	doc := s.d.Doc
	doc.BeginFrame()

	target, bound := s.d.Controller.Target(), s.d.Controller.Max()
	cur, vel, ok := s.smooth.Frame(target, bound)
	if !ok {
		s.halt()
		return
	}
	s.view = View{Target: target, Max: bound, Current: cur, Velocity: vel}

	if !s.applied || math.Abs(cur-s.appliedY) > SkipThreshold || doc.Generation() != s.gen {
		doc.Root().SetTranslateY(-cur)
		s.d.Reveal.Update()
		s.applied, s.appliedY = true, cur
		s.gen = doc.Generation()
	} else {
		s.stats.SkippedDOM++
	}

	dt := NominalDt
	if s.hasTS {
		dt = (ts - s.lastTS).Seconds()
	}
	s.lastTS, s.hasTS = ts, true

	buf, ok := s.part.Step(dt, s.px, s.py)
	if !ok {
		s.halt()
		return
	}

	s.d.Points.Draw(buf.Positions, buf.Velocities, buf.Count)
	s.d.Quads.Draw(s.view.Current, s.d.Anchors.Rects())

	s.d.Controller.Poll()
	s.stats.Frames++
	s.stats.LastDt = dt
}

// halt stops after a handle was disposed under the loop. No further work
// or draws happen.
func (s *Scheduler) halt() {
	s.log.Debug("module handle gone, stopping loop")
	s.Stop()
}

func (s *Scheduler) fail(err error) {
	s.err = err
	s.log.Error("initialization failed", zap.Error(err))
	s.Stop()
}

// Smoothing and Particles expose the live adapters, nil before Running.
func (s *Scheduler) Smoothing() *smoothing.Adapter { return s.smooth }
func (s *Scheduler) Particles() *particles.Adapter { return s.part }
