package scroll

import (
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/logging"
	"github.com/san-kum/scrollfield/internal/session"
)

const (
	// StorageKey is the session store entry holding the scroll target.
	StorageKey = "scrollfield-scroll-y"

	DefaultPersistInterval = time.Second
)

// Extent reports the sizes max scroll is derived from.
type Extent interface {
	ScrollHeight() float64
	ViewportHeight() float64
}

// Lock suppresses native scrolling of the surface while the controller owns
// input. The returned func restores the previous behaviour.
type Lock interface {
	LockScroll() (restore func())
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

type Options struct {
	Store           session.Store
	Clock           Clock
	PersistInterval time.Duration
	Logger          *zap.Logger
}

// Controller owns the input-driven scroll target.
// It is not safe for concurrent use; all calls happen on the frame thread.
type Controller struct {
	target float64
	max    float64

	extent Extent
	store  session.Store
	clock  Clock
	log    *zap.Logger

	interval time.Duration
	deadline time.Time
	armed    bool

	touchY float64

	mounted bool
	unlock  func()
}

func NewController(extent Extent, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = systemClock{}
	}
	if opts.Store == nil {
		opts.Store = session.NewMemoryStore()
	}
	if opts.PersistInterval <= 0 {
		opts.PersistInterval = DefaultPersistInterval
	}
	return &Controller{
		extent:   extent,
		store:    opts.Store,
		clock:    opts.Clock,
		log:      logging.OrNop(opts.Logger).Named("scroll"),
		interval: opts.PersistInterval,
	}
}

func (c *Controller) Target() float64 { return c.target }
func (c *Controller) Max() float64    { return c.max }

// Mount restores the persisted target, measures the content and takes over
// native scrolling. The content must already be built so the restored target
// clamps against its real extent.
func (c *Controller) Mount(lock Lock) {
	if c.mounted {
		return
	}
	c.mounted = true
	c.Restore()
	c.RecomputeMax()
	if lock != nil {
		c.unlock = lock.LockScroll()
	}
}

// Unmount persists unconditionally and releases native scrolling.
func (c *Controller) Unmount() {
	if !c.mounted {
		return
	}
	c.mounted = false
	c.armed = false
	c.Persist()
	if c.unlock != nil {
		c.unlock()
		c.unlock = nil
	}
}

// SetTarget adds delta to the target, clamped to [0, max].
func (c *Controller) SetTarget(delta float64) {
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return
	}
	c.target = clamp(c.target+delta, 0, c.max)
	c.SchedulePersist()
}

// Wheel applies a wheel event's vertical delta in pixels.
func (c *Controller) Wheel(deltaY float64) {
	c.SetTarget(deltaY)
}

func (c *Controller) TouchStart(y float64) {
	c.touchY = y
}

// TouchMove applies the drag distance since the previous touch position.
// Dragging up scrolls content down.
func (c *Controller) TouchMove(y float64) {
	delta := c.touchY - y
	c.touchY = y
	c.SetTarget(delta)
}

// RecomputeMax derives max from content and viewport height and re-clamps
// the target.
func (c *Controller) RecomputeMax() {
	if c.extent == nil {
		return
	}
	c.max = math.Max(0, c.extent.ScrollHeight()-c.extent.ViewportHeight())
	c.target = clamp(c.target, 0, c.max)
}

// Restore loads the persisted target. Missing, unreadable or invalid values
// restore to zero.
func (c *Controller) Restore() {
	c.target = 0
	raw, err := c.store.Get(StorageKey)
	if err != nil {
		c.log.Debug("restore skipped", zap.Error(err))
		return
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		c.log.Debug("ignoring stored scroll", zap.String("value", raw))
		return
	}
	c.target = v
}

// Persist writes the target now. Failures are logged and dropped.
func (c *Controller) Persist() {
	value := strconv.FormatFloat(c.target, 'f', -1, 64)
	if err := c.store.Set(StorageKey, value); err != nil {
		c.log.Debug("persist failed", zap.Error(err))
	}
}

// SchedulePersist arms a trailing write at most once per interval.
func (c *Controller) SchedulePersist() {
	if c.armed {
		return
	}
	c.armed = true
	c.deadline = c.clock.Now().Add(c.interval)
}

// Poll performs the pending throttled write once its deadline has passed.
// Hosts call it once per loop iteration.
func (c *Controller) Poll() {
	if !c.armed || c.clock.Now().Before(c.deadline) {
		return
	}
	c.armed = false
	c.Persist()
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
