package frame

import (
	"errors"
	"strconv"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/scrollfield/internal/page"
	"github.com/san-kum/scrollfield/internal/scroll"
)

const frameDt = 16 * time.Millisecond

var _ = Describe("Scheduler", func() {
	var h *harness

	AfterEach(func() {
		if h != nil {
			h.sched.Stop()
		}
	})

	Describe("initialization", func() {
		BeforeEach(func() {
			h = newHarness(harnessOpts{stored: "300"})
		})

		It("starts uninitialized and requests one callback on Start", func() {
			Expect(h.sched.State()).To(Equal(Uninitialized))
			Expect(h.sched.Start()).To(Succeed())
			Expect(h.sched.State()).To(Equal(Initializing))
			Expect(h.queue.Pending()).To(Equal(1))

			Expect(h.sched.Start()).To(Succeed())
			Expect(h.queue.Pending()).To(Equal(1))
		})

		It("places content at the restored position before the modules load", func() {
			Expect(h.sched.Start()).To(Succeed())
			Expect(h.doc.Root().TranslateY()).To(Equal(-300.0))
			Expect(h.doc.ScrollLocked()).To(BeTrue())
		})

		It("polls without drawing while loads are pending", func() {
			Expect(h.sched.Start()).To(Succeed())
			for i := 0; i < 5; i++ {
				Expect(h.tick(frameDt)).To(Equal(1))
			}
			Expect(h.sched.State()).To(Equal(Initializing))
			Expect(h.sched.Stats().InitFrames).To(Equal(5))
			Expect(h.rec.Draws()).To(BeZero())
			Expect(h.queue.Pending()).To(Equal(1))
		})

		It("runs the first frame as soon as both modules are ready", func() {
			h.running()

			v := h.sched.View()
			Expect(v.Current).To(Equal(300.0))
			Expect(v.Velocity).To(BeZero())
			Expect(h.sched.Stats().Frames).To(Equal(1))
			Expect(h.sched.Stats().LastDt).To(Equal(NominalDt))
			Expect(h.rec.Points).To(HaveLen(1))
			Expect(h.rec.Quads).To(HaveLen(1))
			Expect(h.rec.Points[0].Count).To(Equal(64))
		})

		It("stops and reports a failed load", func() {
			h = newHarness(harnessOpts{loadErr: errors.New("no module")})
			Expect(h.sched.Start()).To(Succeed())
			h.load()
			h.tick(frameDt)

			Expect(h.sched.State()).To(Equal(Stopped))
			Expect(h.sched.Err()).To(MatchError(ContainSubstring("no module")))
			Expect(h.rec.Draws()).To(BeZero())
			Expect(h.queue.Pending()).To(BeZero())
		})
	})

	Describe("running frames", func() {
		BeforeEach(func() {
			h = newHarness(harnessOpts{})
			h.running()
		})

		It("draws particles before quads each frame", func() {
			Expect(h.rec.Calls).To(Equal([]string{"clear", "points", "clear", "quads"}))
		})

		It("keeps exactly one callback pending", func() {
			for i := 0; i < 10; i++ {
				h.tick(frameDt)
				Expect(h.queue.Pending()).To(Equal(1))
			}
		})

		It("derives dt from consecutive timestamps", func() {
			h.tick(20 * time.Millisecond)
			Expect(h.sched.Stats().LastDt).To(BeNumerically("~", 0.020, 1e-9))
		})

		It("moves content by the smoothed position", func() {
			h.ctrl.Wheel(400)
			h.tick(frameDt)

			v := h.sched.View()
			Expect(v.Target).To(Equal(400.0))
			Expect(v.Current).To(BeNumerically(">", 0))
			Expect(v.Current).To(BeNumerically("<", 400))
			Expect(h.doc.Root().TranslateY()).To(Equal(-v.Current))
			Expect(h.rec.Quads[len(h.rec.Quads)-1].Uniforms.Scroll).To(Equal(float32(v.Current)))
		})

		It("skips document writes while the position is settled", func() {
			skipped := h.sched.Stats().SkippedDOM
			h.tick(frameDt)
			h.tick(frameDt)
			Expect(h.sched.Stats().SkippedDOM).To(Equal(skipped + 2))

			h.ctrl.Wheel(100)
			h.tick(frameDt)
			Expect(h.sched.Stats().SkippedDOM).To(Equal(skipped + 2))
		})

		It("reads geometry before writing styles within a frame", func() {
			h.ctrl.Wheel(200)
			h.doc.ResetStats()
			h.tick(frameDt)
			// the content transform write precedes the reveal reads once
			Expect(h.doc.Stats().ReadAfterWrite).To(Equal(1))
		})

		It("reveals words of sections above the trigger line", func() {
			first := h.page.Animated[0].Children()[0]
			Expect(first.Opacity()).To(Equal(1.0))

			_, ok := first.Attr(page.AttrWordIndex)
			Expect(ok).To(BeTrue())
		})

		It("persists the target on a throttled schedule and on stop", func() {
			h.ctrl.Wheel(250)
			h.sched.Stop()
			v, err := h.store.Get(scroll.StorageKey)
			Expect(err).NotTo(HaveOccurred())
			Expect(strconv.ParseFloat(v, 64)).To(Equal(250.0))
		})
	})

	Describe("teardown", func() {
		BeforeEach(func() {
			h = newHarness(harnessOpts{})
			h.running()
		})

		It("stops without drawing when the particle handle is disposed mid-frame", func() {
			draws := h.rec.Draws()
			h.sched.Particles().Dispose()
			h.tick(frameDt)

			Expect(h.sched.State()).To(Equal(Stopped))
			Expect(h.rec.Draws()).To(Equal(draws))
			Expect(h.queue.Pending()).To(BeZero())
		})

		It("stops without drawing when the smoothing handle is disposed", func() {
			draws := h.rec.Draws()
			h.sched.Smoothing().Dispose()
			h.tick(frameDt)

			Expect(h.sched.State()).To(Equal(Stopped))
			Expect(h.rec.Draws()).To(Equal(draws))
		})

		It("cancels the pending callback on Stop", func() {
			h.sched.Stop()
			Expect(h.queue.Pending()).To(BeZero())
			Expect(h.tick(frameDt)).To(BeZero())
			Expect(h.sched.Start()).To(MatchError(ErrStopped))
		})

		It("releases the native scroll lock on Stop", func() {
			h.sched.Stop()
			Expect(h.doc.ScrollLocked()).To(BeFalse())
		})
	})

	It("ignores callbacks that land after Stop", func() {
		leaky := &leakyPlatform{}
		h = newHarness(harnessOpts{platform: leaky})
		Expect(h.sched.Start()).To(Succeed())
		h.load()
		leaky.cbs[0](0)
		Expect(h.sched.State()).To(Equal(Running))

		draws := h.rec.Draws()
		late := leaky.cbs[len(leaky.cbs)-1]
		h.sched.Stop()
		late(time.Second)

		Expect(h.rec.Draws()).To(Equal(draws))
		Expect(h.sched.State()).To(Equal(Stopped))
	})

	Describe("resize", func() {
		BeforeEach(func() {
			h = newHarness(harnessOpts{})
			h.running()
		})

		It("updates backing store, max scroll and anchors but keeps the particle handle", func() {
			handle := h.sched.Particles().Handle()
			oldWidth := h.measurer.Rects()[0].W

			h.sched.Resize(1200, 400, 2)

			w, hh := h.rec.Backing()
			Expect(w).To(Equal(2400))
			Expect(hh).To(Equal(800))
			Expect(h.ctrl.Max()).To(Equal(h.doc.ScrollHeight() - 400))
			Expect(h.measurer.Rects()[0].W).To(BeNumerically(">", oldWidth))
			Expect(h.sched.Particles().Handle()).To(Equal(handle))

			h.tick(frameDt)
			Expect(h.sched.State()).To(Equal(Running))
			last := h.rec.Points[len(h.rec.Points)-1]
			Expect(last.Count).To(Equal(64))
			Expect(last.Resolution).To(Equal([2]float32{1200, 400}))
		})
	})

	Describe("content size", func() {
		BeforeEach(func() {
			h = newHarness(harnessOpts{})
			h.running()
		})

		It("recomputes max scroll when content grows", func() {
			before := h.ctrl.Max()

			h.page.Placeholders[0].SetHeight(5000)
			h.tick(frameDt)

			Expect(h.ctrl.Max()).To(BeNumerically(">", before+4000))
			Expect(h.ctrl.Max()).To(Equal(h.doc.ScrollHeight() - 600))

			h.ctrl.Wheel(1e6)
			Expect(h.ctrl.Target()).To(Equal(h.ctrl.Max()))
		})

		It("clamps the target when content shrinks", func() {
			h.ctrl.Wheel(1e6)
			end := h.ctrl.Target()

			h.page.Placeholders[0].SetHeight(10)
			h.tick(frameDt)

			Expect(h.ctrl.Max()).To(BeNumerically("<", end))
			Expect(h.ctrl.Target()).To(Equal(h.ctrl.Max()))
		})

		It("stops following content after Stop", func() {
			h.sched.Stop()
			before := h.ctrl.Max()

			h.page.Placeholders[0].SetHeight(5000)
			h.doc.Flush()

			Expect(h.ctrl.Max()).To(Equal(before))
		})
	})
})
