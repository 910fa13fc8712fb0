package particles

import (
	"sync"
	"testing"

	. "github.com/onsi/gomega"
)

func TestAdapterStep(t *testing.T) {
	g := NewWithT(t)
	a := NewAdapter(newModule(t), 64, 640, 480, nil)

	buf, ok := a.Step(1.0/60, -9999, -9999)
	g.Expect(ok).To(BeTrue())
	g.Expect(buf.Count).To(Equal(64))
	g.Expect(buf.Positions).To(HaveLen(128))
	g.Expect(buf.Velocities).To(HaveLen(128))
}

func TestAdapterRefetchesAfterResize(t *testing.T) {
	g := NewWithT(t)
	a := NewAdapter(newModule(t), 8, 100, 100, nil)

	first, _ := a.Step(0.016, 0, 0)
	g.Expect(a.Resize(300, 300)).To(BeTrue())
	second, ok := a.Step(0.016, 0, 0)
	g.Expect(ok).To(BeTrue())
	g.Expect(&second.Positions[0]).NotTo(BeIdenticalTo(&first.Positions[0]))
	g.Expect(a.Count()).To(Equal(8))
}

func TestAdapterStopsAfterDispose(t *testing.T) {
	g := NewWithT(t)
	a := NewAdapter(newModule(t), 8, 100, 100, nil)
	a.Dispose()

	_, ok := a.Step(0.016, 0, 0)
	g.Expect(ok).To(BeFalse())
	g.Expect(a.Resize(10, 10)).To(BeFalse())
}

func TestDisposeRacesStep(t *testing.T) {
	a := NewAdapter(newModule(t), 256, 100, 100, nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Dispose()
	}()
	for i := 0; i < 100; i++ {
		if _, ok := a.Step(0.016, 50, 50); !ok {
			break
		}
	}
	wg.Wait()

	if _, ok := a.Step(0.016, 0, 0); ok {
		t.Error("expected step to fail once disposed")
	}
}
