package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/san-kum/scrollfield/internal/config"
	"github.com/san-kum/scrollfield/internal/storage"
)

const scenarioYAML = `name: compare engines
description: one flick, two engines
steps:
  - name: ease
    kind: trace
    wheel: "0:600"
    frames: 90
  - name: spring
    kind: trace
    preset: springy
    wheel: "0:600"
    frames: 90
    max: 2000
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	g := NewWithT(t)

	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sc.Name).To(Equal("compare engines"))
	g.Expect(sc.Steps).To(HaveLen(2))
	g.Expect(sc.Steps[1].Preset).To(Equal("springy"))
	g.Expect(sc.Steps[1].Max).To(Equal(2000.0))
}

func TestLoadScenarioRejectsEmpty(t *testing.T) {
	if _, err := LoadScenario(writeScenario(t, "name: nothing\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestRunScenario(t *testing.T) {
	g := NewWithT(t)
	st := storage.New(t.TempDir())
	g.Expect(st.Init()).To(Succeed())

	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	g.Expect(err).NotTo(HaveOccurred())

	runs, err := RunScenario(context.Background(), sc, config.DefaultConfig(), st, nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(runs).To(HaveLen(2))
	g.Expect(runs[0].Smoothing).To(Equal("ease"))
	g.Expect(runs[1].Smoothing).To(Equal("spring"))
	g.Expect(runs[1].Preset).To(Equal("springy"))
	g.Expect(runs[0].Frames).To(Equal(90))

	listed, err := st.List()
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(listed).To(HaveLen(2))
}

func TestRunScenarioStopsAtFailingStep(t *testing.T) {
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	sc := &Scenario{Steps: []Step{
		{Name: "ok", Frames: 10, Wheel: "0:100"},
		{Name: "bad", Kind: "replay", Frames: 10},
		{Name: "never", Frames: 10},
	}}

	runs, err := RunScenario(context.Background(), sc, config.DefaultConfig(), st, nil)
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("expected ErrUnknownKind, got %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run before the failure, got %d", len(runs))
	}
}

func TestStepConfig(t *testing.T) {
	base := config.DefaultConfig()

	cfg, err := Step{Preset: "springy", Engine: "ease"}.config(base)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Smoothing.Kind != "ease" {
		t.Errorf("expected engine to override preset, got %s", cfg.Smoothing.Kind)
	}
	if base.Smoothing.Frequency == cfg.Smoothing.Frequency {
		t.Errorf("expected preset frequency to be applied")
	}

	if _, err := (Step{Preset: "nope"}).config(base); err == nil {
		t.Error("expected error for unknown preset")
	}
	if _, err := (Step{Engine: "linear"}).config(base); err == nil {
		t.Error("expected error for unknown engine")
	}
}
