package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/scrollfield/internal/config"
	"github.com/san-kum/scrollfield/internal/storage"
)

func smallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Window.Width = 320
	cfg.Window.Height = 240
	cfg.Particles.Count = 64
	return cfg
}

func TestSnapshotWritesImagesAndSamples(t *testing.T) {
	st := storage.New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	w, _ := ParseWheel("2:300")

	meta, err := Snapshot(context.Background(), smallConfig(), SnapshotOptions{
		Wheel:  w,
		Frames: 6,
		Every:  3,
		Start:  200,
	}, st, nil)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if meta.Kind != "snapshot" {
		t.Errorf("expected kind snapshot, got %s", meta.Kind)
	}
	if meta.Frames != 6 {
		t.Errorf("expected 6 frames, got %d", meta.Frames)
	}
	want := []string{"frame_0000.png", "frame_0003.png", "frame_0005.png"}
	if len(meta.Images) != len(want) {
		t.Fatalf("expected images %v, got %v", want, meta.Images)
	}
	for i, name := range want {
		if meta.Images[i] != name {
			t.Errorf("expected image %s, got %s", name, meta.Images[i])
		}
		if _, err := os.Stat(filepath.Join(st.Dir(meta.ID), name)); err != nil {
			t.Errorf("expected %s on disk: %v", name, err)
		}
	}

	samples, err := st.LoadSamples(meta.ID)
	if err != nil {
		t.Fatalf("load samples: %v", err)
	}
	if samples[0].Current != 200 {
		t.Errorf("expected first frame at restored 200, got %f", samples[0].Current)
	}
	if samples[2].Target <= samples[1].Target {
		t.Errorf("expected target to grow after wheel, got %f then %f", samples[1].Target, samples[2].Target)
	}
}

func TestSnapshotRejectsNoFrames(t *testing.T) {
	st := storage.New(t.TempDir())
	if _, err := Snapshot(context.Background(), smallConfig(), SnapshotOptions{}, st, nil); err == nil {
		t.Error("expected error for zero frames")
	}
}
