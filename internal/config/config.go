package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/scrollfield/internal/particles"
	"github.com/san-kum/scrollfield/internal/render"
	"github.com/san-kum/scrollfield/internal/reveal"
	"github.com/san-kum/scrollfield/internal/smoothing"
)

const (
	DefaultWidth     = 1280
	DefaultHeight    = 800
	DefaultFPS       = 60
	DefaultParticles = 1500
	// DefaultWheelStep is the scroll distance of one wheel notch in pixels.
	DefaultWheelStep       = 100.0
	DefaultPersistInterval = time.Second
)

type Config struct {
	Window    WindowConfig     `yaml:"window"`
	Scroll    ScrollConfig     `yaml:"scroll"`
	Smoothing smoothing.Params `yaml:"smoothing"`
	Particles ParticleConfig   `yaml:"particles"`
	Reveal    reveal.Params    `yaml:"reveal"`
	Quads     QuadConfig       `yaml:"quads"`
	Page      PageConfig       `yaml:"page"`
	Log       LogConfig        `yaml:"log"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
	HiDPI  bool   `yaml:"hidpi"`
}

type ScrollConfig struct {
	WheelStep       float64       `yaml:"wheel_step"`
	PersistInterval time.Duration `yaml:"persist_interval"`
	// SessionDir and SessionID default to the runtime dir and the parent
	// process id.
	SessionDir string `yaml:"session_dir"`
	SessionID  string `yaml:"session_id"`
}

type ParticleConfig struct {
	Count   int    `yaml:"count"`
	Variant string `yaml:"variant"`

	particles.Params `yaml:",inline"`
}

type QuadConfig struct {
	PhaseScale float64 `yaml:"phase_scale"`
}

type PageConfig struct {
	// Path is a YAML page description. Empty uses the built-in page.
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "scrollfield",
			Width:  DefaultWidth,
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			HiDPI:  true,
		},
		Scroll: ScrollConfig{
			WheelStep:       DefaultWheelStep,
			PersistInterval: DefaultPersistInterval,
		},
		Smoothing: smoothing.DefaultParams(),
		Particles: ParticleConfig{
			Count:   DefaultParticles,
			Variant: render.VariantGlow,
			Params:  particles.DefaultParams(),
		},
		Reveal: reveal.DefaultParams(),
		Quads:  QuadConfig{PhaseScale: render.PhaseScale},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path over a copy of base.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the host-level settings. Module parameters are checked by
// the modules when they load.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Window.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Window.FPS)
	case c.Particles.Count < 0:
		return fmt.Errorf("%w: particle count %d", ErrInvalid, c.Particles.Count)
	case c.Particles.Variant != render.VariantGlow && c.Particles.Variant != render.VariantInk:
		return fmt.Errorf("%w: particle variant %q", ErrInvalid, c.Particles.Variant)
	case c.Smoothing.Kind != smoothing.KindEase && c.Smoothing.Kind != smoothing.KindSpring:
		return fmt.Errorf("%w: smoothing kind %q", ErrInvalid, c.Smoothing.Kind)
	case c.Scroll.WheelStep <= 0:
		return fmt.Errorf("%w: wheel step %f", ErrInvalid, c.Scroll.WheelStep)
	}
	return nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
