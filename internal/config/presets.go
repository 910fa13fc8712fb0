package config

import (
	"sort"

	"github.com/san-kum/scrollfield/internal/render"
	"github.com/san-kum/scrollfield/internal/smoothing"
)

// Presets are named looks applied over DefaultConfig.
var Presets = map[string]func(*Config){
	"glow": func(c *Config) {
		c.Particles.Variant = render.VariantGlow
	},
	"ink": func(c *Config) {
		c.Particles.Variant = render.VariantInk
		c.Particles.PointerForce = 2
		c.Quads.PhaseScale = 0.001
	},
	"springy": func(c *Config) {
		c.Smoothing.Kind = smoothing.KindSpring
		c.Smoothing.Frequency = 4
		c.Smoothing.Damping = 0.6
	},
	"calm": func(c *Config) {
		c.Smoothing.EaseFactor = 0.06
		c.Particles.Count = 600
		c.Particles.PointerRadius = 100
		c.Reveal.Stagger = 0.1
	},
	"dense": func(c *Config) {
		c.Particles.Count = 6000
		c.Particles.Stiffness = 0.02
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// Apply applies the named preset to c and reports whether it exists.
func (c *Config) Apply(name string) bool {
	apply, ok := Presets[name]
	if ok {
		apply(c)
	}
	return ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
