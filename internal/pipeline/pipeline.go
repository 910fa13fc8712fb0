// Package pipeline assembles the document, scroll controller, module loaders
// and renderers into a frame scheduler for one host.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/anchors"
	"github.com/san-kum/scrollfield/internal/config"
	"github.com/san-kum/scrollfield/internal/dom"
	"github.com/san-kum/scrollfield/internal/frame"
	"github.com/san-kum/scrollfield/internal/loader"
	"github.com/san-kum/scrollfield/internal/logging"
	"github.com/san-kum/scrollfield/internal/page"
	"github.com/san-kum/scrollfield/internal/particles"
	"github.com/san-kum/scrollfield/internal/render"
	"github.com/san-kum/scrollfield/internal/reveal"
	"github.com/san-kum/scrollfield/internal/scroll"
	"github.com/san-kum/scrollfield/internal/session"
	"github.com/san-kum/scrollfield/internal/smoothing"
)

// Modules holds the memoized module loads. One value is shared by every
// pipeline in the process.
type Modules struct {
	Smoothing *loader.Memo[*smoothing.Module]
	Particles *loader.Memo[*particles.Module]
}

func NewModules(cfg *config.Config) Modules {
	sp, pp := cfg.Smoothing, cfg.Particles.Params
	return Modules{
		Smoothing: loader.New(func(ctx context.Context) (*smoothing.Module, error) {
			return smoothing.Load(ctx, sp)
		}),
		Particles: loader.New(func(ctx context.Context) (*particles.Module, error) {
			return particles.Load(ctx, pp)
		}),
	}
}

type Options struct {
	Platform frame.Platform
	// Below and Above are the particle and quad surfaces.
	Below, Above render.Device
	Measurer     dom.TextMeasurer
	Store        session.Store
	// Lock defaults to the document.
	Lock    scroll.Lock
	Clock   scroll.Clock
	Modules *Modules
	// Viewport defaults to the configured window size.
	Viewport [2]float64
	DPR      float64
	Logger   *zap.Logger
}

type Pipeline struct {
	Doc        *dom.Document
	Page       *page.Page
	Controller *scroll.Controller
	Anchors    *anchors.Measurer
	Reveal     *reveal.Animator
	Points     *render.ParticleRenderer
	Quads      *render.QuadRenderer
	Scheduler  *frame.Scheduler
}

// New builds the page described by cfg and wires a scheduler around it.
// The scheduler is not started.
func New(cfg *config.Config, opts Options) (*Pipeline, error) {
	log := logging.OrNop(opts.Logger)

	desc, err := description(cfg)
	if err != nil {
		return nil, err
	}

	vw, vh := opts.Viewport[0], opts.Viewport[1]
	if vw <= 0 || vh <= 0 {
		vw, vh = float64(cfg.Window.Width), float64(cfg.Window.Height)
	}
	doc := dom.NewDocument(vw, vh, opts.Measurer)
	pg, err := page.Build(doc, desc)
	if err != nil {
		return nil, fmt.Errorf("build page: %w", err)
	}

	points, err := render.NewParticleRenderer(opts.Below, cfg.Particles.Variant)
	if err != nil {
		return nil, fmt.Errorf("particle renderer: %w", err)
	}
	quads, err := render.NewQuadRenderer(opts.Above)
	if err != nil {
		return nil, fmt.Errorf("quad renderer: %w", err)
	}
	quads.SetPhaseScale(cfg.Quads.PhaseScale)

	mods := opts.Modules
	if mods == nil {
		m := NewModules(cfg)
		mods = &m
	}

	p := &Pipeline{
		Doc:  doc,
		Page: pg,
		Controller: scroll.NewController(doc, scroll.Options{
			Store:           opts.Store,
			Clock:           opts.Clock,
			PersistInterval: cfg.Scroll.PersistInterval,
			Logger:          log,
		}),
		Anchors: anchors.NewMeasurer(doc, pg.Placeholders, log),
		Reveal:  reveal.New(doc, cfg.Reveal, log),
		Points:  points,
		Quads:   quads,
	}

	p.Scheduler, err = frame.New(frame.Deps{
		Platform:   opts.Platform,
		Doc:        doc,
		Controller: p.Controller,
		Lock:       opts.Lock,
		Smoothing:  mods.Smoothing,
		Particles:  mods.Particles,
		Reveal:     p.Reveal,
		Anchors:    p.Anchors,
		Points:     points,
		Quads:      quads,
		Count:      cfg.Particles.Count,
		Viewport:   [2]float64{vw, vh},
		PixelRate:  opts.DPR,
		Logger:     log,
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func description(cfg *config.Config) (page.Description, error) {
	if cfg.Page.Path == "" {
		return page.Default()
	}
	desc, err := page.Load(cfg.Page.Path)
	if err != nil {
		return page.Description{}, fmt.Errorf("load page %s: %w", cfg.Page.Path, err)
	}
	return desc, nil
}
