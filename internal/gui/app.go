package gui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/config"
	"github.com/san-kum/scrollfield/internal/frame"
	"github.com/san-kum/scrollfield/internal/logging"
	"github.com/san-kum/scrollfield/internal/pipeline"
	"github.com/san-kum/scrollfield/internal/render/gldevice"
	"github.com/san-kum/scrollfield/internal/session"
)

// Theme colors
var (
	ColBg      = rl.NewColor(8, 8, 14, 255)
	ColText    = rl.NewColor(238, 238, 244, 255)
	ColTextDim = rl.NewColor(90, 90, 100, 255)
	ColAccent  = rl.NewColor(180, 180, 200, 255)
)

type Options struct {
	Config *config.Config
	Store  session.Store
	Logger *zap.Logger
}

// App is the desktop host. It owns the window, feeds input to the scroll
// controller and dispatches one frame callback per display refresh.
type App struct {
	cfg *config.Config
	log *zap.Logger

	queue        *frame.Queue
	below, above *gldevice.Device
	pipe         *pipeline.Pipeline

	Font     rl.Font
	ownFont  bool
	locked   bool
	touching bool
	ShowHUD  bool
}

func initWindow(cfg config.WindowConfig) {
	flags := uint32(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	if cfg.HiDPI {
		flags |= rl.FlagWindowHighdpi
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed or the frame loop
// stops on its own.
func Run(opts Options) error {
	initWindow(opts.Config.Window)
	defer rl.CloseWindow()

	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()
	return app.RunLoop()
}

// NewApp builds the pipeline on the current GL context. The window must
// already be open.
func NewApp(opts Options) (*App, error) {
	a := &App{
		cfg:   opts.Config,
		log:   logging.OrNop(opts.Logger).Named("gui"),
		queue: frame.NewQueue(),
	}
	a.Font, a.ownFont = loadFont()

	var err error
	if a.below, err = gldevice.New(); err != nil {
		return nil, err
	}
	if a.above, err = gldevice.New(); err != nil {
		return nil, err
	}

	vw, vh, dpr := viewport()
	a.pipe, err = pipeline.New(a.cfg, pipeline.Options{
		Platform: a.queue,
		Below:    a.below,
		Above:    a.above,
		Measurer: fontMeasurer{font: a.Font},
		Store:    opts.Store,
		Lock:     a,
		Viewport: [2]float64{vw, vh},
		DPR:      dpr,
		Logger:   opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build pipeline: %w", err)
	}
	if err := a.pipe.Scheduler.Start(); err != nil {
		return nil, err
	}
	return a, nil
}

// LockScroll routes wheel and touch input to the scroll controller until
// the returned func is called.
func (a *App) LockScroll() func() {
	a.locked = true
	return func() { a.locked = false }
}

func (a *App) RunLoop() error {
	sched := a.pipe.Scheduler
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		a.Update()
		a.Draw()

		if sched.State() == frame.Stopped {
			if err := sched.Err(); err != nil {
				return err
			}
			a.log.Info("frame loop stopped")
			break
		}
	}
	return nil
}

// Close stops the loop, which persists scroll, and frees GL resources.
func (a *App) Close() {
	a.pipe.Scheduler.Stop()
	a.below.Close()
	a.above.Close()
	if a.ownFont {
		rl.UnloadFont(a.Font)
	}
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		vw, vh, dpr := viewport()
		a.log.Debug("resize", zap.Float64("width", vw), zap.Float64("height", vh), zap.Float64("dpr", dpr))
		a.pipe.Scheduler.Resize(vw, vh, dpr)
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		a.ShowHUD = !a.ShowHUD
	}

	if rl.IsCursorOnScreen() {
		mp := rl.GetMousePosition()
		a.pipe.Scheduler.PointerMove(float64(mp.X), float64(mp.Y))
	} else {
		a.pipe.Scheduler.PointerMove(frame.PointerOffscreen, frame.PointerOffscreen)
	}

	if !a.locked {
		return
	}
	ctrl := a.pipe.Controller
	step := a.cfg.Scroll.WheelStep

	if w := rl.GetMouseWheelMove(); w != 0 {
		ctrl.Wheel(-float64(w) * step)
	}

	if rl.GetTouchPointCount() > 0 {
		y := float64(rl.GetTouchPosition(0).Y)
		if !a.touching {
			ctrl.TouchStart(y)
			a.touching = true
		} else {
			ctrl.TouchMove(y)
		}
	} else {
		a.touching = false
	}

	page := a.pipe.Doc.ViewportHeight() * 0.9
	switch {
	case rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ):
		ctrl.Wheel(step)
	case rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK):
		ctrl.Wheel(-step)
	case rl.IsKeyPressed(rl.KeyPageDown) || rl.IsKeyPressed(rl.KeySpace):
		ctrl.Wheel(page)
	case rl.IsKeyPressed(rl.KeyPageUp):
		ctrl.Wheel(-page)
	case rl.IsKeyPressed(rl.KeyHome):
		ctrl.SetTarget(-ctrl.Target())
	case rl.IsKeyPressed(rl.KeyEnd):
		ctrl.SetTarget(ctrl.Max() - ctrl.Target())
	}
}

// Draw runs the frame callback for this refresh, then paints particles,
// document text and quads in that order.
func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.queue.Dispatch(time.Duration(rl.GetTime() * float64(time.Second)))
	a.pipe.Doc.Flush()

	a.flush(a.below)
	a.DrawDocument()
	rl.DrawRenderBatchActive()
	a.flush(a.above)

	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) flush(dev *gldevice.Device) {
	if err := dev.Flush(); err != nil {
		a.log.Warn("draw failed", zap.Error(err))
	}
}

// viewport returns the window size in logical pixels and the pixel ratio.
func viewport() (float64, float64, float64) {
	dpr := float64(rl.GetWindowScaleDPI().X)
	if dpr <= 0 {
		dpr = 1
	}
	return float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()), dpr
}
