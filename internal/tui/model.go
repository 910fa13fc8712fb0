package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/config"
	"github.com/san-kum/scrollfield/internal/frame"
	"github.com/san-kum/scrollfield/internal/logging"
	"github.com/san-kum/scrollfield/internal/pipeline"
	"github.com/san-kum/scrollfield/internal/render"
	"github.com/san-kum/scrollfield/internal/session"
)

// One terminal cell stands for a cellW×cellH pixel block of the page.
const (
	cellW = 8
	cellH = 16
)

// TickMsg drives one display refresh.
type TickMsg time.Time

// cellMeasurer gives every rune one cell, whatever the font size.
type cellMeasurer struct{}

func (cellMeasurer) Advance(s string, size float64) float64 {
	return float64(len([]rune(s))) * cellW
}

type Options struct {
	Config  *config.Config
	Store   session.Store
	Modules *pipeline.Modules
	Logger  *zap.Logger
}

// Model is the bubbletea preview of the page: particles as braille dots,
// words in greys by opacity and anchor quads as shaded blocks.
type Model struct {
	cfg   *config.Config
	log   *zap.Logger
	queue *frame.Queue
	pipe  *pipeline.Pipeline

	below, above *cellDevice
	canvas       *Canvas

	start         time.Time
	fps           float64
	lastTick      time.Time
	width, height int
}

func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	m := Model{
		cfg:    cfg,
		log:    logging.OrNop(opts.Logger).Named("tui"),
		queue:  frame.NewQueue(),
		below:  &cellDevice{},
		above:  &cellDevice{},
		canvas: NewCanvas(80, 23),
		width:  80,
		height: 24,
		start:  time.Now(),
	}

	var err error
	m.pipe, err = pipeline.New(cfg, pipeline.Options{
		Platform: m.queue,
		Below:    m.below,
		Above:    m.above,
		Measurer: cellMeasurer{},
		Store:    opts.Store,
		Modules:  opts.Modules,
		Viewport: m.viewport(),
		DPR:      1,
		Logger:   opts.Logger,
	})
	if err != nil {
		return Model{}, err
	}
	return m, nil
}

// Run starts the scheduler, runs the program until quit and stops the
// scheduler, which persists scroll.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	if err := m.pipe.Scheduler.Start(); err != nil {
		return err
	}
	defer m.pipe.Scheduler.Stop()

	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return err
	}
	return m.pipe.Scheduler.Err()
}

func (m Model) Scheduler() *frame.Scheduler  { return m.pipe.Scheduler }
func (m Model) Pipeline() *pipeline.Pipeline { return m.pipe }

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.Window.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// viewport is the page area in pixels; the last row is the status bar.
func (m Model) viewport() [2]float64 {
	return [2]float64{float64(m.width * cellW), float64(max(m.height-1, 1) * cellH)}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctrl := m.pipe.Controller
	step := m.cfg.Scroll.WheelStep
	page := m.viewport()[1] * 0.9

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "down", "j":
			ctrl.Wheel(step)
		case "up", "k":
			ctrl.Wheel(-step)
		case "pgdown", " ", "ctrl+d":
			ctrl.Wheel(page)
		case "pgup", "ctrl+u":
			ctrl.Wheel(-page)
		case "home", "g":
			ctrl.SetTarget(-ctrl.Target())
		case "end", "G":
			ctrl.SetTarget(ctrl.Max() - ctrl.Target())
		}
	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelDown:
			ctrl.Wheel(step)
		case tea.MouseButtonWheelUp:
			ctrl.Wheel(-step)
		}
		m.pipe.Scheduler.PointerMove(float64(msg.X*cellW+cellW/2), float64(msg.Y*cellH+cellH/2))
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.canvas.Resize(m.width, max(m.height-1, 0))
		vp := m.viewport()
		m.pipe.Scheduler.Resize(vp[0], vp[1], 1)
	case TickMsg:
		now := time.Time(msg)
		if !m.lastTick.IsZero() {
			if dt := now.Sub(m.lastTick).Seconds(); dt > 0 {
				m.fps = 0.9*m.fps + 0.1/dt
			}
		}
		m.lastTick = now
		m.queue.Dispatch(now.Sub(m.start))
		m.pipe.Doc.Flush()
		if m.pipe.Scheduler.State() == frame.Stopped {
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

type cell struct {
	r     rune
	style *lipgloss.Style
}

func (m Model) View() string {
	cols, rows := m.canvas.Width, m.canvas.Height
	if cols == 0 || rows == 0 {
		return ""
	}
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, cols)
	}

	m.drawParticles(grid)
	m.drawText(grid)
	m.drawQuads(grid)

	var b strings.Builder
	for _, row := range grid {
		writeRow(&b, row)
		b.WriteByte('\n')
	}
	b.WriteString(m.statusLine())
	return b.String()
}

func (m Model) drawParticles(grid [][]cell) {
	p := m.below.points
	if !m.below.drawn || p.Resolution[0] == 0 {
		return
	}
	m.canvas.Clear()
	hot := make(map[[2]int]bool)
	sx := float64(m.canvas.Width*2) / float64(p.Resolution[0])
	sy := float64(m.canvas.Height*4) / float64(p.Resolution[1])
	for i := 0; i < p.Count; i++ {
		x, y := int(float64(p.Positions[i*2])*sx), int(float64(p.Positions[i*2+1])*sy)
		m.canvas.Set(x, y)
		if p.Speeds[i] > 0.5 {
			hot[[2]int{x / 2, y / 4}] = true
		}
	}
	for row, line := range m.canvas.Grid {
		for col, r := range line {
			if m.canvas.Empty(col, row) {
				continue
			}
			st := &particleStyle
			if hot[[2]int{col, row}] {
				st = &hotStyle
			}
			grid[row][col] = cell{r: r, style: st}
		}
	}
}

func (m Model) drawText(grid [][]cell) {
	for _, run := range m.pipe.Doc.Runs() {
		row := int(math.Floor((run.Y + run.Size/2) / cellH))
		if row < 0 || row >= len(grid) {
			continue
		}
		st := textStyle(run.Opacity)
		col := int(run.X / cellW)
		for _, r := range run.Text {
			if col >= 0 && col < len(grid[row]) {
				grid[row][col] = cell{r: r, style: &st}
			}
			col++
		}
	}
}

func (m Model) drawQuads(grid [][]cell) {
	q := m.above.quads
	if !m.above.drawn {
		return
	}
	u := q.Uniforms
	for _, inst := range q.Instances {
		top := float64(inst.Y) - float64(u.Scroll)
		r0, r1 := int(top/cellH), int((top+float64(inst.H))/cellH)
		c0, c1 := int(inst.X/cellW), int((inst.X+inst.W)/cellW)
		st := &quadStyles[int(inst.Variant)%render.Variants]
		for row := max(r0, 0); row < min(r1, len(grid)); row++ {
			for col := max(c0, 0); col < min(c1, len(grid[row])); col++ {
				uu := (float64(col-c0) + 0.5) / float64(c1-c0)
				vv := (float64(row-r0) + 0.5) / float64(r1-r0)
				r, g, b := render.Pattern(int(inst.Variant), uu, vv, float64(u.Phase))
				lum := 0.3*r + 0.59*g + 0.11*b
				grid[row][col] = cell{r: shades[min(int(lum*float64(len(shades))), len(shades)-1)], style: st}
			}
		}
	}
}

// writeRow renders runs of cells sharing a style with one Render call.
func writeRow(b *strings.Builder, row []cell) {
	var run strings.Builder
	var cur *lipgloss.Style
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur == nil {
			b.WriteString(run.String())
		} else {
			b.WriteString(cur.Render(run.String()))
		}
		run.Reset()
	}
	for _, c := range row {
		if c.style != cur {
			flush()
			cur = c.style
		}
		if c.r == 0 {
			run.WriteRune(' ')
		} else {
			run.WriteRune(c.r)
		}
	}
	flush()
}

func (m Model) statusLine() string {
	sched := m.pipe.Scheduler
	v := sched.View()
	pct := 0.0
	if v.Max > 0 {
		pct = v.Current / v.Max * 100
	}
	left := statusKey.Render(" "+strings.ToUpper(sched.State().String())+" ") +
		statusBar.Render(fmt.Sprintf(" %3.0f%%  y %.0f/%.0f  v %+.1f  %2.0f fps ", pct, v.Current, v.Max, v.Velocity, m.fps))
	hint := keyHint.Render(" j/k scroll  space page  g/G ends  q quit")
	line := left + hint
	if lipgloss.Width(line) > m.width {
		return left
	}
	return line
}
