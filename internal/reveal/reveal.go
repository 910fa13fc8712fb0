package reveal

import (
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/scrollfield/internal/dom"
	"github.com/san-kum/scrollfield/internal/logging"
	"github.com/san-kum/scrollfield/internal/page"
)

const (
	// DefaultStagger delays each word by a fraction of the reveal range.
	DefaultStagger = 0.06
	// DefaultRange is the distance in pixels over which a section reveals.
	DefaultRange = 400
	// DefaultTrigger is the fraction of viewport height at which the
	// reveal of a section starts.
	DefaultTrigger = 0.7
	DefaultYOffset = page.WordYOffset
	DefaultGain    = 3
)

type Params struct {
	Stagger float64 `yaml:"stagger"`
	Range   float64 `yaml:"range"`
	Trigger float64 `yaml:"trigger"`
	YOffset float64 `yaml:"y_offset"`
	Gain    float64 `yaml:"gain"`
}

func DefaultParams() Params {
	return Params{
		Stagger: DefaultStagger,
		Range:   DefaultRange,
		Trigger: DefaultTrigger,
		YOffset: DefaultYOffset,
		Gain:    DefaultGain,
	}
}

// Progress is the reveal of word i in a section whose top is at sectionTop
// in a viewport of height viewportH.
func (p Params) Progress(sectionTop, viewportH float64, i int) float64 {
	return p.wordProgress(p.Raw(sectionTop, viewportH), i)
}

// Raw is the section progress before staggering and clamping.
func (p Params) Raw(sectionTop, viewportH float64) float64 {
	triggerY := viewportH * p.Trigger
	return 1 - (sectionTop-triggerY)/p.Range
}

func (p Params) wordProgress(raw float64, i int) float64 {
	v := (raw - float64(i)*p.Stagger) * p.Gain
	return math.Min(math.Max(v, 0), 1)
}

type section struct {
	el    *dom.Element
	words []*dom.Element
}

// Animator drives per-word opacity and offset from section positions.
type Animator struct {
	doc      *dom.Document
	params   Params
	log      *zap.Logger
	sections []section
	raws     []float64
}

func New(doc *dom.Document, params Params, log *zap.Logger) *Animator {
	return &Animator{doc: doc, params: params, log: logging.OrNop(log).Named("reveal")}
}

// Refresh rediscovers animated sections and their words.
func (a *Animator) Refresh() {
	a.sections = a.sections[:0]
	for _, el := range a.doc.QueryAll(page.AttrAnimated) {
		s := section{el: el}
		for _, c := range el.Children() {
			if _, ok := c.Attr(page.AttrWordIndex); ok {
				s.words = append(s.words, c)
			}
		}
		a.sections = append(a.sections, s)
	}
	a.log.Debug("sections discovered", zap.Int("count", len(a.sections)))
}

func (a *Animator) Sections() int { return len(a.sections) }

// Update reads every section's position and then writes every word's
// style. No geometry is read once the first style is written.
func (a *Animator) Update() {
	if len(a.sections) == 0 {
		a.Refresh()
		if len(a.sections) == 0 {
			return
		}
	}

	vh := a.doc.ViewportHeight()
	a.raws = a.raws[:0]
	for _, s := range a.sections {
		top := s.el.BoundingClientRect().Y
		a.raws = append(a.raws, a.params.Raw(top, vh))
	}

	for si, s := range a.sections {
		raw := a.raws[si]
		for i, w := range s.words {
			p := a.params.wordProgress(raw, i)
			w.SetOpacity(p)
			w.SetTranslateY((1 - p) * a.params.YOffset)
		}
	}
}
