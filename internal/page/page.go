package page

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/scrollfield/internal/dom"
)

const (
	// AttrAnimated marks a text element whose words are revealed on scroll.
	AttrAnimated = "data-animated"
	// AttrWordIndex holds a word's position within its animated text.
	AttrWordIndex = "data-word-index"
	// AttrSlot holds a placeholder's anchor slot id.
	AttrSlot = "data-slot"
	// AttrSection names the section a block belongs to.
	AttrSection = "data-section"

	// WordYOffset is the initial downward offset of an unrevealed word.
	WordYOffset = 20
)

var ErrInvalidBlock = errors.New("invalid block")

//go:embed default.yaml
var defaultDescription []byte

type Block struct {
	Kind      string  `yaml:"kind"`
	Text      string  `yaml:"text,omitempty"`
	Size      float64 `yaml:"size,omitempty"`
	Animated  bool    `yaml:"animated,omitempty"`
	Height    float64 `yaml:"height,omitempty"`
	Width     float64 `yaml:"width,omitempty"`
	MarginTop float64 `yaml:"margin_top,omitempty"`
}

type Section struct {
	Name         string  `yaml:"name"`
	MinHeight    float64 `yaml:"min_height,omitempty"`
	MarginBottom float64 `yaml:"margin_bottom,omitempty"`
	Blocks       []Block `yaml:"blocks"`
}

// Description is the YAML form of a page.
type Description struct {
	Padding  float64   `yaml:"padding"`
	Sections []Section `yaml:"sections"`
}

// Page is a built document with the elements other components hook into.
type Page struct {
	Doc *dom.Document

	Sections []*dom.Element
	// Animated holds the text elements split into words, in document order.
	Animated []*dom.Element
	// Placeholders are ordered by slot id.
	Placeholders []*dom.Element
}

func Default() (Description, error) {
	return Parse(defaultDescription)
}

func Load(path string) (Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Description{}, err
	}
	return Parse(data)
}

func Parse(data []byte) (Description, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return Description{}, fmt.Errorf("parse page: %w", err)
	}
	return desc, desc.validate()
}

func (d Description) validate() error {
	for si, s := range d.Sections {
		for bi, b := range s.Blocks {
			switch b.Kind {
			case "heading", "text":
				if strings.TrimSpace(b.Text) == "" {
					return fmt.Errorf("%w: section %d block %d: empty text", ErrInvalidBlock, si, bi)
				}
			case "placeholder":
				if b.Height <= 0 {
					return fmt.Errorf("%w: section %d block %d: placeholder needs a height", ErrInvalidBlock, si, bi)
				}
			default:
				return fmt.Errorf("%w: section %d block %d: unknown kind %q", ErrInvalidBlock, si, bi, b.Kind)
			}
		}
	}
	return nil
}

// Build appends the description's sections to doc's content container.
// Animated text is split into word elements that start hidden and offset.
func Build(doc *dom.Document, desc Description) (*Page, error) {
	if err := desc.validate(); err != nil {
		return nil, err
	}
	p := &Page{Doc: doc}

	root := doc.Root()
	root.SetStyle(dom.Style{Padding: desc.Padding})

	for _, s := range desc.Sections {
		sec := root.Append(doc.CreateElement(dom.Block, "section"))
		sec.SetAttr(AttrSection, s.Name)
		sec.SetStyle(dom.Style{MinHeight: s.MinHeight, MarginBottom: s.MarginBottom})
		p.Sections = append(p.Sections, sec)

		for _, b := range s.Blocks {
			p.buildBlock(sec, b)
		}
	}
	doc.Flush()
	return p, nil
}

func (p *Page) buildBlock(sec *dom.Element, b Block) {
	doc := p.Doc
	switch b.Kind {
	case "placeholder":
		el := sec.Append(doc.CreateElement(dom.Placeholder, "div"))
		el.SetStyle(dom.Style{Height: b.Height, Width: b.Width, MarginTop: b.MarginTop})
		el.SetAttr(AttrSlot, strconv.Itoa(len(p.Placeholders)))
		p.Placeholders = append(p.Placeholders, el)
		return
	}

	tag := "p"
	if b.Kind == "heading" {
		tag = "h2"
	}
	if !b.Animated {
		el := sec.Append(doc.CreateText(tag, b.Text))
		el.SetStyle(dom.Style{FontSize: b.Size, MarginTop: b.MarginTop})
		return
	}

	el := sec.Append(doc.CreateElement(dom.Text, tag))
	el.SetStyle(dom.Style{FontSize: b.Size, MarginTop: b.MarginTop})
	el.SetAttr(AttrAnimated, "")
	for i, w := range strings.Fields(b.Text) {
		word := el.Append(doc.CreateWord(w))
		word.SetAttr(AttrWordIndex, strconv.Itoa(i))
		word.SetOpacity(0)
		word.SetTranslateY(WordYOffset)
	}
	p.Animated = append(p.Animated, el)
}
