package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/scrollfield/internal/render"
)

var (
	particleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("61"))
	hotStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("218"))

	statusBar = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Background(lipgloss.Color("236"))
	statusKey = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("236")).
			Bold(true)
	keyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("242")).
		Italic(true)
)

// textLevels maps word opacity to the 256-colour grey ramp, from the
// background up to white.
var textLevels = func() []lipgloss.Style {
	levels := make([]lipgloss.Style, 20)
	for i := range levels {
		levels[i] = lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprint(236 + i)))
	}
	return levels
}()

func textStyle(opacity float64) lipgloss.Style {
	i := int(opacity*float64(len(textLevels)-1) + 0.5)
	return textLevels[min(max(i, 0), len(textLevels)-1)]
}

// quadStyles colours each pattern variant after its palette at phase 0.
var quadStyles = func() []lipgloss.Style {
	styles := make([]lipgloss.Style, render.Variants)
	for v := range styles {
		r, g, b := render.Pattern(v, 0.5, 0.5, 0)
		hex := fmt.Sprintf("#%02x%02x%02x", int(r*255), int(g*255), int(b*255))
		styles[v] = lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
	}
	return styles
}()

// shades maps pattern brightness to a fill character.
var shades = []rune{' ', '░', '▒', '▓', '█'}
