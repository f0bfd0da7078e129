package ui

import (
	"github.com/charmbracelet/lipgloss"

	"litedb/pkg/ui/base"
)

// theme holds every style the checker renders with, derived from one palette.
type theme struct {
	palette base.ColorPalette

	app       lipgloss.Style
	title     lipgloss.Style
	badge     lipgloss.Style
	counts    lipgloss.Style
	rule      lipgloss.Style
	label     lipgloss.Style
	editor    lipgloss.Style
	ast       lipgloss.Style
	statusBar lipgloss.Style
	okBadge   lipgloss.Style
	okText    lipgloss.Style
	errBadge  lipgloss.Style
	errText   lipgloss.Style
	errPanel  lipgloss.Style
	hint      lipgloss.Style
	helpPanel lipgloss.Style
}

func newTheme(p base.ColorPalette) theme {
	badge := func(bg lipgloss.Color, fg lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Background(bg).Foreground(fg).Bold(true).Padding(0, 1)
	}

	return theme{
		palette: p,

		app:    lipgloss.NewStyle().Background(p.Background).Foreground(p.Text).Padding(1, 2),
		title:  badge(p.Primary, p.Text).Padding(0, 2).MarginBottom(1),
		badge:  badge(p.Secondary, p.Background).MarginRight(2),
		counts: lipgloss.NewStyle().Foreground(p.TextDim),
		rule:   lipgloss.NewStyle().Foreground(p.Border),
		label:  lipgloss.NewStyle().Foreground(p.Primary).Bold(true),

		editor: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Primary).
			Padding(0, 1),
		ast: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Border).
			Padding(0, 1),
		statusBar: lipgloss.NewStyle().Background(p.Surface).Foreground(p.TextDim).Padding(0, 1),

		okBadge:  badge(p.Accent, p.Background),
		okText:   lipgloss.NewStyle().Foreground(p.Accent).Padding(1, 0),
		errBadge: badge(p.Error, p.Text),
		errText:  lipgloss.NewStyle().Foreground(p.Error),
		errPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Error).
			Padding(0, 1),
		hint: lipgloss.NewStyle().Foreground(p.Warning).Italic(true),
		helpPanel: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.Primary).
			Background(p.Surface).
			Padding(1, 2),
	}
}

var styles = newTheme(base.DarkPalette)
