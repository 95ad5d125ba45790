// Package termview renders season documents for a terminal.
package termview

import "github.com/charmbracelet/lipgloss"

var (
	navy  = lipgloss.Color("#13294B")
	green = lipgloss.Color("#1A7F37")
	red   = lipgloss.Color("#CF222E")
	muted = lipgloss.Color("#6E7781")
	amber = lipgloss.Color("#BF8700")
)

// Styles holds the lipgloss styles used by the terminal views.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Border   lipgloss.Style
	Up       lipgloss.Style
	Down     lipgloss.Style
	Flat     lipgloss.Style
	Warning  lipgloss.Style
}

// DefaultStyles returns the house palette.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(navy).
			Bold(true),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Header: lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1),
		Cell: lipgloss.NewStyle().
			Padding(0, 1),
		Border: lipgloss.NewStyle().
			Foreground(muted),
		Up:      lipgloss.NewStyle().Foreground(green),
		Down:    lipgloss.NewStyle().Foreground(red),
		Flat:    lipgloss.NewStyle().Foreground(muted),
		Warning: lipgloss.NewStyle().Foreground(amber),
	}
}
