package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	brandColor   = lipgloss.Color("#2E7D32")
	accentColor  = lipgloss.Color("#8BC34A")
	warningColor = lipgloss.Color("#FFC107")
	mutedColor   = lipgloss.Color("#9E9E9E")
)

type styles struct {
	Title  lipgloss.Style
	Status lipgloss.Style
	Muted  lipgloss.Style
	Alert  lipgloss.Style
	Panel  lipgloss.Style
	Fact   lipgloss.Style
	Cell   lipgloss.Style
	Header lipgloss.Style
}

// newStyles binds the palette to w so color output follows w's capabilities.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		Title: r.NewStyle().
			Bold(true).
			Foreground(brandColor),
		Status: r.NewStyle().
			Foreground(accentColor),
		Muted: r.NewStyle().
			Foreground(mutedColor),
		Alert: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(warningColor).
			Padding(0, 1),
		Panel: r.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(brandColor).
			Padding(0, 1),
		// Fact text is shown as received: no wrapping, tabs kept.
		Fact: r.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(accentColor).
			Padding(0, 1).
			TabWidth(lipgloss.NoTabConversion),
		Cell: r.NewStyle().
			PaddingRight(2),
		Header: r.NewStyle().
			Bold(true).
			PaddingRight(2),
	}
}
