package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/rezkam/tasktrack/internal/config"
	"github.com/rezkam/tasktrack/internal/domain"
)

type styles struct {
	renderer *lipgloss.Renderer

	header  lipgloss.Style
	index   lipgloss.Style
	muted   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style

	overdue  lipgloss.Style
	dueToday lipgloss.Style
	upcoming lipgloss.Style
}

// newStyles builds the palette for theme. Colors are dropped when out is
// not a terminal.
func newStyles(theme config.Theme, out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	r.SetHasDarkBackground(theme != config.ThemeLight)

	color := func(light, dark string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: light, Dark: dark})
	}
	return styles{
		renderer: r,
		header:   color("#1A1A1A", "#CCCCCC").Bold(true),
		index:    r.NewStyle().Foreground(lipgloss.Color("243")),
		muted:    r.NewStyle().Faint(true),
		success:  color("#007A3D", "#5FD787"),
		warning:  color("#B35900", "#FFAF5F"),
		overdue:  color("#B00020", "#FF5F5F"),
		dueToday: color("#007A3D", "#5FD787"),
		upcoming: color("#8A6D00", "#FFD75F"),
	}
}

// status styles a deadline classification.
func (s styles) status(st domain.DeadlineStatus) lipgloss.Style {
	switch st {
	case domain.DeadlineOverdue:
		return s.overdue
	case domain.DeadlineDueToday:
		return s.dueToday
	default:
		return s.upcoming
	}
}
