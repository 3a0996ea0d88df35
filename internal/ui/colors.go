package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/cook/internal/favorites"
)

var styles = NewPalette("#F25D94", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	label lipgloss.Style
	focus lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		label: NewStyle(h),
		focus: NewBold(t),
	}
}

// notice renders a notification in the color of its kind.
func (p *Palette) notice(n favorites.Notification) string {
	switch n.Kind {
	case favorites.KindSuccess:
		return p.ok.Render("✓ " + n.Message)
	case favorites.KindInfo:
		return p.warn.Render("• " + n.Message)
	default:
		return p.err.Render("✗ " + n.Message)
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
