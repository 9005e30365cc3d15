package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/mixdeck/internal/uri"
)

// Styles is the default palette.
var Styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// sourceColors maps source icons to their accent color.
var sourceColors = map[string]string{
	uri.IconFolder:     "#F59E0B",
	uri.SourceSpotify:  "#1DB954",
	uri.IconPodcast:    "#3B82F6",
	uri.IconMicrophone: "#EF4444",
	uri.IconGoogle:     "#4285F4",
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func (p *Palette) Title(s string) string { return p.title.Render(s) }
func (p *Palette) OK(s string) string    { return p.ok.Render(s) }
func (p *Palette) Err(s string) string   { return p.err.Render(s) }
func (p *Palette) Warn(s string) string  { return p.warn.Render(s) }
func (p *Palette) Help(s string) string  { return p.help.Render(s) }

// Source renders s in the accent color of resource's source, or unstyled for unknown sources.
func (p *Palette) Source(resource, s string) string {
	fg, ok := sourceColors[uri.SourceIcon(resource)]
	if !ok {
		return s
	}
	return NewStyle(fg).Render(s)
}

// List renders a titled block of lines, with help text when there are none.
func (p *Palette) List(title string, lines []string, empty string) string {
	if len(lines) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, p.Title(title), p.Help(empty))
	}
	return lipgloss.JoinVertical(lipgloss.Left, p.Title(title), strings.Join(lines, "\n"))
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
