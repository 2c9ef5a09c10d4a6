package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	prompt lipgloss.Style
	help   lipgloss.Style
}

func NewPalette(p, h string) *Palette {
	return &Palette{
		prompt: NewBold(p),
		help:   NewEm(h),
	}
}

// Prompt renders s with the palette's prompt style, leaving trailing spaces unstyled. Empty prompts stay empty.
func (p *Palette) Prompt(s string) string {
	text := strings.TrimRight(s, " ")
	if text == "" {
		return s
	}
	return p.prompt.Render(text) + s[len(text):]
}

// Hint renders s as a muted aside.
func (p *Palette) Hint(s string) string {
	return p.help.Render(s)
}

// Prompt renders s with the default palette.
func Prompt(s string) string { return styles.Prompt(s) }

// Hint renders s with the default palette.
func Hint(s string) string { return styles.Hint(s) }

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
