// Package tui is the terminal front end: bubbletea prompts for the editor
// session, lipgloss tables and a single-key reader for the host loop.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	coretheme "github.com/grovetools/core/tui/theme"
)

// Theme is a named set of styles.
type Theme struct {
	Name     string
	Title    lipgloss.Style
	Header   lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Item     lipgloss.Style
	Muted    lipgloss.Style
	Value    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Info     lipgloss.Style
	Border   lipgloss.Style
}

func newTheme(name string, accent, text, muted, success, warning, errColor, info lipgloss.Color) Theme {
	return Theme{
		Name:     name,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent).Padding(0, 1),
		Cursor:   lipgloss.NewStyle().Foreground(accent).Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(text),
		Item:     lipgloss.NewStyle().Foreground(text),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Value:    lipgloss.NewStyle().Foreground(success),
		Success:  lipgloss.NewStyle().Foreground(success).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(warning).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(errColor),
		Info:     lipgloss.NewStyle().Foreground(info),
		Border:   lipgloss.NewStyle().Foreground(muted),
	}
}

// fromGrove derives a theme from one of the grove palettes.
func fromGrove(name, palette string) Theme {
	g := coretheme.NewThemeWithName(palette)
	return Theme{
		Name:     name,
		Title:    g.Bold.Foreground(g.Colors.Violet),
		Header:   g.Bold.Foreground(g.Colors.Cyan).Padding(0, 1),
		Cursor:   g.Highlight,
		Selected: g.Selected,
		Item:     g.Normal,
		Muted:    g.Muted,
		Value:    g.SuccessLight,
		Success:  g.Success,
		Warning:  g.Warning,
		Error:    g.Error,
		Info:     g.Info,
		Border:   lipgloss.NewStyle().Foreground(g.Colors.Border),
	}
}

// The grove palettes are all dark, so Light keeps its own colors.
var themes = map[string]Theme{
	"dark":         fromGrove("Dark", "kanagawa"),
	"light":        newTheme("Light", "#5A3E9B", "235", "245", "28", "130", "160", "25"),
	"highcontrast": fromGrove("HighContrast", "terminal"),
}

// DefaultTheme is used when no theme is configured or the name is unknown.
var DefaultTheme = themes["dark"]

// ThemeNames lists the built-in theme names.
func ThemeNames() []string {
	return []string{"Dark", "Light", "HighContrast"}
}

// LookupTheme returns the theme named name, ignoring case.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}
