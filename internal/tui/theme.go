package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a color scheme applied to every panel.
type Theme struct {
	Name      string
	Bg        lipgloss.Color
	Fg        lipgloss.Color
	ButtonBg  lipgloss.Color
	ButtonFg  lipgloss.Color
	EntryBg   lipgloss.Color
	EntryFg   lipgloss.Color
	Highlight lipgloss.Color
}

// Built-in themes
var (
	Dark = Theme{
		Name:      "dark",
		Bg:        lipgloss.Color("#2c3e50"),
		Fg:        lipgloss.Color("#ffffff"),
		ButtonBg:  lipgloss.Color("#2980b9"),
		ButtonFg:  lipgloss.Color("#ffffff"),
		EntryBg:   lipgloss.Color("#ecf0f1"),
		EntryFg:   lipgloss.Color("#000000"),
		Highlight: lipgloss.Color("#1abc9c"),
	}

	Light = Theme{
		Name:      "light",
		Bg:        lipgloss.Color("#f5f6fa"),
		Fg:        lipgloss.Color("#000000"),
		ButtonBg:  lipgloss.Color("#3498db"),
		ButtonFg:  lipgloss.Color("#ffffff"),
		EntryBg:   lipgloss.Color("#ffffff"),
		EntryFg:   lipgloss.Color("#000000"),
		Highlight: lipgloss.Color("#2980b9"),
	}
)

// ThemeByName returns the built-in theme with the given name, or Dark.
func ThemeByName(name string) Theme {
	if strings.EqualFold(name, Light.Name) {
		return Light
	}
	return Dark
}

// Toggle returns the other built-in theme.
func (t Theme) Toggle() Theme {
	if t.Name == Light.Name {
		return Dark
	}
	return Light
}

const buttonWidth = 7

// styles are the lipgloss styles derived from a theme.
type styles struct {
	App          lipgloss.Style
	Title        lipgloss.Style
	Tab          lipgloss.Style
	ActiveTab    lipgloss.Style
	Display      lipgloss.Style
	Button       lipgloss.Style
	ActiveButton lipgloss.Style
	Label        lipgloss.Style
	Input        lipgloss.Style
	FocusedInput lipgloss.Style
	Result       lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		App: lipgloss.NewStyle().
			Background(t.Bg).
			Foreground(t.Fg).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Highlight).
			MarginBottom(1),

		Tab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(t.Fg),

		ActiveTab: lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(t.Highlight).
			Bold(true).
			Underline(true),

		Display: lipgloss.NewStyle().
			Background(t.EntryBg).
			Foreground(t.EntryFg).
			Width(5*buttonWidth+4).
			Align(lipgloss.Right).
			Padding(0, 1).
			MarginBottom(1),

		Button: lipgloss.NewStyle().
			Background(t.ButtonBg).
			Foreground(t.ButtonFg).
			Width(buttonWidth).
			Align(lipgloss.Center).
			MarginRight(1),

		ActiveButton: lipgloss.NewStyle().
			Background(t.Highlight).
			Foreground(t.ButtonFg).
			Bold(true).
			Width(buttonWidth).
			Align(lipgloss.Center).
			MarginRight(1),

		Label: lipgloss.NewStyle().
			Foreground(t.Fg).
			Width(16),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.ButtonBg).
			Padding(0, 1),

		FocusedInput: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(t.Highlight).
			Padding(0, 1),

		Result: lipgloss.NewStyle().
			Foreground(t.Highlight).
			Bold(true).
			MarginTop(1),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e74c3c")).
			Bold(true).
			MarginTop(1),

		Help: lipgloss.NewStyle().
			Foreground(t.Fg).
			Faint(true).
			MarginTop(1),
	}
}
