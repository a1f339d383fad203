package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Theme     key.Binding
	Quit      key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Enter     key.Binding
	Backspace key.Binding
}

var keys = keyMap{
	Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous panel")),
	Theme:     key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
	Quit:      key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "previous field")),
	Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next field")),
	Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "change currency")),
	Right:     key.NewBinding(key.WithKeys("right")),
	Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calculate")),
	Backspace: key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "delete")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Enter, k.Theme, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Theme, k.Quit},
		{k.Up, k.Down, k.Left, k.Enter, k.Backspace},
	}
}
