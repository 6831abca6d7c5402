package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Previous key.Binding
	Next     key.Binding
	First    key.Binding
	Quit     key.Binding
}

func defaultKeys(previous, next, first, quit string) keyMap {
	return keyMap{
		Previous: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←/p", previous),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "n", " "),
			key.WithHelp("→/n", next),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", first),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", quit),
		),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.First, k.Quit}
}
