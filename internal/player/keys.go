package player

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Start key.Binding
	Skip  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Start: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start/complete")),
		Skip:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "skip")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Skip, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
