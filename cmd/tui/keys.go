package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings the board responds to.
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Flip  key.Binding
	New   key.Binding
	Quit  key.Binding
}

// Keys is the default key map.
var Keys = KeyMap{
	Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	Flip:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "flip")),
	New:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k KeyMap) help() string {
	out := ""
	for i, b := range []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Flip, k.New, k.Quit} {
		if i > 0 {
			out += "  "
		}
		out += b.Help().Key + " " + b.Help().Desc
	}
	return out
}
