package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	enter     key.Binding
	back      key.Binding
	next      key.Binding
	prev      key.Binding
	mode      key.Binding
	like      key.Binding
	unlike    key.Binding
	favorites key.Binding
	open      key.Binding
	refresh   key.Binding
	logout    key.Binding
	quit      key.Binding
	forceQuit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
		mode:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "login/register")),
		like:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		unlike:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		favorites: key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "favorites")),
		open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in browser")),
		refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		logout:    key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		forceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.like, k.unlike, k.favorites, k.open},
		{k.refresh, k.logout, k.quit},
	}
}
