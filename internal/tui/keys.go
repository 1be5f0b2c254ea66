package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit   key.Binding
	cancel key.Binding
	retry  key.Binding
	copy   key.Binding
	info   key.Binding
	esc    key.Binding
	enter  key.Binding
}

var keys = keyMap{
	quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
	cancel: key.NewBinding(key.WithKeys("x")),
	retry:  key.NewBinding(key.WithKeys("r")),
	copy:   key.NewBinding(key.WithKeys("c")),
	info:   key.NewBinding(key.WithKeys("i")),
	esc:    key.NewBinding(key.WithKeys("esc")),
	enter:  key.NewBinding(key.WithKeys("enter")),
}
