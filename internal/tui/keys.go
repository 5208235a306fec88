package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Open      key.Binding
	Locations key.Binding
	Export    key.Binding
	Search    key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	Copy      key.Binding
	CopyBP    key.Binding
	Add       key.Binding
	Delete    key.Binding
	Back      key.Binding
	Use       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Open:      key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open manifest")),
		Locations: key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "saved locations")),
		Export:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "export")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		NextTab:   key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next list")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev list")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Copy:      key.NewBinding(key.WithKeys("enter", "c"), key.WithHelp("enter", "copy")),
		CopyBP:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "copy blueprint")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Delete:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Use:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "use location")),
	}
}

func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += "[" + h.Key + "] " + h.Desc
	}
	return out
}
