package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Open     key.Binding
	Back     key.Binding
	Focus    key.Binding
	Books    key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	NextChap key.Binding
	PrevChap key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Focus:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Books:    key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "books")),
	NextPage: key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
	PrevPage: key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "prev page")),
	NextChap: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next chapter")),
	PrevChap: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev chapter")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Focus, k.Books, k.Open, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.Focus, k.Books, k.Reload},
		{k.NextPage, k.PrevPage, k.NextChap, k.PrevChap},
		{k.Help, k.Quit},
	}
}
