package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Search     key.Binding
	NextColumn key.Binding
	Login      key.Binding
	Logout     key.Binding
	Open       key.Binding
	New        key.Binding
	Backup     key.Binding
	Reload     key.Binding
	Edit       key.Binding
	Toggle     key.Binding
	EditCell   key.Binding
	Left       key.Binding
	Right      key.Binding
	Add        key.Binding
	Delete     key.Binding
	Save       key.Binding
	Submit     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Cancel     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

var keys = keyMap{
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NextColumn: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "search column"),
	),
	Login: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "librarian login"),
	),
	Logout: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "logout"),
	),
	Open: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "open file"),
	),
	New: key.NewBinding(
		key.WithKeys("ctrl+n"),
		key.WithHelp("ctrl+n", "new file"),
	),
	Backup: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "take backup"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit table"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "space", "x"),
		key.WithHelp("space", "select row"),
	),
	EditCell: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "edit cell"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/→", "column"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
	),
	Add: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add book"),
	),
	Delete: key.NewBinding(
		key.WithKeys("D", "delete"),
		key.WithHelp("D", "delete selected"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c", "q"),
		key.WithHelp("q", "quit"),
	),
}
