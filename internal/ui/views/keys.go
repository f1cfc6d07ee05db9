package views

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the bindings shown in the footer and the help pager
type KeyMap struct {
	Move    key.Binding
	Jump    key.Binding
	Open    key.Binding
	Pick    key.Binding
	Range   key.Binding
	Select  key.Binding
	All     key.Binding
	Share   key.Binding
	Delete  key.Binding
	Cancel  key.Binding
	Tabs    key.Binding
	Refresh key.Binding
	Upload  key.Binding
	Login   key.Binding
	Filter  key.Binding
	Back    key.Binding
	Details key.Binding
	Copy    key.Binding
	Help    key.Binding
	Quit    key.Binding

	people bool
}

// DefaultKeyMap returns the bindings of the gallery and people screens
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Move:    key.NewBinding(key.WithKeys("up", "down", "left", "right", "h", "j", "k", "l"), key.WithHelp("←↓↑→/hjkl", "move")),
		Jump:    key.NewBinding(key.WithKeys("pgup", "pgdown", "g", "G"), key.WithHelp("pgup/pgdn gg/G", "page, top, bottom")),
		Open:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "open / pick")),
		Pick:    key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "start selecting here")),
		Range:   key.NewBinding(key.WithKeys("V", "shift+left", "shift+right"), key.WithHelp("V/shift+arrows", "pick range")),
		Select:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "select")),
		All:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "pick all")),
		Share:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "share picked")),
		Delete:  key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete picked")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Tabs:    key.NewBinding(key.WithKeys("1", "2", "3", "tab"), key.WithHelp("1-3/tab", "tabs")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Upload:  key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "upload")),
		Login:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "sign in / out")),
		Filter:  key.NewBinding(key.WithKeys("/", "f"), key.WithHelp("/", "filter")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to people")),
		Details: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "photo details")),
		Copy:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy link")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ForPeople returns the map as shown on the people screen
func (k KeyMap) ForPeople(people bool) KeyMap {
	k.people = people
	return k
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	if k.people {
		return []key.Binding{k.Move, k.Open, k.Filter, k.Tabs, k.Help, k.Quit}
	}
	return []key.Binding{k.Move, k.Open, k.Select, k.Upload, k.Tabs, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap; groups are Navigation, Selection, Photos,
// People and Other
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Move, k.Jump, k.Open, k.Tabs},
		{k.Select, k.Pick, k.Range, k.All, k.Share, k.Delete, k.Cancel},
		{k.Details, k.Copy, k.Upload, k.Refresh},
		{k.Filter, k.Back},
		{k.Login, k.Help, k.Quit},
	}
}

// HelpSections names the groups of FullHelp
var HelpSections = []string{"Navigation", "Selection", "Photos", "People", "Other"}
