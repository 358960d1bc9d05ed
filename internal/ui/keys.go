package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds every binding of the list screen
type keyMap struct {
	Search    key.Binding
	Submit    key.Binding
	Cancel    key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Today     key.Binding
	Tomorrow  key.Binding
	Weekend   key.Binding
	ClearDate key.Binding
	DateRange key.Binding
	CycleSort key.Binding
	FlipSort  key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding

	searchable bool
	sortable   bool
}

func newKeyMap(searchable, sortable bool) keyMap {
	return keyMap{
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "search now")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "stop typing")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next category")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous category")),
		Today:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "today")),
		Tomorrow:  key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "tomorrow")),
		Weekend:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "weekend")),
		ClearDate: key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "any date")),
		DateRange: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "date range")),
		CycleSort: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		FlipSort:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "flip direction")),
		NextPage:  key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
		PrevPage:  key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "previous page")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		searchable: searchable,
		sortable:   sortable,
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	out := []key.Binding{}
	if k.searchable {
		out = append(out, k.Search, k.NextTab)
	}
	if k.sortable {
		out = append(out, k.CycleSort)
	}
	return append(out, k.NextPage, k.PrevPage, k.Refresh, k.Help, k.Quit)
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	groups := [][]key.Binding{}
	if k.searchable {
		groups = append(groups,
			[]key.Binding{k.Search, k.Submit, k.Cancel},
			[]key.Binding{k.NextTab, k.PrevTab},
			[]key.Binding{k.Today, k.Tomorrow, k.Weekend, k.DateRange, k.ClearDate},
		)
	}
	if k.sortable {
		groups = append(groups, []key.Binding{k.CycleSort, k.FlipSort})
	}
	return append(groups, []key.Binding{k.NextPage, k.PrevPage, k.Refresh}, []key.Binding{k.Help, k.Quit})
}
