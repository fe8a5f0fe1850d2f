package term

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NewStopwatch key.Binding
	NewTimer     key.Binding
	NewAlarm     key.Binding
	Next         key.Binding
	Prev         key.Binding
	Toggle       key.Binding
	Reset        key.Binding
	Increase     key.Binding
	Decrease     key.Binding
	HourUp       key.Binding
	HourDown     key.Binding
	Meridiem     key.Binding
	Visibility   key.Binding
	Remove       key.Binding
	Help         key.Binding
	Quit         key.Binding
}

var keys = keyMap{
	NewStopwatch: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "new stop watch"),
	),
	NewTimer: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "new timer"),
	),
	NewAlarm: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "new alarm"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down", "j"),
		key.WithHelp("tab/j", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up", "k"),
		key.WithHelp("shift+tab/k", "previous"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "start/pause"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Increase: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "add minute"),
	),
	Decrease: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "remove minute"),
	),
	HourUp: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "hour up"),
	),
	HourDown: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "hour down"),
	),
	Meridiem: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "am/pm"),
	),
	Visibility: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "hide/show"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x", "delete"),
		key.WithHelp("x", "remove"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewStopwatch, k.NewTimer, k.NewAlarm, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewStopwatch, k.NewTimer, k.NewAlarm},
		{k.Next, k.Prev, k.Visibility, k.Remove},
		{k.Toggle, k.Reset, k.Increase, k.Decrease},
		{k.HourUp, k.HourDown, k.Meridiem},
		{k.Help, k.Quit},
	}
}
