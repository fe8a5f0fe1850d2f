package tray

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"timepiece/internal/core/model"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnNewStopwatch func()
	OnNewTimer     func()
	OnNewAlarm     func()
	OnShowItem     func(id string)
	OnPreferences  func()
	OnQuit         func()
}

// Entry is one item row in the menu.
type Entry struct {
	ID    string
	Kind  model.Kind
	Label string
}

var sectionTitles = map[model.Kind]string{
	model.KindStopwatch: "Stop watches",
	model.KindTimer:     "Timers",
	model.KindAlarm:     "Alarms",
}

// Manager handles system tray state.
type Manager struct {
	app       desktop.App
	callbacks Callbacks
	entries   []Entry
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{app: app, callbacks: callbacks}
	manager.refreshMenu()
	return manager
}

// SetEntries replaces the item rows and rebuilds the menu when they
// changed.
func (manager *Manager) SetEntries(entries []Entry) {
	if equalEntries(manager.entries, entries) {
		return
	}
	manager.entries = append([]Entry(nil), entries...)
	manager.refreshMenu()
}

// Menu builds the current menu.
func (manager *Manager) Menu() *fyne.Menu {
	items := []*fyne.MenuItem{
		manager.action("New stop watch", manager.callbacks.OnNewStopwatch),
		manager.action("New alarm", manager.callbacks.OnNewAlarm),
		manager.action("New timer", manager.callbacks.OnNewTimer),
	}

	for _, kind := range model.Kinds {
		section := manager.section(kind)
		if len(section) == 0 {
			continue
		}
		header := fyne.NewMenuItem(sectionTitles[kind], nil)
		header.Disabled = true
		items = append(items, fyne.NewMenuItemSeparator(), header)
		items = append(items, section...)
	}

	items = append(items,
		fyne.NewMenuItemSeparator(),
		manager.action("Preferences", manager.callbacks.OnPreferences),
		manager.action("Quit", manager.callbacks.OnQuit),
	)
	return fyne.NewMenu("Timepiece", items...)
}

func (manager *Manager) section(kind model.Kind) []*fyne.MenuItem {
	var items []*fyne.MenuItem
	for _, entry := range manager.entries {
		if entry.Kind != kind {
			continue
		}
		id := entry.ID
		items = append(items, fyne.NewMenuItem(entry.Label, func() {
			if manager.callbacks.OnShowItem != nil {
				manager.callbacks.OnShowItem(id)
			}
		}))
	}
	return items
}

func (manager *Manager) action(label string, callback func()) *fyne.MenuItem {
	return fyne.NewMenuItem(label, func() {
		if callback != nil {
			callback()
		}
	})
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}

func equalEntries(left, right []Entry) bool {
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if left[i] != right[i] {
			return false
		}
	}
	return true
}
