// Package term provides a Bubble Tea front end for hosts without a system
// tray.
package term

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"timepiece/internal/core/clock"
	"timepiece/internal/core/model"
	"timepiece/internal/core/timekeeper"
	"timepiece/internal/core/timepiece"
)

const (
	kindColumn  = 12
	valueColumn = 12
)

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	rowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	hiddenStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	alertStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type tickMsg time.Time

type eventMsg timepiece.Event

type eventsClosedMsg struct{}

// Model implements the terminal UI. It drives the scheduler from its own
// tick so that the manager is only touched from the Bubble Tea loop.
type Model struct {
	manager    *timepiece.Manager
	scheduler  *clock.Scheduler
	clock      clock.Clock
	resolution time.Duration
	events     <-chan timepiece.Event

	help     help.Model
	selected int
	alerted  map[string]bool
	status   string
	width    int
}

// NewModel constructs a terminal UI over manager. resolution is the tick
// period used to drive scheduler.
func NewModel(manager *timepiece.Manager, scheduler *clock.Scheduler, clk clock.Clock, resolution time.Duration) *Model {
	if resolution <= 0 {
		resolution = model.DefaultRefreshConfig().Stopwatch
	}
	return &Model{
		manager:    manager,
		scheduler:  scheduler,
		clock:      clk,
		resolution: resolution,
		events:     manager.Subscribe(64),
		help:       help.New(),
		alerted:    make(map[string]bool),
	}
}

// Init implements tea.Model.
func (screen *Model) Init() tea.Cmd {
	return tea.Batch(screen.tick(), screen.waitForEvent())
}

// Update implements tea.Model.
func (screen *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		screen.width = msg.Width
		screen.help.Width = msg.Width
		return screen, nil
	case tickMsg:
		screen.scheduler.Tick(screen.clock.Now())
		return screen, screen.tick()
	case eventMsg:
		screen.handleEvent(timepiece.Event(msg))
		return screen, screen.waitForEvent()
	case eventsClosedMsg:
		return screen, nil
	case tea.KeyMsg:
		return screen.handleKey(msg)
	}
	return screen, nil
}

func (screen *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return screen, tea.Quit
	case key.Matches(msg, keys.Help):
		screen.help.ShowAll = !screen.help.ShowAll
	case key.Matches(msg, keys.NewStopwatch):
		screen.selectItem(screen.manager.NewStopwatch().ID())
	case key.Matches(msg, keys.NewTimer):
		screen.selectItem(screen.manager.NewTimer().ID())
	case key.Matches(msg, keys.NewAlarm):
		screen.selectItem(screen.manager.NewAlarm(model.DefaultAlarm()).ID())
	case key.Matches(msg, keys.Next):
		screen.moveSelection(1)
	case key.Matches(msg, keys.Prev):
		screen.moveSelection(-1)
	default:
		screen.handleItemKey(msg)
	}
	return screen, nil
}

func (screen *Model) handleItemKey(msg tea.KeyMsg) {
	item := screen.current()
	if item == nil {
		return
	}
	id := item.ID()

	switch {
	case key.Matches(msg, keys.Visibility):
		screen.toggleVisibility(id)
		return
	case key.Matches(msg, keys.Remove):
		if err := screen.manager.Remove(id); err != nil {
			screen.status = err.Error()
		}
		delete(screen.alerted, id)
		screen.clampSelection()
		return
	}

	switch item := item.(type) {
	case *timepiece.StopwatchItem:
		switch {
		case key.Matches(msg, keys.Toggle):
			item.Toggle()
		case key.Matches(msg, keys.Reset):
			item.Reset()
		}
	case *timepiece.TimerItem:
		switch {
		case key.Matches(msg, keys.Toggle):
			item.Toggle()
		case key.Matches(msg, keys.Reset):
			item.Reset()
			delete(screen.alerted, id)
		case key.Matches(msg, keys.Increase):
			if item.State() == timekeeper.StateIdle {
				item.SetTarget(item.Target() + 60)
			} else {
				item.AddTime(60)
			}
		case key.Matches(msg, keys.Decrease):
			if item.State() == timekeeper.StateIdle && item.Target() > 0 {
				item.SetTarget(max(item.Target()-60, 0))
			}
		}
	case *timepiece.AlarmItem:
		switch {
		case key.Matches(msg, keys.Increase):
			item.ScrollMinutes(1)
		case key.Matches(msg, keys.Decrease):
			item.ScrollMinutes(-1)
		case key.Matches(msg, keys.HourUp):
			item.ScrollHours(1)
		case key.Matches(msg, keys.HourDown):
			item.ScrollHours(-1)
		case key.Matches(msg, keys.Meridiem):
			if !item.Use24Hour() {
				item.ToggleMeridiem()
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Reset):
			delete(screen.alerted, id)
		}
	}
}

func (screen *Model) handleEvent(event timepiece.Event) {
	switch event.Type {
	case timepiece.EventItemAlert:
		screen.alerted[event.ItemID] = true
		if event.Kind == model.KindAlarm {
			screen.status = "Alarm!"
		} else {
			screen.status = "Time's up"
		}
	case timepiece.EventItemRemoved:
		delete(screen.alerted, event.ItemID)
		screen.clampSelection()
	}
}

func (screen *Model) toggleVisibility(id string) {
	var err error
	if screen.manager.Visible(id) {
		err = screen.manager.Hide(id)
	} else {
		err = screen.manager.Show(id)
	}
	if err != nil {
		screen.status = err.Error()
	}
}

func (screen *Model) current() timepiece.Item {
	items := screen.manager.All()
	if screen.selected < 0 || screen.selected >= len(items) {
		return nil
	}
	return items[screen.selected]
}

func (screen *Model) selectItem(id string) {
	for index, item := range screen.manager.All() {
		if item.ID() == id {
			screen.selected = index
			return
		}
	}
}

func (screen *Model) moveSelection(delta int) {
	count := len(screen.manager.All())
	if count == 0 {
		screen.selected = 0
		return
	}
	screen.selected = ((screen.selected+delta)%count + count) % count
}

func (screen *Model) clampSelection() {
	count := len(screen.manager.All())
	if screen.selected >= count {
		screen.selected = count - 1
	}
	if screen.selected < 0 {
		screen.selected = 0
	}
}

func (screen *Model) tick() tea.Cmd {
	return tea.Tick(screen.resolution, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (screen *Model) waitForEvent() tea.Cmd {
	events := screen.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg(event)
	}
}

// View implements tea.Model.
func (screen *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Timepiece"))
	b.WriteString("\n\n")

	items := screen.manager.All()
	if len(items) == 0 {
		b.WriteString(hiddenStyle.Render("No stop watches, timers or alarms yet."))
		b.WriteString("\n")
	}
	for index, item := range items {
		b.WriteString(screen.row(index, item))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if screen.status != "" {
		b.WriteString(alertStyle.Render(screen.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render(screen.help.View(keys)))
	return b.String()
}

func (screen *Model) row(index int, item timepiece.Item) string {
	cursor := "  "
	style := rowStyle
	if index == screen.selected {
		cursor = "> "
		style = selectedStyle
	}
	if !screen.manager.Visible(item.ID()) {
		style = hiddenStyle
	}

	line := cursor +
		runewidth.FillRight(item.Title(), kindColumn) +
		runewidth.FillRight(item.MenuText(), valueColumn) +
		string(item.State())
	if !screen.manager.Visible(item.ID()) {
		line += " (hidden)"
	}
	if screen.alerted[item.ID()] {
		return alertStyle.Render(line + " !")
	}
	return style.Render(line)
}

// Run starts the terminal UI and blocks until the user quits.
func Run(manager *timepiece.Manager, scheduler *clock.Scheduler, clk clock.Clock, resolution time.Duration) error {
	program := tea.NewProgram(NewModel(manager, scheduler, clk, resolution), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
