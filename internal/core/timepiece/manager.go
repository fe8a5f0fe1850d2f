// Package timepiece owns the running stopwatches, timers and alarms and
// connects them to the scheduler, the settings store and the display
// coordinator.
//
// A Manager is created once at startup and must only be used from the
// goroutine that drives its scheduler. Subscribe channels may be read from
// anywhere.
package timepiece

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"timepiece/internal/core/clock"
	"timepiece/internal/core/display"
	"timepiece/internal/core/model"
	"timepiece/internal/core/timekeeper"
	"timepiece/internal/storage"
)

// ErrUnknownItem is returned for ids that do not name a live item.
var ErrUnknownItem = errors.New("unknown item")

// Player plays a sound file without blocking.
type Player interface {
	Play(path string)
}

// ClockFormat reports the desktop's 24-hour clock preference.
type ClockFormat interface {
	Use24Hour() bool
}

// Deps are the collaborators of a Manager.
type Deps struct {
	Clock       clock.Clock
	Scheduler   *clock.Scheduler
	Store       storage.Store
	Player      Player
	ClockFormat ClockFormat
	Coordinator *display.Coordinator
	Logger      *slog.Logger
}

// Manager keeps item collections in display order.
type Manager struct {
	clock       clock.Clock
	scheduler   *clock.Scheduler
	store       storage.Store
	alarmsRepo  *storage.AlarmRepository
	player      Player
	clockFormat ClockFormat
	coordinator *display.Coordinator
	logger      *slog.Logger
	refresh     model.RefreshConfig

	items      map[model.Kind][]Item
	alarmCheck *clock.Subscription
	stopWatch  func()
	started    bool

	mu     sync.Mutex
	events []chan Event
}

// NewManager creates a manager. Missing collaborators are replaced by
// inert defaults so that a partially configured host still runs.
func NewManager(deps Deps, refresh model.RefreshConfig) *Manager {
	if deps.Clock == nil {
		deps.Clock = clock.Real()
	}
	if deps.Scheduler == nil {
		deps.Scheduler = clock.NewScheduler(deps.Clock)
	}
	if deps.Store == nil {
		deps.Store = storage.NewMemoryStore()
	}
	if deps.Player == nil {
		deps.Player = silentPlayer{}
	}
	if deps.ClockFormat == nil {
		deps.ClockFormat = fixedFormat(true)
	}
	if deps.Coordinator == nil {
		deps.Coordinator = display.NewCoordinator()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	return &Manager{
		clock:       deps.Clock,
		scheduler:   deps.Scheduler,
		store:       deps.Store,
		alarmsRepo:  storage.NewAlarmRepository(deps.Store, deps.Logger),
		player:      deps.Player,
		clockFormat: deps.ClockFormat,
		coordinator: deps.Coordinator,
		logger:      deps.Logger,
		refresh:     refresh.Normalize(),
		items:       make(map[model.Kind][]Item),
	}
}

// Start restores persisted alarms and begins checking them. A store that
// cannot be read leaves the alarm list empty.
func (manager *Manager) Start() {
	if manager.started {
		return
	}
	manager.started = true

	configs, err := manager.alarmsRepo.Load()
	if err != nil {
		manager.logger.Warn("alarms unavailable, starting with none", "error", err)
	}
	for _, config := range configs {
		manager.addAlarm(config)
	}

	manager.stopWatch = manager.alarmsRepo.Watch(manager.replaceAlarms)
	manager.alarmCheck = manager.scheduler.Every(manager.refresh.Alarm, manager.checkAlarms)
	manager.logger.Info("timepiece started", "alarms", len(configs))
}

// Close cancels every subscription and closes observers.
func (manager *Manager) Close() {
	manager.alarmCheck.Cancel()
	if manager.stopWatch != nil {
		manager.stopWatch()
		manager.stopWatch = nil
	}
	for _, kind := range model.Kinds {
		for _, item := range manager.items[kind] {
			item.stopPolling()
		}
	}

	manager.mu.Lock()
	events := manager.events
	manager.events = nil
	manager.mu.Unlock()
	for _, ch := range events {
		close(ch)
	}
}

// Subscribe registers a new observer channel. Events are dropped when the
// channel is full; observers re-read state on the next event.
func (manager *Manager) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	manager.mu.Lock()
	manager.events = append(manager.events, ch)
	manager.mu.Unlock()
	return ch
}

// NewStopwatch adds a stopped stopwatch.
func (manager *Manager) NewStopwatch() *StopwatchItem {
	item := &StopwatchItem{
		itemBase: manager.newBase(model.KindStopwatch),
		engine:   timekeeper.NewStopwatch(manager.clock),
	}
	item.engine.SetOnEvent(func(event timekeeper.Event) {
		manager.onEngineEvent(item, event)
	})
	manager.add(item)
	return item
}

// NewTimer adds a stopped timer with a zero target.
func (manager *Manager) NewTimer() *TimerItem {
	item := &TimerItem{
		itemBase: manager.newBase(model.KindTimer),
		engine:   timekeeper.NewCountdown(manager.clock, 0),
	}
	item.engine.SetOnEvent(func(event timekeeper.Event) {
		manager.onEngineEvent(item, event)
	})
	manager.add(item)
	return item
}

// NewAlarm adds an alarm and persists the alarm list.
func (manager *Manager) NewAlarm(config model.AlarmConfig) *AlarmItem {
	item := manager.addAlarm(config)
	manager.persistAlarms()
	return item
}

// Remove destroys an item. Removing an alarm persists the remaining list.
func (manager *Manager) Remove(id string) error {
	item, index, ok := manager.find(id)
	if !ok {
		return fmt.Errorf("remove %q: %w", id, ErrUnknownItem)
	}
	manager.removeAt(item, index)
	if item.Kind() == model.KindAlarm {
		manager.persistAlarms()
	}
	return nil
}

// Show puts the item's card back on screen.
func (manager *Manager) Show(id string) error {
	if !manager.coordinator.Contains(id) {
		return fmt.Errorf("show %q: %w", id, ErrUnknownItem)
	}
	if manager.coordinator.Show(id) {
		manager.emit(Event{Type: EventLayout, ItemID: id})
	}
	return nil
}

// Hide takes the item's card off screen without destroying the item.
func (manager *Manager) Hide(id string) error {
	if !manager.coordinator.Contains(id) {
		return fmt.Errorf("hide %q: %w", id, ErrUnknownItem)
	}
	if manager.coordinator.Hide(id) {
		manager.emit(Event{Type: EventLayout, ItemID: id})
	}
	return nil
}

// Visible reports whether the item's card is shown.
func (manager *Manager) Visible(id string) bool {
	return manager.coordinator.Visible(id)
}

// Layout returns the visible cards and their positions.
func (manager *Manager) Layout() []display.Placement {
	return manager.coordinator.Layout()
}

// Items returns the items of kind in display order.
func (manager *Manager) Items(kind model.Kind) []Item {
	return append([]Item(nil), manager.items[kind]...)
}

// All returns every item, kinds in menu order.
func (manager *Manager) All() []Item {
	var all []Item
	for _, kind := range model.Kinds {
		all = append(all, manager.items[kind]...)
	}
	return all
}

// Item looks up an item by id.
func (manager *Manager) Item(id string) (Item, bool) {
	item, _, ok := manager.find(id)
	return item, ok
}

// AlarmConfigs returns the canonical configs of every alarm in order.
func (manager *Manager) AlarmConfigs() []model.AlarmConfig {
	configs := make([]model.AlarmConfig, 0, len(manager.items[model.KindAlarm]))
	for _, item := range manager.items[model.KindAlarm] {
		configs = append(configs, item.(*AlarmItem).Config())
	}
	return configs
}

// Refresh returns the polling cadences in use.
func (manager *Manager) Refresh() model.RefreshConfig {
	return manager.refresh
}

func (manager *Manager) newBase(kind model.Kind) itemBase {
	return itemBase{id: uuid.NewString(), kind: kind, manager: manager}
}

func (manager *Manager) add(item Item) {
	manager.items[item.Kind()] = append(manager.items[item.Kind()], item)
	if err := manager.coordinator.Add(item.ID()); err != nil {
		manager.logger.Error("place card", "item", item.ID(), "error", err)
	}
	manager.logger.Debug("item added", "kind", item.Kind(), "item", item.ID())
	manager.emit(Event{Type: EventItemAdded, ItemID: item.ID(), Kind: item.Kind(), State: item.State()})
	manager.emit(Event{Type: EventLayout, ItemID: item.ID()})
}

func (manager *Manager) addAlarm(config model.AlarmConfig) *AlarmItem {
	item := &AlarmItem{
		itemBase: manager.newBase(model.KindAlarm),
		engine:   timekeeper.NewAlarm(manager.clock, config, manager.clockFormat.Use24Hour()),
	}
	item.engine.SetOnEvent(func(event timekeeper.Event) {
		manager.onEngineEvent(item, event)
	})
	manager.add(item)
	return item
}

func (manager *Manager) removeAt(item Item, index int) {
	item.stopPolling()
	kind := item.Kind()
	items := manager.items[kind]
	manager.items[kind] = append(items[:index:index], items[index+1:]...)
	manager.coordinator.Remove(item.ID())
	manager.logger.Debug("item removed", "kind", kind, "item", item.ID())
	manager.emit(Event{Type: EventItemRemoved, ItemID: item.ID(), Kind: kind})
	manager.emit(Event{Type: EventLayout, ItemID: item.ID()})
}

func (manager *Manager) find(id string) (Item, int, bool) {
	for _, kind := range model.Kinds {
		for index, item := range manager.items[kind] {
			if item.ID() == id {
				return item, index, true
			}
		}
	}
	return nil, -1, false
}

// replaceAlarms swaps the alarm set for one written by another process.
func (manager *Manager) replaceAlarms(configs []model.AlarmConfig) {
	for len(manager.items[model.KindAlarm]) > 0 {
		manager.removeAt(manager.items[model.KindAlarm][0], 0)
	}
	for _, config := range configs {
		manager.addAlarm(config)
	}
	manager.logger.Info("alarms replaced from settings store", "alarms", len(configs))
}

func (manager *Manager) persistAlarms() {
	if err := manager.alarmsRepo.Save(manager.AlarmConfigs()); err != nil {
		manager.logger.Warn("persist alarms", "error", err)
	}
}

func (manager *Manager) checkAlarms(now time.Time) {
	if syncer, ok := manager.store.(storage.Syncer); ok {
		if err := syncer.Sync(); err != nil {
			manager.logger.Warn("sync settings store", "error", err)
		}
	}
	for _, item := range manager.Items(model.KindAlarm) {
		item.(*AlarmItem).engine.Tick(now)
	}
}

func (manager *Manager) onEngineEvent(item Item, event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventStateChange:
		if event.State == timekeeper.StateRunning {
			item.startPolling()
		} else {
			item.stopPolling()
		}
		manager.emit(Event{Type: EventItemState, ItemID: item.ID(), Kind: item.Kind(), State: event.State, At: event.At})
		manager.emit(Event{Type: EventItemUpdated, ItemID: item.ID(), Kind: item.Kind(), State: event.State, At: event.At})
	case timekeeper.EventValueChanged:
		manager.emit(Event{Type: EventItemUpdated, ItemID: item.ID(), Kind: item.Kind(), State: event.State, At: event.At})
	case timekeeper.EventExpired:
		manager.logger.Info("timer expired", "item", item.ID())
		manager.playSetting(storage.TimerSoundPathKey)
		manager.emit(Event{Type: EventItemAlert, ItemID: item.ID(), Kind: item.Kind(), State: event.State, At: event.At})
	case timekeeper.EventFired:
		manager.logger.Info("alarm fired", "item", item.ID(), "scheduled", event.NextFireAt)
		manager.playSetting(storage.AlarmSoundPathKey)
		manager.emit(Event{Type: EventItemAlert, ItemID: item.ID(), Kind: item.Kind(), State: event.State, At: event.At})
	}
}

func (manager *Manager) playSetting(key string) {
	path, ok, err := manager.store.Get(key)
	if err != nil {
		manager.logger.Warn("read sound path", "key", key, "error", err)
		return
	}
	if !ok || path == "" {
		return
	}
	manager.player.Play(path)
}

func (manager *Manager) emit(event Event) {
	if event.At.IsZero() {
		event.At = manager.clock.Now()
	}
	manager.mu.Lock()
	defer manager.mu.Unlock()
	for _, ch := range manager.events {
		select {
		case ch <- event:
		default:
		}
	}
}

type silentPlayer struct{}

func (silentPlayer) Play(string) {}

type fixedFormat bool

func (format fixedFormat) Use24Hour() bool { return bool(format) }
