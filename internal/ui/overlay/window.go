package overlay

import (
	"context"
	"image/color"
	"log/slog"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"timepiece/internal/core/timepiece"
	"timepiece/internal/ui/animation"
)

// Config defines card visuals.
type Config struct {
	Opacity uint8
}

// Window shows one card per visible item at the position the display
// coordinator assigned to it. All methods run on the UI thread.
type Window struct {
	app     fyne.App
	window  fyne.Window
	manager *timepiece.Manager
	config  Config
	logger  *slog.Logger

	cards   map[string]*cardView
	board   *fyne.Container
	layout  *placementLayout
	flasher *animation.Engine
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates the card window. It stays hidden until an item is shown.
func New(app fyne.App, manager *timepiece.Manager, config Config, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	window := app.NewWindow("Timepiece")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetCloseIntercept(window.Hide)

	layout := newPlacementLayout()
	board := container.New(layout)
	window.SetContent(board)

	ctx, cancel := context.WithCancel(context.Background())
	overlay := &Window{
		app:     app,
		window:  window,
		manager: manager,
		config:  config,
		logger:  logger,
		cards:   make(map[string]*cardView),
		board:   board,
		layout:  layout,
		ctx:     ctx,
		cancel:  cancel,
	}
	overlay.flasher = animation.New(animation.DefaultConfig(), func(id string, on bool) {
		fyne.Do(func() {
			overlay.setHighlight(id, on)
		})
	})
	overlay.Sync()
	return overlay
}

// HandleEvent applies one manager event to the cards.
func (overlay *Window) HandleEvent(event timepiece.Event) {
	switch event.Type {
	case timepiece.EventItemAdded, timepiece.EventItemRemoved, timepiece.EventLayout:
		overlay.Sync()
	case timepiece.EventItemUpdated, timepiece.EventItemState:
		overlay.refreshCard(event.ItemID)
	case timepiece.EventItemAlert:
		overlay.refreshCard(event.ItemID)
		if overlay.manager.Visible(event.ItemID) {
			overlay.flasher.Flash(overlay.ctx, event.ItemID)
			overlay.window.Show()
		}
	}
}

// Sync rebuilds the card set and positions from the manager.
func (overlay *Window) Sync() {
	live := make(map[string]bool)
	for _, item := range overlay.manager.All() {
		live[item.ID()] = true
		if _, ok := overlay.cards[item.ID()]; !ok {
			overlay.cards[item.ID()] = overlay.newCard(item)
		}
	}
	for id := range overlay.cards {
		if !live[id] {
			overlay.flasher.Stop(id)
			delete(overlay.cards, id)
		}
	}

	overlay.layout.reset()
	objects := make([]fyne.CanvasObject, 0, len(overlay.cards))
	for _, placement := range overlay.manager.Layout() {
		card, ok := overlay.cards[placement.ID]
		if !ok {
			continue
		}
		overlay.layout.place(card.root, fyne.NewPos(float32(placement.Position.X), float32(placement.Position.Y)))
		objects = append(objects, card.root)
	}
	overlay.board.Objects = objects
	overlay.board.Refresh()

	if len(objects) == 0 {
		overlay.window.Hide()
		return
	}
	overlay.window.Resize(overlay.board.MinSize())
}

// ShowItem reveals the card of id and raises the window.
func (overlay *Window) ShowItem(id string) {
	if err := overlay.manager.Show(id); err != nil {
		overlay.logger.Warn("show card", "item", id, "error", err)
		return
	}
	overlay.Sync()
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// Show raises the window when any card is visible.
func (overlay *Window) Show() {
	if len(overlay.board.Objects) == 0 {
		return
	}
	overlay.window.Show()
	overlay.window.RequestFocus()
}

// Hide closes the window without hiding the cards.
func (overlay *Window) Hide() {
	overlay.window.Hide()
}

// UpdateConfig updates card visuals.
func (overlay *Window) UpdateConfig(config Config) {
	overlay.config = config
	for _, card := range overlay.cards {
		card.setHighlight(overlay, false)
	}
}

// Close stops every flash.
func (overlay *Window) Close() {
	overlay.cancel()
	overlay.flasher.StopAll()
}

func (overlay *Window) refreshCard(id string) {
	if card, ok := overlay.cards[id]; ok {
		card.refresh()
	}
}

func (overlay *Window) setHighlight(id string, on bool) {
	if card, ok := overlay.cards[id]; ok {
		card.setHighlight(overlay, on)
	}
}

func (overlay *Window) hideItem(id string) {
	overlay.flasher.Stop(id)
	if err := overlay.manager.Hide(id); err != nil {
		overlay.logger.Warn("hide card", "item", id, "error", err)
	}
	overlay.Sync()
}

func (overlay *Window) removeItem(id string) {
	overlay.flasher.Stop(id)
	if err := overlay.manager.Remove(id); err != nil {
		overlay.logger.Warn("remove item", "item", id, "error", err)
	}
	overlay.Sync()
}

func (overlay *Window) backgroundColor(highlight bool) color.Color {
	if highlight {
		return highlightColor
	}
	return color.NRGBA{R: 0, G: 0, B: 0, A: overlay.config.Opacity}
}

// OpacityFromFraction converts a 0..1 preference into an alpha value.
func OpacityFromFraction(value float64) uint8 {
	if value <= 0 {
		return 0
	}
	if value >= 1 {
		return 255
	}
	return uint8(math.Round(value * 255))
}
