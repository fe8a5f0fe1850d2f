// Package display decides where overlay cards go. Drawing is left to the
// presentation layer.
package display

import "fmt"

const (
	DefaultOriginX = 50
	DefaultOriginY = 40
	DefaultStride  = 180
)

// Position is the top-left corner of a card.
type Position struct {
	X int
	Y int
}

// Placement is a visible card and where it goes.
type Placement struct {
	ID       string
	Position Position
}

type card struct {
	id      string
	visible bool
}

// Coordinator keeps overlay cards in insertion order. Visible cards stack
// downward from the origin; hidden cards keep their place in the order but
// take no space.
type Coordinator struct {
	originX int
	originY int
	stride  int
	cards   []card
}

// NewCoordinator creates a coordinator with the default origin and stride.
func NewCoordinator() *Coordinator {
	return NewCoordinatorWithLayout(DefaultOriginX, DefaultOriginY, DefaultStride)
}

// NewCoordinatorWithLayout creates a coordinator with a custom origin and
// per-card stride. A non-positive stride falls back to the default.
func NewCoordinatorWithLayout(originX, originY, stride int) *Coordinator {
	if stride <= 0 {
		stride = DefaultStride
	}
	return &Coordinator{originX: originX, originY: originY, stride: stride}
}

// Add appends a visible card. Adding a known id is an error.
func (coordinator *Coordinator) Add(id string) error {
	if coordinator.index(id) >= 0 {
		return fmt.Errorf("add card %q: already present", id)
	}
	coordinator.cards = append(coordinator.cards, card{id: id, visible: true})
	return nil
}

// Remove drops a card. It returns false when the id is unknown.
func (coordinator *Coordinator) Remove(id string) bool {
	index := coordinator.index(id)
	if index < 0 {
		return false
	}
	coordinator.cards = append(coordinator.cards[:index], coordinator.cards[index+1:]...)
	return true
}

// Hide takes a card out of the stack. It returns false when the id is
// unknown or the card was already hidden.
func (coordinator *Coordinator) Hide(id string) bool {
	return coordinator.setVisible(id, false)
}

// Show puts a card back into the stack at its original relative position.
// It returns false when the id is unknown or the card was already visible.
func (coordinator *Coordinator) Show(id string) bool {
	return coordinator.setVisible(id, true)
}

// Visible reports whether a known card is shown.
func (coordinator *Coordinator) Visible(id string) bool {
	index := coordinator.index(id)
	return index >= 0 && coordinator.cards[index].visible
}

// Contains reports whether the id is known.
func (coordinator *Coordinator) Contains(id string) bool {
	return coordinator.index(id) >= 0
}

// Layout returns the visible cards in order with their positions.
func (coordinator *Coordinator) Layout() []Placement {
	placements := make([]Placement, 0, len(coordinator.cards))
	for _, card := range coordinator.cards {
		if !card.visible {
			continue
		}
		placements = append(placements, Placement{
			ID: card.id,
			Position: Position{
				X: coordinator.originX,
				Y: coordinator.originY + len(placements)*coordinator.stride,
			},
		})
	}
	return placements
}

func (coordinator *Coordinator) setVisible(id string, visible bool) bool {
	index := coordinator.index(id)
	if index < 0 || coordinator.cards[index].visible == visible {
		return false
	}
	coordinator.cards[index].visible = visible
	return true
}

func (coordinator *Coordinator) index(id string) int {
	for i, card := range coordinator.cards {
		if card.id == id {
			return i
		}
	}
	return -1
}
