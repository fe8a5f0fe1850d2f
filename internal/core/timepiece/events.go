package timepiece

import (
	"time"

	"timepiece/internal/core/model"
	"timepiece/internal/core/timekeeper"
)

// EventType defines the type of manager event.
type EventType string

const (
	EventItemAdded   EventType = "item_added"
	EventItemRemoved EventType = "item_removed"
	// EventItemUpdated asks for a redraw of the item's value.
	EventItemUpdated EventType = "item_updated"
	// EventItemState reports a run-state change; controls follow it.
	EventItemState EventType = "item_state"
	// EventItemAlert is sent once per timer expiry or alarm firing.
	EventItemAlert EventType = "item_alert"
	// EventLayout reports that card visibility or order changed.
	EventLayout EventType = "layout"
)

// Event represents a manager update for the presentation layer.
type Event struct {
	Type   EventType
	ItemID string
	Kind   model.Kind
	State  timekeeper.State
	At     time.Time
}
