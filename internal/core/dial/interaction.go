package dial

import (
	"errors"
	"fmt"
)

// ErrInteractionClosed is returned by operations on a finished interaction.
var ErrInteractionClosed = errors.New("dial interaction closed")

// Grabber captures and releases exclusive pointer focus for the dial.
type Grabber interface {
	Grab()
	Release()
}

// Interaction is a modal dial session. It owns its Selection and holds the
// pointer grab until Commit, Dismiss or Cancel, or until the change
// callback fails.
type Interaction struct {
	selection *Selection
	grabber   Grabber
	onChange  func(value int) error
	closed    bool
}

// Begin grabs the pointer and starts an interaction on selection. onChange
// receives every new value.
func Begin(selection *Selection, grabber Grabber, onChange func(value int) error) *Interaction {
	interaction := &Interaction{
		selection: selection,
		grabber:   grabber,
		onChange:  onChange,
	}
	if grabber != nil {
		grabber.Grab()
	}
	return interaction
}

// Selection returns the value being edited.
func (interaction *Interaction) Selection() *Selection {
	return interaction.selection
}

// Closed reports whether the interaction has ended.
func (interaction *Interaction) Closed() bool {
	return interaction.closed
}

// Drag updates the value from a pointer offset relative to the centre.
func (interaction *Interaction) Drag(dx, dy float64) error {
	return interaction.apply(func() bool {
		return interaction.selection.DragTo(dx, dy)
	})
}

// Scroll steps the value; positive directions increment.
func (interaction *Interaction) Scroll(direction int) error {
	return interaction.apply(func() bool {
		switch {
		case direction > 0:
			interaction.selection.Increment()
		case direction < 0:
			interaction.selection.Decrement()
		default:
			return false
		}
		return true
	})
}

// Commit ends the interaction keeping the current value.
func (interaction *Interaction) Commit() error {
	if interaction.closed {
		return ErrInteractionClosed
	}
	interaction.close()
	return nil
}

// Dismiss ends the interaction after an outside click, keeping the value.
func (interaction *Interaction) Dismiss() error {
	return interaction.Commit()
}

// Cancel ends the interaction on escape. Values already passed to the
// change callback stay applied.
func (interaction *Interaction) Cancel() error {
	return interaction.Commit()
}

func (interaction *Interaction) apply(update func() bool) error {
	if interaction.closed {
		return ErrInteractionClosed
	}
	defer func() {
		if recovered := recover(); recovered != nil {
			interaction.close()
			panic(recovered)
		}
	}()

	if !update() {
		return nil
	}
	if err := interaction.notify(); err != nil {
		interaction.close()
		return fmt.Errorf("apply dial value: %w", err)
	}
	return nil
}

func (interaction *Interaction) notify() error {
	if interaction.onChange == nil {
		return nil
	}
	return interaction.onChange(interaction.selection.Current)
}

func (interaction *Interaction) close() {
	if interaction.closed {
		return
	}
	interaction.closed = true
	if interaction.grabber != nil {
		interaction.grabber.Release()
	}
}
