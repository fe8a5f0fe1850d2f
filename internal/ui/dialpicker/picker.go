package dialpicker

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"timepiece/internal/core/dial"
)

// Picker is an open dial popup. It holds the pointer grab for its
// interaction: the popup is modal until it is closed.
type Picker struct {
	interaction *dial.Interaction
	popup       *widget.PopUp
	grabbed     bool
}

// Open shows a modal dial over parent. onChange receives each picked value
// while the dial is open, so closing it keeps the last value.
func Open(parent fyne.Canvas, title string, selection *dial.Selection, onChange func(value int) error, onError func(error)) *Picker {
	picker := &Picker{}
	picker.interaction = dial.Begin(selection, picker, onChange)

	face := NewFace(picker.interaction, func(err error) {
		if onError != nil {
			onError(err)
		}
		if picker.interaction.Closed() {
			picker.Release()
		}
	})
	heading := widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	buttons := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButton("Close", picker.Cancel),
		widget.NewButton("OK", picker.Commit),
	)
	picker.popup = widget.NewModalPopUp(container.NewBorder(heading, buttons, nil, nil, face), parent)
	if picker.grabbed {
		picker.popup.Show()
	}
	return picker
}

// Grab implements dial.Grabber.
func (picker *Picker) Grab() {
	picker.grabbed = true
	if picker.popup != nil {
		picker.popup.Show()
	}
}

// Release implements dial.Grabber.
func (picker *Picker) Release() {
	picker.grabbed = false
	if picker.popup != nil {
		picker.popup.Hide()
	}
}

// Commit closes the dial keeping the picked value.
func (picker *Picker) Commit() {
	_ = picker.interaction.Commit()
}

// Cancel closes the dial as escape does.
func (picker *Picker) Cancel() {
	_ = picker.interaction.Cancel()
}

// Showing reports whether the dial is still open.
func (picker *Picker) Showing() bool {
	return !picker.interaction.Closed()
}
