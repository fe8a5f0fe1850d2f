package dialpicker

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"timepiece/internal/core/dial"
)

var fieldTitles = []string{"Hours", "Minutes", "Seconds"}

// TimeSelect edits a duration with hour, minute and second spinners.
type TimeSelect struct {
	picker *dial.TimePicker
	labels [3]*widget.Label
}

// NewTimeSelect creates spinners preset to total seconds.
func NewTimeSelect(total int64) *TimeSelect {
	selector := &TimeSelect{picker: dial.NewTimePicker(total)}
	for index := range selector.labels {
		selector.labels[index] = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true, Monospace: true})
	}
	selector.refresh()
	return selector
}

// Content builds the spinner columns.
func (selector *TimeSelect) Content() fyne.CanvasObject {
	columns := make([]fyne.CanvasObject, 0, len(fieldTitles))
	for index, title := range fieldTitles {
		field := dial.Field(index)
		columns = append(columns, container.NewVBox(
			widget.NewLabelWithStyle(title, fyne.TextAlignCenter, fyne.TextStyle{}),
			widget.NewButton("+", func() { selector.Increase(field) }),
			selector.labels[index],
			widget.NewButton("-", func() { selector.Decrease(field) }),
		))
	}
	return container.NewGridWithColumns(len(columns), columns...)
}

// Increase steps field up with carry.
func (selector *TimeSelect) Increase(field dial.Field) {
	selector.picker.Increase(field)
	selector.refresh()
}

// Decrease steps field down with borrow.
func (selector *TimeSelect) Decrease(field dial.Field) {
	selector.picker.Decrease(field)
	selector.refresh()
}

// Total returns the selected seconds.
func (selector *TimeSelect) Total() int64 {
	return selector.picker.Total()
}

// Text returns the label of field.
func (selector *TimeSelect) Text(field dial.Field) string {
	return selector.labels[field].Text
}

func (selector *TimeSelect) refresh() {
	for index, label := range selector.labels {
		label.SetText(selector.picker.Spinner(dial.Field(index)).Text())
	}
}

// ShowTimeSelect opens a confirm dialog over parent. onPicked receives the
// chosen seconds only when confirmed.
func ShowTimeSelect(parent fyne.Window, title string, total int64, onPicked func(seconds int64)) {
	selector := NewTimeSelect(total)
	dialog.ShowCustomConfirm(title, "OK", "Cancel", selector.Content(), func(confirmed bool) {
		if confirmed && onPicked != nil {
			onPicked(selector.Total())
		}
	}, parent)
}
