package overlay

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"timepiece/internal/core/duration"
	"timepiece/internal/core/timepiece"
	"timepiece/internal/ui/dialpicker"
	"timepiece/resources"
)

var (
	textColor      = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	highlightColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	overrunColor   = color.NRGBA{R: 230, G: 80, B: 70, A: 255}
)

// cardView is the on-screen face of one item.
type cardView struct {
	id         string
	root       fyne.CanvasObject
	background *canvas.Rectangle
	fields     *fieldRow
	toggle     *widget.Button
	meridiem   *widget.Button
	hour       *scrollButton
	minute     *scrollButton
	refresh    func()
}

func (overlay *Window) newCard(item timepiece.Item) *cardView {
	card := &cardView{id: item.ID()}
	card.background = canvas.NewRectangle(overlay.backgroundColor(false))
	card.background.CornerRadius = 8

	title := canvas.NewText(item.Title(), textColor)
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.TextSize = 14

	hide := widget.NewButton("_", func() { overlay.hideItem(card.id) })
	remove := widget.NewButton("×", func() { overlay.removeItem(card.id) })
	icon := canvas.NewImageFromResource(resources.KindIcon(item.Kind()))
	icon.FillMode = canvas.ImageFillContain
	icon.SetMinSize(fyne.NewSize(16, 16))
	header := container.NewBorder(nil, nil, container.NewHBox(icon, title), container.NewHBox(hide, remove))

	var body, controls fyne.CanvasObject
	switch item := item.(type) {
	case *timepiece.StopwatchItem:
		body, controls = overlay.stopwatchParts(card, item)
	case *timepiece.TimerItem:
		body, controls = overlay.timerParts(card, item)
	case *timepiece.AlarmItem:
		body, controls = overlay.alarmParts(card, item)
	}

	content := container.NewBorder(header, controls, nil, nil, container.NewCenter(body))
	card.root = container.NewStack(card.background, container.NewPadded(content))
	card.refresh()
	return card
}

func (overlay *Window) stopwatchParts(card *cardView, item *timepiece.StopwatchItem) (fyne.CanvasObject, fyne.CanvasObject) {
	card.fields = newFieldRow()
	card.toggle = widget.NewButton("Start", item.Toggle)
	reset := widget.NewButton("Reset", item.Reset)
	split := widget.NewButton("Split", func() {
		if err := item.Split(); err != nil {
			overlay.logger.Debug("split", "item", item.ID(), "error", err)
		}
	})
	split.Disable()

	card.refresh = func() {
		card.fields.set(item.Labels(), false)
		card.toggle.SetText(toggleLabel(item.Running()))
	}
	return card.fields.root, container.NewGridWithColumns(3, reset, split, card.toggle)
}

func (overlay *Window) timerParts(card *cardView, item *timepiece.TimerItem) (fyne.CanvasObject, fyne.CanvasObject) {
	card.fields = newFieldRow()
	card.toggle = widget.NewButton("Start", item.Toggle)
	reset := widget.NewButton("Reset", item.Reset)
	add := widget.NewButton("+", func() {
		dialpicker.ShowTimeSelect(overlay.window, "Add time", 0, item.AddTime)
	})
	set := widget.NewButton("Set", func() {
		dialpicker.ShowTimeSelect(overlay.window, "Set time", item.Target(), item.SetTarget)
	})

	card.refresh = func() {
		card.fields.set(item.Labels(), item.Reading().Overrun)
		card.toggle.SetText(toggleLabel(item.Running()))
	}
	return card.fields.root, container.NewGridWithColumns(4, reset, add, set, card.toggle)
}

func (overlay *Window) alarmParts(card *cardView, item *timepiece.AlarmItem) (fyne.CanvasObject, fyne.CanvasObject) {
	report := func(err error) {
		overlay.logger.Warn("alarm dial", "item", item.ID(), "error", err)
	}
	card.hour = newScrollButton("", func() {
		dialpicker.Open(overlay.window.Canvas(), "Hour", item.HourDial(), func(value int) error {
			item.ApplyHourDial(value)
			return nil
		}, report)
	}, item.ScrollHours)
	card.minute = newScrollButton("", func() {
		dialpicker.Open(overlay.window.Canvas(), "Minute", item.MinuteDial(), func(value int) error {
			item.ApplyMinuteDial(value)
			return nil
		}, report)
	}, item.ScrollMinutes)
	card.meridiem = widget.NewButton("", item.ToggleMeridiem)
	if item.Use24Hour() {
		card.meridiem.Hide()
	}
	colon := canvas.NewText(":", textColor)
	colon.TextStyle = fyne.TextStyle{Bold: true}
	colon.TextSize = 28

	card.refresh = func() {
		card.hour.SetText(strconv.Itoa(item.DisplayHour()))
		card.minute.SetText(twoDigits(item.Config().Minute))
		if item.IsAM() {
			card.meridiem.SetText("AM")
		} else {
			card.meridiem.SetText("PM")
		}
	}
	body := container.NewHBox(card.hour, colon, card.minute)
	return body, container.NewCenter(card.meridiem)
}

// fieldRow shows a duration as one box per unit. Leading units the format
// hides are collapsed.
type fieldRow struct {
	root     *fyne.Container
	sign     *canvas.Text
	hours    *canvas.Text
	minutes  *canvas.Text
	seconds  *canvas.Text
	fraction *canvas.Text

	hoursBox    *fyne.Container
	minutesBox  *fyne.Container
	fractionBox *fyne.Container
}

func newFieldRow() *fieldRow {
	row := &fieldRow{
		sign:     newFieldText("-"),
		hours:    newFieldText(""),
		minutes:  newFieldText(""),
		seconds:  newFieldText(""),
		fraction: newFieldText(""),
	}
	row.hoursBox = unitBox(row.hours, "h")
	row.minutesBox = unitBox(row.minutes, "m")
	row.fractionBox = container.NewVBox(row.fraction)
	row.root = container.NewHBox(row.sign, row.hoursBox, row.minutesBox, unitBox(row.seconds, "s"), row.fractionBox)
	return row
}

func (row *fieldRow) set(labels duration.Labels, overrun bool) {
	fill := textColor
	if overrun {
		fill = overrunColor
	}
	for _, text := range []*canvas.Text{row.sign, row.hours, row.minutes, row.seconds, row.fraction} {
		text.Color = fill
	}
	row.hours.Text = labels.Hours
	row.minutes.Text = labels.Minutes
	row.seconds.Text = labels.Seconds
	row.fraction.Text = labels.Fraction

	setShown(row.sign, overrun)
	setShown(row.hoursBox, labels.ShowHours)
	setShown(row.minutesBox, labels.ShowMinutes)
	setShown(row.fractionBox, labels.Fraction != "")
	row.root.Refresh()
}

// Text joins the visible fields the way menus show them.
func (row *fieldRow) Text() string {
	labels := duration.Labels{
		Hours:       row.hours.Text,
		Minutes:     row.minutes.Text,
		Seconds:     row.seconds.Text,
		Fraction:    row.fraction.Text,
		ShowHours:   row.hoursBox.Visible(),
		ShowMinutes: row.minutesBox.Visible(),
	}
	if row.sign.Visible() {
		return "-" + labels.Text()
	}
	return labels.Text()
}

func newFieldText(value string) *canvas.Text {
	text := canvas.NewText(value, textColor)
	text.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	text.TextSize = 24
	text.Alignment = fyne.TextAlignCenter
	return text
}

func unitBox(value *canvas.Text, unit string) *fyne.Container {
	caption := canvas.NewText(unit, textColor)
	caption.TextSize = 10
	caption.Alignment = fyne.TextAlignCenter
	return container.NewVBox(value, caption)
}

func setShown(object fyne.CanvasObject, shown bool) {
	if shown {
		object.Show()
	} else {
		object.Hide()
	}
}

func (card *cardView) setHighlight(overlay *Window, on bool) {
	card.background.FillColor = overlay.backgroundColor(on)
	card.background.Refresh()
}

func toggleLabel(running bool) string {
	if running {
		return "Pause"
	}
	return "Start"
}

func twoDigits(value int) string {
	if value < 10 {
		return "0" + strconv.Itoa(value)
	}
	return strconv.Itoa(value)
}

// scrollButton is a button that also steps a value on the scroll wheel.
type scrollButton struct {
	widget.Button
	onScroll func(direction int)
}

func newScrollButton(label string, tapped func(), onScroll func(direction int)) *scrollButton {
	button := &scrollButton{onScroll: onScroll}
	button.Text = label
	button.OnTapped = tapped
	button.ExtendBaseWidget(button)
	return button
}

// Scrolled implements fyne.Scrollable.
func (button *scrollButton) Scrolled(event *fyne.ScrollEvent) {
	if button.onScroll == nil {
		return
	}
	switch {
	case event.Scrolled.DY > 0:
		button.onScroll(1)
	case event.Scrolled.DY < 0:
		button.onScroll(-1)
	}
}
