package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	alarmSound   *widget.Entry
	timerSound   *widget.Entry
	clockFormat  *widget.RadioGroup
	stopwatchMs  *widget.Entry
	timerMs      *widget.Entry
	alarmMs      *widget.Entry
	opacity      *widget.Slider
	startAtLogin *widget.Check
	logLevel     *widget.Select
}

var clockFormatLabels = map[ClockFormat]string{
	ClockFormatSystem: "Follow desktop",
	ClockFormat12h:    "12-hour",
	ClockFormat24h:    "24-hour",
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Timepiece Settings")

	alarmSound := widget.NewEntry()
	alarmSound.SetPlaceHolder("/path/to/alarm.oga")
	timerSound := widget.NewEntry()
	timerSound.SetPlaceHolder("/path/to/timer.oga")

	clockFormat := widget.NewRadioGroup([]string{
		clockFormatLabels[ClockFormatSystem],
		clockFormatLabels[ClockFormat12h],
		clockFormatLabels[ClockFormat24h],
	}, nil)
	clockFormat.Horizontal = true

	stopwatchMs := widget.NewEntry()
	timerMs := widget.NewEntry()
	alarmMs := widget.NewEntry()

	opacity := widget.NewSlider(0.5, 1)
	opacity.Step = 0.01

	startAtLogin := widget.NewCheck("Start at login", nil)
	logLevel := widget.NewSelect([]string{"debug", "info", "warn", "error"}, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Sounds", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Alarm sound"),
		alarmSound,
		widget.NewLabel("Timer sound"),
		timerSound,
		widget.NewLabelWithStyle("Display", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		clockFormat,
		container.NewHBox(widget.NewLabel("Stopwatch refresh"), stopwatchMs, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Timer refresh"), timerMs, widget.NewLabel("ms")),
		container.NewHBox(widget.NewLabel("Alarm check"), alarmMs, widget.NewLabel("ms")),
		widget.NewLabel("Card opacity"),
		opacity,
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		startAtLogin,
		container.NewHBox(widget.NewLabel("Log level"), logLevel),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, container.NewVScroll(form))
	window.SetContent(content)
	window.Resize(fyne.NewSize(460, 560))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		alarmSound:   alarmSound,
		timerSound:   timerSound,
		clockFormat:  clockFormat,
		stopwatchMs:  stopwatchMs,
		timerMs:      timerMs,
		alarmMs:      alarmMs,
		opacity:      opacity,
		startAtLogin: startAtLogin,
		logLevel:     logLevel,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.alarmSound.SetText(settings.AlarmSoundPath)
	prefs.timerSound.SetText(settings.TimerSoundPath)
	prefs.clockFormat.SetSelected(clockFormatLabels[settings.ClockFormat])
	prefs.stopwatchMs.SetText(formatMillis(settings.StopwatchRefresh))
	prefs.timerMs.SetText(formatMillis(settings.TimerRefresh))
	prefs.alarmMs.SetText(formatMillis(settings.AlarmCheck))
	prefs.opacity.Value = settings.OverlayOpacity
	prefs.opacity.Refresh()
	prefs.startAtLogin.SetChecked(settings.StartAtLogin)
	prefs.logLevel.SetSelected(settings.LogLevel)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.AlarmSoundPath = strings.TrimSpace(prefs.alarmSound.Text)
	settings.TimerSoundPath = strings.TrimSpace(prefs.timerSound.Text)
	for format, label := range clockFormatLabels {
		if label == prefs.clockFormat.Selected {
			settings.ClockFormat = format
		}
	}
	if millis, ok := parsePositiveInt(prefs.stopwatchMs.Text); ok {
		settings.StopwatchRefresh = time.Duration(millis) * time.Millisecond
	}
	if millis, ok := parsePositiveInt(prefs.timerMs.Text); ok {
		settings.TimerRefresh = time.Duration(millis) * time.Millisecond
	}
	if millis, ok := parsePositiveInt(prefs.alarmMs.Text); ok {
		settings.AlarmCheck = time.Duration(millis) * time.Millisecond
	}
	settings.OverlayOpacity = prefs.opacity.Value
	settings.StartAtLogin = prefs.startAtLogin.Checked
	if prefs.logLevel.Selected != "" {
		settings.LogLevel = prefs.logLevel.Selected
	}

	settings = settings.Normalize()
	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func formatMillis(value time.Duration) string {
	return fmt.Sprintf("%d", value.Milliseconds())
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
