package dial

import (
	"fmt"
	"strconv"
)

// Spinner is a bounded integer stepped with +/- buttons or the scroll wheel.
type Spinner struct {
	Min          int
	Max          int
	Value        int
	Rollover     bool
	LeadingZeros bool
}

// NewSpinner creates a spinner with value clamped into [low, high].
func NewSpinner(low, high, value int, rollover, leadingZeros bool) *Spinner {
	if high < low {
		high = low
	}
	spinner := &Spinner{Min: low, Max: high, Rollover: rollover, LeadingZeros: leadingZeros}
	spinner.Set(value)
	return spinner
}

// Set replaces the value, clamped into range.
func (spinner *Spinner) Set(value int) {
	if value < spinner.Min {
		value = spinner.Min
	}
	if value > spinner.Max {
		value = spinner.Max
	}
	spinner.Value = value
}

// Increase steps up. It returns 1 when the value rolled over to Min.
func (spinner *Spinner) Increase() int {
	spinner.Value++
	if spinner.Value <= spinner.Max {
		return 0
	}
	if spinner.Rollover {
		spinner.Value = spinner.Min
		return 1
	}
	spinner.Value = spinner.Max
	return 0
}

// Decrease steps down. It returns -1 when the value rolled under to Max.
func (spinner *Spinner) Decrease() int {
	spinner.Value--
	if spinner.Value >= spinner.Min {
		return 0
	}
	if spinner.Rollover {
		spinner.Value = spinner.Max
		return -1
	}
	spinner.Value = spinner.Min
	return 0
}

// Text renders the value, zero-padded to the width of Max when LeadingZeros is set.
func (spinner *Spinner) Text() string {
	if !spinner.LeadingZeros {
		return strconv.Itoa(spinner.Value)
	}
	return fmt.Sprintf("%0*d", len(strconv.Itoa(spinner.Max)), spinner.Value)
}

// Field selects a TimePicker spinner.
type Field int

const (
	FieldHours Field = iota
	FieldMinutes
	FieldSeconds
)

// TimePicker edits a duration as hours, minutes and seconds. A seconds
// rollover carries into minutes, and minutes into hours.
type TimePicker struct {
	Hours   *Spinner
	Minutes *Spinner
	Seconds *Spinner
}

// NewTimePicker creates a picker preset to total seconds.
func NewTimePicker(total int64) *TimePicker {
	picker := &TimePicker{
		Hours:   NewSpinner(0, 99, 0, true, false),
		Minutes: NewSpinner(0, 59, 0, true, true),
		Seconds: NewSpinner(0, 59, 0, true, true),
	}
	picker.SetTotal(total)
	return picker
}

// SetTotal presets the picker, clamping to the largest representable value.
func (picker *TimePicker) SetTotal(total int64) {
	if total < 0 {
		total = 0
	}
	hours := total / 3600
	if hours > int64(picker.Hours.Max) {
		picker.Hours.Set(picker.Hours.Max)
		picker.Minutes.Set(picker.Minutes.Max)
		picker.Seconds.Set(picker.Seconds.Max)
		return
	}
	picker.Hours.Set(int(hours))
	picker.Minutes.Set(int(total % 3600 / 60))
	picker.Seconds.Set(int(total % 60))
}

// Increase steps field up, carrying rollovers into the next larger field.
func (picker *TimePicker) Increase(field Field) {
	picker.step(field, 1)
}

// Decrease steps field down, borrowing from the next larger field on rollover.
func (picker *TimePicker) Decrease(field Field) {
	picker.step(field, -1)
}

// Total returns the picked duration in seconds.
func (picker *TimePicker) Total() int64 {
	return int64(picker.Hours.Value)*3600 + int64(picker.Minutes.Value)*60 + int64(picker.Seconds.Value)
}

// Spinner returns the spinner behind field.
func (picker *TimePicker) Spinner(field Field) *Spinner {
	switch field {
	case FieldHours:
		return picker.Hours
	case FieldMinutes:
		return picker.Minutes
	default:
		return picker.Seconds
	}
}

func (picker *TimePicker) step(field Field, direction int) {
	for {
		spinner := picker.Spinner(field)
		var carry int
		if direction > 0 {
			carry = spinner.Increase()
		} else {
			carry = spinner.Decrease()
		}
		if carry == 0 || field == FieldHours {
			return
		}
		field--
	}
}
