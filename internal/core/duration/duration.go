// Package duration converts millisecond and second counts into clock
// fields and renders them for the stopwatch and timer views.
package duration

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the resolution of a total passed to Decompose.
type Unit int

const (
	Millisecond Unit = iota
	Second
)

// Parts holds the clock fields of a non-negative duration.
type Parts struct {
	Hours        int64
	Minutes      int64
	Seconds      int64
	Milliseconds int64
}

// Hundredths returns the centisecond field shown by the stopwatch.
func (parts Parts) Hundredths() int64 {
	return parts.Milliseconds / 10
}

// Decompose splits total into clock fields. Negative totals are treated as zero.
func Decompose(total int64, unit Unit) Parts {
	if total < 0 {
		total = 0
	}
	var millis int64
	if unit == Millisecond {
		millis = total % 1000
		total /= 1000
	}
	return Parts{
		Hours:        total / 3600,
		Minutes:      total % 3600 / 60,
		Seconds:      total % 60,
		Milliseconds: millis,
	}
}

// Compose is the inverse of Decompose.
func Compose(parts Parts, unit Unit) int64 {
	seconds := parts.Hours*3600 + parts.Minutes*60 + parts.Seconds
	if unit == Second {
		return seconds
	}
	return seconds*1000 + parts.Milliseconds
}

// FormatOptions controls how Format renders each field.
type FormatOptions struct {
	// HideLeadingZeroUnits hides hours, then minutes, while they and every
	// higher unit are zero.
	HideLeadingZeroUnits bool
	// PadMinutesSeconds always zero-pads minutes and seconds. When false
	// they are padded only behind a visible non-zero higher unit.
	PadMinutesSeconds bool
	// FractionDigits is the number of sub-second digits (0 to 3).
	FractionDigits int
}

// StopwatchFormat is the stopwatch card layout.
var StopwatchFormat = FormatOptions{HideLeadingZeroUnits: true, FractionDigits: 2}

// TimerFormat is the timer card layout. All three units are always shown.
var TimerFormat = FormatOptions{PadMinutesSeconds: true}

// Labels are the rendered fields of a duration.
type Labels struct {
	Hours       string
	Minutes     string
	Seconds     string
	Fraction    string
	ShowHours   bool
	ShowMinutes bool
}

// Format renders parts according to options.
func Format(parts Parts, options FormatOptions) Labels {
	labels := Labels{
		ShowHours:   !options.HideLeadingZeroUnits || parts.Hours != 0,
		ShowMinutes: !options.HideLeadingZeroUnits || parts.Hours != 0 || parts.Minutes != 0,
	}
	labels.Hours = strconv.FormatInt(parts.Hours, 10)

	padMinutes := options.PadMinutesSeconds || parts.Hours != 0
	padSeconds := options.PadMinutesSeconds || parts.Hours+parts.Minutes != 0
	labels.Minutes = formatField(parts.Minutes, padMinutes)
	labels.Seconds = formatField(parts.Seconds, padSeconds)

	digits := options.FractionDigits
	if digits > 3 {
		digits = 3
	}
	if digits > 0 {
		divisor := int64(1)
		for i := digits; i < 3; i++ {
			divisor *= 10
		}
		labels.Fraction = fmt.Sprintf("%0*d", digits, parts.Milliseconds/divisor)
	}
	return labels
}

// Text joins the visible fields with colons.
func (labels Labels) Text() string {
	fields := make([]string, 0, 4)
	if labels.ShowHours {
		fields = append(fields, labels.Hours)
	}
	if labels.ShowMinutes {
		fields = append(fields, labels.Minutes)
	}
	fields = append(fields, labels.Seconds)
	if labels.Fraction != "" {
		fields = append(fields, labels.Fraction)
	}
	return strings.Join(fields, ":")
}

// StopwatchText renders the stopwatch menu entry for an elapsed millisecond count.
func StopwatchText(millis int64) string {
	return Format(Decompose(millis, Millisecond), StopwatchFormat).Text()
}

// TimerText renders the timer menu entry: "m:ss" below an hour, "h:mm:ss" above.
func TimerText(seconds int64) string {
	parts := Decompose(seconds, Second)
	if parts.Hours == 0 {
		return fmt.Sprintf("%d:%02d", parts.Minutes, parts.Seconds)
	}
	return fmt.Sprintf("%d:%02d:%02d", parts.Hours, parts.Minutes, parts.Seconds)
}

func formatField(value int64, pad bool) string {
	if pad {
		return fmt.Sprintf("%02d", value)
	}
	return strconv.FormatInt(value, 10)
}
