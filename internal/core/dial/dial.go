// Package dial maps pointer positions and scroll steps on a circular clock
// face to discrete values, and back to angles for drawing the indicator.
//
// Coordinates passed to the mapper are relative to the dial centre with dy
// growing upward, so angle 0 points at twelve o'clock and angles grow
// clockwise.
package dial

import "math"

// FaceNumbers is the count of numbers drawn around the face.
const FaceNumbers = 12

// Selection is the transient value being picked on a dial.
type Selection struct {
	// Divisions multiplies a position into the number shown to the user.
	Divisions int
	// RangeMax is the exclusive upper bound of Current.
	RangeMax int
	Current  int
}

// NewSelection creates a selection, clamping every field into range.
func NewSelection(divisions, rangeMax, current int) *Selection {
	if divisions < 1 {
		divisions = 1
	}
	if rangeMax < 1 {
		rangeMax = 1
	}
	if current < 0 {
		current = 0
	}
	if current >= rangeMax {
		current = rangeMax - 1
	}
	return &Selection{Divisions: divisions, RangeMax: rangeMax, Current: current}
}

// Label returns the number displayed for the current position.
func (selection *Selection) Label() int {
	return selection.Current * selection.Divisions
}

// Step moves the selection by delta positions with wraparound and returns
// the new value.
func (selection *Selection) Step(delta int) int {
	selection.Current = Wrap(selection.Current+delta, 0, selection.RangeMax-1)
	return selection.Current
}

// Increment steps one position forward.
func (selection *Selection) Increment() int {
	return selection.Step(1)
}

// Decrement steps one position back.
func (selection *Selection) Decrement() int {
	return selection.Step(-1)
}

// DragTo sets the value from a pointer offset. It reports whether the value
// changed; a pointer exactly on the centre leaves it untouched.
func (selection *Selection) DragTo(dx, dy float64) bool {
	degrees, ok := PointToDegrees(dx, dy)
	if !ok {
		return false
	}
	value := degreesToValue(degrees, selection.RangeMax)
	if value == selection.Current {
		return false
	}
	selection.Current = value
	return true
}

// Angle returns the indicator angle in radians.
func (selection *Selection) Angle() float64 {
	return ValueToAngle(selection.Current, selection.RangeMax)
}

// FaceLabels returns the numbers drawn at the twelve face positions,
// starting one step clockwise from twelve o'clock.
func (selection *Selection) FaceLabels() []int {
	labels := make([]int, FaceNumbers)
	for index := 1; index <= FaceNumbers; index++ {
		labels[index-1] = index * selection.RangeMax / FaceNumbers * selection.Divisions
	}
	return labels
}

// PointToDegrees returns the clockwise angle from twelve o'clock in [0, 360).
// The second result is false for the centre point, where no angle exists.
func PointToDegrees(dx, dy float64) (float64, bool) {
	if dx == 0 && dy == 0 {
		return 0, false
	}
	degrees := math.Atan2(dx, dy) * 180 / math.Pi
	if degrees < 0 {
		degrees += 360
	}
	if degrees >= 360 {
		degrees -= 360
	}
	return degrees, true
}

// AngleToValue maps an angle in radians to a value in [0, rangeMax).
func AngleToValue(radians float64, rangeMax int) int {
	if rangeMax < 1 {
		return 0
	}
	degrees := math.Mod(radians*180/math.Pi, 360)
	if degrees < 0 {
		degrees += 360
	}
	return degreesToValue(degrees, rangeMax)
}

// ValueToAngle maps a value to its indicator angle in radians.
func ValueToAngle(value, rangeMax int) float64 {
	if rangeMax < 1 {
		return 0
	}
	return float64(value) * 2 * math.Pi / float64(rangeMax)
}

// AngleToPoint returns the offset of the point at radius along angle, with
// dy growing upward.
func AngleToPoint(radians, radius float64) (dx, dy float64) {
	return radius * math.Sin(radians), radius * math.Cos(radians)
}

// Wrap folds value into the inclusive range [low, high].
func Wrap(value, low, high int) int {
	if high < low {
		return low
	}
	span := high - low + 1
	offset := (value - low) % span
	if offset < 0 {
		offset += span
	}
	return low + offset
}

func degreesToValue(degrees float64, rangeMax int) int {
	value := int(math.Round(degrees*float64(rangeMax)/360)) % rangeMax
	if value < 0 {
		value += rangeMax
	}
	return value
}
