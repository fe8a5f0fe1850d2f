// Package dialpicker draws a clock-face picker for alarm hours and minutes
// and a spinner dialog for timer durations.
package dialpicker

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"timepiece/internal/core/dial"
)

const (
	faceSize        = float32(180)
	labelRadius     = 0.80
	indicatorRadius = 0.62
)

// Face is a clock face bound to one dial interaction. Drags and taps point
// the indicator; scrolling steps it.
type Face struct {
	widget.BaseWidget

	interaction *dial.Interaction
	onError     func(error)
}

// NewFace creates a face driving interaction. onError receives failures
// from the interaction's change callback.
func NewFace(interaction *dial.Interaction, onError func(error)) *Face {
	face := &Face{interaction: interaction, onError: onError}
	face.ExtendBaseWidget(face)
	return face
}

// CreateRenderer implements fyne.Widget.
func (face *Face) CreateRenderer() fyne.WidgetRenderer {
	renderer := &faceRenderer{
		face:      face,
		rim:       canvas.NewCircle(color.Transparent),
		indicator: canvas.NewLine(theme.Color(theme.ColorNamePrimary)),
		hub:       canvas.NewCircle(theme.Color(theme.ColorNamePrimary)),
		value:     canvas.NewText("", theme.Color(theme.ColorNameForeground)),
	}
	renderer.rim.StrokeColor = theme.Color(theme.ColorNameForeground)
	renderer.rim.StrokeWidth = 2
	renderer.indicator.StrokeWidth = 3
	renderer.value.TextStyle = fyne.TextStyle{Bold: true}
	renderer.value.Alignment = fyne.TextAlignCenter
	for i := 0; i < dial.FaceNumbers; i++ {
		label := canvas.NewText("", theme.Color(theme.ColorNameForeground))
		label.Alignment = fyne.TextAlignCenter
		renderer.labels = append(renderer.labels, label)
	}
	renderer.Refresh()
	return renderer
}

// Tapped implements fyne.Tappable.
func (face *Face) Tapped(event *fyne.PointEvent) {
	face.report(face.pointAt(event.Position))
	face.Refresh()
}

// Dragged implements fyne.Draggable.
func (face *Face) Dragged(event *fyne.DragEvent) {
	face.report(face.pointAt(event.Position))
	face.Refresh()
}

// DragEnd implements fyne.Draggable.
func (face *Face) DragEnd() {}

// Scrolled implements fyne.Scrollable.
func (face *Face) Scrolled(event *fyne.ScrollEvent) {
	face.report(face.scroll(event.Scrolled.DY))
	face.Refresh()
}

func (face *Face) pointAt(position fyne.Position) error {
	dx, dy := centreOffset(position, face.Size())
	return face.interaction.Drag(dx, dy)
}

func (face *Face) scroll(delta float32) error {
	switch {
	case delta > 0:
		return face.interaction.Scroll(1)
	case delta < 0:
		return face.interaction.Scroll(-1)
	}
	return nil
}

func (face *Face) report(err error) {
	if err != nil && face.onError != nil {
		face.onError(err)
	}
}

// centreOffset converts a widget position to an offset from the centre with
// dy growing upward.
func centreOffset(position fyne.Position, size fyne.Size) (dx, dy float64) {
	return float64(position.X - size.Width/2), float64(size.Height/2 - position.Y)
}

// pointFromCentre converts a dial offset back to widget coordinates.
func pointFromCentre(dx, dy float64, size fyne.Size) fyne.Position {
	return fyne.NewPos(size.Width/2+float32(dx), size.Height/2-float32(dy))
}

func faceRadius(size fyne.Size) float64 {
	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	return float64(side) / 2
}

type faceRenderer struct {
	face      *Face
	rim       *canvas.Circle
	indicator *canvas.Line
	hub       *canvas.Circle
	value     *canvas.Text
	labels    []*canvas.Text
}

func (renderer *faceRenderer) Layout(size fyne.Size) {
	radius := faceRadius(size)
	centre := pointFromCentre(0, 0, size)
	rimRadius := float32(radius) - 2
	renderer.rim.Move(fyne.NewPos(centre.X-rimRadius, centre.Y-rimRadius))
	renderer.rim.Resize(fyne.NewSize(rimRadius*2, rimRadius*2))

	hubRadius := float32(4)
	renderer.hub.Move(fyne.NewPos(centre.X-hubRadius, centre.Y-hubRadius))
	renderer.hub.Resize(fyne.NewSize(hubRadius*2, hubRadius*2))

	selection := renderer.face.interaction.Selection()
	renderer.indicator.Position1 = centre
	tipX, tipY := dial.AngleToPoint(selection.Angle(), radius*indicatorRadius)
	renderer.indicator.Position2 = pointFromCentre(tipX, tipY, size)

	for index, label := range renderer.labels {
		angle := dial.ValueToAngle(index+1, dial.FaceNumbers)
		dx, dy := dial.AngleToPoint(angle, radius*labelRadius)
		at := pointFromCentre(dx, dy, size)
		labelSize := label.MinSize()
		label.Move(fyne.NewPos(at.X-labelSize.Width/2, at.Y-labelSize.Height/2))
		label.Resize(labelSize)
	}

	valueSize := renderer.value.MinSize()
	renderer.value.Move(fyne.NewPos(centre.X-valueSize.Width/2, centre.Y+float32(radius)*0.25))
	renderer.value.Resize(valueSize)
}

func (renderer *faceRenderer) MinSize() fyne.Size {
	return fyne.NewSize(faceSize, faceSize)
}

func (renderer *faceRenderer) Refresh() {
	selection := renderer.face.interaction.Selection()
	for index, value := range selection.FaceLabels() {
		renderer.labels[index].Text = strconv.Itoa(value)
	}
	renderer.value.Text = strconv.Itoa(selection.Label())
	renderer.Layout(renderer.face.Size())
	for _, object := range renderer.Objects() {
		object.Refresh()
	}
}

func (renderer *faceRenderer) Objects() []fyne.CanvasObject {
	objects := []fyne.CanvasObject{renderer.rim, renderer.indicator, renderer.hub, renderer.value}
	for _, label := range renderer.labels {
		objects = append(objects, label)
	}
	return objects
}

func (renderer *faceRenderer) Destroy() {}
