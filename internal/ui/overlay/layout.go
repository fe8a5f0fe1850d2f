package overlay

import (
	"fyne.io/fyne/v2"
)

const (
	cardWidth  = float32(170)
	cardHeight = float32(160)
)

// placementLayout positions each card at its coordinator slot.
type placementLayout struct {
	positions map[fyne.CanvasObject]fyne.Position
}

func newPlacementLayout() *placementLayout {
	return &placementLayout{positions: make(map[fyne.CanvasObject]fyne.Position)}
}

func (layout *placementLayout) place(object fyne.CanvasObject, position fyne.Position) {
	layout.positions[object] = position
}

func (layout *placementLayout) reset() {
	layout.positions = make(map[fyne.CanvasObject]fyne.Position)
}

func (layout *placementLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, object := range objects {
		position, ok := layout.positions[object]
		if !ok {
			continue
		}
		object.Move(position)
		object.Resize(fyne.NewSize(cardWidth, cardHeight))
	}
}

// MinSize mirrors the top-left margin on the bottom and right.
func (layout *placementLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	var width, height float32
	var marginX, marginY float32
	first := true
	for _, object := range objects {
		position, ok := layout.positions[object]
		if !ok {
			continue
		}
		if first || position.X < marginX {
			marginX = position.X
		}
		if first || position.Y < marginY {
			marginY = position.Y
		}
		first = false
		if right := position.X + cardWidth; right > width {
			width = right
		}
		if bottom := position.Y + cardHeight; bottom > height {
			height = bottom
		}
	}
	if first {
		return fyne.NewSize(0, 0)
	}
	return fyne.NewSize(width+marginX, height+marginY)
}
