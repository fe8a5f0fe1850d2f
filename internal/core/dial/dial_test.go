package dial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngleValueRoundTrip(t *testing.T) {
	for _, rangeMax := range []int{1, 2, 7, 12, 24, 60, 100, 360, 1000} {
		for value := 0; value < rangeMax; value++ {
			angle := ValueToAngle(value, rangeMax)
			require.Equal(t, value, AngleToValue(angle, rangeMax), "range %d value %d", rangeMax, value)

			selection := NewSelection(1, rangeMax, 0)
			if value != 0 {
				selection.Current = (value + 1) % rangeMax
			}
			dx, dy := AngleToPoint(angle, 80)
			selection.DragTo(dx, dy)
			require.Equal(t, value, selection.Current, "drag range %d value %d", rangeMax, value)
		}
	}
}

func TestDragToCardinalPoints(t *testing.T) {
	selection := NewSelection(1, 12, 0)

	assert.True(t, selection.DragTo(10, 0))
	assert.Equal(t, 3, selection.Current)
	assert.True(t, selection.DragTo(0, -10))
	assert.Equal(t, 6, selection.Current)
	assert.True(t, selection.DragTo(-10, 0))
	assert.Equal(t, 9, selection.Current)
	assert.True(t, selection.DragTo(0, 10))
	assert.Equal(t, 0, selection.Current)

	assert.False(t, selection.DragTo(-0.01, 1), "just left of twelve rounds to zero")
	assert.Equal(t, 0, selection.Current)
	selection.Current = 4
	assert.True(t, selection.DragTo(-0.01, 1))
	assert.Equal(t, 0, selection.Current)
}

func TestDragAtCentreLeavesValue(t *testing.T) {
	selection := NewSelection(1, 60, 17)
	assert.False(t, selection.DragTo(0, 0))
	assert.Equal(t, 17, selection.Current)

	_, ok := PointToDegrees(0, 0)
	assert.False(t, ok)
}

func TestScrollWraparound(t *testing.T) {
	selection := NewSelection(5, 12, 0)
	assert.Equal(t, 11, selection.Decrement())
	assert.Equal(t, 55, selection.Label())
	assert.Equal(t, 0, selection.Increment())
	assert.Equal(t, 0, selection.Label())

	selection.Current = 11
	assert.Equal(t, 0, selection.Increment())
}

func TestNewSelectionClamps(t *testing.T) {
	selection := NewSelection(0, 24, 30)
	assert.Equal(t, 1, selection.Divisions)
	assert.Equal(t, 23, selection.Current)

	selection = NewSelection(2, 0, -4)
	assert.Equal(t, 1, selection.RangeMax)
	assert.Equal(t, 0, selection.Current)
}

func TestFaceLabels(t *testing.T) {
	assert.Equal(t, []int{2, 4, 6, 8, 10, 12, 14, 16, 18, 20, 22, 24}, NewSelection(1, 24, 0).FaceLabels())
	assert.Equal(t, []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60}, NewSelection(1, 60, 0).FaceLabels())
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, NewSelection(1, 12, 0).FaceLabels())
	assert.Equal(t, []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60}, NewSelection(5, 12, 0).FaceLabels())
}

func TestWrap(t *testing.T) {
	assert.Equal(t, 23, Wrap(-1, 0, 23))
	assert.Equal(t, 0, Wrap(24, 0, 23))
	assert.Equal(t, 12, Wrap(0, 1, 12))
	assert.Equal(t, 1, Wrap(13, 1, 12))
	assert.Equal(t, 59, Wrap(-61, 0, 59))
}

type fakeGrabber struct {
	grabs    int
	releases int
}

func (grabber *fakeGrabber) Grab()    { grabber.grabs++ }
func (grabber *fakeGrabber) Release() { grabber.releases++ }

func TestInteractionCommitReleasesOnce(t *testing.T) {
	grabber := &fakeGrabber{}
	var values []int
	interaction := Begin(NewSelection(1, 12, 0), grabber, func(value int) error {
		values = append(values, value)
		return nil
	})
	assert.Equal(t, 1, grabber.grabs)

	require.NoError(t, interaction.Drag(10, 0))
	require.NoError(t, interaction.Drag(10, 0.001))
	require.NoError(t, interaction.Scroll(1))
	assert.Equal(t, []int{3, 4}, values)

	require.NoError(t, interaction.Commit())
	assert.True(t, interaction.Closed())
	assert.Equal(t, 1, grabber.releases)
	assert.ErrorIs(t, interaction.Commit(), ErrInteractionClosed)
	assert.ErrorIs(t, interaction.Drag(0, 10), ErrInteractionClosed)
	assert.Equal(t, 1, grabber.releases)
}

func TestInteractionCancelKeepsAppliedValue(t *testing.T) {
	grabber := &fakeGrabber{}
	var values []int
	interaction := Begin(NewSelection(1, 60, 30), grabber, func(value int) error {
		values = append(values, value)
		return nil
	})
	require.NoError(t, interaction.Scroll(-1))
	assert.Equal(t, []int{29}, values)

	require.NoError(t, interaction.Cancel())
	assert.Equal(t, []int{29}, values, "escape does not call back")
	assert.Equal(t, 29, interaction.Selection().Current)
	assert.True(t, interaction.Closed())
	assert.Equal(t, 1, grabber.releases)
	assert.ErrorIs(t, interaction.Cancel(), ErrInteractionClosed)
	assert.Equal(t, 1, grabber.releases)
}

func TestInteractionReleasesOnCallbackError(t *testing.T) {
	grabber := &fakeGrabber{}
	failure := errors.New("boom")
	interaction := Begin(NewSelection(1, 12, 0), grabber, func(int) error {
		return failure
	})

	err := interaction.Scroll(1)
	assert.ErrorIs(t, err, failure)
	assert.True(t, interaction.Closed())
	assert.Equal(t, 1, grabber.releases)
}

func TestInteractionReleasesOnCallbackPanic(t *testing.T) {
	grabber := &fakeGrabber{}
	interaction := Begin(NewSelection(1, 12, 0), grabber, func(int) error {
		panic("callback exploded")
	})

	assert.Panics(t, func() {
		_ = interaction.Drag(0, -5)
	})
	assert.True(t, interaction.Closed())
	assert.Equal(t, 1, grabber.releases)
}

func TestDismissKeepsValue(t *testing.T) {
	grabber := &fakeGrabber{}
	interaction := Begin(NewSelection(1, 24, 6), grabber, nil)
	require.NoError(t, interaction.Scroll(1))
	require.NoError(t, interaction.Dismiss())
	assert.Equal(t, 7, interaction.Selection().Current)
	assert.Equal(t, 1, grabber.releases)
}
