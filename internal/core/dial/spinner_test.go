package dial

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerRollover(t *testing.T) {
	spinner := NewSpinner(0, 59, 59, true, true)
	assert.Equal(t, 1, spinner.Increase())
	assert.Equal(t, 0, spinner.Value)
	assert.Equal(t, "00", spinner.Text())
	assert.Equal(t, -1, spinner.Decrease())
	assert.Equal(t, 59, spinner.Value)
}

func TestSpinnerClampsWithoutRollover(t *testing.T) {
	spinner := NewSpinner(1, 9, 9, false, false)
	assert.Equal(t, 0, spinner.Increase())
	assert.Equal(t, 9, spinner.Value)

	spinner.Set(-3)
	assert.Equal(t, 1, spinner.Value)
	assert.Equal(t, 0, spinner.Decrease())
	assert.Equal(t, 1, spinner.Value)
	assert.Equal(t, "1", spinner.Text())
}

func TestTimePickerCarries(t *testing.T) {
	picker := NewTimePicker(59)
	picker.Increase(FieldSeconds)
	assert.Equal(t, int64(60), picker.Total())
	assert.Equal(t, "01", picker.Minutes.Text())
	assert.Equal(t, "00", picker.Seconds.Text())

	picker = NewTimePicker(3599)
	picker.Increase(FieldSeconds)
	assert.Equal(t, int64(3600), picker.Total())

	picker.Decrease(FieldSeconds)
	assert.Equal(t, int64(3599), picker.Total())

	picker = NewTimePicker(0)
	picker.Decrease(FieldMinutes)
	assert.Equal(t, 99, picker.Hours.Value)
	assert.Equal(t, 59, picker.Minutes.Value)
}

func TestTimePickerSetTotalClamps(t *testing.T) {
	picker := NewTimePicker(90)
	assert.Equal(t, 0, picker.Hours.Value)
	assert.Equal(t, 1, picker.Minutes.Value)
	assert.Equal(t, 30, picker.Seconds.Value)

	picker.SetTotal(1_000_000)
	assert.Equal(t, int64(99*3600+59*60+59), picker.Total())

	picker.SetTotal(-1)
	assert.Equal(t, int64(0), picker.Total())
}
