package timekeeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timepiece/internal/core/clock"
)

func TestCountdownExpiresOncePerCrossing(t *testing.T) {
	mock := clock.NewMock(epoch)
	countdown := NewCountdown(mock, 5)
	events := collect(countdown)

	require.True(t, countdown.Start())
	for i := 0; i < 100; i++ {
		mock.Advance(100 * time.Millisecond)
		countdown.Sample()
	}

	reading := countdown.Sample()
	assert.True(t, reading.Overrun)
	assert.Equal(t, int64(5), reading.Remaining)
	assert.Equal(t, 1, countType(*events, EventExpired))
}

func TestCountdownExpiryFlagOnCrossingSample(t *testing.T) {
	mock := clock.NewMock(epoch)
	countdown := NewCountdown(mock, 2)
	countdown.Start()

	mock.Advance(2 * time.Second)
	reading := countdown.Sample()
	assert.False(t, reading.Overrun, "zero is not overrun")
	assert.Equal(t, int64(0), reading.Remaining)

	mock.Advance(time.Second)
	reading = countdown.Sample()
	assert.True(t, reading.Expired)
	assert.Equal(t, int64(-1), reading.Signed())

	mock.Advance(time.Second)
	assert.False(t, countdown.Sample().Expired)
}

func TestCountdownAddTimeWhilePausedDoesNotExpire(t *testing.T) {
	mock := clock.NewMock(epoch)
	countdown := NewCountdown(mock, 3)
	events := collect(countdown)

	countdown.Start()
	mock.Advance(2 * time.Second)
	countdown.Pause()
	countdown.AddTime(10)
	assert.Equal(t, int64(11), countdown.Sample().Remaining)
	assert.Zero(t, countType(*events, EventExpired))

	countdown.SetTarget(1)
	countdown.Start()
	countdown.Pause()
	mock.Advance(10 * time.Second)
	assert.False(t, countdown.Sample().Overrun)
	assert.Zero(t, countType(*events, EventExpired))

	countdown.Start()
	mock.Advance(2 * time.Second)
	assert.True(t, countdown.Sample().Expired)
	assert.Equal(t, 1, countType(*events, EventExpired))
}

func TestCountdownResumeDoesNotRearm(t *testing.T) {
	mock := clock.NewMock(epoch)
	countdown := NewCountdown(mock, 1)
	events := collect(countdown)

	countdown.Start()
	mock.Advance(2 * time.Second)
	countdown.Sample()
	countdown.Pause()
	countdown.AddTime(5)
	countdown.Start()
	mock.Advance(10 * time.Second)
	countdown.Sample()
	assert.Equal(t, 1, countType(*events, EventExpired))

	countdown.Reset()
	countdown.Start()
	mock.Advance(2 * time.Second)
	countdown.Sample()
	assert.Equal(t, 2, countType(*events, EventExpired))
}

func TestCountdownPauseReportsPendingCrossing(t *testing.T) {
	mock := clock.NewMock(epoch)
	countdown := NewCountdown(mock, 1)
	events := collect(countdown)

	countdown.Start()
	mock.Advance(3 * time.Second)
	countdown.Pause()
	assert.Equal(t, 1, countType(*events, EventExpired))
}

func TestCountdownEndToEnd(t *testing.T) {
	mock := clock.NewMock(epoch)
	countdown := NewCountdown(mock, 0)

	countdown.SetTarget(90)
	countdown.Start()
	mock.Advance(91 * time.Second)
	reading := countdown.Sample()
	assert.True(t, reading.Overrun)
	assert.Equal(t, int64(1), reading.Remaining)

	countdown.Reset()
	reading = countdown.Sample()
	assert.False(t, reading.Overrun)
	assert.Equal(t, int64(90), reading.Remaining)
	assert.Equal(t, StateIdle, countdown.State())
}

func TestCountdownClampsNegativeInput(t *testing.T) {
	mock := clock.NewMock(epoch)
	countdown := NewCountdown(mock, -5)
	assert.Equal(t, int64(0), countdown.Target())

	countdown.SetTarget(30)
	countdown.AddTime(-20)
	assert.Equal(t, int64(30), countdown.Sample().Remaining)
}

func TestCountdownWholeSeconds(t *testing.T) {
	mock := clock.NewMock(epoch)
	countdown := NewCountdown(mock, 10)

	countdown.Start()
	mock.Advance(1900 * time.Millisecond)
	assert.Equal(t, int64(9), countdown.Sample().Remaining)
	countdown.Pause()
	countdown.Start()
	mock.Advance(1900 * time.Millisecond)
	assert.Equal(t, int64(8), countdown.Sample().Remaining)
}
