package clock

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, time.March, 10, 8, 0, 0, 0, time.Local)

func TestSchedulerRunsDueSubscriptions(t *testing.T) {
	mock := NewMock(testStart)
	scheduler := NewScheduler(mock)

	var fast, slow int
	scheduler.Every(100*time.Millisecond, func(time.Time) { fast++ })
	scheduler.Every(time.Second, func(time.Time) { slow++ })

	for i := 0; i < 10; i++ {
		scheduler.Tick(mock.Advance(100 * time.Millisecond))
	}
	assert.Equal(t, 10, fast)
	assert.Equal(t, 1, slow)
}

func TestSchedulerDoesNotBurstAfterSleep(t *testing.T) {
	mock := NewMock(testStart)
	scheduler := NewScheduler(mock)

	var calls int
	scheduler.Every(100*time.Millisecond, func(time.Time) { calls++ })

	scheduler.Tick(mock.Advance(time.Hour))
	assert.Equal(t, 1, calls)
	scheduler.Tick(mock.Advance(50 * time.Millisecond))
	assert.Equal(t, 1, calls)
	scheduler.Tick(mock.Advance(50 * time.Millisecond))
	assert.Equal(t, 2, calls)
}

func TestSchedulerRebasesAfterBackwardJump(t *testing.T) {
	mock := NewMock(testStart)
	scheduler := NewScheduler(mock)

	var calls int
	scheduler.Every(time.Second, func(time.Time) { calls++ })

	scheduler.Tick(mock.Advance(-time.Hour))
	assert.Equal(t, 0, calls)
	scheduler.Tick(mock.Advance(time.Second))
	assert.Equal(t, 1, calls)
}

func TestCancelIsSynchronous(t *testing.T) {
	mock := NewMock(testStart)
	scheduler := NewScheduler(mock)

	var second *Subscription
	var secondCalls int
	scheduler.Every(time.Second, func(time.Time) {
		second.Cancel()
	})
	second = scheduler.Every(time.Second, func(time.Time) { secondCalls++ })

	scheduler.Tick(mock.Advance(time.Second))
	assert.Equal(t, 0, secondCalls, "cancelled during the same tick")
	assert.False(t, second.Active())
	assert.Equal(t, 1, scheduler.Len())

	second.Cancel()
	var nilSub *Subscription
	nilSub.Cancel()
	assert.False(t, nilSub.Active())
}

func TestRunDispatchesUntilCancelled(t *testing.T) {
	scheduler := NewScheduler(Real())
	var calls atomic.Int32
	scheduler.Every(time.Millisecond, func(time.Time) { calls.Add(1) })

	var dispatched atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Millisecond, func(fn func()) {
			dispatched.Add(1)
			fn()
		})
		close(done)
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.GreaterOrEqual(t, dispatched.Load(), calls.Load())
}
