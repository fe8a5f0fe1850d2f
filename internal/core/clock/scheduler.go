package clock

import (
	"context"
	"sync"
	"time"
)

// Scheduler runs periodic subscriptions. It never starts goroutines on its
// own: the host calls Tick directly, or Run to drive Tick from a ticker.
type Scheduler struct {
	mu    sync.Mutex
	clock Clock
	subs  []*Subscription
}

// Subscription is a periodic callback registered with a Scheduler.
type Subscription struct {
	scheduler *Scheduler
	interval  time.Duration
	next      time.Time
	fn        func(now time.Time)
	cancelled bool
}

// NewScheduler creates a scheduler that reads time from clock.
func NewScheduler(clock Clock) *Scheduler {
	return &Scheduler{clock: clock}
}

// Every registers fn to run every interval, first at now+interval.
func (scheduler *Scheduler) Every(interval time.Duration, fn func(now time.Time)) *Subscription {
	if interval <= 0 {
		interval = time.Second
	}
	sub := &Subscription{
		scheduler: scheduler,
		interval:  interval,
		next:      scheduler.clock.Now().Add(interval),
		fn:        fn,
	}
	scheduler.mu.Lock()
	scheduler.subs = append(scheduler.subs, sub)
	scheduler.mu.Unlock()
	return sub
}

// Cancel stops the subscription. Once Cancel returns the callback is never
// invoked again, including by a Tick already in progress on the same thread.
func (sub *Subscription) Cancel() {
	if sub == nil {
		return
	}
	scheduler := sub.scheduler
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if sub.cancelled {
		return
	}
	sub.cancelled = true
	for index, candidate := range scheduler.subs {
		if candidate == sub {
			scheduler.subs = append(scheduler.subs[:index], scheduler.subs[index+1:]...)
			break
		}
	}
}

// Active reports whether the subscription has not been cancelled.
func (sub *Subscription) Active() bool {
	if sub == nil {
		return false
	}
	sub.scheduler.mu.Lock()
	defer sub.scheduler.mu.Unlock()
	return !sub.cancelled
}

// Len returns the number of live subscriptions.
func (scheduler *Scheduler) Len() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return len(scheduler.subs)
}

// Tick runs every subscription due at now, in registration order.
func (scheduler *Scheduler) Tick(now time.Time) {
	scheduler.mu.Lock()
	due := make([]*Subscription, 0, len(scheduler.subs))
	for _, sub := range scheduler.subs {
		if sub.next.Sub(now) > sub.interval {
			// The clock moved backward; re-base instead of stalling.
			sub.next = now.Add(sub.interval)
		}
		if !now.Before(sub.next) {
			due = append(due, sub)
		}
	}
	scheduler.mu.Unlock()

	for _, sub := range due {
		scheduler.mu.Lock()
		if sub.cancelled {
			scheduler.mu.Unlock()
			continue
		}
		sub.next = now.Add(sub.interval)
		fn := sub.fn
		scheduler.mu.Unlock()
		fn(now)
	}
}

// Run drives Tick every resolution until ctx is done. Each tick is handed to
// dispatch so callbacks execute on the host's UI thread; a nil dispatch runs
// them on the Run goroutine.
func (scheduler *Scheduler) Run(ctx context.Context, resolution time.Duration, dispatch func(func())) {
	if resolution <= 0 {
		resolution = 10 * time.Millisecond
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	ticker := time.NewTicker(resolution)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			dispatch(func() {
				scheduler.Tick(scheduler.clock.Now())
			})
		}
	}
}
