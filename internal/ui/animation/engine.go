package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains flash timing values.
type Config struct {
	// Duration bounds a whole flash sequence. Zero flashes until stopped.
	Duration time.Duration
	Pattern  Pattern
}

// Engine flashes card highlights after an alert. Each card runs at most one
// sequence; starting a new one on the same card replaces it.
type Engine struct {
	mu        sync.Mutex
	config    Config
	highlight func(id string, on bool)
	flashes   map[string]flash
	next      uint64
	rng       *rand.Rand
}

type flash struct {
	cancel     context.CancelFunc
	generation uint64
}

// New creates a new flash engine. highlight is called from the engine's
// goroutines and must hop to the UI thread itself.
func New(config Config, highlight func(id string, on bool)) *Engine {
	return &Engine{
		config:    config,
		highlight: highlight,
		flashes:   make(map[string]flash),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Flash starts a flash sequence on the card with id.
func (engine *Engine) Flash(ctx context.Context, id string) {
	engine.start(ctx, id, func(runCtx context.Context) {
		defer engine.highlight(id, false)

		deadline := time.Time{}
		if engine.config.Duration > 0 {
			deadline = time.Now().Add(engine.config.Duration)
		}
		pattern := engine.config.Pattern
		for deadline.IsZero() || time.Now().Before(deadline) {
			engine.highlight(id, true)
			if !sleepWithContext(runCtx, engine.sample(pattern.On)) {
				return
			}
			engine.highlight(id, false)
			if !sleepWithContext(runCtx, engine.sample(pattern.Off)) {
				return
			}
		}
	})
}

// Stop terminates the flash on id, if any.
func (engine *Engine) Stop(id string) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if current, ok := engine.flashes[id]; ok {
		current.cancel()
		delete(engine.flashes, id)
	}
}

// StopAll terminates every active flash.
func (engine *Engine) StopAll() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	for id, current := range engine.flashes {
		current.cancel()
		delete(engine.flashes, id)
	}
}

// Active reports whether id is flashing.
func (engine *Engine) Active(id string) bool {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	_, ok := engine.flashes[id]
	return ok
}

func (engine *Engine) start(parent context.Context, id string, run func(context.Context)) {
	engine.mu.Lock()
	if current, ok := engine.flashes[id]; ok {
		current.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.next++
	generation := engine.next
	engine.flashes[id] = flash{cancel: cancel, generation: generation}
	engine.mu.Unlock()

	go func() {
		defer engine.finish(id, generation)
		run(runCtx)
	}()
}

// finish forgets id unless a newer sequence replaced this one.
func (engine *Engine) finish(id string, generation uint64) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	current, ok := engine.flashes[id]
	if !ok || current.generation != generation {
		return
	}
	current.cancel()
	delete(engine.flashes, id)
}

func (engine *Engine) sample(value Range) time.Duration {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return value.Random(engine.rng)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
