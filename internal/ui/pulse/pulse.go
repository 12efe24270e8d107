package pulse

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Config contains pulse timing values. Levels are background intensity
// in [0,1], where 1 is the resting state.
type Config struct {
	FlashCount  int
	FlashDim    time.Duration
	FlashBright time.Duration

	BreatheMin time.Duration
	BreatheMax time.Duration

	DimLevel float64
}

// Engine drives the overlay's attention animations: a short flash burst
// when a phase completes and a slow breathing loop during breaks. Only
// one animation runs at a time; starting a new one cancels the old.
type Engine struct {
	mu     sync.Mutex
	config Config
	apply  func(level float64)
	cancel context.CancelFunc
	rng    *rand.Rand
}

// New creates a pulse engine that reports levels through apply.
func New(config Config, apply func(level float64)) *Engine {
	return &Engine{
		config: config,
		apply:  apply,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartFlash runs one flash burst and restores the resting level.
func (engine *Engine) StartFlash(ctx context.Context) {
	engine.restart(ctx, func(runCtx context.Context) {
		defer engine.apply(1)
		for i := 0; i < engine.config.FlashCount; i++ {
			if !engine.step(runCtx, engine.config.DimLevel, engine.config.FlashDim) {
				return
			}
			if !engine.step(runCtx, 1, engine.config.FlashBright) {
				return
			}
		}
	})
}

// StartBreathing dims and brightens with jittered holds until the
// context ends.
func (engine *Engine) StartBreathing(ctx context.Context) {
	engine.restart(ctx, func(runCtx context.Context) {
		for {
			if !engine.step(runCtx, engine.config.DimLevel, engine.breatheHold()) {
				return
			}
			if !engine.step(runCtx, 1, engine.breatheHold()) {
				return
			}
		}
	})
}

// Stop terminates any active animation without touching the level.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) restart(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

// step applies a level, then waits. Reports false once ctx is done.
func (engine *Engine) step(ctx context.Context, level float64, hold time.Duration) bool {
	engine.apply(level)
	timer := time.NewTimer(hold)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (engine *Engine) breatheHold() time.Duration {
	span := engine.config.BreatheMax - engine.config.BreatheMin
	if span <= 0 {
		return engine.config.BreatheMin
	}
	engine.mu.Lock()
	jitter := time.Duration(engine.rng.Int63n(int64(span)))
	engine.mu.Unlock()
	return engine.config.BreatheMin + jitter
}
