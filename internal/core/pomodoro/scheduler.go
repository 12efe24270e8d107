package pomodoro

import (
	"sync"
	"time"
)

// Scheduler issues the periodic ticks that drive an active countdown.
// The machine only signals "begin issuing ticks" and "end"; the timing
// source itself lives behind this interface. Begin replaces any running
// schedule, End is idempotent, and a new Begin may follow any End.
type Scheduler interface {
	Begin(tick func())
	End()
}

// TickerScheduler drives ticks from a time.Ticker goroutine.
type TickerScheduler struct {
	mu       sync.Mutex
	interval time.Duration
	stopCh   chan struct{}
}

// NewTickerScheduler creates a scheduler firing at the given interval.
func NewTickerScheduler(interval time.Duration) *TickerScheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &TickerScheduler{interval: interval}
}

// Begin starts issuing ticks, replacing any schedule already running.
func (scheduler *TickerScheduler) Begin(tick func()) {
	scheduler.mu.Lock()
	if scheduler.stopCh != nil {
		close(scheduler.stopCh)
	}
	stopCh := make(chan struct{})
	scheduler.stopCh = stopCh
	scheduler.mu.Unlock()

	go scheduler.run(stopCh, tick)
}

// End stops the schedule. Ending an already-stopped scheduler is a no-op.
func (scheduler *TickerScheduler) End() {
	scheduler.mu.Lock()
	if scheduler.stopCh != nil {
		close(scheduler.stopCh)
		scheduler.stopCh = nil
	}
	scheduler.mu.Unlock()
}

func (scheduler *TickerScheduler) run(stopCh chan struct{}, tick func()) {
	ticker := time.NewTicker(scheduler.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			tick()
		}
	}
}
