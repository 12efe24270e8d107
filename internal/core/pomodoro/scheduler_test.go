package pomodoro

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerSchedulerIssuesTicks(t *testing.T) {
	scheduler := NewTickerScheduler(5 * time.Millisecond)
	var ticks atomic.Int64

	scheduler.Begin(func() { ticks.Add(1) })
	time.Sleep(100 * time.Millisecond)
	scheduler.End()

	if got := ticks.Load(); got < 3 {
		t.Errorf("ticks = %d, want at least 3 after 100ms at 5ms interval", got)
	}
}

func TestTickerSchedulerEndIsIdempotentAndRestartable(t *testing.T) {
	scheduler := NewTickerScheduler(5 * time.Millisecond)
	var ticks atomic.Int64

	scheduler.Begin(func() { ticks.Add(1) })
	time.Sleep(30 * time.Millisecond)
	scheduler.End()
	scheduler.End()

	time.Sleep(30 * time.Millisecond)
	stopped := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != stopped {
		t.Errorf("ticks advanced from %d to %d after End", stopped, got)
	}

	scheduler.Begin(func() { ticks.Add(1) })
	time.Sleep(100 * time.Millisecond)
	scheduler.End()
	if got := ticks.Load(); got <= stopped {
		t.Errorf("ticks = %d, want progress after restart (was %d)", got, stopped)
	}
}

func TestTickerSchedulerBeginReplacesSchedule(t *testing.T) {
	scheduler := NewTickerScheduler(5 * time.Millisecond)
	var first, second atomic.Int64

	scheduler.Begin(func() { first.Add(1) })
	scheduler.Begin(func() { second.Add(1) })
	time.Sleep(60 * time.Millisecond)
	scheduler.End()

	frozen := first.Load()
	time.Sleep(30 * time.Millisecond)
	if got := first.Load(); got != frozen {
		t.Errorf("replaced schedule still ticking: %d -> %d", frozen, got)
	}
	if second.Load() == 0 {
		t.Error("replacement schedule never ticked")
	}
}
