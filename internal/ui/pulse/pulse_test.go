package pulse

import (
	"context"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		FlashCount:  2,
		FlashDim:    time.Millisecond,
		FlashBright: time.Millisecond,
		BreatheMin:  time.Millisecond,
		BreatheMax:  2 * time.Millisecond,
		DimLevel:    0.5,
	}
}

func collectLevels(t *testing.T, levels <-chan float64, count int) []float64 {
	t.Helper()
	out := make([]float64, 0, count)
	for len(out) < count {
		select {
		case level := <-levels:
			out = append(out, level)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d levels", len(out), count)
		}
	}
	return out
}

func TestFlashBurstEndsAtRestingLevel(t *testing.T) {
	levels := make(chan float64, 64)
	engine := New(testConfig(), func(level float64) { levels <- level })

	engine.StartFlash(context.Background())
	defer engine.Stop()

	got := collectLevels(t, levels, 5)
	want := []float64{0.5, 1, 0.5, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("level[%d] = %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestBreathingAlternatesUntilStopped(t *testing.T) {
	levels := make(chan float64, 64)
	engine := New(testConfig(), func(level float64) { levels <- level })

	engine.StartBreathing(context.Background())
	got := collectLevels(t, levels, 4)
	engine.Stop()

	for i, level := range got {
		wantDim := i%2 == 0
		if wantDim && level != 0.5 {
			t.Fatalf("level[%d] = %v, want dim", i, level)
		}
		if !wantDim && level != 1 {
			t.Fatalf("level[%d] = %v, want bright", i, level)
		}
	}
}

func TestStartingFlashCancelsBreathing(t *testing.T) {
	levels := make(chan float64, 256)
	engine := New(testConfig(), func(level float64) { levels <- level })

	engine.StartBreathing(context.Background())
	collectLevels(t, levels, 2)

	engine.StartFlash(context.Background())
	defer engine.Stop()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case level := <-levels:
			// The flash burst always settles back at the resting level.
			if level == 1 {
				return
			}
		case <-deadline:
			t.Fatal("flash never reached resting level")
		}
	}
}
