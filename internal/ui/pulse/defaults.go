package pulse

import "time"

// DefaultConfig returns the stock overlay pulse timings.
func DefaultConfig() Config {
	return Config{
		FlashCount:  3,
		FlashDim:    180 * time.Millisecond,
		FlashBright: 220 * time.Millisecond,
		BreatheMin:  1200 * time.Millisecond,
		BreatheMax:  2200 * time.Millisecond,
		DimLevel:    0.55,
	}
}
