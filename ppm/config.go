package ppm

import (
	"errors"
	"fmt"
)

// PPM frame configuration
// All widths are timer ticks; the timer is prescaled to 1 tick = 1us.

// --- Frame Layout ---
const (
	NumChannels = 8 // Number of channels carried in every frame

	SYNC_WIDTH  = 300   // Fixed LOW segment delimiting channel slots
	TOTAL_WIDTH = 22500 // Timer period, one frame per period (~44Hz)
)

// --- Channel Values ---
const (
	DEFAULT_CHANNEL_WIDTH = 1000 // Value loaded into every channel at startup
	MIN_PULSE_WIDTH_US    = 1000 // 1ms pulse for full negative deflection
	MAX_PULSE_WIDTH_US    = 2000 // 2ms pulse for full positive deflection
)

var (
	ErrNoSync         = errors.New("ppm: sync width must be non-zero")
	ErrPeriodTooShort = errors.New("ppm: period too short for one sync segment")
	ErrFrameTooLong   = errors.New("ppm: worst-case frame exceeds the period")
)

// Timing is the fixed part of a frame: the sync width and the timer period.
type Timing struct {
	Sync   uint16
	Period uint16
}

// DefaultTiming is the timing the firmware is built with.
var DefaultTiming = Timing{Sync: SYNC_WIDTH, Period: TOTAL_WIDTH}

// Overhead returns the ticks spent in sync segments by a frame of n channels.
func (t Timing) Overhead(n int) uint32 {
	return uint32(t.Sync) * uint32(n+1)
}

// MaxChannelWidth returns the largest width a single channel may hold when
// all other channels are zero. Zero means the period cannot even hold the
// syncs.
func (t Timing) MaxChannelWidth(n int) uint32 {
	overhead := t.Overhead(n)
	if overhead >= uint32(t.Period) {
		return 0
	}
	return uint32(t.Period) - overhead
}

// Validate checks that a frame of n channels, each at most maxWidth ticks
// wide, always fits in one period. The generator itself never checks this.
func (t Timing) Validate(n int, maxWidth uint16) error {
	if t.Sync == 0 {
		return ErrNoSync
	}
	if t.Period <= t.Sync {
		return fmt.Errorf("%w: period=%d sync=%d", ErrPeriodTooShort, t.Period, t.Sync)
	}
	worst := t.Overhead(n) + uint32(n)*uint32(maxWidth)
	if worst > uint32(t.Period) {
		return fmt.Errorf(
			"%w: %d channels of %d ticks need %d ticks, period is %d",
			ErrFrameTooLong, n, maxWidth, worst, t.Period,
		)
	}
	return nil
}

// FrameWidth returns the ticks consumed by one frame carrying values,
// from the period wrap to the end of the last sync segment.
func FrameWidth(t Timing, values [NumChannels]uint16) uint32 {
	width := t.Overhead(NumChannels)
	for _, v := range values {
		width += uint32(v)
	}
	return width
}
