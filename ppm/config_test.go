package ppm

import (
	"errors"
	"testing"
)

func TestTimingValidate(t *testing.T) {
	for _, tc := range []struct {
		name     string
		timing   Timing
		n        int
		maxWidth uint16
		want     error
	}{
		{"default", DefaultTiming, NumChannels, MAX_PULSE_WIDTH_US, nil},
		{"exact-fit", Timing{Sync: 300, Period: 18700}, NumChannels, 2000, nil},
		{"one-tick-over", Timing{Sync: 300, Period: 18699}, NumChannels, 2000, ErrFrameTooLong},
		{"wide-channels", DefaultTiming, NumChannels, 2500, ErrFrameTooLong},
		{"no-sync", Timing{Sync: 0, Period: 22500}, NumChannels, 2000, ErrNoSync},
		{"period-equals-sync", Timing{Sync: 300, Period: 300}, NumChannels, 2000, ErrPeriodTooShort},
		{"period-below-sync", Timing{Sync: 300, Period: 100}, 0, 0, ErrPeriodTooShort},
		{"no-channels", Timing{Sync: 300, Period: 301}, 0, 2000, nil},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.timing.Validate(tc.n, tc.maxWidth)
			switch {
			case tc.want == nil && err != nil:
				t.Fatalf("unexpected error: %+v", err)
			case tc.want != nil && !errors.Is(err, tc.want):
				t.Fatalf("invalid error: got=%v, want=%v", err, tc.want)
			}
		})
	}
}

func TestTimingWidths(t *testing.T) {
	if got, want := DefaultTiming.Overhead(NumChannels), uint32(2700); got != want {
		t.Fatalf("invalid overhead: got=%d, want=%d", got, want)
	}
	if got, want := DefaultTiming.MaxChannelWidth(NumChannels), uint32(19800); got != want {
		t.Fatalf("invalid max channel width: got=%d, want=%d", got, want)
	}
	if got := (Timing{Sync: 3000, Period: 22500}).MaxChannelWidth(NumChannels); got != 0 {
		t.Fatalf("syncs alone overflow the period, got max width %d", got)
	}
}

func TestFrameWidth(t *testing.T) {
	var all1000 [NumChannels]uint16
	for i := range all1000 {
		all1000[i] = 1000
	}
	if got, want := FrameWidth(DefaultTiming, all1000), uint32(10700); got != want {
		t.Fatalf("invalid frame width: got=%d, want=%d", got, want)
	}

	var all2000 [NumChannels]uint16
	for i := range all2000 {
		all2000[i] = 2000
	}
	if got, want := FrameWidth(DefaultTiming, all2000), uint32(18700); got != want {
		t.Fatalf("invalid frame width: got=%d, want=%d", got, want)
	}
}
