// internal/config/validate.go
package config

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/xtompok/PPMGenerator/ppm"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil configuration")
	}

	// ------------------------------------------------------------
	// FRAME TIMING
	// ------------------------------------------------------------

	// The worst-case frame must end before the period wraps.
	if err := cfg.PPMTiming().Validate(ppm.NumChannels, cfg.MaxChannelWidth); err != nil {
		return fmt.Errorf("timing: %w", err)
	}

	// Channel pulses and the idle remainder must be told apart: the
	// threshold sits above the widest pulse and below the shortest idle.
	if cfg.Decoder.IdleThreshold > math.MaxUint16 {
		return fmt.Errorf(
			"decoder: idle_threshold=%d exceeds %d ticks",
			cfg.Decoder.IdleThreshold,
			math.MaxUint16,
		)
	}
	if cfg.Decoder.IdleThreshold <= uint32(cfg.MaxChannelWidth) {
		return fmt.Errorf(
			"decoder: idle_threshold=%d must exceed max_channel_width=%d",
			cfg.Decoder.IdleThreshold,
			cfg.MaxChannelWidth,
		)
	}
	if idle := minIdle(cfg); cfg.Decoder.IdleThreshold >= idle {
		return fmt.Errorf(
			"decoder: idle_threshold=%d must be below the shortest idle remainder of %d ticks (max_channel_width=%d)",
			cfg.Decoder.IdleThreshold,
			idle,
			cfg.MaxChannelWidth,
		)
	}

	// ------------------------------------------------------------
	// CHANNEL VALUES
	// ------------------------------------------------------------

	if len(cfg.Channels) > ppm.NumChannels {
		return fmt.Errorf(
			"channels: %d values given, the frame carries %d",
			len(cfg.Channels),
			ppm.NumChannels,
		)
	}
	if err := checkValues("channels", cfg.Channels, cfg.MaxChannelWidth); err != nil {
		return err
	}

	// ------------------------------------------------------------
	// PRODUCERS
	// ------------------------------------------------------------

	for i, u := range cfg.Updates {
		name := fmt.Sprintf("updates[%d]", i)

		if len(u.Values) > 0 {
			// a full set is applied as is
			if len(u.Values) != ppm.NumChannels {
				return fmt.Errorf(
					"%s: values must hold %d channels, got %d",
					name,
					ppm.NumChannels,
					len(u.Values),
				)
			}
			if err := checkValues(name, u.Values, cfg.MaxChannelWidth); err != nil {
				return err
			}
			continue
		}

		if err := checkChannel(name, u.Channel); err != nil {
			return err
		}
		if u.Value > cfg.MaxChannelWidth {
			return fmt.Errorf(
				"%s: value=%d exceeds max_channel_width=%d",
				name,
				u.Value,
				cfg.MaxChannelWidth,
			)
		}
	}

	for i, s := range cfg.Sweeps {
		name := fmt.Sprintf("sweeps[%d]", i)

		if err := checkChannel(name, s.Channel); err != nil {
			return err
		}
		if s.Min > s.Max {
			return fmt.Errorf("%s: min=%d is above max=%d", name, s.Min, s.Max)
		}
		if s.Max > cfg.MaxChannelWidth {
			return fmt.Errorf(
				"%s: max=%d exceeds max_channel_width=%d",
				name,
				s.Max,
				cfg.MaxChannelWidth,
			)
		}
	}

	// ------------------------------------------------------------
	// RUN / OUTPUT
	// ------------------------------------------------------------

	if cfg.Run.Frames < 0 {
		return fmt.Errorf("run: frames=%d must not be negative", cfg.Run.Frames)
	}

	if cfg.GPIO.Chip != "" && cfg.GPIO.Line < 0 {
		return fmt.Errorf("gpio: line=%d on %s is invalid", cfg.GPIO.Line, cfg.GPIO.Chip)
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	return nil
}

// minIdle returns the HIGH remainder left by a frame of channels all at
// max_channel_width. The timing must already be valid.
func minIdle(cfg *Config) uint32 {
	t := cfg.PPMTiming()
	return uint32(t.Period) - t.Overhead(ppm.NumChannels) - ppm.NumChannels*uint32(cfg.MaxChannelWidth)
}

func checkChannel(name string, ch int) error {
	if ch < 0 || ch >= ppm.NumChannels {
		return fmt.Errorf(
			"%s: channel=%d out of range 0..%d",
			name,
			ch,
			ppm.NumChannels-1,
		)
	}
	return nil
}

func checkValues(name string, values []uint16, max uint16) error {
	for i, v := range values {
		if v > max {
			return fmt.Errorf(
				"%s[%d]: value=%d exceeds max_channel_width=%d",
				name,
				i,
				v,
				max,
			)
		}
	}
	return nil
}
