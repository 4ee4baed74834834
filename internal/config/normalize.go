// internal/config/normalize.go
package config

import (
	"github.com/xtompok/PPMGenerator/internal/trace"
	"github.com/xtompok/PPMGenerator/ppm"
)

const (
	DefaultFrames   = 10
	DefaultLogLevel = "info"
)

// Normalize fills in defaults for everything left unset.
// It is allowed to mutate configuration.
// It MUST be called before Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	// ------------------------------------------------------------
	// FRAME TIMING (firmware defaults)
	// ------------------------------------------------------------

	if cfg.Timing.SyncWidth == 0 {
		cfg.Timing.SyncWidth = ppm.SYNC_WIDTH
	}
	if cfg.Timing.TotalWidth == 0 {
		cfg.Timing.TotalWidth = ppm.TOTAL_WIDTH
	}
	if cfg.MaxChannelWidth == 0 {
		cfg.MaxChannelWidth = ppm.MAX_PULSE_WIDTH_US
	}

	// ------------------------------------------------------------
	// RUN
	// ------------------------------------------------------------

	if cfg.Decoder.IdleThreshold == 0 {
		cfg.Decoder.IdleThreshold = trace.DEFAULT_IDLE_THRESHOLD
	}
	if cfg.Run.Frames == 0 {
		cfg.Run.Frames = DefaultFrames
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}

	// Sweeps without a length move over one second of frames.
	for i := range cfg.Sweeps {
		s := &cfg.Sweeps[i]
		if s.Frames == 0 {
			s.Frames = 1000000 / uint32(cfg.Timing.TotalWidth)
		}
	}
}
