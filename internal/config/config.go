// internal/config/config.go
package config

import "github.com/xtompok/PPMGenerator/ppm"

type Config struct {
	Timing          TimingConfig   `yaml:"timing"`
	Channels        []uint16       `yaml:"channels"`          // initial values, missing => DEFAULT_CHANNEL_WIDTH
	MaxChannelWidth uint16         `yaml:"max_channel_width"` // worst case a producer may write
	Decoder         DecoderConfig  `yaml:"decoder"`
	Run             RunConfig      `yaml:"run"`
	Updates         []UpdateConfig `yaml:"updates"`
	Sweeps          []SweepConfig  `yaml:"sweeps"`
	GPIO            GPIOConfig     `yaml:"gpio"`
	Log             LogConfig      `yaml:"log"`
}

// ---- TIMING ----

type TimingConfig struct {
	SyncWidth  uint16 `yaml:"sync_width"`
	TotalWidth uint16 `yaml:"total_width"`
}

// ---- DECODER ----

type DecoderConfig struct {
	IdleThreshold uint32 `yaml:"idle_threshold"`
}

// ---- RUN ----

type RunConfig struct {
	Frames   int  `yaml:"frames"`
	Realtime bool `yaml:"realtime"` // pace the simulated timer to wall time
}

// ---- PRODUCERS ----

// UpdateConfig writes one channel, or all of them when Values is set, at the
// start of Frame.
type UpdateConfig struct {
	Frame   uint32   `yaml:"frame"`
	Channel int      `yaml:"channel"`
	Value   uint16   `yaml:"value"`
	Values  []uint16 `yaml:"values"`
}

type SweepConfig struct {
	Channel int    `yaml:"channel"`
	Min     uint16 `yaml:"min"`
	Max     uint16 `yaml:"max"`
	Frames  uint32 `yaml:"frames"` // frames from min to max
}

// ---- OUTPUT ----

type GPIOConfig struct {
	Chip string `yaml:"chip"` // e.g. gpiochip0, empty => no GPIO mirror
	Line int    `yaml:"line"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// PPMTiming returns the frame timing the generator runs with.
func (c *Config) PPMTiming() ppm.Timing {
	return ppm.Timing{Sync: c.Timing.SyncWidth, Period: c.Timing.TotalWidth}
}

// InitialValues returns the channel set loaded before the generator starts.
func (c *Config) InitialValues() [ppm.NumChannels]uint16 {
	var values [ppm.NumChannels]uint16
	for i := range values {
		values[i] = ppm.DEFAULT_CHANNEL_WIDTH
	}
	copy(values[:], c.Channels)
	return values
}
