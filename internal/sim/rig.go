package sim

import (
	"github.com/xtompok/PPMGenerator/internal/trace"
	"github.com/xtompok/PPMGenerator/ppm"
)

// Rig is a generator wired to a simulated timer, a recorded PPM line and a
// recorded heartbeat LED, the way the firmware wires it to TIM2, PA8 and PC13.
type Rig struct {
	Timer     *Timer
	Channels  *ppm.Channels
	Line      *trace.Line
	LED       *trace.Line
	Generator *ppm.Generator
}

// NewRig builds and starts a rig. Nothing runs until the timer is advanced.
func NewRig(t ppm.Timing) *Rig {
	tim := New(t.Period)
	r := &Rig{
		Timer:    tim,
		Channels: ppm.NewChannels(tim),
		Line:     trace.NewLine(tim),
		LED:      trace.NewLine(tim),
	}
	r.Generator = ppm.NewGenerator(r.Channels, t, r.Line, tim)
	r.Generator.SetHeartbeat(r.LED)
	tim.Attach(func() { ppm.Dispatch(r.Generator, tim) })
	r.Generator.Start()
	return r
}

// Frames decodes the frames recorded on the PPM line so far.
func (r *Rig) Frames(threshold uint32) []trace.Frame {
	return trace.Frames(r.Line.Segments(), threshold)
}
