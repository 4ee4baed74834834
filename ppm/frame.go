package ppm

import "sync/atomic"

// Frame state machine phases
type Phase uint8

const (
	AWAITING_SIGNAL_END Phase = iota + 1 // Line HIGH, channel pulse running
	AWAITING_SYNC_END                    // Line LOW, sync segment running
)

func (p Phase) String() string {
	switch p {
	case AWAITING_SIGNAL_END:
		return "AWAITING_SIGNAL_END"
	case AWAITING_SYNC_END:
		return "AWAITING_SYNC_END"
	}
	return "UNKNOWN"
}

// Timer events
type Event uint8

const (
	COMPARE_MATCH Event = iota
	PERIOD_OVERFLOW
)

func (e Event) String() string {
	switch e {
	case COMPARE_MATCH:
		return "COMPARE_MATCH"
	case PERIOD_OVERFLOW:
		return "PERIOD_OVERFLOW"
	}
	return "UNKNOWN"
}

// State is a copy of the generator's interrupt-owned state.
type State struct {
	Phase  Phase
	Index  uint8  // 0..NumChannels-1 selects a channel, NumChannels ends the frame
	Target uint16 // Next compare value
	Level  bool   // Output line level
}

// Generator sequences the output line through one PPM frame per timer
// period. phase, index, target and level belong to the interrupt handler:
// only Handle (and Start, before the timer runs) may touch them.
type Generator struct {
	channels  *Channels
	timing    Timing
	out       Output
	cmp       Comparator
	heartbeat Indicator

	phase  Phase
	index  uint8
	target uint16
	level  bool

	// Written by the handler, sampled by the main sequence.
	frames   uint32
	overruns uint32
}

// NewGenerator returns a generator reading ch and driving out, scheduling
// its events through cmp.
func NewGenerator(ch *Channels, t Timing, out Output, cmp Comparator) *Generator {
	return &Generator{
		channels: ch,
		timing:   t,
		out:      out,
		cmp:      cmp,
	}
}

// SetHeartbeat installs an indicator toggled on every period overflow.
// Call it before Start.
func (g *Generator) SetHeartbeat(ind Indicator) {
	g.heartbeat = ind
}

// Start puts the generator in its frame-start state and programs the first
// compare value. Call it with the counter at zero, before the timer is
// enabled, so the first period is already a full frame.
func (g *Generator) Start() {
	g.overflow()
}

// Handle runs one transition. It is called from the timer interrupt.
func (g *Generator) Handle(ev Event) {
	switch ev {
	case PERIOD_OVERFLOW:
		g.overflow()
	case COMPARE_MATCH:
		g.compareMatch()
	}
}

func (g *Generator) overflow() {
	g.index = 0
	g.target = g.timing.Sync
	g.phase = AWAITING_SYNC_END
	g.setLevel(false)
	g.cmp.SetCompare(g.target)

	atomic.AddUint32(&g.frames, 1)
	if g.heartbeat != nil {
		g.heartbeat.Toggle()
	}
}

func (g *Generator) compareMatch() {
	switch g.phase {
	case AWAITING_SYNC_END:
		g.setLevel(true)
		if g.index >= NumChannels {
			// Already past the last channel, wait for the period to wrap
			return
		}
		g.schedule(g.channels.load(g.index))
		g.phase = AWAITING_SIGNAL_END

	case AWAITING_SIGNAL_END:
		g.setLevel(false)
		g.index = (g.index + 1) % (NumChannels + 1)
		g.schedule(g.timing.Sync)
		g.phase = AWAITING_SYNC_END
	}
}

// schedule moves the compare target width ticks ahead. A target past the
// period can never match; it is still programmed and only counted.
func (g *Generator) schedule(width uint16) {
	if uint32(g.target)+uint32(width) > uint32(g.timing.Period) {
		atomic.AddUint32(&g.overruns, 1)
	}
	g.target += width
	g.cmp.SetCompare(g.target)
}

func (g *Generator) setLevel(high bool) {
	g.level = high
	if high {
		g.out.High()
	} else {
		g.out.Low()
	}
}

// State returns the handler-owned state. Only meaningful from the handler's
// context or while the timer is stopped.
func (g *Generator) State() State {
	return State{
		Phase:  g.phase,
		Index:  g.index,
		Target: g.target,
		Level:  g.level,
	}
}

// Frames returns the number of period overflows handled, Start included.
func (g *Generator) Frames() uint32 {
	return atomic.LoadUint32(&g.frames)
}

// Overruns returns how many times a frame was scheduled past the period.
// The count only grows; it is a latched flag for the main sequence.
func (g *Generator) Overruns() uint32 {
	return atomic.LoadUint32(&g.overruns)
}

// Timing returns the timing the generator was built with.
func (g *Generator) Timing() Timing {
	return g.timing
}
