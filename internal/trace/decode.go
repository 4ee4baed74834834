package trace

// DEFAULT_IDLE_THRESHOLD separates channel pulses from the idle remainder of
// a period. Channel pulses stay well below 3ms.
const DEFAULT_IDLE_THRESHOLD = 3000

// Frame is one decoded PPM frame.
type Frame struct {
	Start    uint64   // Tick of the first sync segment
	Channels []uint16 // HIGH pulse widths in transmission order
	Syncs    []uint32 // LOW segment widths, one before and one after every channel
	Idle     uint32   // HIGH remainder until the next frame
}

// Width returns the ticks from the first sync to the end of the last one.
func (f Frame) Width() uint32 {
	var w uint32
	for _, s := range f.Syncs {
		w += s
	}
	for _, c := range f.Channels {
		w += uint32(c)
	}
	return w
}

// Decoder rebuilds frames from line segments: LOW segments are syncs, HIGH
// segments up to the threshold are channel values and a longer HIGH segment
// is the idle remainder, which closes the frame.
type Decoder struct {
	Threshold uint32

	cur     Frame
	started bool
}

// NewDecoder returns a decoder splitting frames at threshold ticks.
func NewDecoder(threshold uint32) *Decoder {
	if threshold == 0 {
		threshold = DEFAULT_IDLE_THRESHOLD
	}
	return &Decoder{Threshold: threshold}
}

// Feed consumes one segment and returns a frame when s closed one.
func (d *Decoder) Feed(s Segment) (Frame, bool) {
	if !s.Level {
		if !d.started {
			d.cur = Frame{Start: s.Start}
			d.started = true
		}
		d.cur.Syncs = append(d.cur.Syncs, s.Width)
		return Frame{}, false
	}

	if !d.started {
		// HIGH before any sync: we joined mid-frame
		return Frame{}, false
	}

	if s.Width <= d.Threshold {
		d.cur.Channels = append(d.cur.Channels, uint16(s.Width))
		return Frame{}, false
	}

	f := d.cur
	f.Idle = s.Width
	d.cur = Frame{}
	d.started = false
	return f, true
}

// Frames decodes every complete frame in segs.
func Frames(segs []Segment, threshold uint32) []Frame {
	var (
		dec    = NewDecoder(threshold)
		frames []Frame
	)
	for _, s := range segs {
		if f, ok := dec.Feed(s); ok {
			frames = append(frames, f)
		}
	}
	return frames
}
