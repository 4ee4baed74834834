package ppm

import "sync/atomic"

// Channels is the channel buffer shared between producers and the frame
// generator. Every value lives in its own 32-bit word so a single Set is one
// native store; Update and Snapshot mask the timer interrupt for the whole
// set so the generator never reads a torn frame.
type Channels struct {
	values [NumChannels]uint32
	mask   Masker
}

// NewChannels allocates the buffer and loads DEFAULT_CHANNEL_WIDTH into every
// channel. mask is the timer interrupt used for multi-channel updates; nil
// means nothing can preempt the caller.
func NewChannels(mask Masker) *Channels {
	ch := &Channels{mask: mask}
	for i := range ch.values {
		ch.values[i] = DEFAULT_CHANNEL_WIDTH
	}
	return ch
}

// Set writes a single channel. It is safe to call while the generator runs.
func (ch *Channels) Set(i int, width uint16) {
	checkIndex(i)
	atomic.StoreUint32(&ch.values[i], uint32(width))
}

// Get reads a single channel.
func (ch *Channels) Get(i int) uint16 {
	checkIndex(i)
	return uint16(atomic.LoadUint32(&ch.values[i]))
}

// Update applies a complete channel set inside a critical section.
func (ch *Channels) Update(values [NumChannels]uint16) {
	ch.lock()
	defer ch.unlock()
	for i, v := range values {
		atomic.StoreUint32(&ch.values[i], uint32(v))
	}
}

// Snapshot returns a consistent copy of all channels.
func (ch *Channels) Snapshot() [NumChannels]uint16 {
	ch.lock()
	defer ch.unlock()
	var out [NumChannels]uint16
	for i := range out {
		out[i] = uint16(atomic.LoadUint32(&ch.values[i]))
	}
	return out
}

// Fits reports whether the current values produce a frame that ends before
// the period wraps under timing t.
func (ch *Channels) Fits(t Timing) bool {
	return FrameWidth(t, ch.Snapshot()) <= uint32(t.Period)
}

// load is the generator's read path. index is bounded by the caller.
func (ch *Channels) load(index uint8) uint16 {
	return uint16(atomic.LoadUint32(&ch.values[index%NumChannels]))
}

func (ch *Channels) lock() {
	if ch.mask != nil {
		ch.mask.Disable()
	}
}

func (ch *Channels) unlock() {
	if ch.mask != nil {
		ch.mask.Enable()
	}
}

func checkIndex(i int) {
	if i < 0 || i >= NumChannels {
		panic("ppm: channel index out of range")
	}
}
