// Package sim emulates the timer peripheral the frame generator runs on, so
// frames can be produced and checked without hardware.
package sim

import "sync"

// Write is one compare register write.
type Write struct {
	At    uint64
	Value uint16
}

// Timer is a free-running up-counter with one compare channel. It counts
// 0..period-1, latches a compare flag when the counter reaches the compare
// value and an overflow flag when it wraps to zero, and runs the attached
// interrupt handler whenever a flag is pending.
//
// Disable and Enable mask the interrupt: while masked, Advance blocks until
// the mask is released, as a pending interrupt is delayed on the MCU.
type Timer struct {
	// Pace, when set, is called with the ticks about to elapse before every
	// event, outside the interrupt mask. Real-time replay sleeps here.
	Pace func(ticks uint32)

	mu        sync.Mutex
	period    uint32
	counter   uint32
	compare   uint16
	cmpFlag   bool
	ovfFlag   bool
	now       uint64
	overflows uint64
	isr       func()
	writes    []Write
}

// New returns a stopped timer at counter zero.
func New(period uint16) *Timer {
	return &Timer{period: uint32(period)}
}

// Attach installs the interrupt handler.
func (t *Timer) Attach(isr func()) {
	t.isr = isr
}

// SetCompare implements ppm.Comparator. It is called from the handler, or
// before the timer runs.
func (t *Timer) SetCompare(value uint16) {
	t.compare = value
	t.writes = append(t.writes, Write{At: t.now, Value: value})
}

func (t *Timer) CompareFlag() bool  { return t.cmpFlag }
func (t *Timer) OverflowFlag() bool { return t.ovfFlag }
func (t *Timer) ClearCompareFlag()  { t.cmpFlag = false }
func (t *Timer) ClearOverflowFlag() { t.ovfFlag = false }

// Disable masks the timer interrupt.
func (t *Timer) Disable() { t.mu.Lock() }

// Enable unmasks the timer interrupt.
func (t *Timer) Enable() { t.mu.Unlock() }

// Now returns the ticks elapsed since the timer was created.
func (t *Timer) Now() uint64 { return t.now }

// Counter returns the current counter value.
func (t *Timer) Counter() uint32 { return t.counter }

// Overflows returns the number of period wraps so far.
func (t *Timer) Overflows() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.overflows
}

// Writes returns every compare write so far.
func (t *Timer) Writes() []Write {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Write(nil), t.writes...)
}

// Advance runs the counter up to the next compare match or wrap, whichever
// comes first, services the interrupt and returns the elapsed ticks.
// A compare value at or past the period never matches.
func (t *Timer) Advance() uint32 {
	t.mu.Lock()
	step := t.nextEvent()
	t.mu.Unlock()

	if t.Pace != nil {
		t.Pace(step)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.counter = (t.counter + step) % t.period
	t.now += uint64(step)
	if t.counter == 0 {
		t.ovfFlag = true
		t.overflows++
	}
	if uint32(t.compare) == t.counter {
		t.cmpFlag = true
	}
	t.interrupt()
	return step
}

// RunFrames advances until n more periods have wrapped.
func (t *Timer) RunFrames(n int) {
	end := t.Overflows() + uint64(n)
	for t.Overflows() < end {
		t.Advance()
	}
}

// Raise latches the given flags without moving the counter and services the
// interrupt, as if the events had fired together.
func (t *Timer) Raise(compare, overflow bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cmpFlag = t.cmpFlag || compare
	t.ovfFlag = t.ovfFlag || overflow
	t.interrupt()
}

func (t *Timer) nextEvent() uint32 {
	step := t.period - t.counter
	cmp := uint32(t.compare)
	if cmp < t.period && cmp > t.counter && cmp-t.counter < step {
		step = cmp - t.counter
	}
	return step
}

func (t *Timer) interrupt() {
	if t.isr == nil || !(t.cmpFlag || t.ovfFlag) {
		return
	}
	t.isr()
}
