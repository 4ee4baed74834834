package ppm

// Output is the PPM line. machine.Pin satisfies it.
type Output interface {
	High()
	Low()
}

// Indicator is toggled once per frame as a heartbeat.
type Indicator interface {
	Toggle()
}

// Comparator programs the timer's compare register.
type Comparator interface {
	SetCompare(value uint16)
}

// Masker masks and unmasks the timer interrupt source.
type Masker interface {
	Disable()
	Enable()
}

// Timer is what the interrupt handler needs from the peripheral: the compare
// register and independent read/clear of both interrupt flags.
// The timer must free-run as an up-counter with a period of Timing.Period
// ticks, interrupting on compare match and on period overflow.
type Timer interface {
	Comparator

	CompareFlag() bool
	OverflowFlag() bool
	ClearCompareFlag()
	ClearOverflowFlag()
}

// Dispatch is the body of the timer interrupt handler. It clears every
// pending flag and forwards the matching events to g, compare match first so
// that a pending overflow always has the last word on the frame state.
func Dispatch(g *Generator, t Timer) {
	compare := t.CompareFlag()
	overflow := t.OverflowFlag()
	if compare {
		t.ClearCompareFlag()
	}
	if overflow {
		t.ClearOverflowFlag()
	}

	if compare {
		g.Handle(COMPARE_MATCH)
	}
	if overflow {
		g.Handle(PERIOD_OVERFLOW)
	}
}
