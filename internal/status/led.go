// Package status drives the board's status LED: a heartbeat toggled by the
// frame handler, or a fast flash once a frame overrun was seen.
package status

import "sync/atomic"

// Define LED patterns
const (
	LED_HEARTBEAT uint32 = 0 // Toggled by the timer handler once per frame
	LED_FASTFLASH uint32 = 1 // Frame overrun, toggled on every Flash tick
)

// Pin is an output pin that can be read back. machine.Pin satisfies it.
type Pin interface {
	Get() bool
	Set(high bool)
}

// LED state struct
type LED struct {
	pin   Pin
	state uint32
}

// NewLED returns an LED in heartbeat mode. pin must already be an output.
func NewLED(pin Pin) *LED {
	return &LED{pin: pin, state: LED_HEARTBEAT}
}

// Toggle implements ppm.Indicator. Called from the timer interrupt.
func (l *LED) Toggle() {
	if l.State() != LED_HEARTBEAT {
		return
	}
	l.invert()
}

// Flash toggles the LED in fast-flash mode. The caller's tick sets the rate.
func (l *LED) Flash() {
	if l.State() != LED_FASTFLASH {
		return
	}
	l.invert()
}

func (l *LED) SetState(state uint32) {
	atomic.StoreUint32(&l.state, state)
}

func (l *LED) State() uint32 {
	return atomic.LoadUint32(&l.state)
}

func (l *LED) invert() {
	l.pin.Set(!l.pin.Get())
}
