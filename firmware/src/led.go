//go:build stm32f103

package main

/*
the LED toggles on every timer period as a heartbeat (about 22Hz visible blink),
once a frame overrun was flagged the main loop takes over and flashes it on
every LED_FLASH_INTERVAL tick.
*/

import (
	"machine"

	"github.com/xtompok/PPMGenerator/internal/status"
)

// Function to initialize the status LED
func newLEDState(pin machine.Pin) *status.LED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.High() // PC13 LED is active low
	return status.NewLED(pin)
}
