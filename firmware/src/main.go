//go:build stm32f103

package main

import (
	"machine"
	"time"

	"github.com/xtompok/PPMGenerator/internal/status"
	"github.com/xtompok/PPMGenerator/ppm"
)

const Version = "0.1.0"

var (
	// channels is shared with the TIM2 handler, see ppm.Channels
	channels  *ppm.Channels
	generator *ppm.Generator

	led *status.LED
)

// Main program loop
func main() {
	time.Sleep(STARTUP_DELAY)

	uart := machine.DefaultUART
	uart.Configure(machine.UARTConfig{BaudRate: UART_BAUDRATE})

	// Print startup message
	println("PPMGenerator - Version", Version)
	println(ppm.NumChannels, "channel PPM encoder on PA8")
	println("USART initialized")

	if err := ppm.DefaultTiming.Validate(ppm.NumChannels, ppm.MAX_PULSE_WIDTH_US); err != nil {
		for {
			println("Invalid PPM timing:", err.Error())
			time.Sleep(time.Second)
		}
	}

	// --- Hardware Setup ---
	PPM_PIN.Configure(machine.PinConfig{Mode: machine.PinOutput})
	PPM_PIN.Low()
	led = newLEDState(LED_PIN)

	channels = ppm.NewChannels(timer)
	generator = ppm.NewGenerator(channels, ppm.DefaultTiming, PPM_PIN, timer)
	generator.SetHeartbeat(led)

	startTimer()
	println("PPM timer started.")
	// --- End Hardware Setup ---

	// Set up tickers for the channel report and the overrun flash
	report := time.NewTicker(REPORT_INTERVAL)
	defer report.Stop()
	flash := time.NewTicker(LED_FLASH_INTERVAL)
	defer flash.Stop()

	var lastOverruns uint32
	for {
		select {
		case <-flash.C:
			led.Flash()

		case <-report.C:
			if n := generator.Overruns(); n != lastOverruns {
				println("Frame overrun! count:", n)
				led.SetState(status.LED_FASTFLASH)
				lastOverruns = n
			}
			printChannels(channels.Snapshot())
		}
	}
}

// Helper function to dump the channel buffer, "Channels: 0:1000, 1:1000, ..."
func printChannels(values [ppm.NumChannels]uint16) {
	print("Channels: ")
	for i, v := range values {
		print(i, ":", v, ", ")
	}
	println()
}
