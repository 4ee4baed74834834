//go:build stm32f103

package main

// PPMGenerator Configuration
// Hardware mappings and peripheral setup for the STM32F103 (Blue Pill).
// Frame timing lives in the ppm package.

import (
	"machine"
	"time"
)

// --- Hardware Mappings ---
const (
	PPM_PIN = machine.PA8  // PPM output, push-pull
	LED_PIN = machine.PC13 // On-board LED, heartbeat
)

// --- Timer Configuration ---
const (
	TIMER_PRESCALER = 72 - 1 // 72MHz TIM2 clock / 72 = 1 tick per us
	TIMER_PRIORITY  = 0x00   // Highest; the frame handler must never wait
)

// --- Diagnostics ---
const (
	UART_BAUDRATE      = 115200
	REPORT_INTERVAL    = 100 * time.Millisecond // Channel dump period
	LED_FLASH_INTERVAL = 50 * time.Millisecond  // Fast flash half-period after an overrun
	STARTUP_DELAY      = 500 * time.Millisecond // Time to attach a serial console
)
