//go:build stm32f103

package main

import (
	"device/stm32"
	"runtime/interrupt"

	"github.com/xtompok/PPMGenerator/ppm"
)

// tim2 drives the generator from TIM2: free-running up-counter, one tick per
// microsecond, a period of ppm.TOTAL_WIDTH ticks and compare channel 1.
// It implements ppm.Timer and ppm.Masker.
type tim2 struct{}

var timer tim2

func (tim2) SetCompare(value uint16) {
	stm32.TIM2.CCR1.Set(uint32(value))
}

func (tim2) CompareFlag() bool  { return stm32.TIM2.SR.HasBits(stm32.TIM_SR_CC1IF) }
func (tim2) OverflowFlag() bool { return stm32.TIM2.SR.HasBits(stm32.TIM_SR_UIF) }

// SR flags are cleared by writing 0; ones are ignored.
func (tim2) ClearCompareFlag()  { stm32.TIM2.SR.Set(^uint32(stm32.TIM_SR_CC1IF)) }
func (tim2) ClearOverflowFlag() { stm32.TIM2.SR.Set(^uint32(stm32.TIM_SR_UIF)) }

// Disable masks both TIM2 interrupt sources. Other interrupts keep running.
func (tim2) Disable() {
	stm32.TIM2.DIER.ClearBits(stm32.TIM_DIER_CC1IE | stm32.TIM_DIER_UIE)
}

func (tim2) Enable() {
	stm32.TIM2.DIER.SetBits(stm32.TIM_DIER_CC1IE | stm32.TIM_DIER_UIE)
}

func handleTIM2(interrupt.Interrupt) {
	ppm.Dispatch(generator, timer)
}

// startTimer configures TIM2, starts the generator at counter zero and
// enables the counter. generator must be set.
func startTimer() {
	stm32.RCC.APB1ENR.SetBits(stm32.RCC_APB1ENR_TIM2EN)

	t := stm32.TIM2
	t.CR1.Set(0) // edge-aligned, up, no auto-reload preload
	t.PSC.Set(TIMER_PRESCALER)
	t.ARR.Set(ppm.TOTAL_WIDTH - 1)
	t.CNT.Set(0)
	t.EGR.Set(stm32.TIM_EGR_UG) // load PSC now
	t.SR.Set(0)                 // UG raised UIF

	generator.Start()

	intr := interrupt.New(stm32.IRQ_TIM2, handleTIM2)
	intr.SetPriority(TIMER_PRIORITY)
	intr.Enable()

	timer.Enable()
	t.CR1.SetBits(stm32.TIM_CR1_CEN)
}
