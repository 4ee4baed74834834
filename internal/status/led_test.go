package status

import "testing"

// --- MOCK HARDWARE FOR TESTING ---

type mockPin struct {
	high   bool
	writes int
}

func (p *mockPin) Get() bool     { return p.high }
func (p *mockPin) Set(high bool) { p.high = high; p.writes++ }

func TestHeartbeat(t *testing.T) {
	pin := &mockPin{}
	led := NewLED(pin)

	led.Toggle()
	if !pin.high {
		t.Fatalf("heartbeat did not toggle the pin")
	}
	led.Flash()
	led.Flash()
	if got, want := pin.writes, 1; got != want {
		t.Fatalf("flash ticks should not touch a heartbeat LED: got=%d writes, want=%d", got, want)
	}
}

func TestFastFlashTogglesEveryTick(t *testing.T) {
	pin := &mockPin{}
	led := NewLED(pin)
	led.SetState(LED_FASTFLASH)

	for i := 0; i < 4; i++ {
		led.Flash()
		if got, want := pin.high, i%2 == 0; got != want {
			t.Fatalf("tick %d: got=%v, want=%v", i, got, want)
		}
	}
	if got, want := pin.writes, 4; got != want {
		t.Fatalf("invalid write count: got=%d, want=%d", got, want)
	}

	// the frame handler no longer owns the pin
	led.Toggle()
	if got, want := pin.writes, 4; got != want {
		t.Fatalf("heartbeat toggled a flashing LED: got=%d writes, want=%d", got, want)
	}
}
