//go:build linux

package gpioout

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Open requests line on chip (e.g. "gpiochip0") as an output driven LOW.
func Open(chip string, line int) (*Line, error) {
	l, err := gpiocdev.RequestLine(chip, line, gpiocdev.AsOutput(0))
	if err != nil {
		return nil, fmt.Errorf("gpioout: request %s:%d: %w", chip, line, err)
	}
	return &Line{
		set: l.SetValue,
		// leave the pin floating, as it was before we took it
		release: func() error { return l.Reconfigure(gpiocdev.AsInput) },
		close:   l.Close,
	}, nil
}
