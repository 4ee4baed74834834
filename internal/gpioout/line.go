// Package gpioout drives a PPM line on a Linux GPIO character device.
//
// Linux gives no microsecond guarantees: edges land when the simulator
// reaches them, so the output is good for a scope or a logic analyser, not
// for a receiver. The firmware is the timing-accurate path.
package gpioout

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnsupported is returned by Open where there is no GPIO character device.
var ErrUnsupported = errors.New("gpioout: GPIO output is only supported on Linux")

// Line is an output line implementing ppm.Output. The first write error is
// kept and returned by Err; later writes are dropped.
type Line struct {
	mu      sync.Mutex
	set     func(value int) error
	release func() error // hands the pin back before close
	close   func() error
	err     error
}

func (l *Line) High() { l.write(1) }
func (l *Line) Low()  { l.write(0) }

func (l *Line) write(value int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return
	}
	l.err = l.set(value)
}

// Err returns the first write error, if any.
func (l *Line) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close releases the line. The line is closed even when releasing the pin
// fails; both errors are returned.
func (l *Line) Close() error {
	var errs []error
	if l.release != nil {
		if err := l.release(); err != nil {
			errs = append(errs, fmt.Errorf("gpioout: release: %w", err))
		}
	}
	if l.close != nil {
		if err := l.close(); err != nil {
			errs = append(errs, fmt.Errorf("gpioout: close: %w", err))
		}
	}
	return errors.Join(errs...)
}
