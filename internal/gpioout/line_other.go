//go:build !linux

package gpioout

func Open(chip string, line int) (*Line, error) {
	return nil, ErrUnsupported
}
