// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `
timing:
  sync_width: 300
  total_width: 22500
channels: [1500, 1500, 1000, 1500]
max_channel_width: 2000
run:
  frames: 20
updates:
  - frame: 5
    channel: 2
    value: 2000
  - frame: 10
    values: [1000, 1100, 1200, 1300, 1400, 1500, 1600, 1700]
sweeps:
  - channel: 0
    min: 1000
    max: 2000
    frames: 8
gpio:
  chip: gpiochip0
  line: 17
log:
  level: debug
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ppm.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, want := cfg.Timing.TotalWidth, uint16(22500); got != want {
		t.Fatalf("total_width: got=%d, want=%d", got, want)
	}
	if got, want := len(cfg.Channels), 4; got != want {
		t.Fatalf("channels: got=%d, want=%d", got, want)
	}
	if got, want := cfg.Run.Frames, 20; got != want {
		t.Fatalf("frames: got=%d, want=%d", got, want)
	}
	if got, want := len(cfg.Updates), 2; got != want {
		t.Fatalf("updates: got=%d, want=%d", got, want)
	}
	if got, want := cfg.Updates[1].Values[7], uint16(1700); got != want {
		t.Fatalf("updates[1].values[7]: got=%d, want=%d", got, want)
	}
	if got, want := cfg.Sweeps[0].Frames, uint32(8); got != want {
		t.Fatalf("sweeps[0].frames: got=%d, want=%d", got, want)
	}
	if cfg.GPIO.Chip != "gpiochip0" || cfg.GPIO.Line != 17 {
		t.Fatalf("invalid gpio: %+v", cfg.GPIO)
	}

	Normalize(cfg)
	if err := Validate(cfg); err != nil {
		t.Fatalf("sample should validate: %v", err)
	}

	values := cfg.InitialValues()
	if got, want := values, [8]uint16{1500, 1500, 1000, 1500, 1000, 1000, 1000, 1000}; got != want {
		t.Fatalf("initial values: got=%v, want=%v", got, want)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestDecodeUnknownField(t *testing.T) {
	_, err := Decode(strings.NewReader("timing:\n  sync: 300\n"))
	if err == nil {
		t.Fatalf("unknown key should be rejected")
	}
}

func TestDecodeEmpty(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	Normalize(cfg)
	if err := Validate(cfg); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
