// Command ppm-sim runs the PPM frame generator against a simulated timer and
// prints the frames decoded from the output line.
//
// Usage:
//
//	ppm-sim [-config ppm.yaml] [-frames n] [-realtime] [-v]
//
// With a gpio section in the configuration, every edge is mirrored to a
// Linux GPIO line as well; use -realtime to get roughly correct timing there.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/xtompok/PPMGenerator/internal/config"
)

var (
	log = logrus.New()

	cfgPath  = flag.String("config", "", "path to the YAML configuration")
	frames   = flag.Int("frames", 0, "number of frames to run (overrides run.frames)")
	realtime = flag.Bool("realtime", false, "pace the simulated timer to wall time")
	verbose  = flag.Bool("v", false, "enable debug output")
)

func main() {
	flag.Parse()

	log.Formatter = new(logrus.TextFormatter)
	log.Level = logrus.InfoLevel

	cfg, err := loadConfig(*cfgPath, *frames, *realtime, *verbose)
	if err != nil {
		log.Fatalf("config: %+v", err)
	}
	lvl, _ := logrus.ParseLevel(cfg.Log.Level) // checked by config.Validate
	log.SetLevel(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := run(ctx, cfg, os.Stdout)
	if err != nil {
		log.Fatalf("could not run simulation: %+v", err)
	}

	log.WithFields(logrus.Fields{
		"periods":  res.Periods,
		"decoded":  len(res.Frames),
		"overruns": res.Overruns,
	}).Info("simulation done")

	if res.Overruns > 0 {
		log.Errorf("%d frame(s) ran past the %d tick period", res.Overruns, cfg.Timing.TotalWidth)
		os.Exit(2)
	}
}

// loadConfig reads path (defaults only when empty), applies the command line
// overrides, then normalizes and validates the result.
func loadConfig(path string, frames int, realtime, verbose bool) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return nil, err
		}
	}

	if frames > 0 {
		cfg.Run.Frames = frames
	}
	if realtime {
		cfg.Run.Realtime = true
	}
	if verbose {
		cfg.Log.Level = "debug"
	}

	config.Normalize(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
