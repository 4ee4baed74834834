package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xtompok/PPMGenerator/internal/config"
	"github.com/xtompok/PPMGenerator/internal/gpioout"
	"github.com/xtompok/PPMGenerator/internal/sim"
	"github.com/xtompok/PPMGenerator/internal/trace"
	"github.com/xtompok/PPMGenerator/ppm"
)

type result struct {
	Periods  int           // timer periods run
	Frames   []trace.Frame // frames decoded from the line
	Overruns uint32
}

// run drives cfg.Run.Frames timer periods. The producer goroutine is handed
// every frame boundary and applies its updates before the timer moves on, so
// an update for frame n is carried by frame n.
func run(ctx context.Context, cfg *config.Config, w io.Writer) (result, error) {
	rig := sim.NewRig(cfg.PPMTiming())
	rig.Channels.Update(cfg.InitialValues())

	if cfg.GPIO.Chip != "" {
		line, err := gpioout.Open(cfg.GPIO.Chip, cfg.GPIO.Line)
		if err != nil {
			return result{}, err
		}
		defer line.Close()
		rig.Line.Mirror(line)
		log.Infof("mirroring PPM to %s:%d", cfg.GPIO.Chip, cfg.GPIO.Line)
		defer func() {
			if err := line.Err(); err != nil {
				log.Warnf("gpio write failed: %+v", err)
			}
		}()
	}

	if cfg.Run.Realtime {
		rig.Timer.Pace = func(ticks uint32) {
			time.Sleep(time.Duration(ticks) * time.Microsecond)
		}
	}

	var (
		producer   = producers(cfg)
		boundaries = make(chan uint32)
		acks       = make(chan struct{})
	)

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		defer close(boundaries)
		for frame := uint32(0); frame < uint32(cfg.Run.Frames); frame++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case boundaries <- frame:
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-acks:
			}

			rig.Timer.RunFrames(1)
			log.Debugf("frame %d: t=%d overruns=%d", frame, rig.Timer.Now(), rig.Generator.Overruns())
		}
		return nil
	})
	grp.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case frame, ok := <-boundaries:
				if !ok {
					return nil
				}
				producer.Apply(frame, rig.Channels)
				if !rig.Channels.Fits(cfg.PPMTiming()) {
					log.Warnf("frame %d: channels %v do not fit the period", frame, rig.Channels.Snapshot())
				}
				select {
				case <-ctx.Done():
					return ctx.Err()
				case acks <- struct{}{}:
				}
			}
		}
	})

	if err := grp.Wait(); err != nil {
		return result{}, fmt.Errorf("simulation stopped: %w", err)
	}

	res := result{
		Periods:  cfg.Run.Frames,
		Frames:   rig.Frames(cfg.Decoder.IdleThreshold),
		Overruns: rig.Generator.Overruns(),
	}
	for i, f := range res.Frames {
		fmt.Fprintf(w, "frame %d: %s width=%d idle=%d\n", i, formatChannels(f.Channels), f.Width(), f.Idle)
	}
	if len(res.Frames) != res.Periods {
		log.Warnf("decoded %d frames out of %d periods", len(res.Frames), res.Periods)
	}
	return res, nil
}

// producers builds the channel producers of cfg. Sweeps run first so a
// scheduled update for the same channel wins.
func producers(cfg *config.Config) sim.Producers {
	var ps sim.Producers
	for _, s := range cfg.Sweeps {
		ps = append(ps, sim.Sweep{
			Channel: s.Channel,
			Min:     s.Min,
			Max:     s.Max,
			Frames:  s.Frames,
		})
	}

	updates := make([]sim.Update, 0, len(cfg.Updates))
	for _, u := range cfg.Updates {
		up := sim.Update{Frame: u.Frame, Channel: u.Channel, Value: u.Value}
		if len(u.Values) > 0 {
			var values [ppm.NumChannels]uint16
			copy(values[:], u.Values)
			up.Values = &values
		}
		updates = append(updates, up)
	}
	return append(ps, sim.NewSchedule(updates...))
}

func formatChannels(values []uint16) string {
	var sb strings.Builder
	for i, v := range values {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	return sb.String()
}
