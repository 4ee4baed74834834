package sim

import (
	"sort"

	"golang.org/x/exp/constraints"

	"github.com/xtompok/PPMGenerator/ppm"
)

// Producer writes channel values at frame boundaries.
type Producer interface {
	Apply(frame uint32, ch *ppm.Channels)
}

// Update is one scheduled write: a single channel, or the whole set when
// Values is not nil.
type Update struct {
	Frame   uint32
	Channel int
	Value   uint16
	Values  *[ppm.NumChannels]uint16
}

// Schedule applies updates at the frames they name.
type Schedule struct {
	updates []Update
	next    int
}

// NewSchedule orders updates by frame, keeping the given order within a frame.
func NewSchedule(updates ...Update) *Schedule {
	s := &Schedule{updates: append([]Update(nil), updates...)}
	sort.SliceStable(s.updates, func(i, j int) bool {
		return s.updates[i].Frame < s.updates[j].Frame
	})
	return s
}

func (s *Schedule) Apply(frame uint32, ch *ppm.Channels) {
	for s.next < len(s.updates) && s.updates[s.next].Frame <= frame {
		u := s.updates[s.next]
		s.next++
		if u.Values != nil {
			ch.Update(*u.Values)
			continue
		}
		ch.Set(u.Channel, u.Value)
	}
}

// Sweep moves one channel from Min to Max and back every 2*Frames frames,
// like a stick being worked end to end.
type Sweep struct {
	Channel int
	Min     uint16
	Max     uint16
	Frames  uint32
}

func (s Sweep) Apply(frame uint32, ch *ppm.Channels) {
	ch.Set(s.Channel, s.Value(frame))
}

// Value returns the channel value at frame.
func (s Sweep) Value(frame uint32) uint16 {
	if s.Frames == 0 {
		return s.Min
	}
	// 2*Frames overflows uint32 for long sweeps
	span := uint64(s.Frames)
	pos := uint64(frame) % (2 * span)
	if pos > span {
		pos = 2*span - pos
	}
	v := mapRange(float64(pos), 0, float64(span), float64(s.Min), float64(s.Max))
	return uint16(constrain(v+0.5, float64(s.Min), float64(s.Max)))
}

// Producers applies several producers in order.
type Producers []Producer

func (ps Producers) Apply(frame uint32, ch *ppm.Channels) {
	for _, p := range ps {
		p.Apply(frame, ch)
	}
}

// Helper function to constrain a value within min and max bounds.
func constrain[T constraints.Ordered](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Helper function to map a value from one range to another.
func mapRange[T constraints.Float](value, fromMin, fromMax, toMin, toMax T) T {
	return (value-fromMin)/(fromMax-fromMin)*(toMax-toMin) + toMin
}
