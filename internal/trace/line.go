// Package trace records what an output line did and decodes it back into
// PPM frames.
package trace

import "github.com/xtompok/PPMGenerator/ppm"

// Clock is the tick source edges are stamped with.
type Clock interface {
	Now() uint64
}

// Edge is a level change at an absolute tick.
type Edge struct {
	At    uint64
	Level bool
}

// Segment is a run of constant level.
type Segment struct {
	Start uint64
	Width uint32
	Level bool
}

// Line is an output line that remembers its edges. It implements ppm.Output
// and ppm.Indicator. Writes that do not change the level leave no edge.
type Line struct {
	clock  Clock
	mirror ppm.Output

	level  bool
	since  uint64
	writes int
	edges  []Edge
}

// NewLine returns a LOW line stamped by clock.
func NewLine(clock Clock) *Line {
	return &Line{clock: clock, since: clock.Now()}
}

// Mirror forwards every write to out as well, e.g. a real GPIO line.
func (l *Line) Mirror(out ppm.Output) {
	l.mirror = out
}

func (l *Line) High() { l.set(true) }
func (l *Line) Low()  { l.set(false) }

// Toggle inverts the level.
func (l *Line) Toggle() { l.set(!l.level) }

func (l *Line) set(level bool) {
	l.writes++
	if l.mirror != nil {
		if level {
			l.mirror.High()
		} else {
			l.mirror.Low()
		}
	}
	if level == l.level {
		return
	}
	l.level = level
	l.edges = append(l.edges, Edge{At: l.clock.Now(), Level: level})
}

// Level returns the current level.
func (l *Line) Level() bool { return l.level }

// Writes returns the number of High/Low/Toggle calls.
func (l *Line) Writes() int { return l.writes }

// Edges returns the recorded level changes.
func (l *Line) Edges() []Edge {
	return append([]Edge(nil), l.edges...)
}

// Segments returns the runs of constant level from the line's creation up to
// the clock's current tick. Zero-width runs are dropped.
func (l *Line) Segments() []Segment {
	var (
		segs  []Segment
		start = l.since
		level = false
	)
	for _, e := range l.edges {
		if e.At > start {
			segs = appendSegment(segs, Segment{Start: start, Width: uint32(e.At - start), Level: level})
		}
		start = e.At
		level = e.Level
	}
	if now := l.clock.Now(); now > start {
		segs = appendSegment(segs, Segment{Start: start, Width: uint32(now - start), Level: level})
	}
	return segs
}

// appendSegment merges s into the previous segment when both share a level,
// which happens when a level change and its reversal land on the same tick.
func appendSegment(segs []Segment, s Segment) []Segment {
	if n := len(segs); n > 0 && segs[n-1].Level == s.Level {
		segs[n-1].Width += s.Width
		return segs
	}
	return append(segs, s)
}
