package ppm

import "testing"

// --- MOCK HARDWARE FOR TESTING ---

type mockTimer struct {
	compare  uint16
	writes   []uint16
	cmpFlag  bool
	ovfFlag  bool
	disabled int
	enabled  int
}

func (m *mockTimer) SetCompare(v uint16) {
	m.compare = v
	m.writes = append(m.writes, v)
}

func (m *mockTimer) CompareFlag() bool  { return m.cmpFlag }
func (m *mockTimer) OverflowFlag() bool { return m.ovfFlag }
func (m *mockTimer) ClearCompareFlag()  { m.cmpFlag = false }
func (m *mockTimer) ClearOverflowFlag() { m.ovfFlag = false }
func (m *mockTimer) Disable()           { m.disabled++ }
func (m *mockTimer) Enable()            { m.enabled++ }

type mockPin struct {
	high   bool
	writes int
}

func (p *mockPin) High() { p.high = true; p.writes++ }
func (p *mockPin) Low()  { p.high = false; p.writes++ }

type mockLED struct{ toggles int }

func (l *mockLED) Toggle() { l.toggles++ }

func newTestGenerator() (*Generator, *Channels, *mockTimer, *mockPin) {
	tim := &mockTimer{}
	pin := &mockPin{}
	ch := NewChannels(tim)
	g := NewGenerator(ch, DefaultTiming, pin, tim)
	return g, ch, tim, pin
}

var frameStart = State{Phase: AWAITING_SYNC_END, Index: 0, Target: SYNC_WIDTH, Level: false}

func TestStart(t *testing.T) {
	g, _, tim, pin := newTestGenerator()
	led := &mockLED{}
	g.SetHeartbeat(led)
	g.Start()

	if got, want := g.State(), frameStart; got != want {
		t.Fatalf("invalid state: got=%+v, want=%+v", got, want)
	}
	if got, want := tim.compare, uint16(SYNC_WIDTH); got != want {
		t.Fatalf("invalid compare: got=%d, want=%d", got, want)
	}
	if pin.high {
		t.Fatalf("line should be LOW at frame start")
	}
	if got, want := g.Frames(), uint32(1); got != want {
		t.Fatalf("invalid frame count: got=%d, want=%d", got, want)
	}
	if got, want := led.toggles, 1; got != want {
		t.Fatalf("invalid heartbeat toggles: got=%d, want=%d", got, want)
	}
}

func TestTransitions(t *testing.T) {
	g, ch, tim, pin := newTestGenerator()
	ch.Set(0, 1100)
	ch.Set(1, 1900)
	g.Start()

	for i, tc := range []struct {
		ev   Event
		want State
	}{
		{COMPARE_MATCH, State{Phase: AWAITING_SIGNAL_END, Index: 0, Target: 300 + 1100, Level: true}},
		{COMPARE_MATCH, State{Phase: AWAITING_SYNC_END, Index: 1, Target: 1400 + 300, Level: false}},
		{COMPARE_MATCH, State{Phase: AWAITING_SIGNAL_END, Index: 1, Target: 1700 + 1900, Level: true}},
		{COMPARE_MATCH, State{Phase: AWAITING_SYNC_END, Index: 2, Target: 3600 + 300, Level: false}},
		{PERIOD_OVERFLOW, frameStart},
	} {
		g.Handle(tc.ev)
		got := g.State()
		if got != tc.want {
			t.Fatalf("step %d (%v): got=%+v, want=%+v", i, tc.ev, got, tc.want)
		}
		if pin.high != got.Level {
			t.Fatalf("step %d: line level %v does not mirror state %v", i, pin.high, got.Level)
		}
		if tim.compare != got.Target {
			t.Fatalf("step %d: compare=%d, target=%d", i, tim.compare, got.Target)
		}
	}
}

func TestOverflowFromAnyState(t *testing.T) {
	for _, st := range []State{
		{Phase: AWAITING_SIGNAL_END, Index: 3, Target: 5000, Level: true},
		{Phase: AWAITING_SYNC_END, Index: 7, Target: 9400, Level: false},
		{Phase: AWAITING_SYNC_END, Index: NumChannels, Target: 10700, Level: true},
		{Phase: 0, Index: 0, Target: 0, Level: false},
	} {
		t.Run(st.Phase.String(), func(t *testing.T) {
			g, _, tim, _ := newTestGenerator()
			g.phase, g.index, g.target, g.level = st.Phase, st.Index, st.Target, st.Level

			g.Handle(PERIOD_OVERFLOW)
			if got, want := g.State(), frameStart; got != want {
				t.Fatalf("invalid state: got=%+v, want=%+v", got, want)
			}
			g.Handle(PERIOD_OVERFLOW)
			if got, want := g.State(), frameStart; got != want {
				t.Fatalf("overflow is not idempotent: got=%+v, want=%+v", got, want)
			}
			if got, want := tim.writes, []uint16{SYNC_WIDTH, SYNC_WIDTH}; len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
				t.Fatalf("invalid compare writes: got=%v, want=%v", got, want)
			}
		})
	}
}

func TestLastChannelWaitsForOverflow(t *testing.T) {
	g, _, tim, pin := newTestGenerator()
	g.Start()
	g.phase, g.index, g.target = AWAITING_SYNC_END, NumChannels, 10700
	writes := len(tim.writes)

	for i := 0; i < 3; i++ {
		g.Handle(COMPARE_MATCH)
		want := State{Phase: AWAITING_SYNC_END, Index: NumChannels, Target: 10700, Level: true}
		if got := g.State(); got != want {
			t.Fatalf("invalid state: got=%+v, want=%+v", got, want)
		}
	}
	if got := len(tim.writes); got != writes {
		t.Fatalf("compare reprogrammed after the last channel: %v", tim.writes[writes:])
	}
	if !pin.high {
		t.Fatalf("line should stay HIGH until the period wraps")
	}
}

func TestIndexWrapsModuloSentinel(t *testing.T) {
	g, _, _, _ := newTestGenerator()
	g.Start()
	g.phase, g.index, g.target = AWAITING_SIGNAL_END, NumChannels, 1000

	g.Handle(COMPARE_MATCH)
	if got, want := g.State().Index, uint8(0); got != want {
		t.Fatalf("invalid index: got=%d, want=%d", got, want)
	}
}

func TestChannelReadOncePerFrame(t *testing.T) {
	g, ch, tim, _ := newTestGenerator()
	g.Start()

	g.Handle(COMPARE_MATCH) // schedules channel 0
	scheduled := tim.compare
	ch.Set(0, 2000)

	if got := g.State().Target; got != scheduled {
		t.Fatalf("running segment changed: got=%d, want=%d", got, scheduled)
	}
	if got, want := scheduled, uint16(SYNC_WIDTH+DEFAULT_CHANNEL_WIDTH); got != want {
		t.Fatalf("invalid scheduled target: got=%d, want=%d", got, want)
	}
}

func TestOverrunLatched(t *testing.T) {
	g, ch, _, _ := newTestGenerator()
	ch.Update([NumChannels]uint16{5000, 5000, 5000, 5000, 5000, 5000, 5000, 5000})
	g.Start()

	for g.State().Index < NumChannels {
		g.Handle(COMPARE_MATCH)
	}
	if g.Overruns() == 0 {
		t.Fatalf("overrun not flagged for a %d tick frame", FrameWidth(DefaultTiming, ch.Snapshot()))
	}

	before := g.Overruns()
	g.Handle(PERIOD_OVERFLOW)
	if got := g.Overruns(); got != before {
		t.Fatalf("overflow cleared the overrun count: got=%d, want=%d", got, before)
	}
}

func TestNoOverrunForValidFrame(t *testing.T) {
	g, _, _, _ := newTestGenerator()
	g.Start()
	for i := 0; i < 2*NumChannels+2; i++ {
		g.Handle(COMPARE_MATCH)
	}
	if got := g.Overruns(); got != 0 {
		t.Fatalf("unexpected overruns: %d", got)
	}
}

func TestDispatch(t *testing.T) {
	for _, tc := range []struct {
		name     string
		cmp, ovf bool
		want     func(before State) State
	}{
		{
			name: "none",
			want: func(before State) State { return before },
		},
		{
			name: "compare",
			cmp:  true,
			want: func(before State) State {
				return State{Phase: AWAITING_SYNC_END, Index: before.Index + 1, Target: before.Target + SYNC_WIDTH}
			},
		},
		{
			name: "overflow",
			ovf:  true,
			want: func(State) State { return frameStart },
		},
		{
			name: "both",
			cmp:  true,
			ovf:  true,
			want: func(State) State { return frameStart },
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			g, _, tim, _ := newTestGenerator()
			g.Start()
			g.Handle(COMPARE_MATCH)
			before := g.State()

			tim.cmpFlag, tim.ovfFlag = tc.cmp, tc.ovf
			Dispatch(g, tim)

			if tim.cmpFlag || tim.ovfFlag {
				t.Fatalf("flags not cleared: compare=%v overflow=%v", tim.cmpFlag, tim.ovfFlag)
			}
			if got, want := g.State(), tc.want(before); got != want {
				t.Fatalf("invalid state: got=%+v, want=%+v", got, want)
			}
		})
	}
}

func TestPhaseAndEventNames(t *testing.T) {
	for _, tc := range []struct {
		got, want string
	}{
		{AWAITING_SIGNAL_END.String(), "AWAITING_SIGNAL_END"},
		{AWAITING_SYNC_END.String(), "AWAITING_SYNC_END"},
		{Phase(0).String(), "UNKNOWN"},
		{COMPARE_MATCH.String(), "COMPARE_MATCH"},
		{PERIOD_OVERFLOW.String(), "PERIOD_OVERFLOW"},
	} {
		if tc.got != tc.want {
			t.Errorf("got=%q, want=%q", tc.got, tc.want)
		}
	}
}
