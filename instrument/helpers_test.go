package instrument_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/vsariola/strum"
	"github.com/vsariola/strum/instrument"
	"go.uber.org/zap/zaptest"
)

type (
	// fakeClock fires timers synchronously from Advance, on the calling
	// goroutine, like the GUI loop runs the posted closures.
	fakeClock struct {
		now    time.Time
		timers []*fakeTimer
		// ignoreStop lets stopped timers fire anyway, to simulate callbacks
		// that were already queued when the timer was stopped.
		ignoreStop bool
	}

	fakeTimer struct {
		at      time.Time
		f       func()
		stopped bool
		fired   bool
	}

	recordingSink struct {
		played []string
		gains  []float32
	}
)

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) AfterFunc(d time.Duration, f func()) instrument.Timer {
	t := &fakeTimer{at: c.now.Add(d), f: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		t := c.next(target)
		if t == nil {
			break
		}
		c.now = t.at
		t.fired = true
		t.f()
	}
	c.now = target
}

func (c *fakeClock) next(target time.Time) *fakeTimer {
	var best *fakeTimer
	for _, t := range c.timers {
		if t.fired || (t.stopped && !c.ignoreStop) || t.at.After(target) {
			continue
		}
		if best == nil || t.at.Before(best.at) {
			best = t
		}
	}
	return best
}

// pending returns the number of timers that are still going to fire.
func (c *fakeClock) pending() int {
	n := 0
	for _, t := range c.timers {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (t *fakeTimer) Stop() bool {
	active := !t.fired && !t.stopped
	t.stopped = true
	return active
}

func (s *recordingSink) Play(sample *strum.Sample, gain float32) error {
	s.played = append(s.played, sample.Name)
	s.gains = append(s.gains, gain)
	return nil
}

// testSample lasts two seconds.
func testSample(name string) *strum.Sample {
	return &strum.Sample{Name: name, SampleRate: 1000, Data: make([]float32, 2*2000)}
}

func newTestModel(t *testing.T, config instrument.Config) (*instrument.Model, *fakeClock, *recordingSink) {
	t.Helper()
	clock := newFakeClock()
	sink := &recordingSink{}
	m, err := instrument.NewModel(config, instrument.NewBroker(), sink, clock, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	m.Relayout(1000, 600)
	return m, clock, sink
}

// giveSamples gives every string one sample per fret, named string:fret.
func giveSamples(m *instrument.Model) {
	for i := 0; i < m.NumStrings(); i++ {
		v := m.Voice(i)
		v.Samples = nil
		for f := 0; f <= m.Config().Frets; f++ {
			v.Samples = append(v.Samples, testSample(fmt.Sprintf("%d:%d", i, f)))
		}
	}
}
