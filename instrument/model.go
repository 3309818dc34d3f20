package instrument

import (
	"context"
	"fmt"
	"time"

	"github.com/vsariola/strum"
	"go.uber.org/zap"
)

type (
	// Model implements the mutable state of the instrument. It is owned by
	// a single goroutine; see the package documentation.
	Model struct {
		config Config
		broker *Broker
		clock  Clock
		sink   strum.AudioSink
		logger *zap.Logger

		voices   []*StringVoice
		board    *Fretboard
		width    float32
		height   float32
		wave     waveShape
		revision int

		dragging bool

		samplesState SamplesState
		samplesErr   error
		loadGen      int

		animation Animation
	}

	// SampleLoader loads the samples of a source partitioned per string.
	// *library.Library implements it.
	SampleLoader interface {
		LoadSet(ctx context.Context, source string, numStrings, perString int) (strum.SampleSet, error)
	}

	SamplesState int

	// Animation is the handle of the frame loop. While it is running and a
	// string vibrates, the view keeps scheduling new frames.
	Animation struct {
		running bool
		start   time.Time
	}
)

const (
	SamplesNotLoaded SamplesState = iota
	SamplesLoading
	SamplesReady
	SamplesFailed
)

func (s SamplesState) String() string {
	switch s {
	case SamplesLoading:
		return "loading samples"
	case SamplesReady:
		return "ready"
	case SamplesFailed:
		return "loading samples failed"
	default:
		return "no samples"
	}
}

// NewModel creates the model with silent voices; call LoadSamples to give
// them samples and Relayout before the first frame. A nil clock means the
// wall clock posting through broker, a nil logger discards the logs.
func NewModel(config Config, broker *Broker, sink strum.AudioSink, clock Clock, logger *zap.Logger) (*Model, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid instrument config: %w", err)
	}
	if clock == nil {
		clock = BrokerClock{Broker: broker}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		config: config,
		broker: broker,
		clock:  clock,
		sink:   sink,
		logger: logger,
	}
	m.voices = make([]*StringVoice, config.Strings)
	for i := range m.voices {
		m.voices[i] = newStringVoice(i, config.Frets, config.Envelope, clock, logger)
	}
	m.relayout(0, 0)
	m.animation.Start(clock.Now())
	return m, nil
}

func (m *Model) Config() Config             { return m.config }
func (m *Model) Broker() *Broker            { return m.broker }
func (m *Model) Fretboard() *Fretboard      { return m.board }
func (m *Model) NumStrings() int            { return len(m.voices) }
func (m *Model) Dragging() bool             { return m.dragging }
func (m *Model) Animation() *Animation      { return &m.animation }
func (m *Model) Size() (w, h float32)       { return m.width, m.height }
func (m *Model) LayoutRevision() int        { return m.revision }
func (m *Model) SamplesState() SamplesState { return m.samplesState }
func (m *Model) SamplesError() error        { return m.samplesErr }

// Voice returns the voice of string i, or nil if there is no such string.
func (m *Model) Voice(i int) *StringVoice {
	if i < 0 || i >= len(m.voices) {
		return nil
	}
	return m.voices[i]
}

// Process runs a closure received from Broker.ToModel. Must be called on the
// goroutine owning the model.
func (m *Model) Process(f func()) {
	if f != nil {
		f()
	}
}

// Relayout recomputes the fretboard, the string midlines and hitboxes and the
// cached wave shape for a new size. The layout revision is bumped if the
// size changed, telling the view to redraw its static layer.
func (m *Model) Relayout(width, height float32) {
	width, height = max(width, 0), max(height, 0)
	if width == m.width && height == m.height {
		return
	}
	m.relayout(width, height)
}

func (m *Model) relayout(width, height float32) {
	m.width, m.height = width, height
	l := m.config.Layout
	m.board = NewFretboard(strum.NewRect(0, 0, width, height), m.config.Strings, m.config.Frets, l.NeckFraction, l.NutMargin)
	for i, v := range m.voices {
		v.MidlineY = m.board.Midline(i)
		v.Hitbox = strum.NewRect(0, v.MidlineY-l.HitboxHeight/2, width, l.HitboxHeight)
	}
	m.wave.resize(int(width)+1, m.config.Wave.WavelengthFraction*width)
	m.revision++
}

// PointerDown starts a drag: from now on, moving the pointer plucks strings
// instead of hovering cells.
func (m *Model) PointerDown() {
	m.dragging = true
	m.board.ClearHover()
}

func (m *Model) PointerUp() {
	m.dragging = false
}

// PointerMove plucks every string whose hitbox contains the point while
// dragging, and otherwise hovers the fretboard cell under the point.
func (m *Model) PointerMove(x, y float32) {
	if m.dragging {
		for _, v := range m.voices {
			if v.Hitbox.Contains(x, y) {
				v.Pluck(m.sink, 1)
			}
		}
		return
	}
	if c, ok := m.board.CellAt(x, y); ok {
		m.board.SetHover(c)
	} else {
		m.board.ClearHover()
	}
}

func (m *Model) PointerLeave() {
	m.board.ClearHover()
}

// Click toggles the fret of the cell under the point. Returns false if there
// is no cell there.
func (m *Model) Click(x, y float32) bool {
	c, ok := m.board.CellAt(x, y)
	if !ok {
		return false
	}
	m.voices[c.String].SetFret(c.Fret + 1)
	return true
}

// LoadSamples loads the samples of the configured source on a new goroutine.
// The result is posted to the broker; until it has been processed the
// instrument stays silent. A failure is logged and leaves the instrument
// silent but otherwise usable. A later call supersedes an earlier one.
func (m *Model) LoadSamples(ctx context.Context, loader SampleLoader) {
	m.loadGen++
	gen := m.loadGen
	m.samplesState = SamplesLoading
	m.samplesErr = nil
	source, strings, perString := m.config.Source, m.config.Strings, m.config.SamplesPerString
	m.logger.Info("loading samples", zap.String("source", source))
	go func() {
		set, err := loader.LoadSet(ctx, source, strings, perString)
		m.broker.Post(func() { m.samplesLoaded(gen, set, err) })
	}()
}

func (m *Model) samplesLoaded(gen int, set strum.SampleSet, err error) {
	if gen != m.loadGen {
		return
	}
	if err != nil {
		m.samplesState = SamplesFailed
		m.samplesErr = err
		m.logger.Error("loading samples failed", zap.String("source", m.config.Source), zap.Error(err))
		return
	}
	total := 0
	for i, v := range m.voices {
		v.Samples = set.String(i)
		total += len(v.Samples)
	}
	m.samplesState = SamplesReady
	m.logger.Info("samples loaded", zap.String("source", m.config.Source), zap.Int("samples", total))
}

// PlayNote frets and plucks the position of a MIDI pitch, with gain
// velocity/127. The lowest fret wins, then the lowest string. A pitch out of
// the range of the instrument is moved by octaves into the range, if
// possible. Velocity 0 is a note off and is ignored. A note that does not
// sound leaves the fret unchanged.
func (m *Model) PlayNote(pitch, velocity int) bool {
	if velocity <= 0 {
		return false
	}
	str, fret, ok := m.NotePosition(pitch)
	if !ok {
		m.logger.Debug("note out of range", zap.Int("pitch", pitch))
		return false
	}
	v := m.voices[str]
	prev := v.CurrentFret
	v.CurrentFret = fret
	if !v.Pluck(m.sink, float32(min(velocity, 127))/127) {
		v.CurrentFret = prev
		return false
	}
	return true
}

// NotePosition maps a MIDI pitch to a string and fret.
func (m *Model) NotePosition(pitch int) (str, fret int, ok bool) {
	lowest, highest := m.config.Tuning[0], m.config.Tuning[0]
	for _, p := range m.config.Tuning {
		lowest, highest = min(lowest, p), max(highest, p)
	}
	highest += m.config.Frets
	for pitch < lowest {
		pitch += 12
	}
	for pitch > highest {
		pitch -= 12
	}
	for fret := 0; fret <= m.config.Frets; fret++ {
		for str, open := range m.config.Tuning {
			if open+fret == pitch {
				return str, fret, true
			}
		}
	}
	return 0, 0, false
}

// StringPath yields the polyline of string i at time t (milliseconds): a
// straight segment from the nut to the stop of the current fret, and from
// there to the far end the vibrating wave. A string at rest is a straight
// line.
func (m *Model) StringPath(i int, t float32, yield func(x, y float32) bool) {
	v := m.Voice(i)
	if v == nil {
		return
	}
	y := v.MidlineY
	nut := m.board.FretX(0)
	stop := min(m.board.FretX(v.CurrentFret), m.width)
	if !yield(nut, y) {
		return
	}
	if stop > nut && !yield(stop, y) {
		return
	}
	if !v.Vibrating() {
		yield(m.width, y)
		return
	}
	d := m.wave.displacements(int(m.width-stop)+1, t, m.config.Wave.BaseAmplitude, v.Amplitude)
	for k := 1; k < len(d); k++ {
		if !yield(stop+float32(k), y+d[k]) {
			return
		}
	}
	if last := stop + float32(len(d)-1); last < m.width {
		yield(m.width, y+Wave(m.width-stop, t, m.config.Wave.BaseAmplitude, v.Amplitude, m.wave.wavelength))
	}
}

// NeedsFrame reports whether the view should keep scheduling frames.
func (m *Model) NeedsFrame() bool {
	if !m.animation.Running() {
		return false
	}
	for _, v := range m.voices {
		if v.Vibrating() {
			return true
		}
	}
	return false
}

// Close stops the animation and all the voices.
func (m *Model) Close() {
	m.animation.Stop()
	for _, v := range m.voices {
		v.Stop()
	}
	m.loadGen++
}

// Start (re)starts the animation; the animation time is measured from the
// first start.
func (a *Animation) Start(now time.Time) {
	if a.start.IsZero() {
		a.start = now
	}
	a.running = true
}

func (a *Animation) Stop()         { a.running = false }
func (a *Animation) Running() bool { return a.running }

// Time returns the animation time in milliseconds.
func (a *Animation) Time(now time.Time) float32 {
	return float32(now.Sub(a.start).Seconds() * 1000)
}
