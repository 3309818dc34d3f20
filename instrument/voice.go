package instrument

import (
	"time"

	"github.com/vsariola/strum"
	"go.uber.org/zap"
)

// StringVoice is the playback and animation state of one string.
//
// A pluck plays the sample of the current fret, sets Amplitude to 1 and starts
// two timers: a decay ticker that lowers Amplitude step by step to 0, and an
// end-of-play timer that clears Playing a bit before the sample ends. A new
// pluck replaces both timers. The guard keeps a pointer dragged along the
// string from plucking it again on every move event.
type StringVoice struct {
	Index       int
	MidlineY    float32
	Hitbox      strum.Rect
	Samples     []*strum.Sample
	CurrentFret int
	Amplitude   float32
	Playing     bool

	frets      int
	envelope   EnvelopeConfig
	clock      Clock
	logger     *zap.Logger
	guardUntil time.Time
	decay      Timer
	end        Timer
	generation int // incremented on every pluck and Stop; old timer callbacks compare against it
}

// the amplitude is snapped to 0 below this, so float rounding cannot leave a
// tiny residue after the last step
const amplitudeEpsilon = 1e-6

func newStringVoice(index, frets int, envelope EnvelopeConfig, clock Clock, logger *zap.Logger) *StringVoice {
	return &StringVoice{
		Index:    index,
		frets:    frets,
		envelope: envelope,
		clock:    clock,
		logger:   logger,
	}
}

// Pluck starts playing the sample of the current fret. It does nothing and
// returns false if the guard from the previous pluck is still active or if
// there is no sample for the current fret.
func (v *StringVoice) Pluck(sink strum.AudioSink, gain float32) bool {
	now := v.clock.Now()
	if now.Before(v.guardUntil) {
		return false
	}
	sample := v.sample()
	if sample == nil {
		return false
	}
	if sink != nil {
		if err := sink.Play(sample, gain); err != nil {
			v.logger.Warn("playing sample failed", zap.Int("string", v.Index), zap.String("sample", sample.Name), zap.Error(err))
		}
	}
	v.stopTimers()
	v.generation++
	gen := v.generation
	v.Amplitude = 1
	v.Playing = true
	v.guardUntil = now.Add(v.envelope.RepeatDelay)
	v.decay = v.clock.AfterFunc(v.envelope.TickInterval, func() { v.decayTick(gen) })
	playing := time.Duration(float64(sample.Duration()) * float64(v.envelope.PlayingFraction))
	v.end = v.clock.AfterFunc(playing, func() {
		if gen != v.generation {
			return
		}
		v.Playing = false
		v.end = nil
	})
	return true
}

func (v *StringVoice) decayTick(gen int) {
	if gen != v.generation {
		return
	}
	v.Amplitude -= v.envelope.DecayStep
	if v.Amplitude < amplitudeEpsilon {
		v.Amplitude = 0
		v.decay = nil
		return
	}
	v.decay = v.clock.AfterFunc(v.envelope.TickInterval, func() { v.decayTick(gen) })
}

// SetFret selects a fret, 1..frets, or 0 for the open string. Selecting the
// current nonzero fret again opens the string. Out of range indices are
// ignored.
func (v *StringVoice) SetFret(fret int) {
	if fret < 0 || fret > v.frets {
		return
	}
	if fret != 0 && fret == v.CurrentFret {
		v.CurrentFret = 0
		return
	}
	v.CurrentFret = fret
}

// Stop cancels the timers and brings the string to rest.
func (v *StringVoice) Stop() {
	v.stopTimers()
	v.generation++
	v.Amplitude = 0
	v.Playing = false
}

// Vibrating reports whether the string is still moving.
func (v *StringVoice) Vibrating() bool {
	return v.Amplitude > 0
}

func (v *StringVoice) sample() *strum.Sample {
	if v.CurrentFret < 0 || v.CurrentFret >= len(v.Samples) {
		return nil
	}
	return v.Samples[v.CurrentFret]
}

func (v *StringVoice) stopTimers() {
	if v.decay != nil {
		v.decay.Stop()
		v.decay = nil
	}
	if v.end != nil {
		v.end.Stop()
		v.end = nil
	}
}
