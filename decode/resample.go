package decode

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/vsariola/strum"
)

// Resample converts a stereo sample to the target rate. Both channels are run
// through their own polyphase resampler so no state leaks between them.
func Resample(s *strum.Sample, rate int, quality resample.Quality) (*strum.Sample, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("invalid target sample rate %d", rate)
	}
	if s.SampleRate == rate {
		return s, nil
	}
	frames := s.Frames()
	channels := [2][]float64{make([]float64, frames), make([]float64, frames)}
	for i := 0; i < frames; i++ {
		channels[0][i] = float64(s.Data[2*i])
		channels[1][i] = float64(s.Data[2*i+1])
	}
	var out [2][]float64
	for c := range channels {
		r, err := resample.NewForRates(float64(s.SampleRate), float64(rate), resample.WithQuality(quality))
		if err != nil {
			return nil, fmt.Errorf("resampling %d Hz to %d Hz: %w", s.SampleRate, rate, err)
		}
		out[c] = process(r, channels[c])
	}
	n := min(len(out[0]), len(out[1]))
	data := make([]float32, 2*n)
	for i := 0; i < n; i++ {
		data[2*i] = float32(out[0][i])
		data[2*i+1] = float32(out[1][i])
	}
	return &strum.Sample{Name: s.Name, SampleRate: rate, Data: data}, nil
}

// process runs all of input through a fresh resampler. The prototype filter
// is linear phase, so the output lags by half its length; that many leading
// frames are dropped and the tail is flushed with zeros, keeping the output
// aligned with the input.
func process(r *resample.Resampler, input []float64) []float64 {
	up, down := r.Ratio()
	taps := len(r.Prototype())
	n := r.PredictOutputLen(len(input))
	delay := int(math.Round(float64(taps-1) / float64(2*down)))
	padded := make([]float64, len(input)+(taps-1)/(2*up)+2)
	copy(padded, input)
	out := r.Process(padded)
	out = out[min(delay, len(out)):]
	if len(out) > n {
		out = out[:n]
	}
	return out
}
