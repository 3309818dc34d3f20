package instrument

import (
	"math"

	"github.com/viterin/vek/vek32"
)

const tau = 2 * math.Pi

// Wave returns the displacement of a vibrating string at distance x from its
// stop, at time t in milliseconds:
//
//	y(x,t) = 2*A*modifier*sin(x*tau/lambda)*cos(tau*f*t), f = 1/lambda
//
// where A is the base amplitude and modifier the decaying amplitude of the
// voice. A zero modifier gives a string at rest.
func Wave(x, t, amplitude, modifier, wavelength float32) float32 {
	if modifier == 0 || wavelength <= 0 {
		return 0
	}
	return waveScale(t, amplitude, modifier, wavelength) * float32(math.Sin(float64(x)*tau/float64(wavelength)))
}

func waveScale(t, amplitude, modifier, wavelength float32) float32 {
	f := 1 / float64(wavelength)
	return 2 * amplitude * modifier * float32(math.Cos(tau*f*float64(t)))
}

// waveShape caches the spatial part of the wave, sin(x*tau/lambda), for every
// whole pixel x, so a frame only needs to scale it.
type waveShape struct {
	wavelength float32
	shape      []float32
	scratch    []float32
}

func (w *waveShape) resize(length int, wavelength float32) {
	length = max(length, 0)
	if w.wavelength == wavelength && len(w.shape) == length {
		return
	}
	w.wavelength = wavelength
	w.shape = make([]float32, length)
	w.scratch = make([]float32, length)
	if wavelength <= 0 {
		return
	}
	for x := range w.shape {
		w.shape[x] = float32(math.Sin(float64(x) * tau / float64(wavelength)))
	}
}

// displacements returns the displacement at pixels 0..n-1 from the stop. The
// returned slice is reused by the next call.
func (w *waveShape) displacements(n int, t, amplitude, modifier float32) []float32 {
	n = min(n, len(w.shape))
	return vek32.MulNumber_Into(w.scratch[:n], w.shape[:n], waveScale(t, amplitude, modifier, w.wavelength))
}
