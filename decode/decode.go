// Package decode turns the bytes of sample files into playable
// strum.Samples. The format is chosen by file extension and the result is
// resampled to the rate of the audio device.
package decode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"path"
	"strings"

	"github.com/cwbudde/algo-dsp/dsp/resample"
	"github.com/go-audio/wav"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/hajimehoshi/go-mp3"
	"github.com/vsariola/strum"
)

type (
	// Decoder decodes sample files. The zero value keeps the sample rate of
	// the source file.
	Decoder struct {
		// SampleRate is the rate all decoded samples are converted to. Zero
		// means no conversion.
		SampleRate int
		Quality    resample.Quality
	}

	formatFunc func(data []byte) (rate int, frames []float32, err error)
)

var formats = map[string]formatFunc{
	".mp3": decodeMP3,
	".wav": decodeWav,
	".ogg": decodeOgg,
}

// Extensions returns the file extensions (with the leading dot) that Decode
// understands.
func Extensions() []string {
	return []string{".mp3", ".ogg", ".wav"}
}

// Supported reports whether name has an extension Decode understands.
func Supported(name string) bool {
	_, ok := formats[strings.ToLower(path.Ext(name))]
	return ok
}

// Decode decodes the contents of the file called name. Every error returned
// is a *strum.DecodeError.
func (d *Decoder) Decode(name string, data []byte) (*strum.Sample, error) {
	f, ok := formats[strings.ToLower(path.Ext(name))]
	if !ok {
		return nil, &strum.DecodeError{Name: name, Err: strum.ErrUnsupportedFormat}
	}
	rate, frames, err := f(data)
	if err != nil {
		return nil, &strum.DecodeError{Name: name, Err: err}
	}
	if rate <= 0 {
		return nil, &strum.DecodeError{Name: name, Err: fmt.Errorf("invalid sample rate %d", rate)}
	}
	sample := &strum.Sample{Name: name, SampleRate: rate, Data: frames}
	if d.SampleRate > 0 && rate != d.SampleRate {
		if sample, err = Resample(sample, d.SampleRate, d.Quality); err != nil {
			return nil, &strum.DecodeError{Name: name, Err: err}
		}
	}
	return sample, nil
}

// go-mp3 always produces 16-bit little endian stereo.
func decodeMP3(data []byte) (int, []float32, error) {
	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return 0, nil, fmt.Errorf("mp3: %w", err)
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return 0, nil, fmt.Errorf("mp3: %w", err)
	}
	frames := make([]float32, len(pcm)/2)
	for i := range frames {
		frames[i] = float32(int16(binary.LittleEndian.Uint16(pcm[2*i:]))) / 32768
	}
	return dec.SampleRate(), frames, nil
}

// WAVE format tags of the fmt chunk.
const (
	wavFormatPCM        = 1
	wavFormatFloat      = 3
	wavFormatExtensible = 0xfffe
)

func decodeWav(data []byte) (int, []float32, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return 0, nil, errors.New("wav: not a valid wav file")
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return 0, nil, fmt.Errorf("wav: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels <= 0 {
		return 0, nil, errors.New("wav: missing channel count")
	}
	bitDepth := buf.SourceBitDepth
	if bitDepth <= 0 {
		bitDepth = int(dec.BitDepth)
	}
	samples := make([]float32, len(buf.Data))
	switch dec.WavAudioFormat {
	case wavFormatFloat:
		if bitDepth != 32 {
			return 0, nil, fmt.Errorf("wav: unsupported float bit depth %d", bitDepth)
		}
		// the decoder reads the raw bits as a signed 32-bit integer
		for i, v := range buf.Data {
			samples[i] = math.Float32frombits(uint32(v))
		}
	case wavFormatPCM, wavFormatExtensible:
		if bitDepth <= 0 || bitDepth > 32 {
			return 0, nil, fmt.Errorf("wav: unsupported bit depth %d", bitDepth)
		}
		var offset float32
		if bitDepth <= 8 {
			offset = 128 // 8-bit samples are unsigned
		}
		scale := float32(int64(1) << (bitDepth - 1))
		for i, v := range buf.Data {
			samples[i] = (float32(v) - offset) / scale
		}
	default:
		return 0, nil, fmt.Errorf("wav: unsupported format tag %#x", dec.WavAudioFormat)
	}
	return buf.Format.SampleRate, toStereo(samples, buf.Format.NumChannels), nil
}

func decodeOgg(data []byte) (int, []float32, error) {
	streamer, format, err := vorbis.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return 0, nil, fmt.Errorf("ogg: %w", err)
	}
	defer streamer.Close()
	var frames []float32
	buf := make([][2]float64, 1024)
	for {
		n, ok := streamer.Stream(buf)
		for _, f := range buf[:n] {
			frames = append(frames, float32(f[0]), float32(f[1]))
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return 0, nil, fmt.Errorf("ogg: %w", err)
	}
	return int(format.SampleRate), frames, nil
}

// toStereo converts interleaved samples with the given channel count to
// interleaved stereo. Mono is duplicated to both channels; channels beyond
// the second are dropped.
func toStereo(samples []float32, channels int) []float32 {
	if channels == 2 {
		return samples
	}
	frames := len(samples) / channels
	ret := make([]float32, frames*2)
	for i := 0; i < frames; i++ {
		l := samples[i*channels]
		r := l
		if channels > 1 {
			r = samples[i*channels+1]
		}
		ret[2*i], ret[2*i+1] = l, r
	}
	return ret
}
