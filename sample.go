package strum

import (
	"fmt"
	"time"
)

type (
	// Sample is a decoded audio buffer ready for playback. Data holds
	// interleaved stereo float32 frames (L, R, L, R, ...) at SampleRate.
	Sample struct {
		Name       string
		SampleRate int
		Data       []float32
	}

	// SampleSet holds the decoded samples of an instrument, indexed first by
	// string and then by fret (0 = open string). It is built once after the
	// samples have been loaded and is never modified afterwards.
	SampleSet [][]*Sample
)

// Frames returns the number of stereo frames in the sample.
func (s *Sample) Frames() int {
	return len(s.Data) / 2
}

// Duration returns the playing time of the sample.
func (s *Sample) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(s.Frames()) * time.Second / time.Duration(s.SampleRate)
}

// NewSampleSet partitions a flat, ordered list of samples into per-string
// slices: the first counts[0] samples belong to string 0, the next counts[1]
// to string 1 and so on. The counts must add up to len(samples) exactly.
func NewSampleSet(samples []*Sample, counts []int) (SampleSet, error) {
	total := 0
	for i, c := range counts {
		if c < 0 {
			return nil, fmt.Errorf("string %d has a negative sample count %d: %w", i, c, ErrSampleCount)
		}
		total += c
	}
	if total != len(samples) {
		return nil, fmt.Errorf("counts %v add up to %d, but there are %d samples: %w", counts, total, len(samples), ErrSampleCount)
	}
	ret := make(SampleSet, len(counts))
	offset := 0
	for i, c := range counts {
		ret[i] = samples[offset : offset+c : offset+c]
		offset += c
	}
	return ret, nil
}

// String returns the samples of string i, or nil if there are none.
func (s SampleSet) String(i int) []*Sample {
	if i < 0 || i >= len(s) {
		return nil
	}
	return s[i]
}

// Sample returns the sample for the given string and fret.
func (s SampleSet) Sample(str, fret int) (*Sample, bool) {
	samples := s.String(str)
	if fret < 0 || fret >= len(samples) || samples[fret] == nil {
		return nil, false
	}
	return samples[fret], true
}
