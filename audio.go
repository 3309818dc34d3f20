package strum

type (
	// AudioSink starts playback of a sample. Play must not block until the
	// sample has finished; overlapping calls mix.
	AudioSink interface {
		Play(sample *Sample, gain float32) error
	}

	// AudioContext is an opened audio device. Samples given to Play should
	// already be at SampleRate.
	AudioContext interface {
		AudioSink
		SampleRate() int
		Close() error
	}
)
