package oto

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/vsariola/strum"
	"go.uber.org/zap"
)

// OtoContext plays samples on the default audio device. Every Play gets its
// own oto player; oto mixes the players. References to the players are kept
// until they finish, so they are not garbage collected mid-sample.
type OtoContext struct {
	context    *oto.Context
	sampleRate int
	logger     *zap.Logger
	cache      *PCMCache

	mu      sync.Mutex
	players []*oto.Player
	closed  bool
}

const (
	channelCount  = 2
	otoBufferSize = 20 * time.Millisecond
	readyTimeout  = 5 * time.Second
	DefaultRate   = 44100
)

var ErrClosed = errors.New("audio context closed")

// NewContext opens the audio device at sampleRate (0 = DefaultRate) and
// waits until it is ready.
func NewContext(sampleRate int, logger *zap.Logger) (*OtoContext, error) {
	if sampleRate <= 0 {
		sampleRate = DefaultRate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatFloat32LE,
		BufferSize:   otoBufferSize,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	select {
	case <-ready:
	case <-time.After(readyTimeout):
		return nil, fmt.Errorf("audio device not ready after %v", readyTimeout)
	}
	return &OtoContext{context: context, sampleRate: sampleRate, logger: logger, cache: NewPCMCache(DefaultCacheSize)}, nil
}

func (c *OtoContext) SampleRate() int { return c.sampleRate }

// Play starts playing the sample scaled by gain and returns immediately.
func (c *OtoContext) Play(sample *strum.Sample, gain float32) error {
	if sample.SampleRate != c.sampleRate {
		c.logger.Debug("sample rate differs from the device", zap.String("sample", sample.Name), zap.Int("rate", sample.SampleRate), zap.Int("device", c.sampleRate))
	}
	data := c.cache.Bytes(sample)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	c.prune()
	p := c.context.NewPlayer(bytes.NewReader(data))
	p.SetVolume(Volume(gain))
	p.Play()
	c.players = append(c.players, p)
	return nil
}

// Volume clamps a gain to the 0..1 volume range of a player.
func Volume(gain float32) float64 {
	return float64(min(max(gain, 0), 1))
}

// prune drops the references to the players that have finished. c.mu must
// be held.
func (c *OtoContext) prune() {
	active := c.players[:0]
	for _, p := range c.players {
		if p.IsPlaying() {
			active = append(active, p)
		}
	}
	clear(c.players[len(active):])
	c.players = active
}

// Playing returns the number of players still referenced.
func (c *OtoContext) Playing() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.players)
}

// Close stops all players and makes further Plays fail. The oto context
// itself cannot be closed; it lives until the process exits.
func (c *OtoContext) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	for _, p := range c.players {
		p.Pause()
	}
	c.players = nil
	if err := c.context.Err(); err != nil {
		return fmt.Errorf("oto context failed: %w", err)
	}
	return nil
}
