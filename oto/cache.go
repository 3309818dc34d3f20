package oto

import (
	"sync"

	"github.com/vsariola/strum"
)

// DefaultCacheSize is enough for every sample of a six string, nineteen fret
// instrument plus a second set being loaded.
const DefaultCacheSize = 256

// PCMCache keeps the FormatFloat32LE bytes of the samples played recently,
// so a pluck does not convert the whole sample again. Samples are never
// modified after decoding, so the bytes are keyed by the sample pointer.
type PCMCache struct {
	mu      sync.Mutex
	size    int
	entries map[*strum.Sample][]byte
}

// NewPCMCache returns a cache holding at most size samples. When it is full,
// it is emptied before adding the next sample.
func NewPCMCache(size int) *PCMCache {
	return &PCMCache{size: max(size, 1), entries: map[*strum.Sample][]byte{}}
}

// Bytes returns the bytes of the sample. The returned slice is shared and
// must not be modified.
func (c *PCMCache) Bytes(sample *strum.Sample) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	if b, ok := c.entries[sample]; ok {
		return b
	}
	if len(c.entries) >= c.size {
		clear(c.entries)
	}
	b := FloatBufferToFloat32LE(sample.Data, nil)
	c.entries[sample] = b
	return b
}

func (c *PCMCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
