package oto

import (
	"encoding/binary"
	"math"
)

// FloatBufferToFloat32LE converts a []float32 buffer to the little-endian
// bytes oto.FormatFloat32LE expects, reusing the capacity of dst.
func FloatBufferToFloat32LE(buff []float32, dst []byte) []byte {
	n := len(buff) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, v := range buff {
		binary.LittleEndian.PutUint32(dst[i*4:], math.Float32bits(v))
	}
	return dst
}
