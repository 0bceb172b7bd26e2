// Package pcm converts float samples to signed 16-bit PCM and writes it out.
package pcm

import (
	"encoding/binary"
	"math"
)

// MaxAmplitude is the scale factor for a full-scale sample.
// -32768 is never produced.
const MaxAmplitude = 32767

// Buffer holds signed 16-bit samples. On the wire each one is little-endian.
type Buffer []int16

// Encode clips every sample to [-1, 1], scales it by MaxAmplitude and
// truncates toward zero. NaN becomes 0.
func Encode(samples []float32) Buffer {
	buf := make(Buffer, len(samples))
	for i, s := range samples {
		buf[i] = int16(float64(Clip(s)) * MaxAmplitude)
	}
	return buf
}

func Clip(s float32) float32 {
	switch {
	case math.IsNaN(float64(s)):
		return 0
	case s > 1:
		return 1
	case s < -1:
		return -1
	default:
		return s
	}
}

// Len is the encoded size in bytes.
func (b Buffer) Len() int {
	return 2 * len(b)
}

func (b Buffer) Bytes() []byte {
	out := make([]byte, 0, b.Len())
	for _, v := range b {
		out = binary.LittleEndian.AppendUint16(out, uint16(v))
	}
	return out
}
