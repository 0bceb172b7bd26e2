package engine

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"

	"github.com/mrclmr/genaudio/internal/synth"
)

const wavFormatPCM = 1

// decodeWavFile reads integer PCM of any bit depth and returns mono samples.
// Full scale is the largest positive value, so the most negative value of a
// bit depth lands just below -1. Channels are averaged.
func decodeWavFile(path string) (synth.Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return synth.Audio{}, fmt.Errorf("engine wrote no audio: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return synth.Audio{}, fmt.Errorf("%s: invalid wav file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return synth.Audio{}, fmt.Errorf("%s: %w", path, err)
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return synth.Audio{}, fmt.Errorf("%s: unsupported wav format %d, want integer PCM", path, dec.WavAudioFormat)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if channels < 1 || bitDepth < 8 || bitDepth > 32 {
		return synth.Audio{}, errors.New("invalid wav header")
	}

	// 8-bit wav is unsigned.
	var offset float64
	if bitDepth == 8 {
		offset = 128
	}
	scale := float64(int64(1)<<(bitDepth-1) - 1)

	frames := len(buf.Data) / channels
	samples := make([]float32, frames)
	for i := range frames {
		var sum float64
		for ch := range channels {
			sum += float64(buf.Data[i*channels+ch]) - offset
		}
		samples[i] = awayFromZero(sum / float64(channels) / scale)
	}

	return synth.Audio{
		Samples:    samples,
		SampleRate: int(dec.SampleRate),
	}, nil
}

// awayFromZero converts to float32 rounding away from zero, so that scaling
// a 16-bit sample back by 32767 and truncating gives the original value.
func awayFromZero(x float64) float32 {
	f := float32(x)
	if math.Abs(float64(f)) < math.Abs(x) {
		f = math.Nextafter32(f, float32(math.Copysign(2, x)))
	}
	return f
}
