package synth

import (
	"context"

	"github.com/mrclmr/genaudio/internal/pcm"
)

// Audio holds mono samples in about [-1, 1].
type Audio struct {
	Samples    []float32
	SampleRate int
}

// Engine converts a request into audio.
type Engine interface {
	Name() string
	Synthesize(ctx context.Context, req Request) (Audio, error)
}

// OpenFunc initializes an engine. Missing model files are reported as *ResourceLoadError.
type OpenFunc = func(ctx context.Context) (Engine, error)

// Sink receives the encoded audio exactly once.
type Sink interface {
	Name() string
	WritePCM(buf pcm.Buffer, sampleRate int) error
}
