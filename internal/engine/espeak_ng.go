package engine

import (
	"context"
	"strings"

	"github.com/mrclmr/genaudio/internal/synth"
)

const DefaultEspeakNGCommand = "espeak-ng"

// EspeakNGEngine runs espeak-ng. The voice becomes a variant of the
// language voice, e.g. "en-us+f3". An empty voice or "default" uses the
// language voice only.
type EspeakNGEngine struct {
	*cmdEngine
}

func NewEspeakNG(spec Spec, opts Options) (*EspeakNGEngine, error) {
	e, err := newCmdEngine("espeak-ng", spec.Command, DefaultEspeakNGCommand, opts)
	if err != nil {
		return nil, err
	}
	return &EspeakNGEngine{cmdEngine: e}, nil
}

func (e *EspeakNGEngine) Synthesize(ctx context.Context, req synth.Request) (synth.Audio, error) {
	req, err := e.prepare(req)
	if err != nil {
		return synth.Audio{}, err
	}
	voice := req.Language
	if req.Voice != "" && req.Voice != "default" {
		voice += "+" + req.Voice
	}
	return e.run(ctx, strings.NewReader(req.Text), func(wavPath string) []string {
		return []string{
			"-b", "1", // UTF-8 input
			"-v", voice,
			"-w", wavPath,
			"--stdin",
		}
	})
}
