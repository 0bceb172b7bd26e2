package engine

import (
	"cmp"
	"context"
	"strings"

	"github.com/mrclmr/genaudio/internal/synth"
)

const (
	DefaultKokoroCommand = "kokoro-tts"
	DefaultKokoroModel   = "kokoro-v1.0.onnx"
	DefaultKokoroVoices  = "voices-v1.0.bin"
)

// KokoroEngine runs the kokoro-tts command line with an ONNX model
// and a voice bank.
type KokoroEngine struct {
	*cmdEngine
	model  string
	voices string
}

func NewKokoro(spec Spec, opts Options) (*KokoroEngine, error) {
	e, err := newCmdEngine("kokoro", spec.Command, DefaultKokoroCommand, opts)
	if err != nil {
		return nil, err
	}
	dir, err := resourceDir(opts.ResourceDir)
	if err != nil {
		return nil, &synth.ResourceLoadError{Path: "resource directory", Err: err}
	}
	model, err := resource(dir, cmp.Or(spec.Model, DefaultKokoroModel), nil)
	if err != nil {
		return nil, err
	}
	voices, err := resource(dir, cmp.Or(spec.Voices, DefaultKokoroVoices), zipMagic)
	if err != nil {
		return nil, err
	}
	return &KokoroEngine{cmdEngine: e, model: model, voices: voices}, nil
}

func (k *KokoroEngine) Synthesize(ctx context.Context, req synth.Request) (synth.Audio, error) {
	req, err := k.prepare(req)
	if err != nil {
		return synth.Audio{}, err
	}
	if req.Voice == "" {
		return synth.Audio{}, k.synthesisError(errEmptyVoice)
	}
	return k.run(ctx, strings.NewReader(req.Text), func(wavPath string) []string {
		return []string{
			// Text is read from stdin.
			"-", wavPath,
			"--format", "wav",
			"--model", k.model,
			"--voices", k.voices,
			"--voice", req.Voice,
			"--lang", req.Language,
		}
	})
}
