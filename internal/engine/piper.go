package engine

import (
	"context"
	"strconv"
	"strings"

	"github.com/mrclmr/genaudio/internal/synth"
)

const (
	DefaultPiperCommand = "piper"
	DefaultPiperModel   = "en_US-lessac-medium.onnx"
)

// PiperEngine runs piper. The model config is expected next to the model
// with an additional .json extension.
type PiperEngine struct {
	*cmdEngine
	model      string
	config     string
	espeakData string
}

func NewPiper(spec Spec, opts Options) (*PiperEngine, error) {
	e, err := newCmdEngine("piper", spec.Command, DefaultPiperCommand, opts)
	if err != nil {
		return nil, err
	}
	dir, err := resourceDir(opts.ResourceDir)
	if err != nil {
		return nil, &synth.ResourceLoadError{Path: "resource directory", Err: err}
	}
	modelName := spec.Model
	if modelName == "" {
		modelName = DefaultPiperModel
	}
	model, err := resource(dir, modelName, nil)
	if err != nil {
		return nil, err
	}
	config, err := resource(dir, modelName+".json", []byte("{"))
	if err != nil {
		return nil, err
	}
	return &PiperEngine{
		cmdEngine:  e,
		model:      model,
		config:     config,
		espeakData: opts.EspeakDataPath,
	}, nil
}

// Synthesize uses the voice as speaker id when it is a number.
// Otherwise the voice is ignored because a piper model is a single voice.
func (p *PiperEngine) Synthesize(ctx context.Context, req synth.Request) (synth.Audio, error) {
	req, err := p.prepare(req)
	if err != nil {
		return synth.Audio{}, err
	}
	return p.run(ctx, strings.NewReader(req.Text), func(wavPath string) []string {
		args := []string{
			"--model", p.model,
			"--config", p.config,
			"--output_file", wavPath,
		}
		if p.espeakData != "" {
			args = append(args, "--espeak_data", p.espeakData)
		}
		if _, err := strconv.Atoi(req.Voice); err == nil {
			args = append(args, "--speaker", req.Voice)
		}
		return args
	})
}
