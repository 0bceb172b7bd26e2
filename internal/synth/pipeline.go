package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mrclmr/genaudio/internal/pcm"
)

// Failure is returned by Pipeline.Run. From is the last state reached before the error.
type Failure struct {
	From State
	Err  error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.From, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Pipeline runs one request from the command line to the sink.
// It is not reusable.
type Pipeline struct {
	Open OpenFunc
	Sink Sink

	state State
}

func NewPipeline(open OpenFunc, sink Sink) *Pipeline {
	return &Pipeline{Open: open, Sink: sink}
}

func (p *Pipeline) State() State {
	return p.state
}

func (p *Pipeline) Run(ctx context.Context, args []string) error {
	if p.state != Start {
		return fmt.Errorf("pipeline already ran, state %s", p.state)
	}
	slog.Info("started")

	req, err := ParseArgs(args)
	if err != nil {
		return p.fail(err)
	}
	p.advance(ArgsParsed, "arguments parsed",
		slog.String("text", req.Text),
		slog.String("voice", req.Voice),
		slog.String("language", req.Language),
	)

	engine, err := p.Open(ctx)
	if err != nil {
		return p.fail(err)
	}
	p.advance(EngineReady, "engine initialized", slog.String("engine", engine.Name()))

	audio, err := engine.Synthesize(ctx, req)
	if err != nil {
		var synthErr *SynthesisError
		if !errors.As(err, &synthErr) {
			err = &SynthesisError{Engine: engine.Name(), Err: err}
		}
		return p.fail(err)
	}
	if audio.SampleRate <= 0 {
		return p.fail(&SynthesisError{
			Engine: engine.Name(),
			Err:    fmt.Errorf("invalid sample rate %d", audio.SampleRate),
		})
	}
	p.advance(AudioSynthesized, "audio created",
		slog.Int("sample_rate", audio.SampleRate),
		slog.Int("samples", len(audio.Samples)),
	)

	buf := pcm.Encode(audio.Samples)
	p.advance(Encoded, "audio encoded", slog.Int("bytes", buf.Len()))

	err = p.Sink.WritePCM(buf, audio.SampleRate)
	if err != nil {
		var ioErr *IOError
		if !errors.As(err, &ioErr) {
			err = &IOError{Dst: p.Sink.Name(), Err: err}
		}
		return p.fail(err)
	}
	p.advance(WrittenAndExit, "write complete", slog.String("dst", p.Sink.Name()))
	return nil
}

func (p *Pipeline) advance(to State, msg string, attrs ...slog.Attr) {
	p.state = to
	slog.LogAttrs(context.Background(), slog.LevelInfo, msg, attrs...)
}

func (p *Pipeline) fail(err error) error {
	from := p.state
	p.state = Failed
	return &Failure{From: from, Err: err}
}
