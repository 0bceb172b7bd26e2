package cmd

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/mrclmr/genaudio/internal/config"
	"github.com/mrclmr/genaudio/internal/engine"
	"github.com/mrclmr/genaudio/internal/pcm"
	"github.com/mrclmr/genaudio/internal/synth"
)

type runOptions struct {
	output     string
	stdout     io.Writer
	execCmdCtx engine.ExecCmdCtx
	getenv     func(string) string
}

func run(ctx context.Context, cfg *config.Config, opts runOptions, args []string) error {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	open := engine.OpenFunc(cfg.Engine.Spec(), engine.Options{
		ExecCmdCtx:     opts.execCmdCtx,
		ResourceDir:    cfg.ResourceDir,
		EspeakDataPath: cfg.EspeakData(opts.getenv),
	})

	return synth.NewPipeline(open, newSink(opts.output, opts.stdout)).Run(ctx, args)
}

func newSink(output string, stdout io.Writer) synth.Sink {
	switch {
	case output == "" || output == "-":
		return &pcm.RawSink{W: stdout, Dst: "stdout"}
	case strings.EqualFold(filepath.Ext(output), ".wav"):
		return &pcm.WavFileSink{Path: output}
	default:
		return &pcm.RawFileSink{Path: output}
	}
}
