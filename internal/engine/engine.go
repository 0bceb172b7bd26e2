// Package engine adapts external text-to-speech programs to synth.Engine.
//
// Every engine runs one program per request, lets it write a WAV file into a
// private temporary directory and decodes that file into float samples.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/mrclmr/genaudio/internal/synth"
)

//go:generate go run golang.org/x/tools/cmd/stringer@latest -type Kind
type Kind int

const (
	Kokoro Kind = iota
	Piper
	EspeakNG
	Custom
	Unknown
)

// ParseKind accepts kind names case-insensitively with or without underscores,
// e.g. "kokoro" or "espeak_ng".
func ParseKind(s string) (Kind, error) {
	name := strings.ReplaceAll(s, "_", "")
	for k := range Unknown {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return Unknown, fmt.Errorf("unknown engine '%s'", s)
}

// Spec selects and describes an engine.
type Spec struct {
	Kind Kind

	// Command is a shell-word command line. For Custom it is a template,
	// see NewCustomCmd.
	Command string

	// Model and Voices are resource files. Relative paths are resolved
	// against Options.ResourceDir.
	Model  string
	Voices string
}

// Options are shared by all engines.
type Options struct {
	ExecCmdCtx ExecCmdCtx

	// ResourceDir defaults to the directory of the running executable.
	ResourceDir string

	// EspeakDataPath is passed to the engine process as ESPEAK_DATA_PATH.
	EspeakDataPath string

	// TempDir holds intermediate WAV files. Empty means os.TempDir().
	TempDir string
}

// OpenFunc returns a synth.OpenFunc that opens the engine described by spec.
func OpenFunc(spec Spec, opts Options) synth.OpenFunc {
	return func(ctx context.Context) (synth.Engine, error) {
		return Open(ctx, spec, opts)
	}
}

func Open(_ context.Context, spec Spec, opts Options) (synth.Engine, error) {
	if opts.ExecCmdCtx == nil {
		opts.ExecCmdCtx = ExecCommand
	}
	switch spec.Kind {
	case Kokoro:
		return NewKokoro(spec, opts)
	case Piper:
		return NewPiper(spec, opts)
	case EspeakNG:
		return NewEspeakNG(spec, opts)
	case Custom:
		return NewCustomCmd(spec, opts)
	default:
		return nil, fmt.Errorf("unknown engine %v", spec.Kind)
	}
}

// cmdEngine runs an external program that writes a WAV file.
type cmdEngine struct {
	name       string
	argv       []string
	execCmdCtx ExecCmdCtx
	env        []string
	tempDir    string

	// templated engines build all arguments themselves.
	templated bool
}

func newCmdEngine(name, command, defaultCommand string, opts Options) (*cmdEngine, error) {
	if command == "" {
		command = defaultCommand
	}
	parser := shellwords.NewParser()
	argv, err := parser.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("parse %s command: %w", name, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("%s command empty", name)
	}

	var env []string
	if opts.EspeakDataPath != "" {
		env = append(env, "ESPEAK_DATA_PATH="+opts.EspeakDataPath)
	}

	return &cmdEngine{
		name:       name,
		argv:       argv,
		execCmdCtx: opts.ExecCmdCtx,
		env:        env,
		tempDir:    opts.TempDir,
	}, nil
}

func (e *cmdEngine) Name() string {
	return e.name
}

// run executes the command with the arguments from buildArgs appended and
// decodes the WAV file the command writes to wavPath.
func (e *cmdEngine) run(
	ctx context.Context,
	stdin io.Reader,
	buildArgs func(wavPath string) []string,
) (synth.Audio, error) {
	dir, err := os.MkdirTemp(e.tempDir, "genaudio-"+e.name+"-")
	if err != nil {
		return synth.Audio{}, err
	}
	defer func() {
		_ = os.RemoveAll(dir)
	}()

	wavPath := filepath.Join(dir, "out.wav")
	args := buildArgs(wavPath)
	if !e.templated {
		args = append(e.argv[1:len(e.argv):len(e.argv)], args...)
	}

	_, err = e.execCmdCtx(ctx, e.env, e.argv[0], args...).Run(stdin)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return synth.Audio{}, e.synthesisError(fmt.Errorf("%w: %w", ctxErr, err))
		}
		return synth.Audio{}, e.synthesisError(err)
	}

	audio, err := decodeWavFile(wavPath)
	if err != nil {
		return synth.Audio{}, e.synthesisError(err)
	}
	return audio, nil
}

func (e *cmdEngine) synthesisError(err error) error {
	return &synth.SynthesisError{Engine: e.name, Err: err}
}

// prepare normalizes the text to NFC and checks the language tag.
func (e *cmdEngine) prepare(req synth.Request) (synth.Request, error) {
	if _, err := language.Parse(req.Language); err != nil {
		return req, e.synthesisError(fmt.Errorf("invalid language '%s': %w", req.Language, err))
	}
	req.Text = norm.NFC.String(req.Text)
	return req, nil
}

var errEmptyVoice = errors.New("empty voice")
