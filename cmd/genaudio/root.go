package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/mrclmr/genaudio/internal/config"
	"github.com/mrclmr/genaudio/internal/engine"
	"github.com/mrclmr/genaudio/internal/log"
	"github.com/mrclmr/genaudio/internal/synth"

	"github.com/spf13/cobra"
)

const traceTag = "genaudio"

func ExecuteContext(ctx context.Context, version string) error {
	return executeContext(ctx, newRootCmd(version, engine.ExecCommand, os.Getenv))
}

// executeContext runs rootCmd and prints an error that was not logged yet.
func executeContext(ctx context.Context, rootCmd *cobra.Command) error {
	err := rootCmd.ExecuteContext(ctx)
	var logged *loggedError
	if err != nil && !errors.As(err, &logged) {
		_, _ = fmt.Fprintf(rootCmd.ErrOrStderr(), "[%s] ERROR %v\n", traceTag, err)
	}
	return err
}

// loggedError was already printed by the trace handler.
type loggedError struct {
	err error
}

func (e *loggedError) Error() string {
	return e.err.Error()
}

func (e *loggedError) Unwrap() error {
	return e.err
}

type flags struct {
	configPath  string
	output      string
	resourceDir string
	engine      string
	timeout     time.Duration
	debug       bool
}

func newRootCmd(
	version string,
	execCmdCtx engine.ExecCmdCtx,
	getenv func(string) string,
) *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Version: version,
		Use:     "genaudio [flags] [--] <text>... <voice> <language>",
		Short:   "Synthesize speech from text to raw 16-bit PCM",
		Long: `Synthesize speech from text to raw 16-bit PCM.

The last two arguments are the voice and the language, everything before
them is the text. Audio is written to stdout as signed 16-bit little-endian
mono samples without a header. The sample rate is printed to stderr.

Use -- before the text if it starts with "-" or with a command name.`,
		Example: `  genaudio Hello world af_heart en-us > hello.pcm
  genaudio -o hello.wav -- example sentence bf_emma en-gb
  genaudio Hello world af_heart en-us | ffplay -f s16le -ar 24000 -ac 1 -`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: autocomplete,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f.configPath)
			if err != nil {
				return err
			}
			err = f.apply(cmd, cfg)
			if err != nil {
				return err
			}

			level := cfg.LogLevel
			if f.debug {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(log.NewTraceHandler(cmd.ErrOrStderr(), traceTag, level)))

			err = run(cmd.Context(), cfg, runOptions{
				output:     f.output,
				stdout:     cmd.OutOrStdout(),
				execCmdCtx: execCmdCtx,
				getenv:     getenv,
			}, args)
			if err != nil {
				slog.Error(err.Error())
				return &loggedError{err: err}
			}
			return nil
		},
	}

	// Text may contain words that look like flags.
	rootCmd.Flags().SetInterspersed(false)
	rootCmd.Flags().StringVarP(&f.configPath, "config", "c", "", "configuration `file` (see 'genaudio example')")
	rootCmd.Flags().StringVarP(&f.output, "output", "o", "-", "output `path`, *.wav writes a WAV file, - is stdout")
	rootCmd.Flags().StringVar(&f.resourceDir, "resource-dir", "", "`directory` of model and voice files (default: executable directory)")
	rootCmd.Flags().StringVar(&f.engine, "engine", "", "engine: kokoro, piper or espeak_ng (default: from configuration or kokoro)")
	rootCmd.Flags().DurationVar(&f.timeout, "timeout", 0, "maximum synthesis `duration`, 0 waits forever")
	rootCmd.Flags().BoolVar(&f.debug, "debug", false, "trace engine commands and engine output")

	// https://github.com/spf13/cobra/blob/6dec1ae26659a130bdb4c985768d1853b0e1bc06/command.go#L2064
	rootCmd.SetVersionTemplate(`{{with .DisplayName}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}

Model Credits
* Kokoro-82M by hexgrad -- https://huggingface.co/hexgrad/Kokoro-82M -- License: Apache 2.0
`)

	exampleCmd := &cobra.Command{
		Use:               "example",
		Short:             "Print example configuration yaml",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		RunE: func(cmd *cobra.Command, _ []string) error {
			example, err := config.Example()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), example)
			return err
		},
	}

	rootCmd.AddCommand(exampleCmd)

	rootCmd.AddCommand(newVoicesCmd())

	rootCmd.AddCommand(newManCmd(rootCmd))

	return rootCmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("configuration not found: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDONLY, 0o600)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	cfg, err := config.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// apply overrides configuration values with flags set on the command line.
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("resource-dir") {
		cfg.ResourceDir = f.resourceDir
	}
	if cmd.Flags().Changed("timeout") {
		if f.timeout < 0 {
			return errors.New("--timeout must not be negative")
		}
		cfg.Timeout = f.timeout
	}
	if cmd.Flags().Changed("engine") {
		kind, err := engine.ParseKind(f.engine)
		if err != nil {
			return err
		}
		if kind == cfg.Engine.Spec().Kind {
			return nil
		}
		if kind == engine.Custom {
			return errors.New("--engine custom needs engine.custom_command in the configuration")
		}
		cfg.Engine = engineCmdFor(kind)
	}
	return nil
}

func engineCmdFor(kind engine.Kind) *config.EngineCmd {
	switch kind {
	case engine.Piper:
		return &config.EngineCmd{Piper: &config.Piper{}}
	case engine.EspeakNG:
		return &config.EngineCmd{EspeakNG: &config.EspeakNG{}}
	default:
		return &config.EngineCmd{Kokoro: &config.Kokoro{}}
	}
}

func autocomplete(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var voices []string
	for _, v := range engine.KokoroVoices {
		if strings.HasPrefix(v, toComplete) {
			voices = append(voices, v)
		}
	}
	return voices, cobra.ShellCompDirectiveNoFileComp
}

// ExitCode maps an error returned by ExecuteContext to a process exit status.
func ExitCode(err error) int {
	var (
		argErr   *synth.ArgumentError
		resErr   *synth.ResourceLoadError
		synthErr *synth.SynthesisError
		ioErr    *synth.IOError
	)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	case errors.As(err, &argErr):
		return 2
	case errors.As(err, &resErr):
		return 3
	case errors.As(err, &synthErr):
		return 4
	case errors.As(err, &ioErr):
		return 5
	default:
		return 1
	}
}
