package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrclmr/genaudio/internal/synth"
)

// CustomCmdEngine runs a user supplied command template. In every argument
// %[1]s is replaced by the output WAV path, %[2]s by the text, %[3]s by the
// voice and %[4]s by the language. The text is not shell-expanded.
type CustomCmdEngine struct {
	*cmdEngine
}

func NewCustomCmd(spec Spec, opts Options) (*CustomCmdEngine, error) {
	if err := checkFmtArg(spec.Command, "%[1]s"); err != nil {
		return nil, err
	}
	if err := checkFmtArg(spec.Command, "%[2]s"); err != nil {
		return nil, err
	}
	e, err := newCmdEngine("custom", spec.Command, "", opts)
	if err != nil {
		return nil, err
	}
	e.templated = true
	return &CustomCmdEngine{cmdEngine: e}, nil
}

func (c *CustomCmdEngine) Synthesize(ctx context.Context, req synth.Request) (synth.Audio, error) {
	req, err := c.prepare(req)
	if err != nil {
		return synth.Audio{}, err
	}
	return c.run(ctx, nil, func(wavPath string) []string {
		replacer := strings.NewReplacer(
			"%[1]s", wavPath,
			"%[2]s", req.Text,
			"%[3]s", req.Voice,
			"%[4]s", req.Language,
		)
		args := make([]string, len(c.argv)-1)
		for i, word := range c.argv[1:] {
			args[i] = replacer.Replace(word)
		}
		return args
	})
}

func checkFmtArg(cmd, fmtArg string) error {
	if !strings.Contains(cmd, fmtArg) {
		return fmt.Errorf("%s does not contain %s", cmd, fmtArg)
	}
	return nil
}
