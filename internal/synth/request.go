package synth

import (
	"errors"
	"strings"
)

var ErrMissingArguments = errors.New("missing arguments: want <text...> <voice> <language>")

// Request is what the engine is asked to speak.
type Request struct {
	Text     string
	Voice    string
	Language string
}

// ParseArgs treats the last two arguments as voice and language.
// Everything before them is joined with single spaces and becomes the text.
func ParseArgs(args []string) (Request, error) {
	if len(args) < 2 {
		return Request{}, &ArgumentError{Got: len(args), Err: ErrMissingArguments}
	}
	n := len(args)
	return Request{
		Text:     strings.Join(args[:n-2], " "),
		Voice:    args[n-2],
		Language: args[n-1],
	}, nil
}
