package synth

import "fmt"

// ArgumentError reports an unusable command line.
type ArgumentError struct {
	Got int
	Err error
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%v (got %d)", e.Err, e.Got)
}

func (e *ArgumentError) Unwrap() error {
	return e.Err
}

// ResourceLoadError reports a model or voice file that cannot be used.
type ResourceLoadError struct {
	Path string
	Err  error
}

func (e *ResourceLoadError) Error() string {
	return fmt.Sprintf("load resource %s: %v", e.Path, e.Err)
}

func (e *ResourceLoadError) Unwrap() error {
	return e.Err
}

// SynthesisError reports that the engine produced no audio for a request.
type SynthesisError struct {
	Engine string
	Err    error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s: synthesize: %v", e.Engine, e.Err)
}

func (e *SynthesisError) Unwrap() error {
	return e.Err
}

// IOError reports a failed write of the encoded audio.
type IOError struct {
	Dst string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Dst, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}
