package synth

//go:generate go run golang.org/x/tools/cmd/stringer@latest -type State
type State int

const (
	Start State = iota
	ArgsParsed
	EngineReady
	AudioSynthesized
	Encoded
	WrittenAndExit
	Failed
)
