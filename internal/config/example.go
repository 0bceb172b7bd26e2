package config

import (
	"bytes"
	_ "embed"
	"text/template"

	"github.com/mrclmr/genaudio/internal/engine"
)

//go:embed example.yaml.tmpl
var exampleYamlTmpl string

func Example() (string, error) {
	parse, err := template.New("").
		Delims("[[", "]]").
		Parse(exampleYamlTmpl)
	if err != nil {
		return "", err
	}

	buf := &bytes.Buffer{}
	err = parse.Execute(buf, struct {
		EspeakDataPathEnv string
		KokoroCommand     string
		KokoroModel       string
		KokoroVoices      string
		PiperCommand      string
		PiperModel        string
		EspeakNGCommand   string
	}{
		EspeakDataPathEnv: EspeakDataPathEnv,
		KokoroCommand:     engine.DefaultKokoroCommand,
		KokoroModel:       engine.DefaultKokoroModel,
		KokoroVoices:      engine.DefaultKokoroVoices,
		PiperCommand:      engine.DefaultPiperCommand,
		PiperModel:        engine.DefaultPiperModel,
		EspeakNGCommand:   engine.DefaultEspeakNGCommand,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
