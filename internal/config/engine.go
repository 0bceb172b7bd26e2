package config

import (
	"fmt"
	"slices"

	"go.yaml.in/yaml/v3"

	"github.com/mrclmr/genaudio/internal/engine"
)

type EngineCmd struct {
	Kokoro        *Kokoro   `yaml:"kokoro"`
	Piper         *Piper    `yaml:"piper"`
	EspeakNG      *EspeakNG `yaml:"espeak_ng"`
	CustomCommand string    `yaml:"custom_command"`
}

type Kokoro struct {
	Command string `yaml:"command"`
	Model   string `yaml:"model"`
	Voices  string `yaml:"voices"`
}

type Piper struct {
	Command string `yaml:"command"`
	Model   string `yaml:"model"`
}

type EspeakNG struct {
	Command string `yaml:"command"`
}

func (e *EngineCmd) Spec() engine.Spec {
	switch {
	case e.Kokoro != nil:
		return engine.Spec{
			Kind:    engine.Kokoro,
			Command: e.Kokoro.Command,
			Model:   e.Kokoro.Model,
			Voices:  e.Kokoro.Voices,
		}
	case e.Piper != nil:
		return engine.Spec{
			Kind:    engine.Piper,
			Command: e.Piper.Command,
			Model:   e.Piper.Model,
		}
	case e.EspeakNG != nil:
		return engine.Spec{
			Kind:    engine.EspeakNG,
			Command: e.EspeakNG.Command,
		}
	default:
		return engine.Spec{
			Kind:    engine.Custom,
			Command: e.CustomCommand,
		}
	}
}

type engineCmd EngineCmd

func (e *EngineCmd) UnmarshalYAML(node *yaml.Node) error {
	var y engineCmd
	err := decodeStrict(node, &y)
	if err != nil {
		return err
	}

	if err := checkOneSet(y.Kokoro != nil, y.Piper != nil, y.EspeakNG != nil, y.CustomCommand != ""); err != nil {
		return err
	}

	e.Kokoro = y.Kokoro
	e.Piper = y.Piper
	e.EspeakNG = y.EspeakNG
	e.CustomCommand = y.CustomCommand
	return nil
}

func checkOneSet(set ...bool) error {
	set = slices.DeleteFunc(set, func(b bool) bool {
		return !b
	})
	if len(set) != 1 {
		return fmt.Errorf("set only one: engine.kokoro, engine.piper, engine.espeak_ng or engine.custom_command")
	}
	return nil
}
