package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.yaml.in/yaml/v3"
)

// EspeakDataPathEnv is read when espeak_data_path is not configured.
const EspeakDataPathEnv = "ESPEAK_DATA_PATH"

type Config struct {
	LogLevel       slog.Level    `yaml:"log_level"`
	ResourceDir    string        `yaml:"resource_dir"`
	EspeakDataPath string        `yaml:"espeak_data_path"`
	Timeout        time.Duration `yaml:"timeout"`
	Engine         *EngineCmd    `yaml:"engine"`
}

// Default is used when no configuration file is given.
func Default() *Config {
	return &Config{
		LogLevel: slog.LevelInfo,
		Engine:   &EngineCmd{Kokoro: &Kokoro{}},
	}
}

func Parse(r io.Reader) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	c := Default()
	err := decoder.Decode(c)
	if errors.Is(err, io.EOF) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

type config Config

func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	y := config(*c)
	err := decodeStrict(node, &y)
	if err != nil {
		return err
	}
	if y.Engine == nil {
		return keyEmptyError("engine")
	}
	if y.Timeout < 0 {
		return fmt.Errorf("key 'timeout' must not be negative")
	}
	*c = Config(y)
	return nil
}

// EspeakData returns the configured phoneme data path or falls back to
// the EspeakDataPathEnv variable.
func (c *Config) EspeakData(getenv func(string) string) string {
	if c.EspeakDataPath != "" {
		return c.EspeakDataPath
	}
	return getenv(EspeakDataPathEnv)
}

// decodeStrict is node.Decode with unknown keys rejected.
// node.Decode does not inherit KnownFields from the outer decoder.
func decodeStrict(node *yaml.Node, v any) error {
	b, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	decoder := yaml.NewDecoder(bytes.NewReader(b))
	decoder.KnownFields(true)
	return decoder.Decode(v)
}

func keyEmptyError(key string) error {
	return fmt.Errorf("key '%s' is missing or value is empty", key)
}
