// Package config loads tool settings from a YAML file and applies ad-hoc
// command line overrides on top.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// Settings holds everything the commands need that is not a per-invocation
// flag. All fields have usable zero-value defaults except where Validate
// says otherwise.
type Settings struct {
	OutputDir  string  `yaml:"output_dir" mapstructure:"output_dir"`
	Workers    int     `yaml:"workers" mapstructure:"workers"`
	IncludeRaw bool    `yaml:"include_raw" mapstructure:"include_raw"`
	Pretty     bool    `yaml:"pretty" mapstructure:"pretty"`
	CSV        CSV     `yaml:"csv" mapstructure:"csv"`
	Metrics    Metrics `yaml:"metrics" mapstructure:"metrics"`
}

type CSV struct {
	Path   string `yaml:"path" mapstructure:"path"`
	Append bool   `yaml:"append" mapstructure:"append"`
}

type Metrics struct {
	TextfilePath string `yaml:"textfile_path" mapstructure:"textfile_path"`
}

// Default returns the settings used when no config file is given.
func Default() Settings {
	return Settings{
		OutputDir: "output",
		Workers:   4,
	}
}

// Load reads settings from a YAML file, starting from the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("parsing config %q: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("config %q: %w", path, err)
	}
	return s, nil
}

// Validate rejects settings no command could act on.
func (s Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, have %d", s.Workers)
	}
	if s.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	return nil
}

// ApplyOverrides layers key=value pairs (dotted keys for nested sections,
// e.g. csv.append=true) over the loaded settings.
func (s *Settings) ApplyOverrides(pairs []string) error {
	if len(pairs) == 0 {
		return nil
	}
	overrides := map[string]any{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("override %q is not key=value", pair)
		}
		node := overrides
		parts := strings.Split(key, ".")
		for _, part := range parts[:len(parts)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = map[string]any{}
				node[part] = child
			}
			node = child
		}
		node[parts[len(parts)-1]] = value
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           s,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(overrides); err != nil {
		return fmt.Errorf("applying overrides: %w", err)
	}
	return s.Validate()
}
