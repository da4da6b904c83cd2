// Package config loads and saves the engine's YAML configuration.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"goq2/cvar"
)

// Config is the on-disk configuration. Values found in the file are pushed
// into the matching cvars at startup; archived cvars are written back on
// shutdown.
type Config struct {
	GameDir string      `yaml:"gamedir"`
	Video   VideoConfig `yaml:"video"`
	Sound   SoundConfig `yaml:"sound"`
	Log     LogConfig   `yaml:"log"`
	// Cvars carries every archived console variable by name.
	Cvars map[string]string `yaml:"cvars,omitempty"`
}

type VideoConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	Gamma      float32 `yaml:"gamma"`
}

type SoundConfig struct {
	Volume     float32 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		GameDir: "baseq2",
		Video: VideoConfig{
			Width:  640,
			Height: 480,
			Gamma:  1,
		},
		Sound: SoundConfig{
			Volume:     0.7,
			SampleRate: 44100,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the config file at path, merged over the defaults. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "reading config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating config dir")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	return os.WriteFile(path, data, 0644)
}

// ApplyCvars pushes the stored cvar values into the registry.
func (c *Config) ApplyCvars() {
	for name, value := range c.Cvars {
		if cv, ok := cvar.Get(name); ok {
			cv.SetByString(value)
		}
	}
}

// CollectCvars snapshots every archived cvar into the config.
func (c *Config) CollectCvars() {
	if c.Cvars == nil {
		c.Cvars = make(map[string]string)
	}
	for _, cv := range cvar.All() {
		if cv.Archive() {
			c.Cvars[cv.Name()] = cv.String()
		}
	}
}
