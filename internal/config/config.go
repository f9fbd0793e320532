package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortsim/internal/dataset"
	"github.com/san-kum/sortsim/internal/playback"
	"github.com/san-kum/sortsim/internal/steps"
)

const (
	DefaultAlgorithm = "Bubble Sort"
	DefaultSize      = playback.DefaultSize
	DefaultSpeed     = playback.DefaultSpeed
	DefaultPattern   = string(dataset.Random)
	DefaultTheme     = "cyberpunk"
	DefaultFPS       = 30
)

var ErrUnknownPreset = errors.New("config: unknown preset")

type Config struct {
	Algorithm string `yaml:"algorithm" toml:"algorithm"`
	Size      int    `yaml:"size" toml:"size"`
	Speed     int    `yaml:"speed" toml:"speed"`
	Seed      int64  `yaml:"seed" toml:"seed"`
	Pattern   string `yaml:"pattern" toml:"pattern"`
	Theme     string `yaml:"theme" toml:"theme"`
	LogFile   string `yaml:"log_file" toml:"log_file"`
	FPS       int    `yaml:"fps" toml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm: DefaultAlgorithm,
		Size:      DefaultSize,
		Speed:     DefaultSpeed,
		Pattern:   DefaultPattern,
		Theme:     DefaultTheme,
		FPS:       DefaultFPS,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML file, or a TOML file when path ends in .toml, on top
// of the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes path over cfg. Fields missing from the file keep their
// current values.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return err
	}
	cfg.Normalize()
	return nil
}

func Save(path string, cfg *Config) error {
	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Marshal(cfg)
	} else {
		data, err = yaml.Marshal(cfg)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Normalize clamps numeric settings into range and fills empty fields.
// Unknown algorithm names are kept; they fall back at start time.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.Algorithm) == "" {
		c.Algorithm = DefaultAlgorithm
	}
	c.Size = min(max(c.Size, playback.MinSize), playback.MaxSize)
	c.Speed = min(max(c.Speed, playback.MinSpeed), playback.MaxSpeed)
	c.Pattern = string(dataset.ParsePattern(c.Pattern))
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.FPS <= 0 {
		c.FPS = DefaultFPS
	}
}

// ResolvedAlgorithm returns the algorithm a run with this config will use.
func (c *Config) ResolvedAlgorithm() steps.Algorithm {
	return steps.Resolve(c.Algorithm)
}

// ControllerOptions turns the config into playback options.
func (c *Config) ControllerOptions() []playback.Option {
	return []playback.Option{
		playback.WithGenerator(dataset.New(c.Seed)),
		playback.WithPattern(dataset.ParsePattern(c.Pattern)),
		playback.WithAlgorithm(c.Algorithm),
		playback.WithSize(c.Size),
		playback.WithSpeed(c.Speed),
	}
}
