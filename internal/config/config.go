// Package config loads the YAML configuration of the pitch tools.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-pitch/dsp/pitch"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Level converts l to a slog level. Unknown values map to info.
func (l LogLevel) Level() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// TransformConfig sizes the shared transform engine.
type TransformConfig struct {
	// MaxOrder is the largest power-of-two exponent the engine caches
	// tables for. Longer transforms use the exact direct DFT.
	MaxOrder int `yaml:"max_order"`
}

// Config is the top-level configuration.
type Config struct {
	LogLevel LogLevel `yaml:"log_level"`

	// BlockSize is the number of frames fed to the detector per call.
	BlockSize int `yaml:"block_size"`

	// Workers bounds how many files are analysed at once. Zero means one
	// per CPU.
	Workers int `yaml:"workers"`

	// Detector holds the pitch range and tunables. The sample rate is
	// taken from each file.
	Detector pitch.Config `yaml:"detector"`

	Transform TransformConfig `yaml:"transform"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel:  LogInfo,
		BlockSize: 128,
		Detector:  pitch.DefaultConfig(),
		Transform: TransformConfig{MaxOrder: 18},
	}
}

// Load reads the YAML file at path on top of [Default] and validates it.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes YAML from r on top of [Default] and validates the
// result. Unknown keys are rejected.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate returns a joined error listing every problem in cfg.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.LogLevel != "" && !cfg.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("log_level %q is invalid; valid values: debug, info, warn, error", cfg.LogLevel))
	}
	if cfg.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("block_size %d must be positive", cfg.BlockSize))
	}
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers %d must not be negative", cfg.Workers))
	}
	if cfg.Transform.MaxOrder < 1 || cfg.Transform.MaxOrder > 30 {
		errs = append(errs, fmt.Errorf("transform.max_order %d is out of range [1, 30]", cfg.Transform.MaxOrder))
	}
	if err := cfg.Detector.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("detector: %w", err))
	}

	return errors.Join(errs...)
}
