package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-pitch/dsp/pitch"
	"github.com/cwbudde/algo-pitch/internal/config"
)

func TestLoadFromReader_Defaults(t *testing.T) {
	t.Parallel()
	cfg, err := config.LoadFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty config: %v", err)
	}
	if cfg.BlockSize != 128 || cfg.Transform.MaxOrder != 18 || cfg.LogLevel != config.LogInfo {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Detector != pitch.DefaultConfig() {
		t.Errorf("detector = %+v", cfg.Detector)
	}
}

func TestLoadFromReader_Overrides(t *testing.T) {
	t.Parallel()
	yaml := `
log_level: debug
block_size: 256
workers: 2
detector:
  lower: 80
  upper: 500
  trust_limit: 3
transform:
  max_order: 16
`
	cfg, err := config.LoadFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != config.LogDebug || cfg.BlockSize != 256 || cfg.Workers != 2 {
		t.Errorf("top-level fields: %+v", cfg)
	}
	if cfg.Detector.Lower != 80 || cfg.Detector.Upper != 500 || cfg.Detector.TrustLimit != 3 {
		t.Errorf("detector: %+v", cfg.Detector)
	}
	if cfg.Detector.MomentumDecay != 0.35 {
		t.Errorf("unset detector field lost its default: %g", cfg.Detector.MomentumDecay)
	}
	if cfg.Transform.MaxOrder != 16 {
		t.Errorf("max_order = %d", cfg.Transform.MaxOrder)
	}
	if cfg.LogLevel.Level().String() != "DEBUG" {
		t.Errorf("Level() = %v", cfg.LogLevel.Level())
	}
}

func TestLoadFromReader_UnknownField(t *testing.T) {
	t.Parallel()
	_, err := config.LoadFromReader(strings.NewReader("blocksize: 12\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestValidate_JoinsAllProblems(t *testing.T) {
	t.Parallel()
	yaml := `
log_level: loud
block_size: 0
transform:
  max_order: 40
detector:
  lower: -1
`
	_, err := config.LoadFromReader(strings.NewReader(yaml))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"log_level", "block_size", "max_order", "detector"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s, got: %v", want, err)
		}
	}
	if !errors.Is(err, pitch.ErrInvalidConfig) {
		t.Errorf("detector error should wrap pitch.ErrInvalidConfig: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "pitch.yaml")
	if err := os.WriteFile(path, []byte("workers: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 3 {
		t.Errorf("workers = %d", cfg.Workers)
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
