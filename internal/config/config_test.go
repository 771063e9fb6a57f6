package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/connectome/modules"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "connectome.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
debug: true
detection:
  gamma: 1.25
  iterations: 50
  seed: 7
metrics:
  file: /tmp/connectome.prom
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 1.25, cfg.Detection.Gamma)
	assert.Equal(t, 50, cfg.Detection.Iterations)
	assert.Equal(t, uint64(7), cfg.Detection.Seed)
	assert.Equal(t, modules.DefaultReps, cfg.Detection.Reps, "unset field gets default")
	assert.Equal(t, "/tmp/connectome.prom", cfg.Metrics.File)
	assert.NoError(t, Validate(cfg))
}

func TestLoad_EmptyPathAndEmptyFile(t *testing.T) {
	a, err := Load("")
	require.NoError(t, err)
	b, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.NoError(t, Validate(a))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "detection:\n  gamma: [1\n"))
	assert.ErrorContains(t, err, "failed to parse config")

	_, err = Load(writeConfig(t, "detection:\n  gama: 1\n"))
	assert.ErrorContains(t, err, "failed to parse config", "unknown keys are rejected")
}

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)
	assert.Equal(t, DefaultGamma, cfg.Detection.Gamma)
	assert.Equal(t, DefaultIterations, cfg.Detection.Iterations)
	assert.Equal(t, 1000, cfg.Detection.Iterations)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.Detection.Workers)
	assert.Equal(t, modules.DefaultThreshold, cfg.Detection.Threshold)
	assert.Equal(t, modules.DefaultMaxRounds, cfg.Detection.MaxRounds)
	assert.Equal(t, DefaultBaselineIterations, cfg.Baseline.Iterations)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"gamma", func(c *Config) { c.Detection.Gamma = -1 }, "Gamma"},
		{"iterations", func(c *Config) { c.Detection.Iterations = -3 }, "Iterations"},
		{"threshold", func(c *Config) { c.Detection.Threshold = 1.5 }, "Threshold"},
		{"metrics file", func(c *Config) { c.Metrics.File = "out.txt" }, "File"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var cfg Config
			ApplyDefaults(&cfg)
			tc.mutate(&cfg)
			err := Validate(&cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.field)
		})
	}
	assert.Error(t, Validate(nil))
}

func TestValidate_ManyWorkers(t *testing.T) {
	var cfg Config
	ApplyDefaults(&cfg)
	cfg.Detection.Workers = 4096
	assert.NoError(t, Validate(&cfg))
}
