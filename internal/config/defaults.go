package config

import (
	"runtime"

	"github.com/katalvlaran/connectome/modules"
)

// Default values not owned by an analysis package.
const (
	DefaultGamma              = 1.0
	DefaultIterations         = 1000
	DefaultBaselineIterations = 100
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Detection.Gamma == 0 {
		cfg.Detection.Gamma = DefaultGamma
	}
	if cfg.Detection.Iterations == 0 {
		cfg.Detection.Iterations = DefaultIterations
	}
	if cfg.Detection.Workers == 0 {
		cfg.Detection.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Detection.Threshold == 0 {
		cfg.Detection.Threshold = modules.DefaultThreshold
	}
	if cfg.Detection.Reps == 0 {
		cfg.Detection.Reps = modules.DefaultReps
	}
	if cfg.Detection.MaxRounds == 0 {
		cfg.Detection.MaxRounds = modules.DefaultMaxRounds
	}
	if cfg.Baseline.Iterations == 0 {
		cfg.Baseline.Iterations = DefaultBaselineIterations
	}
}
