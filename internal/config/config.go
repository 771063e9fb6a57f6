// Package config loads the YAML run configuration of the connectome CLI.
//
// Values left unset in the file receive defaults from ApplyDefaults; command
// line flags override file values after loading.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// validate is a singleton validator instance.
var validate = validator.New()

// Config is the top-level configuration.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Detection DetectionConfig `yaml:"detection"`
	Baseline  BaselineConfig  `yaml:"baseline"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// DetectionConfig holds community detection and consensus settings.
// A zero threshold means "use the default"; set it explicitly on the
// command line to disable thresholding.
type DetectionConfig struct {
	Gamma      float64 `yaml:"gamma" validate:"gt=0"`
	Iterations int     `yaml:"iterations" validate:"min=1"`
	Seed       uint64  `yaml:"seed"`
	Workers    int     `yaml:"workers" validate:"min=1"`
	Threshold  float64 `yaml:"threshold" validate:"gte=0,lte=1"`
	Reps       int     `yaml:"reps" validate:"min=1"`
	MaxRounds  int     `yaml:"max_rounds" validate:"min=1"`
}

// BaselineConfig holds random-graph baseline settings.
type BaselineConfig struct {
	Iterations int `yaml:"iterations" validate:"min=1"`
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	// File is the textfile collector path; empty disables the export.
	File string `yaml:"file" validate:"omitempty,endswith=.prom"`
}

// Load reads and parses the config file at path and applies defaults.
// An empty path returns the defaults alone.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	ApplyDefaults(&cfg)

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.New("config cannot be nil")
	}
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// formatValidationError flattens validator errors into one readable message.
func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}

	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
