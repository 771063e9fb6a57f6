// Package telemetry builds the logger and the Prometheus metrics used by the
// connectome CLI.
package telemetry

import (
	"go.uber.org/zap"
)

// NewLogger returns a zap logger tagged with runID. When debug is true it
// uses the development config (human-readable, debug level); otherwise the
// production config (JSON, info level).
func NewLogger(debug bool, runID string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}

	return logger.With(zap.String("run_id", runID)), nil
}
