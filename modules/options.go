// SPDX-License-Identifier: MIT

package modules

import (
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
)

// Defaults mirror the reference consensus_und call (tau 0.5, 100 reps).
const (
	// DefaultThreshold is the agreement level below which pairs are dropped
	// before re-clustering.
	DefaultThreshold = 0.5

	// DefaultReps is the number of Louvain runs per consensus round.
	DefaultReps = 100

	// DefaultMaxRounds bounds the consensus loop.
	DefaultMaxRounds = 100

	// consensusGamma is the resolution used when re-clustering agreement.
	consensusGamma = 1.0
)

// Option configures Detect and ConsensusPartition.
type Option func(*options)

type options struct {
	seed      uint64
	workers   int
	threshold float64
	reps      int
	maxRounds int
	logger    *zap.Logger
}

func defaultOptions() options {
	return options{
		workers:   runtime.GOMAXPROCS(0),
		threshold: DefaultThreshold,
		reps:      DefaultReps,
		maxRounds: DefaultMaxRounds,
		logger:    zap.NewNop(),
	}
}

// WithSeed fixes the base seed of every random stream (0 ⇒ package default).
func WithSeed(seed uint64) Option { return func(o *options) { o.seed = seed } }

// WithWorkers bounds the number of concurrent Louvain runs (must be ≥ 1).
func WithWorkers(n int) Option { return func(o *options) { o.workers = n } }

// WithThreshold sets the consensus agreement threshold tau, in [0, 1].
func WithThreshold(tau float64) Option { return func(o *options) { o.threshold = tau } }

// WithReps sets the number of Louvain runs per consensus round (≥ 1).
func WithReps(reps int) Option { return func(o *options) { o.reps = reps } }

// WithMaxRounds bounds the consensus loop (≥ 1).
func WithMaxRounds(n int) Option { return func(o *options) { o.maxRounds = n } }

// WithLogger routes progress logging to l; nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// gatherOptions applies opts over the defaults and validates the result.
func gatherOptions(opts []Option) (options, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	switch {
	case o.workers < 1:
		return o, fmt.Errorf("workers=%d: %w", o.workers, ErrInvalidParameter)
	case math.IsNaN(o.threshold) || o.threshold < 0 || o.threshold > 1:
		return o, fmt.Errorf("threshold=%g not in [0,1]: %w", o.threshold, ErrInvalidParameter)
	case o.reps < 1:
		return o, fmt.Errorf("reps=%d: %w", o.reps, ErrInvalidParameter)
	case o.maxRounds < 1:
		return o, fmt.Errorf("maxRounds=%d: %w", o.maxRounds, ErrInvalidParameter)
	}

	return o, nil
}
