// SPDX-License-Identifier: MIT

package modules

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/connectome/internal/rng"
	"github.com/katalvlaran/connectome/matrix"
)

const opDetect = "Detect"

// Result bundles the consensus with the diagnostics of every run.
type Result struct {
	// Consensus is the final module structure.
	Consensus Consensus
	// Partitions holds one canonical partition per run, in run order.
	Partitions []Partition
	// Quality holds the modularity Q of each run (diagnostic only).
	Quality []float64
	// Agreement is the normalized co-assignment fraction matrix.
	Agreement *matrix.Dense
	// Gamma and Iterations echo the call parameters.
	Gamma      float64
	Iterations int
}

// Detect runs Louvain community detection `iterations` times on connectivity
// at resolution gamma, builds the agreement matrix of the runs and collapses
// it into a consensus partition.
//
// Stage 1 (Validate): square → finite → non-negative → gamma > 0 → iterations ≥ 1.
// Stage 2 (Runs): independent runs on a bounded worker pool; run i draws from
// the stream (seed, i), so the result is independent of scheduling.
// Stage 3 (Agreement): fraction of runs co-assigning each pair, max-abs normalized.
// Stage 4 (Consensus): sequential thresholded re-clustering (ConsensusPartition).
//
// With iterations == 1 the single run's partition is the consensus.
//
// Errors: ErrShapeMismatch, ErrInvalidParameter (wrapping ErrNaNInf /
// ErrNegativeWeight for bad entries), ErrNumericalDegeneracy, ErrNoConsensus.
func Detect(connectivity matrix.Matrix, gamma float64, iterations int, opts ...Option) (*Result, error) {
	cfg, err := gatherOptions(opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDetect, err)
	}
	d, err := validateConnectivity(opDetect, connectivity)
	if err != nil {
		return nil, err
	}
	if err = validateGamma(opDetect, gamma); err != nil {
		return nil, err
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%s: iterations=%d: %w", opDetect, iterations, ErrInvalidParameter)
	}

	log := cfg.logger.With(zap.Int("nodes", d.Rows()), zap.Float64("gamma", gamma), zap.Int("iterations", iterations))
	started := time.Now()

	view := newWeightedGraph(d)
	parts := make([]Partition, iterations)
	quality := make([]float64, iterations)

	var g errgroup.Group
	g.SetLimit(cfg.workers)
	for i := 0; i < iterations; i++ {
		g.Go(func() error {
			parts[i], quality[i] = view.run(gamma, rng.Source(cfg.seed, uint64(i)))
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", opDetect, err)
	}
	log.Debug("louvain runs finished", zap.Duration("elapsed", time.Since(started)))

	agr, err := Agreement(parts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDetect, err)
	}
	if agr, err = matrix.NormalizeMaxAbs(agr); err != nil {
		return nil, fmt.Errorf("%s: %w", opDetect, err)
	}

	var cons Consensus
	if iterations == 1 {
		cons, err = newConsensus(parts[0], 0)
	} else {
		cons, err = consensus(agr, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opDetect, err)
	}

	log.Info("modules detected",
		zap.Int("modules", cons.Partition.Count()),
		zap.Int("consensus_rounds", cons.Rounds),
		zap.Duration("elapsed", time.Since(started)))

	return &Result{
		Consensus:  cons,
		Partitions: parts,
		Quality:    quality,
		Agreement:  agr,
		Gamma:      gamma,
		Iterations: iterations,
	}, nil
}
