// SPDX-License-Identifier: MIT

package modules

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/connectome/internal/rng"
	"github.com/katalvlaran/connectome/matrix"
)

const opConsensus = "ConsensusPartition"

// Consensus is the stable community structure surviving repeated resampling.
type Consensus struct {
	// Partition is the final canonical labeling (0..k-1).
	Partition Partition
	// Matrix is the N×N co-assignment matrix of Partition.
	Matrix *matrix.Dense
	// Rounds is the number of re-clustering rounds executed (0 when the
	// consensus was taken directly from a single run).
	Rounds int
}

// ConsensusPartition collapses an agreement matrix into one partition.
//
// Each round thresholds the current agreement at tau (diagonal cleared). If no
// entry survives, every node is its own module. Otherwise reps Louvain runs
// (resolution 1) re-cluster the thresholded matrix; when all of them agree up
// to relabeling that partition is the consensus, else their agreement matrix
// feeds the next round. Rounds are strictly sequential.
//
// Options used: WithThreshold, WithReps, WithMaxRounds, WithSeed, WithLogger.
// Errors: ErrShapeMismatch, ErrInvalidParameter, ErrNoConsensus.
func ConsensusPartition(agreement matrix.Matrix, opts ...Option) (Consensus, error) {
	cfg, err := gatherOptions(opts)
	if err != nil {
		return Consensus{}, fmt.Errorf("%s: %w", opConsensus, err)
	}
	d, err := validateConnectivity(opConsensus, agreement)
	if err != nil {
		return Consensus{}, err
	}

	return consensus(d, cfg)
}

func consensus(d *matrix.Dense, cfg options) (Consensus, error) {
	n := d.Rows()
	log := cfg.logger.With(zap.Int("nodes", n), zap.Float64("tau", cfg.threshold), zap.Int("reps", cfg.reps))

	current := d
	for round := 1; round <= cfg.maxRounds; round++ {
		dt, err := matrix.Threshold(current, cfg.threshold, true)
		if err != nil {
			return Consensus{}, fmt.Errorf("%s: round %d: %w", opConsensus, round, err)
		}
		view := newWeightedGraph(dt)
		if view.empty {
			log.Debug("consensus: nothing above threshold, singleton modules", zap.Int("round", round))
			return newConsensus(singletons(n), round)
		}

		seed := rng.Sub(cfg.seed, uint64(round))
		parts := make([]Partition, cfg.reps)
		for k := range parts {
			parts[k], _ = view.run(consensusGamma, rng.Source(seed, uint64(k)))
		}
		if unanimous(parts) {
			log.Debug("consensus reached", zap.Int("round", round), zap.Int("modules", parts[0].Count()))
			return newConsensus(parts[0], round)
		}

		if current, err = Agreement(parts); err != nil {
			return Consensus{}, fmt.Errorf("%s: round %d: %w", opConsensus, round, err)
		}
		log.Debug("consensus round disagreed", zap.Int("round", round))
	}

	return Consensus{}, fmt.Errorf("%s: %d rounds: %w", opConsensus, cfg.maxRounds, ErrNoConsensus)
}

func newConsensus(p Partition, rounds int) (Consensus, error) {
	p = p.Canonical()
	co, err := p.CoAssignment()
	if err != nil {
		return Consensus{}, err
	}

	return Consensus{Partition: p, Matrix: co, Rounds: rounds}, nil
}
