// Package rng - deterministic random streams shared by the stochastic solvers.
//
// Goals:
//   - Determinism: same seed and stream id ⇒ identical results, regardless of
//     which goroutine runs the stream or in which order streams are consumed.
//   - Encapsulation: a single stream factory; no time-based sources hidden anywhere.
//
// Concurrency:
//   - A *rand.Rand / rand.Source is NOT goroutine-safe. Derive one stream per
//     run or worker with Stream and never share it.
package rng

import "math/rand/v2"

// DefaultSeed is the fixed seed used when callers pass seed==0.
const DefaultSeed uint64 = 1

// Mix mixes a parent seed and a stream identifier into a new 64-bit seed.
// SplitMix64 finalizer: small input changes give well-distributed outputs.
//
// Complexity: O(1).
func Mix(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Source returns an independent PCG source for (seed, stream).
// Policy: seed==0 ⇒ DefaultSeed.
func Source(seed, stream uint64) *rand.PCG {
	if seed == 0 {
		seed = DefaultSeed
	}
	return rand.NewPCG(Mix(seed, stream), stream)
}

// Stream wraps Source in a *rand.Rand for callers that need Shuffle/IntN.
func Stream(seed, stream uint64) *rand.Rand {
	return rand.New(Source(seed, stream))
}

// Sub derives a child seed for a named phase (e.g. consensus round r) so that
// phases draw from disjoint stream families under the same user seed.
func Sub(seed, phase uint64) uint64 {
	if seed == 0 {
		seed = DefaultSeed
	}
	return Mix(seed^0xd1b54a32d192ed03, phase)
}
