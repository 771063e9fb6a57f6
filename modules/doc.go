// SPDX-License-Identifier: MIT
// Package modules detects network modules in a connectivity matrix by running
// a stochastic community-detection algorithm many times and collapsing the
// runs into one consensus partition.
//
// 🚀 What does it do?
//
//	Louvain modularity maximization is randomized: two runs over the same
//	connectome can disagree on borderline regions. Detect runs it
//	`iterations` times, records how often every pair of nodes lands in the
//	same community (the agreement matrix), and re-clusters that agreement
//	matrix until every re-clustering run agrees (consensus clustering,
//	Lancichinetti & Fortunato 2012).
//
// ✨ Key features:
//   - resolution parameter gamma (<1 favours large modules, >1 small ones)
//   - parallel, reproducible runs: each run owns a random stream derived
//     from (seed, run index), so worker count never changes the result
//   - per-run partitions and modularity scores returned for diagnostics
//   - isolated nodes are always singleton modules
//   - the diagonal is scored as self-loop weight, never zeroed
//
// ⚙️ Usage:
//
//	res, err := modules.Detect(conn, 1.0, 1000, modules.WithSeed(7))
//	if err != nil {
//	  // ErrShapeMismatch, ErrInvalidParameter, ErrNumericalDegeneracy, ...
//	}
//	for label, nodes := range res.Consensus.Partition.Modules() {
//	  fmt.Println(label, nodes) // 0-based node indices
//	}
//
// Performance:
//
//   - Time:   O(iterations · Louvain) + O(rounds · reps · Louvain) for consensus
//   - Memory: O(N²) for the agreement matrix plus O(iterations · N) partitions
package modules
