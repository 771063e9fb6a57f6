// Package connectome is a toolkit for module analysis of brain connectivity
// matrices.
//
// 🚀 What is connectome?
//
//	A small set of packages that take an N×N connectivity matrix and answer:
//		• Which nodes form modules? Louvain runs reduced to one consensus partition
//		• How strongly are two node sets connected? sum, value list, mean length
//		• How does a network compare to random graphs? clustering and path length
//		• How far is a subject from a control cohort? tanh z-transform
//
// ✨ Guarantees
//
//   - Deterministic: a fixed seed gives the same partition for any worker count
//   - Inputs are never mutated; every result is a fresh matrix or slice
//   - Sentinel errors from matrix, shared by every package (errors.Is)
//
// Under the hood:
//
//	matrix/    Dense type, validators, selection, thresholding, Floyd–Warshall
//	modules/   Detect, Louvain, Agreement, ConsensusPartition, Partition
//	aggregate/ Aggregate, BetweenModules, FromOneBased
//	baseline/  RandomGraphMetrics, ClusteringCoefficients, CharacteristicPathLength
//	cohort/    MeanEdgeCount, ControlDistribution, TanhTransform
//	loader/    CSV, whitespace and .xlsx matrices; partition files
//	cmd/connectome: the command line front end
//
// Quick example:
//
//	conn, _ := loader.Load("subject01.csv")
//	res, _ := modules.Detect(conn, 1.0, 100, modules.WithSeed(42))
//	mods := res.Consensus.Partition.Modules()
//	between, _ := aggregate.BetweenModules(conn, mods, aggregate.Sum)
package connectome
