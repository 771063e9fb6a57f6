// Package baseline computes random-graph reference statistics for a
// connectome: the mean clustering coefficient and characteristic path length
// of random undirected graphs with the same number of nodes and edges.
//
// Small-world indices compare an empirical network against these baselines
// (sigma = (C/C_rand) / (L/L_rand)).
//
// Each iteration draws an independent graph from its own random stream
// (seed, iteration), so results are reproducible for any worker count.
package baseline
