// Package matrix provides the dense numeric container shared by every
// connectome analysis package.
//
// The matrix package provides:
//
//   - Dense, a row-major float64 matrix behind the small Matrix interface.
//   - Validators (square, finite, non-negative, symmetric, index bounds) that
//     return the sentinel errors in errors.go.
//   - Select, the sub-block gather used for module-to-module statistics.
//   - Elementwise transforms (NormalizeMaxAbs, Threshold, Apply) and
//     BinaryDistances/FloydWarshall for hop-count path lengths.
//
// Connectivity matrices are treated as immutable inputs: every operation
// returns a fresh *Dense and preserves the diagonal exactly as given.
package matrix
