package baseline

import (
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/connectome/internal/rng"
	"github.com/katalvlaran/connectome/matrix"
)

// ErrInvalidParameter is shared with the matrix package.
var ErrInvalidParameter = matrix.ErrInvalidParameter

// Metrics summarizes RandomGraphMetrics.
type Metrics struct {
	MeanClustering float64
	MeanPathLength float64
	// Per-iteration values, in iteration order.
	Clustering []float64
	PathLength []float64
}

// Option configures RandomGraphMetrics.
type Option func(*options)

type options struct {
	seed    uint64
	workers int
	logger  *zap.Logger
}

// WithSeed fixes the base random seed (0 ⇒ default).
func WithSeed(seed uint64) Option { return func(o *options) { o.seed = seed } }

// WithWorkers bounds concurrent iterations (≥ 1).
func WithWorkers(n int) Option { return func(o *options) { o.workers = n } }

// WithLogger routes progress logging to l.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// RandomGraphMetrics generates iterations random undirected binary graphs of
// the given size and returns the mean of their mean clustering coefficients
// and of their characteristic path lengths.
//
// Errors: ErrInvalidParameter for iterations < 1, vertices < 2, edges outside
// [0, V(V-1)/2] or workers < 1.
func RandomGraphMetrics(iterations, vertices, edges int, opts ...Option) (Metrics, error) {
	o := options{workers: runtime.GOMAXPROCS(0), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if iterations < 1 {
		return Metrics{}, fmt.Errorf("RandomGraphMetrics: iterations=%d: %w", iterations, ErrInvalidParameter)
	}
	if o.workers < 1 {
		return Metrics{}, fmt.Errorf("RandomGraphMetrics: workers=%d: %w", o.workers, ErrInvalidParameter)
	}
	if err := validateSize(vertices, edges); err != nil {
		return Metrics{}, fmt.Errorf("RandomGraphMetrics: %w", err)
	}

	started := time.Now()
	out := Metrics{
		Clustering: make([]float64, iterations),
		PathLength: make([]float64, iterations),
	}

	var g errgroup.Group
	g.SetLimit(o.workers)
	for i := 0; i < iterations; i++ {
		g.Go(func() error {
			adj, err := RandomUndirected(vertices, edges, rng.Stream(o.seed, uint64(i)))
			if err != nil {
				return err
			}
			cc, err := ClusteringCoefficients(adj)
			if err != nil {
				return err
			}
			out.Clustering[i] = stat.Mean(cc, nil)
			out.PathLength[i], err = CharacteristicPathLength(adj)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Metrics{}, fmt.Errorf("RandomGraphMetrics: %w", err)
	}

	out.MeanClustering = stat.Mean(out.Clustering, nil)
	out.MeanPathLength = stat.Mean(out.PathLength, nil)
	o.logger.Info("random baseline computed",
		zap.Int("iterations", iterations),
		zap.Int("vertices", vertices),
		zap.Int("edges", edges),
		zap.Float64("mean_clustering", out.MeanClustering),
		zap.Float64("mean_path_length", out.MeanPathLength),
		zap.Duration("elapsed", time.Since(started)))

	return out, nil
}

func validateSize(vertices, edges int) error {
	if vertices < 2 {
		return fmt.Errorf("vertices=%d < 2: %w", vertices, ErrInvalidParameter)
	}
	maxEdges := vertices * (vertices - 1) / 2
	if edges < 0 || edges > maxEdges {
		return fmt.Errorf("edges=%d not in [0,%d]: %w", edges, maxEdges, ErrInvalidParameter)
	}

	return nil
}

// RandomUndirected returns a symmetric binary adjacency matrix with exactly
// edges edges placed uniformly among the V(V-1)/2 node pairs; no self loops.
// r must not be shared across goroutines.
//
// Complexity: O(V²).
func RandomUndirected(vertices, edges int, r *rand.Rand) (*matrix.Dense, error) {
	if err := validateSize(vertices, edges); err != nil {
		return nil, fmt.Errorf("RandomUndirected: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("RandomUndirected: nil rand: %w", ErrInvalidParameter)
	}

	// Enumerate the upper triangle and take a uniform subset of size edges
	// via a partial Fisher–Yates shuffle.
	pairs := make([][2]int, 0, vertices*(vertices-1)/2)
	var i, j int
	for i = 0; i < vertices; i++ {
		for j = i + 1; j < vertices; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	for k := 0; k < edges; k++ {
		s := k + r.IntN(len(pairs)-k)
		pairs[k], pairs[s] = pairs[s], pairs[k]
	}

	adj, err := matrix.NewDense(vertices, vertices)
	if err != nil {
		return nil, fmt.Errorf("RandomUndirected: %w", err)
	}
	for _, p := range pairs[:edges] {
		_ = adj.Set(p[0], p[1], 1)
		_ = adj.Set(p[1], p[0], 1)
	}

	return adj, nil
}

// ClusteringCoefficients returns the binary undirected clustering coefficient
// of every node: the fraction of neighbour pairs that are themselves linked.
// Nodes with fewer than two neighbours score 0. Non-zero off-diagonal
// entries are edges.
//
// Complexity: O(V·k²) for maximum degree k.
func ClusteringCoefficients(adj matrix.Matrix) ([]float64, error) {
	if err := matrix.ValidateSquare(adj); err != nil {
		return nil, fmt.Errorf("ClusteringCoefficients: %w", err)
	}
	n := adj.Rows()
	linked := func(a, b int) bool {
		v, _ := adj.At(a, b)
		w, _ := adj.At(b, a)
		return v != 0 || w != 0
	}

	out := make([]float64, n)
	nbrs := make([]int, 0, n)
	for i := 0; i < n; i++ {
		nbrs = nbrs[:0]
		for j := 0; j < n; j++ {
			if j != i && linked(i, j) {
				nbrs = append(nbrs, j)
			}
		}
		k := len(nbrs)
		if k < 2 {
			continue
		}
		var triangles int
		for a := 0; a < k; a++ {
			for b := a + 1; b < k; b++ {
				if linked(nbrs[a], nbrs[b]) {
					triangles++
				}
			}
		}
		out[i] = float64(triangles) / float64(k*(k-1)/2)
	}

	return out, nil
}

// CharacteristicPathLength is the mean shortest hop distance over all
// ordered pairs of distinct, mutually reachable nodes. Disconnected pairs are
// excluded; a graph with no reachable pair yields +Inf.
//
// This differs from charpath in the Brain Connectivity Toolbox, whose default
// averages infinite distances too and so returns +Inf for any disconnected
// graph. Here a disconnected graph gets the mean over its reachable pairs.
//
// Complexity: O(V³).
func CharacteristicPathLength(adj matrix.Matrix) (float64, error) {
	dist, err := matrix.BinaryDistances(adj)
	if err != nil {
		return 0, fmt.Errorf("CharacteristicPathLength: %w", err)
	}
	n := dist.Rows()
	finite := make([]float64, 0, n*(n-1))
	for i := 0; i < n; i++ {
		row := dist.RawRowView(i)
		for j, d := range row {
			if i != j && !math.IsInf(d, 1) {
				finite = append(finite, d)
			}
		}
	}
	if len(finite) == 0 {
		return math.Inf(1), nil
	}

	return stat.Mean(finite, nil), nil
}
