// SPDX-License-Identifier: MIT

package modules

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/community"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/connectome/matrix"
)

const opLouvain = "Louvain"

// symmetryEps is the tolerance under which a matrix is treated as undirected.
const symmetryEps = 1e-12

// weightedGraph is the read-only gonum view of a connectivity matrix, built
// once per call and shared by all concurrent runs (gonum only reads it).
type weightedGraph struct {
	g        graph.Graph
	n        int
	isolated []bool  // no non-zero off-diagonal entry in row or column
	empty    bool    // no off-diagonal edges
	total    float64 // sum of all entries, diagonal included
}

// selfUndirected reports the matrix diagonal as the self-loop weight of each
// node; gonum reads self weights through Weight(u, u).
type selfUndirected struct {
	*simple.WeightedUndirectedGraph
	diag []float64
}

func (g selfUndirected) Weight(xid, yid int64) (float64, bool) {
	if xid == yid {
		if xid < 0 || xid >= int64(len(g.diag)) {
			return 0, false
		}
		return g.diag[xid], true
	}

	return g.WeightedUndirectedGraph.Weight(xid, yid)
}

// selfDirected is selfUndirected for asymmetric input.
type selfDirected struct {
	*simple.WeightedDirectedGraph
	diag []float64
}

func (g selfDirected) Weight(xid, yid int64) (float64, bool) {
	if xid == yid {
		if xid < 0 || xid >= int64(len(g.diag)) {
			return 0, false
		}
		return g.diag[xid], true
	}

	return g.WeightedDirectedGraph.Weight(xid, yid)
}

// newWeightedGraph converts d into a gonum weighted graph. Symmetric input
// becomes undirected (upper triangle), anything else directed. Zero
// off-diagonal entries are absent edges; the diagonal is kept as each node's
// self-loop weight and counts towards strengths and Q.
func newWeightedGraph(d *matrix.Dense) *weightedGraph {
	n := d.Rows()
	directed := !matrix.IsSymmetric(d, symmetryEps)
	wg := &weightedGraph{n: n, isolated: make([]bool, n), empty: true}
	diag := make([]float64, n)

	var i, j int
	var w float64
	for i = 0; i < n; i++ {
		row := d.RawRowView(i)
		diag[i] = row[i]
		for _, w = range row {
			wg.total += w
		}
	}

	if directed {
		g := simple.NewWeightedDirectedGraph(0, 0)
		for i = 0; i < n; i++ {
			g.AddNode(simple.Node(i))
		}
		for i = 0; i < n; i++ {
			row := d.RawRowView(i)
			for j = 0; j < n; j++ {
				if w = row[j]; i == j || w == 0 {
					continue
				}
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), w))
				wg.empty = false
			}
		}
		wg.g = selfDirected{WeightedDirectedGraph: g, diag: diag}
	} else {
		g := simple.NewWeightedUndirectedGraph(0, 0)
		for i = 0; i < n; i++ {
			g.AddNode(simple.Node(i))
		}
		for i = 0; i < n; i++ {
			row := d.RawRowView(i)
			for j = i + 1; j < n; j++ {
				if w = row[j]; w == 0 {
					continue
				}
				g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(i), simple.Node(j), w))
				wg.empty = false
			}
		}
		wg.g = selfUndirected{WeightedUndirectedGraph: g, diag: diag}
	}

	for i = 0; i < n; i++ {
		wg.isolated[i] = true
		for j = 0; j < n && wg.isolated[i]; j++ {
			if i == j {
				continue
			}
			a, _ := d.At(i, j)
			b, _ := d.At(j, i)
			if a != 0 || b != 0 {
				wg.isolated[i] = false
			}
		}
	}

	return wg
}

// run performs one Louvain modularization at resolution gamma and returns the
// canonical partition with its modularity Q.
func (wg *weightedGraph) run(gamma float64, src rand.Source) (Partition, float64) {
	if wg.empty {
		// Only self-loops (or nothing): every node is its own module.
		p := singletons(wg.n)
		if wg.total == 0 {
			return p, 0
		}
		return p, community.Q(wg.g, toCommunities(p), gamma)
	}

	reduced := community.Modularize(wg.g, gamma, src)
	labels := make(Partition, wg.n)
	for k, members := range reduced.Communities() {
		for _, node := range members {
			labels[node.ID()] = k
		}
	}
	// Nodes without off-diagonal connections carry no grouping signal; pin
	// them as singletons.
	next := wg.n
	for i, iso := range wg.isolated {
		if iso {
			labels[i] = next
			next++
		}
	}
	labels = labels.Canonical()

	return labels, community.Q(wg.g, toCommunities(labels), gamma)
}

// toCommunities converts a partition into gonum's community node lists.
func toCommunities(p Partition) [][]graph.Node {
	mods := p.Modules()
	out := make([][]graph.Node, len(mods))
	for k, members := range mods {
		out[k] = make([]graph.Node, len(members))
		for idx, i := range members {
			out[k][idx] = simple.Node(i)
		}
	}

	return out
}

// Louvain runs a single modularity optimization over connectivity at
// resolution gamma using src for randomness, returning the partition and its
// modularity. Input requirements match Detect.
func Louvain(connectivity matrix.Matrix, gamma float64, src rand.Source) (Partition, float64, error) {
	d, err := validateConnectivity(opLouvain, connectivity)
	if err != nil {
		return nil, 0, err
	}
	if err = validateGamma(opLouvain, gamma); err != nil {
		return nil, 0, err
	}
	if src == nil {
		return nil, 0, fmt.Errorf("%s: nil random source: %w", opLouvain, ErrInvalidParameter)
	}
	p, q := newWeightedGraph(d).run(gamma, src)

	return p, q, nil
}

// validateConnectivity enforces square → finite → non-negative and returns a
// private Dense copy.
func validateConnectivity(op string, m matrix.Matrix) (*matrix.Dense, error) {
	if err := matrix.ValidateSquare(m); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := matrix.ValidateFinite(m); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidParameter, err)
	}
	if err := matrix.ValidateNonNegative(m); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrInvalidParameter, err)
	}
	d, ok := m.Clone().(*matrix.Dense)
	if !ok {
		var err error
		if d, err = matrix.Apply(m, func(_, _ int, v float64) (float64, error) { return v, nil }); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	return d, nil
}

func validateGamma(op string, gamma float64) error {
	if !(gamma > 0) || math.IsInf(gamma, 0) {
		return fmt.Errorf("%s: gamma=%g must be > 0: %w", op, gamma, ErrInvalidParameter)
	}

	return nil
}
