package gocurv

import (
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/graph/path"
)

// NeighborhoodProvider answers geodesic neighborhood queries against a fixed
// radius. Both implementations return identical neighbor sets for the same
// graph and radius; they trade memory for per-query cost.
type NeighborhoodProvider interface {
	// NeighborsWithin returns the nodes within the radius of the given node,
	// excluding the node itself, ordered by distance then id.
	NeighborsWithin(id int64) []Neighbor
}

// localProvider runs a bounded Dijkstra per query. Cheap to build, safe for
// concurrent queries, preferred for large graphs.
type localProvider struct {
	sg     *SurfaceGraph
	radius float64
}

// NewLocalProvider returns a provider computing each neighborhood on demand.
func NewLocalProvider(sg *SurfaceGraph, radius float64) NeighborhoodProvider {
	return &localProvider{sg: sg, radius: radius}
}

func (p *localProvider) NeighborsWithin(id int64) []Neighbor {
	return p.sg.NeighborsWithin(id, p.radius)
}

// fullProvider precomputes every neighborhood once, via a full Dijkstra tree
// per source, and serves queries from memory. Worth the upfront cost when the
// neighborhoods are reused across both voting passes on a small graph.
type fullProvider struct {
	neighbors map[int64][]Neighbor
}

// NewFullProvider precomputes the distance map for all live nodes using the
// given number of parallel workers.
func NewFullProvider(sg *SurfaceGraph, radius float64, workers int) (NeighborhoodProvider, error) {
	nodes := sg.Nodes()
	all := make([][]Neighbor, len(nodes))

	if workers < 1 {
		workers = 1
	}
	var eg errgroup.Group
	for w := 0; w < workers; w++ {
		w := w
		eg.Go(func() error {
			for i := w; i < len(nodes); i += workers {
				src := nodes[i]
				shortest := path.DijkstraFrom(src, sg.g)
				var ns []Neighbor
				for _, n := range nodes {
					if n.id == src.id {
						continue
					}
					if d := shortest.WeightTo(n.id); d <= radius {
						ns = append(ns, Neighbor{ID: n.id, Dist: d})
					}
				}
				sortNeighbors(ns)
				all[i] = ns
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	fp := &fullProvider{neighbors: make(map[int64][]Neighbor, len(nodes))}
	for i, n := range nodes {
		fp.neighbors[n.id] = all[i]
	}
	return fp, nil
}

func (p *fullProvider) NeighborsWithin(id int64) []Neighbor {
	return p.neighbors[id]
}
