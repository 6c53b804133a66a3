package gocurv

import (
	"gonum.org/v1/gonum/graph/topo"
)

// PurgeNearBorder removes every node whose geodesic distance to the nearest
// border node is below the threshold, border nodes included. Distances are
// geodesic, not Euclidean: straight-line distance underestimates separation
// around folded regions. Returns the number of removed nodes. Re-running on a
// purged graph is a no-op, because Border flags come from the input mesh and
// the flagged nodes are gone after the first purge.
func (sg *SurfaceGraph) PurgeNearBorder(threshold float64) int {
	if threshold <= 0 {
		return 0
	}
	var borders []int64
	it := sg.g.Nodes()
	for it.Next() {
		n := it.Node().(*SurfaceNode)
		if n.Border {
			borders = append(borders, n.id)
		}
	}
	if len(borders) == 0 {
		return 0
	}

	dist := sg.distancesWithin(borders, threshold)
	removed := 0
	for id, d := range dist {
		if d < threshold {
			sg.removeNode(id)
			removed++
		}
	}
	return removed
}

// PurgeSmallComponents removes all nodes in connected components smaller than
// minSize. Run after PurgeNearBorder: border removal can split a large
// component into fragments that should then be dropped. Idempotent.
func (sg *SurfaceGraph) PurgeSmallComponents(minSize int) int {
	if minSize <= 1 {
		return 0
	}
	removed := 0
	for _, comp := range topo.ConnectedComponents(sg.g) {
		if len(comp) >= minSize {
			continue
		}
		for _, n := range comp {
			sg.removeNode(n.ID())
			removed++
		}
	}
	return removed
}
