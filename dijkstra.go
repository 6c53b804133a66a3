package gocurv

import (
	"container/heap"
	"sort"
)

// Neighbor pairs a node id with its geodesic distance from a query source.
type Neighbor struct {
	ID   int64
	Dist float64
}

// NeighborsWithin returns all nodes within the given geodesic radius of the
// node, excluding the node itself, ordered by distance (ties by id). It runs
// a radius-bounded Dijkstra and is safe to call concurrently for different
// sources; the graph is only read.
func (sg *SurfaceGraph) NeighborsWithin(id int64, radius float64) []Neighbor {
	if sg.Node(id) == nil {
		return nil
	}
	dist := sg.distancesWithin([]int64{id}, radius)
	delete(dist, id)
	out := make([]Neighbor, 0, len(dist))
	for nid, d := range dist {
		out = append(out, Neighbor{ID: nid, Dist: d})
	}
	sortNeighbors(out)
	return out
}

// distancesWithin runs Dijkstra from one or more sources, never expanding the
// frontier beyond radius. Multi-source form serves the border purge: seeding
// with all border nodes yields each node's distance to its nearest border.
func (sg *SurfaceGraph) distancesWithin(sources []int64, radius float64) map[int64]float64 {
	dist := make(map[int64]float64, len(sources))
	pq := make(distHeap, 0, len(sources))
	for _, s := range sources {
		if sg.g.Node(s) == nil {
			continue
		}
		dist[s] = 0
		pq = append(pq, distEntry{id: s})
	}
	heap.Init(&pq)

	for pq.Len() > 0 {
		e := heap.Pop(&pq).(distEntry)
		if e.dist > dist[e.id] {
			continue // stale entry
		}
		it := sg.g.From(e.id)
		for it.Next() {
			vid := it.Node().ID()
			w, ok := sg.weight(e.id, vid)
			if !ok {
				continue
			}
			nd := e.dist + w
			if nd > radius {
				continue
			}
			if cur, seen := dist[vid]; !seen || nd < cur {
				dist[vid] = nd
				heap.Push(&pq, distEntry{dist: nd, id: vid})
			}
		}
	}
	return dist
}

// sortNeighbors orders by distance, then id, so that neighborhood contents are
// deterministic across runs and provider modes.
func sortNeighbors(ns []Neighbor) {
	sort.Slice(ns, func(i, j int) bool {
		if ns[i].Dist != ns[j].Dist {
			return ns[i].Dist < ns[j].Dist
		}
		return ns[i].ID < ns[j].ID
	})
}

type distEntry struct {
	dist float64
	id   int64
}

type distHeap []distEntry

func (h distHeap) Len() int { return len(h) }
func (h distHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist < h[j].dist
	}
	return h[i].id < h[j].id
}
func (h distHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *distHeap) Push(x any) { *h = append(*h, x.(distEntry)) }

func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}
