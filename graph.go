package gocurv

import (
	"math"
	"sort"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/graph/simple"
)

// SurfaceNode is one graph node, representing a mesh triangle by its center.
// Normal is refined in place by the normal voting pass; all other fields are
// fixed at build time. Border is a property of the input mesh and is not
// recomputed after purges, which keeps the border purge idempotent.
type SurfaceNode struct {
	id     int64
	Center r3.Vector
	Normal r3.Vector
	Area   float64
	Border bool
}

// ID implements gonum's graph.Node.
func (n *SurfaceNode) ID() int64 { return n.id }

// SurfaceGraph is the geodesic mesh graph: triangle centers connected to the
// centers of all triangles sharing at least one vertex, weighted by Euclidean
// center distance. Shortest paths over it approximate geodesic distances
// along the surface.
type SurfaceGraph struct {
	g        *simple.WeightedUndirectedGraph
	avgEdge  float64
	numEdges int
}

// vertexKey identifies a mesh vertex by exact position. The upstream mesh
// generator merges coincident vertices, so exact comparison suffices.
type vertexKey = r3.Vector

// BuildGraph constructs the geodesic mesh graph from a triangle soup.
// Triangles sharing an edge held by fewer than two triangles are flagged as
// border nodes. Degenerate triangles and coincident triangle centers are
// rejected with ErrDegenerateMesh.
func BuildGraph(tris []Triangle) (*SurfaceGraph, error) {
	if len(tris) == 0 {
		return nil, ErrEmptyMesh
	}

	sg := &SurfaceGraph{g: simple.NewWeightedUndirectedGraph(0, math.Inf(1))}

	// Index vertices by position and remember which triangles touch each one.
	vertIDs := make(map[vertexKey]int32)
	triVerts := make([][3]int32, len(tris))
	vertTris := make(map[int32][]int32)
	nodes := make([]*SurfaceNode, len(tris))

	for i, t := range tris {
		if err := t.validate(i); err != nil {
			return nil, err
		}
		for j, v := range t.V {
			vid, ok := vertIDs[v]
			if !ok {
				vid = int32(len(vertIDs))
				vertIDs[v] = vid
			}
			triVerts[i][j] = vid
			vertTris[vid] = append(vertTris[vid], int32(i))
		}
		nodes[i] = &SurfaceNode{
			id:     int64(i),
			Center: t.Center(),
			Normal: t.Normal,
			Area:   t.Area,
		}
		sg.g.AddNode(nodes[i])
	}

	// Count triangles per mesh edge; an edge on fewer than two triangles lies
	// on the surface boundary.
	edgeCount := make(map[[2]int32]int32)
	for i := range tris {
		vs := triVerts[i]
		for _, e := range [3][2]int32{{vs[0], vs[1]}, {vs[1], vs[2]}, {vs[0], vs[2]}} {
			if e[0] > e[1] {
				e[0], e[1] = e[1], e[0]
			}
			edgeCount[e]++
		}
	}
	for i := range tris {
		vs := triVerts[i]
		for _, e := range [3][2]int32{{vs[0], vs[1]}, {vs[1], vs[2]}, {vs[0], vs[2]}} {
			if e[0] > e[1] {
				e[0], e[1] = e[1], e[0]
			}
			if edgeCount[e] < 2 {
				nodes[i].Border = true
				break
			}
		}
	}

	// Connect triangles sharing at least one vertex.
	var sumW float64
	seen := make(map[int64]struct{})
	for _, near := range vertTris {
		for a := 0; a < len(near); a++ {
			for b := a + 1; b < len(near); b++ {
				i, j := near[a], near[b]
				if i > j {
					i, j = j, i
				}
				key := int64(i)*int64(len(tris)) + int64(j)
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				w := nodes[i].Center.Sub(nodes[j].Center).Norm()
				if w == 0 {
					return nil, ErrDegenerateMesh
				}
				sg.g.SetWeightedEdge(simple.WeightedEdge{F: nodes[i], T: nodes[j], W: w})
				sumW += w
				sg.numEdges++
			}
		}
	}

	if sg.numEdges > 0 {
		sg.avgEdge = sumW / float64(sg.numEdges)
	}
	return sg, nil
}

// Node returns the node with the given id, or nil if it has been purged.
func (sg *SurfaceGraph) Node(id int64) *SurfaceNode {
	n := sg.g.Node(id)
	if n == nil {
		return nil
	}
	return n.(*SurfaceNode)
}

// Nodes returns all live nodes ordered by id.
func (sg *SurfaceGraph) Nodes() []*SurfaceNode {
	out := make([]*SurfaceNode, 0, sg.g.Nodes().Len())
	it := sg.g.Nodes()
	for it.Next() {
		out = append(out, it.Node().(*SurfaceNode))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// NumNodes returns the number of live nodes.
func (sg *SurfaceGraph) NumNodes() int { return sg.g.Nodes().Len() }

// NumEdges returns the number of edges at build time, before any purge.
func (sg *SurfaceGraph) NumEdges() int { return sg.numEdges }

// AvgEdgeLength returns the average edge length of the graph as built, before
// any purge. This is the basis for the K-multiplier radius.
func (sg *SurfaceGraph) AvgEdgeLength() float64 { return sg.avgEdge }

// maxArea returns the maximal node area among live nodes, used to normalize
// vote weights.
func (sg *SurfaceGraph) maxArea() float64 {
	var m float64
	it := sg.g.Nodes()
	for it.Next() {
		if a := it.Node().(*SurfaceNode).Area; a > m {
			m = a
		}
	}
	return m
}

// removeNode drops a node and its incident edges.
func (sg *SurfaceGraph) removeNode(id int64) {
	sg.g.RemoveNode(id)
}

// weight returns the edge weight between two adjacent nodes.
func (sg *SurfaceGraph) weight(uid, vid int64) (float64, bool) {
	return sg.g.Weight(uid, vid)
}
