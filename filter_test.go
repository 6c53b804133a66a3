package gocurv

import (
	"testing"

	"github.com/golang/geo/r3"
)

func TestPurgeNearBorder_Idempotent(t *testing.T) {
	sg, err := BuildGraph(gridMesh(8, 1))
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	before := sg.NumNodes()

	removed := sg.PurgeNearBorder(1.0)
	if removed == 0 {
		t.Fatal("first purge removed nothing")
	}
	if sg.NumNodes() != before-removed {
		t.Fatalf("node count %d after removing %d from %d", sg.NumNodes(), removed, before)
	}
	for _, n := range sg.Nodes() {
		if n.Border {
			t.Errorf("border node %d survived the purge", n.ID())
		}
	}

	if again := sg.PurgeNearBorder(1.0); again != 0 {
		t.Errorf("second purge removed %d nodes, want 0", again)
	}
}

func TestPurgeNearBorder_ZeroThreshold(t *testing.T) {
	sg, err := BuildGraph(gridMesh(4, 1))
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	before := sg.NumNodes()
	if removed := sg.PurgeNearBorder(0); removed != 0 {
		t.Errorf("zero threshold removed %d nodes", removed)
	}
	if sg.NumNodes() != before {
		t.Errorf("node count changed from %d to %d", before, sg.NumNodes())
	}
}

func TestPurgeSmallComponents(t *testing.T) {
	// A large grid plus one far-away isolated quad; only the quad's component
	// falls under the threshold.
	tris := gridMesh(5, 1)
	off := r3.Vector{X: 100}
	tris = append(tris,
		makeTri(off, off.Add(r3.Vector{X: 1}), off.Add(r3.Vector{X: 1, Y: 1})),
		makeTri(off, off.Add(r3.Vector{X: 1, Y: 1}), off.Add(r3.Vector{Y: 1})),
	)
	sg, err := BuildGraph(tris)
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}

	removed := sg.PurgeSmallComponents(10)
	if removed != 2 {
		t.Fatalf("removed %d nodes, want 2", removed)
	}
	if sg.NumNodes() != 50 {
		t.Fatalf("got %d nodes after purge, want 50", sg.NumNodes())
	}
	if again := sg.PurgeSmallComponents(10); again != 0 {
		t.Errorf("second purge removed %d nodes, want 0", again)
	}
}

func TestPurgeSmallComponents_MinSizeOne(t *testing.T) {
	sg, err := BuildGraph(gridMesh(2, 1))
	if err != nil {
		t.Fatalf("BuildGraph failed: %v", err)
	}
	if removed := sg.PurgeSmallComponents(1); removed != 0 {
		t.Errorf("minSize 1 removed %d nodes", removed)
	}
}
