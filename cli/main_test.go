package main

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/geo/r3"

	"github.com/GrotjahnLab/gocurv"
)

func TestWriteCSV_Fields(t *testing.T) {
	res := &gocurv.Result{Records: []gocurv.CurvatureRecord{{
		NodeID: 3,
		Point:  r3.Vector{X: 1},
		Normal: r3.Vector{Z: 1},
		T1:     r3.Vector{X: 1},
		T2:     r3.Vector{Y: 1},
		Kappa1: 0.1,
		Kappa2: 0.05,
		Class:  gocurv.ClassSurfacePatch,
	}}}

	path := filepath.Join(t.TempDir(), "out.csv")
	if err := writeCSV(path, res); err != nil {
		t.Fatalf("writeCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening CSV: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header plus one record", len(rows))
	}

	header := make(map[string]bool, len(rows[0]))
	for _, name := range rows[0] {
		header[name] = true
	}
	for _, name := range []string{
		"kappa_1", "kappa_2", "gauss_curvature", "mean_curvature",
		"shape_index", "curvedness", "class_label", "low_confidence",
	} {
		if !header[name] {
			t.Errorf("header is missing column %q", name)
		}
	}
	if len(rows[1]) != len(rows[0]) {
		t.Errorf("record has %d fields, header has %d", len(rows[1]), len(rows[0]))
	}
	if rows[1][0] != "3" {
		t.Errorf("node_id column = %q, want 3", rows[1][0])
	}
}
