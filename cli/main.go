package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"go.viam.com/rdk/logging"
	"gonum.org/v1/gonum/stat"

	"github.com/GrotjahnLab/gocurv"
	"github.com/GrotjahnLab/gocurv/internal/params"
	"github.com/GrotjahnLab/gocurv/meshgen"
)

var shapes = map[string]func(res int) []gocurv.Triangle{
	"plane":    func(res int) []gocurv.Triangle { return meshgen.Plane(10, res) },
	"cylinder": func(res int) []gocurv.Triangle { return meshgen.Cylinder(10, 25, res, res) },
	"sphere":   func(res int) []gocurv.Triangle { return meshgen.Sphere(10, res, 2*res) },
	"torus":    func(res int) []gocurv.Triangle { return meshgen.Torus(25, 10, 2*res, res) },
}

const validShapes = "plane, cylinder, sphere, torus"

func main() {
	shape := flag.String("shape", "", "benchmark surface to generate: "+validShapes)
	res := flag.Int("res", 30, "mesh resolution (segments per axis)")
	noise := flag.Float64("noise", 0, "Gaussian vertex noise, percent of average edge length")
	radius := flag.Float64("radius", 0, "geodesic neighborhood radius")
	paramsPath := flag.String("params", "", "path to JSON parameter file (optional)")
	csvPath := flag.String("csv", "", "write per-triangle results to this CSV file (optional)")
	workers := flag.Int("workers", 0, "worker count; 0 uses the parameter file or default")
	flag.Parse()

	logger := logging.NewLogger("gocurv-cli")

	if *shape == "" {
		logger.Fatal("-shape flag is required; valid shapes: " + validShapes)
	}
	gen, ok := shapes[*shape]
	if !ok {
		logger.Fatalf("unknown shape %q; valid shapes: %s", *shape, validShapes)
	}

	cfg := gocurv.DefaultConfig()
	if *paramsPath != "" {
		var err error
		cfg, err = params.Load(*paramsPath)
		if err != nil {
			logger.Fatal(err)
		}
	}
	if *radius > 0 {
		cfg.RadiusHit = *radius
		cfg.K = 0
	}
	if *workers > 0 {
		cfg.Workers = *workers
	}
	if cfg.RadiusHit <= 0 && cfg.K <= 0 {
		logger.Fatal("no neighborhood radius set; use -radius or radius_hit/k in the parameter file")
	}

	tris := gen(*res)
	if *noise > 0 {
		tris = meshgen.AddNoise(tris, *noise, rand.New(rand.NewSource(1)))
	}
	logger.Infof("Generated %s surface: %d triangles", *shape, len(tris))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	result, err := gocurv.Estimate(ctx, tris, cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	if result.EmptyAfterFiltering {
		logger.Info("All triangles were filtered out; nothing to report")
		return
	}

	logSummary(logger, result)

	if *csvPath != "" {
		if err := writeCSV(*csvPath, result); err != nil {
			logger.Fatal(err)
		}
		logger.Infof("Wrote %d records to %s", len(result.Records), *csvPath)
	}
}

func logSummary(logger logging.Logger, result *gocurv.Result) {
	kappa1 := make([]float64, 0, len(result.Records))
	kappa2 := make([]float64, 0, len(result.Records))
	for _, rec := range result.Records {
		if rec.LowConfidence || rec.Class != gocurv.ClassSurfacePatch {
			continue
		}
		kappa1 = append(kappa1, rec.Kappa1)
		kappa2 = append(kappa2, rec.Kappa2)
	}

	logger.Infof("Estimated curvature at %d triangles (radius %.4g)", len(result.Records), result.Radius)
	logger.Infof("Classes: %d surface patch, %d crease junction, %d no orientation",
		result.ClassCounts[gocurv.ClassSurfacePatch],
		result.ClassCounts[gocurv.ClassCreaseJunction],
		result.ClassCounts[gocurv.ClassNoOrientation])
	if result.LowConfidenceCount > 0 {
		logger.Infof("Low-confidence estimates: %d", result.LowConfidenceCount)
	}
	if len(kappa1) == 0 {
		return
	}
	m1, s1 := stat.MeanStdDev(kappa1, nil)
	m2, s2 := stat.MeanStdDev(kappa2, nil)
	logger.Infof("kappa_1: mean=%.5g stddev=%.5g", m1, s1)
	logger.Infof("kappa_2: mean=%.5g stddev=%.5g", m2, s2)
}

func writeCSV(path string, result *gocurv.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{
		"node_id", "x", "y", "z",
		"normal_x", "normal_y", "normal_z",
		"t1_x", "t1_y", "t1_z", "t2_x", "t2_y", "t2_z",
		"kappa_1", "kappa_2",
		"gauss_curvature", "mean_curvature", "shape_index", "curvedness",
		"class_label", "low_confidence",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	g := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for _, rec := range result.Records {
		row := []string{
			strconv.FormatInt(rec.NodeID, 10),
			g(rec.Point.X), g(rec.Point.Y), g(rec.Point.Z),
			g(rec.Normal.X), g(rec.Normal.Y), g(rec.Normal.Z),
			g(rec.T1.X), g(rec.T1.Y), g(rec.T1.Z),
			g(rec.T2.X), g(rec.T2.Y), g(rec.T2.Z),
			g(rec.Kappa1), g(rec.Kappa2),
			g(rec.GaussCurvature), g(rec.MeanCurvature), g(rec.ShapeIndex), g(rec.Curvedness),
			rec.Class.String(),
			strconv.FormatBool(rec.LowConfidence),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("writing CSV file: %w", err)
	}
	return nil
}
