package gocurv

import (
	"context"
	"fmt"
	"runtime"

	"github.com/golang/geo/r3"
	"golang.org/x/sync/errgroup"

	"go.viam.com/rdk/logging"
)

// Estimate runs the full pipeline on a triangle mesh: graph build, border and
// small-component purges, neighborhood precompute (optional), the normal
// voting pass, and the curvature pass, returning one CurvatureRecord per
// retained node ordered by node id.
//
// Structural faults (degenerate mesh, unresolvable configuration) abort the
// run with an error before any record is produced. Node-local faults
// (degenerate neighborhood, eigen-decomposition failure) degrade that node to
// a low-confidence record and never affect sibling nodes. When the purges
// remove every node the result carries EmptyAfterFiltering instead of an
// error.
//
// Per-node results are deterministic and independent of worker count: nodes
// share only the read-only graph and distance map during a pass.
func Estimate(ctx context.Context, tris []Triangle, cfg Config, logger logging.Logger) (*Result, error) {
	if logger == nil {
		logger = logging.NewLogger("gocurv")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	sg, err := BuildGraph(tris)
	if err != nil {
		return nil, fmt.Errorf("building surface graph: %w", err)
	}
	logger.Infof("Surface graph has %d nodes and %d edges", sg.NumNodes(), sg.NumEdges())

	radius := cfg.resolveRadius(sg.AvgEdgeLength())
	if radius <= 0 {
		return nil, fmt.Errorf("%w: resolved neighborhood radius %g", ErrInvalidConfig, radius)
	}
	logger.Infof("Neighborhood radius: %.3f (average edge length %.3f)", radius, sg.AvgEdgeLength())

	if cfg.ExcludeBorders > 0 {
		removed := sg.PurgeNearBorder(cfg.ExcludeBorders)
		logger.Infof("Border purge removed %d nodes within %.3f of a border", removed, cfg.ExcludeBorders)
	}
	if cfg.MinComponentSize > 1 {
		removed := sg.PurgeSmallComponents(cfg.MinComponentSize)
		logger.Infof("Component purge removed %d nodes in components smaller than %d", removed, cfg.MinComponentSize)
	}

	nodes := sg.Nodes()
	if len(nodes) == 0 {
		logger.Warn("All nodes were filtered out; returning an empty result")
		return &Result{EmptyAfterFiltering: true, Radius: radius}, nil
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var provider NeighborhoodProvider
	if cfg.FullDistanceMap {
		logger.Debug("Precomputing the full distance map")
		provider, err = NewFullProvider(sg, radius, workers)
		if err != nil {
			return nil, fmt.Errorf("precomputing the distance map: %w", err)
		}
	} else {
		provider = NewLocalProvider(sg, radius)
	}

	maxArea := sg.maxArea()

	// First pass: refine normals and classify. Results are staged and written
	// back only after the pass completes, so voters always see input normals.
	normals := make([]r3.Vector, len(nodes))
	classes := make([]OrientationClass, len(nodes))
	err = runPass(ctx, workers, len(nodes), func(i int) {
		node := nodes[i]
		normals[i], classes[i] = estimateNormal(
			sg, node, provider.NeighborsWithin(node.id),
			radius, maxArea, cfg.Epsilon, cfg.Eta)
	})
	if err != nil {
		return nil, err
	}
	for i, node := range nodes {
		node.Normal = normals[i]
	}

	// Second pass: principal directions and curvatures for surface patches.
	// Crease junctions and unoriented nodes keep zero curvatures and an
	// arbitrary tangent basis; they are reported, not dropped.
	records := make([]CurvatureRecord, len(nodes))
	err = runPass(ctx, workers, len(nodes), func(i int) {
		node := nodes[i]
		var pr principalResult
		if classes[i] == ClassSurfacePatch {
			pr = estimateCurvature(
				sg, node, provider.NeighborsWithin(node.id), radius, maxArea, cfg)
		} else {
			pr = lowConfidenceResult(node.Normal)
			pr.LowConfidence = false
		}
		gauss, mean, si, cv := derivedScalars(pr.Kappa1, pr.Kappa2)
		records[i] = CurvatureRecord{
			NodeID:         node.id,
			Point:          node.Center,
			Normal:         node.Normal,
			T1:             pr.T1,
			T2:             pr.T2,
			Kappa1:         pr.Kappa1,
			Kappa2:         pr.Kappa2,
			GaussCurvature: gauss,
			MeanCurvature:  mean,
			ShapeIndex:     si,
			Curvedness:     cv,
			Class:          classes[i],
			LowConfidence:  pr.LowConfidence,
		}
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Records: records, Radius: radius}
	for _, r := range records {
		res.ClassCounts[r.Class]++
		if r.LowConfidence {
			res.LowConfidenceCount++
		}
	}
	logger.Infof("Estimated %d nodes: %d surface patches, %d crease junctions, %d unoriented, %d low confidence",
		len(records), res.ClassCounts[ClassSurfacePatch], res.ClassCounts[ClassCreaseJunction],
		res.ClassCounts[ClassNoOrientation], res.LowConfidenceCount)
	return res, nil
}

// runPass fans fn out over a static partition of [0, n) using the given
// worker count. Each index is processed exactly once; fn must not share
// mutable state across indices.
func runPass(ctx context.Context, workers, n int, fn func(i int)) error {
	if workers > n {
		workers = n
	}
	eg, ctx := errgroup.WithContext(ctx)
	chunk := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := min(start+chunk, n)
		if start >= end {
			break
		}
		eg.Go(func() error {
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				fn(i)
			}
			return nil
		})
	}
	return eg.Wait()
}
