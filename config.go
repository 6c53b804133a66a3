package gocurv

import "fmt"

// Config holds all parameters for curvature estimation. Exactly one of
// RadiusHit and K must be positive.
type Config struct {
	RadiusHit float64 // geodesic neighborhood radius, in mesh length units
	K         float64 // alternative: radius = K * average edge length of the graph

	Epsilon float64 // classification threshold on the lambda1-lambda2 gap (default 0)
	Eta     float64 // classification threshold on the lambda2-lambda3 gap (default 0)

	ExcludeBorders   float64 // purge nodes within this geodesic distance of a mesh border; 0 keeps them
	MinComponentSize int     // purge connected components with fewer nodes than this

	FullDistanceMap bool // precompute all neighborhoods up front instead of per-node Dijkstra

	Method    Method // how the second pass recovers curvatures
	NumPoints int    // curve-fitting sample count per direction; required iff Method is MethodCurveFitting

	// WeightCurvatureByArea scales second-pass votes by neighbor area, as in
	// the first pass. Disabling it weights votes by distance decay only.
	WeightCurvatureByArea bool

	Workers int // worker count for the estimation passes; <= 0 means one worker per CPU
}

// DefaultConfig returns a Config with the defaults of the reference workflow:
// thresholds at zero (every node classified as a surface patch), component
// threshold 100, tensor voting, four workers.
func DefaultConfig() Config {
	return Config{
		Epsilon:               0,
		Eta:                   0,
		ExcludeBorders:        0,
		MinComponentSize:      100,
		FullDistanceMap:       false,
		Method:                MethodTensorVoting,
		WeightCurvatureByArea: true,
		Workers:               4,
	}
}

// validate reports configuration errors before any computation starts.
func (c Config) validate() error {
	if (c.RadiusHit > 0) == (c.K > 0) {
		return fmt.Errorf("%w: exactly one of RadiusHit (%g) and K (%g) must be positive",
			ErrInvalidConfig, c.RadiusHit, c.K)
	}
	if c.Epsilon < 0 || c.Eta < 0 {
		return fmt.Errorf("%w: epsilon and eta must be non-negative", ErrInvalidConfig)
	}
	if c.ExcludeBorders < 0 {
		return fmt.Errorf("%w: ExcludeBorders must be non-negative", ErrInvalidConfig)
	}
	if c.MinComponentSize < 0 {
		return fmt.Errorf("%w: MinComponentSize must be non-negative", ErrInvalidConfig)
	}
	switch c.Method {
	case MethodTensorVoting:
		if c.NumPoints != 0 {
			return fmt.Errorf("%w: NumPoints is only valid with the curve-fitting method", ErrInvalidConfig)
		}
	case MethodCurveFitting:
		if c.NumPoints < 3 {
			return fmt.Errorf("%w: curve fitting needs NumPoints >= 3, got %d", ErrInvalidConfig, c.NumPoints)
		}
	default:
		return fmt.Errorf("%w: unknown method %d", ErrInvalidConfig, int(c.Method))
	}
	return nil
}

// resolveRadius turns the RadiusHit/K alternative into a concrete geodesic
// radius. avgEdge is the graph's average edge length, computed before any
// purge.
func (c Config) resolveRadius(avgEdge float64) float64 {
	if c.RadiusHit > 0 {
		return c.RadiusHit
	}
	return c.K * avgEdge
}
