// Package params loads estimation parameters from a JSON file, applying them
// on top of the library defaults so a file only needs to name the settings it
// changes.
package params

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"

	"github.com/GrotjahnLab/gocurv"
)

// File is the on-disk parameter schema. All fields are optional; absent
// fields keep their defaults.
//
//	{
//	  "radius_hit": 8.0,
//	  "epsilon": 0.0,
//	  "eta": 0.0,
//	  "exclude_borders": 5.0,
//	  "min_component_size": 100,
//	  "full_distance_map": false,
//	  "method": "tensor_voting",
//	  "num_points": 0,
//	  "weight_curvature_by_area": true,
//	  "workers": 4
//	}
type File struct {
	RadiusHit             *float64 `mapstructure:"radius_hit"`
	K                     *float64 `mapstructure:"k"`
	Epsilon               *float64 `mapstructure:"epsilon"`
	Eta                   *float64 `mapstructure:"eta"`
	ExcludeBorders        *float64 `mapstructure:"exclude_borders"`
	MinComponentSize      *int     `mapstructure:"min_component_size"`
	FullDistanceMap       *bool    `mapstructure:"full_distance_map"`
	Method                *string  `mapstructure:"method"`
	NumPoints             *int     `mapstructure:"num_points"`
	WeightCurvatureByArea *bool    `mapstructure:"weight_curvature_by_area"`
	Workers               *int     `mapstructure:"workers"`
}

// Load reads a JSON parameter file and merges it over the default
// configuration. Unknown keys are an error so typos do not silently fall back
// to defaults.
func Load(path string) (gocurv.Config, error) {
	cfg := gocurv.DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading parameter file: %w", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("parsing parameter file: %w", err)
	}
	var f File
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &f,
		ErrorUnused: true,
	})
	if err != nil {
		return cfg, err
	}
	if err := dec.Decode(raw); err != nil {
		return cfg, fmt.Errorf("parsing parameter file: %w", err)
	}
	return apply(cfg, f)
}

func apply(cfg gocurv.Config, f File) (gocurv.Config, error) {
	if f.RadiusHit != nil {
		cfg.RadiusHit = *f.RadiusHit
	}
	if f.K != nil {
		cfg.K = *f.K
	}
	if f.Epsilon != nil {
		cfg.Epsilon = *f.Epsilon
	}
	if f.Eta != nil {
		cfg.Eta = *f.Eta
	}
	if f.ExcludeBorders != nil {
		cfg.ExcludeBorders = *f.ExcludeBorders
	}
	if f.MinComponentSize != nil {
		cfg.MinComponentSize = *f.MinComponentSize
	}
	if f.FullDistanceMap != nil {
		cfg.FullDistanceMap = *f.FullDistanceMap
	}
	if f.Method != nil {
		switch *f.Method {
		case "tensor_voting":
			cfg.Method = gocurv.MethodTensorVoting
		case "curve_fitting":
			cfg.Method = gocurv.MethodCurveFitting
		default:
			return cfg, fmt.Errorf("unknown method %q", *f.Method)
		}
	}
	if f.NumPoints != nil {
		cfg.NumPoints = *f.NumPoints
	}
	if f.WeightCurvatureByArea != nil {
		cfg.WeightCurvatureByArea = *f.WeightCurvatureByArea
	}
	if f.Workers != nil {
		cfg.Workers = *f.Workers
	}
	return cfg, nil
}
