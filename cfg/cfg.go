/*
This pkg is the system-wide configuration. It is an explicit value handed to
the pipeline at construction, not process state: build one with Default(),
optionally overlay a yaml file with Load(), and pass it along. Nothing in
here mutates after that.

*/
package cfg

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gridscope/pkg/timeseries"
)

// CountStrategy decides how the group count is chosen.
type CountStrategy string

const (
	// CountElbow sweeps candidate counts with silhouette scoring.
	CountElbow CountStrategy = "elbow"
	// CountDensity takes the count dbscan discovered.
	CountDensity CountStrategy = "density"
)

// GroupStrategy decides which algorithm produces the final grouping.
type GroupStrategy string

const (
	GroupPartition GroupStrategy = "partition"
	GroupDensity   GroupStrategy = "density"
)

// Preset holds the per-measurement-kind hyperparameters. There is exactly
// one preset per kind; all the scattered kind-conditionals live here.
type Preset struct {
	// Eps is the dbscan neighbourhood radius.
	Eps float64 `yaml:"eps" json:"eps"`
	// MinNeighbors is the dbscan density threshold, the point itself
	// included.
	MinNeighbors int `yaml:"min_neighbors" json:"min_neighbors"`
	// OutlierBins is how many trailing histogram bins count as outliers.
	OutlierBins int `yaml:"outlier_bins" json:"outlier_bins"`
	// Units is the display unit for this kind.
	Units string `yaml:"units" json:"units"`
}

// Elbow holds the group-count-selection constants. These are carried over
// from the operators' established workflow; see pkg/cluster/elbow.go.
type Elbow struct {
	KMax              int     `yaml:"k_max" json:"k_max"`
	DropThreshold     float64 `yaml:"drop_threshold" json:"drop_threshold"`
	BaselineDeviation float64 `yaml:"baseline_deviation" json:"baseline_deviation"`
}

// API configures the JSON/POST service surface.
type API struct {
	Addr         string        `yaml:"addr" json:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout" json:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout" json:"write_timeout"`
}

// Config is the full engine configuration.
type Config struct {
	CountStrategy CountStrategy `yaml:"count_strategy" json:"count_strategy"`
	GroupStrategy GroupStrategy `yaml:"group_strategy" json:"group_strategy"`

	// Seed feeds every k-means initialisation so runs are reproducible.
	Seed int64 `yaml:"seed" json:"seed"`

	// SampleRate (Hz) converts sample indexes to seconds in the outlier
	// path. WindowSize (s) and NumBins shape the derivative histogram.
	SampleRate float64 `yaml:"sample_rate" json:"sample_rate"`
	WindowSize float64 `yaml:"window_size" json:"window_size"`
	NumBins    int     `yaml:"num_bins" json:"num_bins"`

	Elbow   Elbow                      `yaml:"elbow" json:"elbow"`
	Presets map[timeseries.Kind]Preset `yaml:"presets" json:"presets"`

	API API `yaml:"api" json:"api"`
}

// Default returns the configuration the tool ships with.
func Default() Config {
	return Config{
		CountStrategy: CountDensity,
		GroupStrategy: GroupPartition,
		Seed:          1,
		SampleRate:    30,
		WindowSize:    10,
		NumBins:       10,
		Elbow: Elbow{
			KMax:              10,
			DropThreshold:     -0.03,
			BaselineDeviation: 0.1,
		},
		Presets: map[timeseries.Kind]Preset{
			timeseries.Freq: {Eps: 0.02, MinNeighbors: 10, OutlierBins: 1, Units: "Hz"},
			timeseries.Vang: {Eps: 2, MinNeighbors: 5, OutlierBins: 3, Units: "Deg."},
			timeseries.Vmag: {Eps: 0.05, MinNeighbors: 10, OutlierBins: 2, Units: "pu"},
		},
		API: API{
			Addr:         "localhost:3501",
			ReadTimeout:  time.Second * 5,
			WriteTimeout: time.Second * 5,
		},
	}
}

// Load overlays the yaml file at path onto the defaults.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, c.Validate()
}

// Validate rejects unknown strategies, kinds and non-positive parameters.
func (c Config) Validate() error {
	switch c.CountStrategy {
	case CountElbow, CountDensity:
	default:
		return fmt.Errorf("unknown count strategy: %q", c.CountStrategy)
	}
	switch c.GroupStrategy {
	case GroupPartition, GroupDensity:
	default:
		return fmt.Errorf("unknown group strategy: %q", c.GroupStrategy)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %v", c.SampleRate)
	}
	if c.Elbow.KMax < 2 {
		return fmt.Errorf("elbow k_max must be at least 2, got %d", c.Elbow.KMax)
	}
	for kind, p := range c.Presets {
		if !kind.Valid() {
			return fmt.Errorf("preset for unknown measurement kind: %q", kind)
		}
		if p.Eps <= 0 || p.MinNeighbors < 1 || p.OutlierBins < 1 {
			return fmt.Errorf("invalid preset for %s: %+v", kind, p)
		}
	}
	return nil
}

// Preset looks up the hyperparameters for one measurement kind.
func (c Config) Preset(kind timeseries.Kind) (Preset, error) {
	p, ok := c.Presets[kind]
	if !ok {
		return Preset{}, fmt.Errorf("no preset for measurement kind %q", kind)
	}
	return p, nil
}
