package cfg

import (
	"os"
	"path/filepath"
	"testing"

	"gridscope/pkg/timeseries"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatal("default config does not validate:", err)
	}

	// The shipped per-kind hyperparameters.
	cases := []struct {
		kind         timeseries.Kind
		eps          float64
		minNeighbors int
		outlierBins  int
	}{
		{timeseries.Freq, 0.02, 10, 1},
		{timeseries.Vang, 2, 5, 3},
		{timeseries.Vmag, 0.05, 10, 2},
	}
	for _, cse := range cases {
		p, err := c.Preset(cse.kind)
		if err != nil {
			t.Fatal(err)
		}
		if p.Eps != cse.eps || p.MinNeighbors != cse.minNeighbors || p.OutlierBins != cse.outlierBins {
			t.Fatalf("wrong preset for %s: %+v", cse.kind, p)
		}
	}
}

func TestLoad(t *testing.T) {
	doc := `
seed: 42
count_strategy: elbow
presets:
  freq:
    eps: 0.5
    min_neighbors: 4
    outlier_bins: 1
    units: Hz
`
	path := filepath.Join(t.TempDir(), "gridscope.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Seed != 42 || c.CountStrategy != CountElbow {
		t.Fatalf("overrides not applied: seed=%d strategy=%s", c.Seed, c.CountStrategy)
	}
	// Overridden kind takes the file values, the others keep defaults.
	if p, _ := c.Preset(timeseries.Freq); p.Eps != 0.5 || p.MinNeighbors != 4 {
		t.Fatal("freq preset not overridden:", p)
	}
	if p, _ := c.Preset(timeseries.Vang); p.Eps != 2 {
		t.Fatal("untouched preset changed:", p)
	}
	// Defaults survive for everything the file does not mention.
	if c.GroupStrategy != GroupPartition || c.SampleRate != 30 {
		t.Fatal("defaults lost on load")
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("count_strategy: magic\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("unknown strategy accepted")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

func TestValidate(t *testing.T) {
	// Case 1: broken preset.
	c := Default()
	c.Presets[timeseries.Freq] = Preset{Eps: -1, MinNeighbors: 10, OutlierBins: 1}
	if err := c.Validate(); err == nil {
		t.Fatal("negative radius accepted")
	}

	// Case 2: preset for a kind that does not exist.
	c = Default()
	c.Presets[timeseries.Kind("cmag")] = Preset{Eps: 1, MinNeighbors: 1, OutlierBins: 1}
	if err := c.Validate(); err == nil {
		t.Fatal("unknown kind accepted")
	}

	// Case 3: unusable elbow range.
	c = Default()
	c.Elbow.KMax = 1
	if err := c.Validate(); err == nil {
		t.Fatal("k_max below 2 accepted")
	}
}
