package cluster

import (
	"testing"

	"gridscope/pkg/errs"
	"gridscope/pkg/timeseries"
)

// denseScenario is 10 near-identical channels (ids 1..10) plus one
// far-outlier channel (id 11), 20 samples each.
func denseScenario(t *testing.T) *timeseries.Matrix {
	t.Helper()
	channels := make([]int, 11)
	series := make([][]float64, 11)
	for i := 0; i < 10; i++ {
		channels[i] = i + 1
		series[i] = flatSeries(60.0, 20)
	}
	channels[10] = 11
	series[10] = flatSeries(70.0, 20)
	return mustMatrix(t, channels, series)
}

func flatSeries(v float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func TestDBSCANFit(t *testing.T) {
	samples := [][]float64{
		{0}, {0.01}, {0.02}, // dense triple
		{5}, // lone point
	}
	labels := DBSCAN{Eps: 0.05, MinNeighbors: 3}.Fit(samples)

	if labels[0] != 0 || labels[1] != 0 || labels[2] != 0 {
		t.Fatal("dense triple not grouped:", labels)
	}
	if labels[3] != Noise {
		t.Fatal("lone point not marked as noise:", labels)
	}
}

func TestDensityScenario(t *testing.T) {
	// Frequency-tuned radius: the 10 identical channels form one dense
	// group, the far channel becomes a noise singleton.
	res, err := Density(denseScenario(t), 0.02, 10)
	if err != nil {
		t.Fatal(err)
	}

	if res.K != 2 {
		t.Fatal("expected 2 groups (dense + noise), got", res.K)
	}
	if res.Assignment[11] != Noise {
		t.Fatal("far channel not labeled as noise:", res.Assignment[11])
	}
	for ch := 1; ch <= 10; ch++ {
		if res.Assignment[ch] != 0 {
			t.Fatalf("channel %d not in the dense group: %d", ch, res.Assignment[ch])
		}
	}
	if res.Groups[Noise].NumChannels() != 1 {
		t.Fatal("noise group should hold exactly the far channel")
	}

	// The group count is the number of distinct non-noise labels plus one
	// for the noise group.
	nonNoise := map[int]bool{}
	noise := false
	for _, g := range res.Assignment {
		if g == Noise {
			noise = true
			continue
		}
		nonNoise[g] = true
	}
	want := len(nonNoise)
	if noise {
		want++
	}
	if res.K != want {
		t.Fatalf("group count %d does not match labels (%d non-noise, noise=%v)", res.K, len(nonNoise), noise)
	}
}

func TestDensityCenters(t *testing.T) {
	res, err := Density(denseScenario(t), 0.02, 10)
	if err != nil {
		t.Fatal(err)
	}
	// Centers are member means on the original time axis, including one
	// for the noise group.
	if len(res.Centers) != 2 {
		t.Fatal("expected a center per group, got", len(res.Centers))
	}
	if res.Centers[0][0] != 60.0 {
		t.Fatal("dense group mean should be 60.0, got", res.Centers[0][0])
	}
	if res.Centers[Noise][0] != 70.0 {
		t.Fatal("noise group mean should be 70.0, got", res.Centers[Noise][0])
	}
}

func TestDensityErrors(t *testing.T) {
	m := mustMatrix(t, []int{1, 2}, [][]float64{{60, 60}, {60, 60}})

	// Case 1: bad hyperparameters.
	if _, err := Density(m, 0, 10); !errs.IsKind(err, errs.KindConfig) {
		t.Fatal("zero radius not rejected:", err)
	}

	// Case 2: fewer than 2 channels.
	single := mustMatrix(t, []int{1}, [][]float64{{60, 60}})
	if _, err := Density(single, 0.02, 1); !errs.IsKind(err, errs.KindDegenerateData) {
		t.Fatal("single channel not rejected as degenerate:", err)
	}
}
