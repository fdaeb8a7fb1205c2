package cluster

import (
	"math"

	"github.com/montanaflynn/stats"

	"gridscope/pkg/errs"
	"gridscope/pkg/mathutils"
)

// Silhouette returns the mean silhouette coefficient over all samples for a
// given labeling, a scalar in [-1, 1]. Cohesion a(i) is the mean distance
// to the sample's own group, separation b(i) the smallest mean distance to
// any other group. Samples in singleton groups score 0.
func Silhouette(samples [][]float64, labels []int) (float64, error) {
	n := len(samples)
	if n != len(labels) {
		return 0, errs.New(errs.KindConfig, "have %d samples but %d labels", n, len(labels))
	}

	members := make(map[int][]int)
	for i, l := range labels {
		members[l] = append(members[l], i)
	}
	if len(members) < 2 {
		return 0, errs.New(errs.KindDegenerateData, "silhouette needs at least 2 groups, have %d", len(members))
	}

	// Pairwise distances, computed once.
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d, err := mathutils.EuclideanDistance(samples[i], samples[j])
			if err != nil {
				return 0, errs.New(errs.KindConfig, "sample %d and %d: %v", i, j, err)
			}
			dist[i][j], dist[j][i] = d, d
		}
	}

	coeffs := make([]float64, n)
	for i := 0; i < n; i++ {
		own := members[labels[i]]
		if len(own) < 2 {
			coeffs[i] = 0
			continue
		}

		var a float64
		for _, j := range own {
			a += dist[i][j]
		}
		a /= float64(len(own) - 1)

		b := math.MaxFloat64
		for l, idx := range members {
			if l == labels[i] {
				continue
			}
			var sum float64
			for _, j := range idx {
				sum += dist[i][j]
			}
			if mean := sum / float64(len(idx)); mean < b {
				b = mean
			}
		}

		if div := math.Max(a, b); div > 0 {
			coeffs[i] = (b - a) / div
		}
	}

	return stats.Mean(coeffs)
}

// ScoreK fits a seeded k-means for the candidate group count k and scores
// the resulting labeling. k must be at least 2 and strictly below the
// sample count, otherwise the score is undefined.
func ScoreK(samples [][]float64, k int, seed int64) (float64, error) {
	n := len(samples)
	if k < 2 {
		return 0, errs.New(errs.KindConfig, "candidate group count %d must be at least 2", k)
	}
	if k >= n {
		return 0, errs.New(errs.KindConfig, "candidate group count %d must be below the %d available channels", k, n)
	}
	labels, _, err := KMeans{K: k, Seed: seed}.Fit(samples)
	if err != nil {
		return 0, err
	}
	return Silhouette(samples, labels)
}
