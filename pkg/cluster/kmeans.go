package cluster

import (
	"math/rand"

	"gridscope/pkg/errs"
	"gridscope/pkg/mathutils"
	"gridscope/pkg/searchutils"
	"gridscope/pkg/timeseries"
)

// KMeans is a seeded Lloyd k-means over channel vectors. The zero value is
// not usable; K must be at least 1. Runs with the same Seed, samples and K
// produce identical labels.
type KMeans struct {
	K       int
	MaxIter int
	Seed    int64
}

// Fit clusters the samples and returns per-sample group labels in [0, K)
// plus the final centroids. Every sample gets exactly one label.
func (km KMeans) Fit(samples [][]float64) ([]int, [][]float64, error) {
	n := len(samples)
	if km.K < 1 {
		return nil, nil, errs.New(errs.KindConfig, "group count %d must be at least 1", km.K)
	}
	if km.K > n {
		return nil, nil, errs.New(errs.KindConfig, "group count %d exceeds %d available channels", km.K, n)
	}
	for i := range samples {
		if len(samples[i]) != len(samples[0]) {
			return nil, nil, errs.New(errs.KindConfig, "sample %d has mismatched vector length", i)
		}
	}
	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = 100
	}

	// Initial centroids are K distinct samples, chosen by the seeded source.
	rng := rand.New(rand.NewSource(km.Seed))
	centers := make([][]float64, km.K)
	for i, j := range rng.Perm(n)[:km.K] {
		centers[i] = append([]float64(nil), samples[j]...)
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		// Assignment step.
		changed := false
		for i, s := range samples {
			c := searchutils.NearestIndex(s, searchutils.SliceGenerator(centers))
			if c != labels[i] {
				labels[i] = c
				changed = true
			}
		}
		if !changed {
			break
		}

		// Update step.
		for c := range centers {
			member := make([][]float64, 0, n)
			for i, l := range labels {
				if l == c {
					member = append(member, samples[i])
				}
			}
			if len(member) == 0 {
				// Re-seed an emptied centroid with the sample furthest from
				// its current assignment, so K groups survive to the end.
				centers[c] = append([]float64(nil), samples[furthestFromOwnCenter(samples, labels, centers)]...)
				continue
			}
			mean, _ := mathutils.VecMeanSlice(member)
			centers[c] = mean
		}
	}

	return labels, centers, nil
}

// furthestFromOwnCenter returns the index of the sample with the largest
// distance to the centroid it is currently assigned to.
func furthestFromOwnCenter(samples [][]float64, labels []int, centers [][]float64) int {
	best, bestScore := 0, -1.
	for i, s := range samples {
		d, err := mathutils.EuclideanDistance(s, centers[labels[i]])
		if err == nil && d > bestScore {
			best, bestScore = i, d
		}
	}
	return best
}

// Partition clusters the matrix channels into exactly k groups with seeded
// k-means. Centroids are reported against the matrix's original time index.
func Partition(m *timeseries.Matrix, k int, seed int64) (*Result, error) {
	if m.NumChannels() < 2 {
		return nil, errs.New(errs.KindDegenerateData, "clustering needs at least 2 channels, have %d", m.NumChannels())
	}
	labels, centers, err := KMeans{K: k, Seed: seed}.Fit(m.Samples())
	if err != nil {
		return nil, err
	}
	// Degenerate inputs (duplicate channels) can leave a centroid empty even
	// after re-seeding; only centers with members are reported.
	centersByID := make(map[int][]float64, k)
	for _, l := range labels {
		centersByID[l] = centers[l]
	}
	return buildResult(m, labels, centersByID)
}
